package loader

import (
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAML decodes YAML documents.
type YAML struct{}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// Decode implements Decoder.
func (YAML) Decode(source string, data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return perr
	}
	return nil
}
