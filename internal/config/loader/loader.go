// Package loader decodes configuration files and environment variables.
//
// TOML files are read with github.com/pelletier/go-toml/v2 and YAML files
// with gopkg.in/yaml.v3; the format is chosen from the file extension.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for a file extension no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Decoder decodes one configuration format into a Go value.
type Decoder interface {
	// Decode unmarshals data read from source into v.
	Decode(source string, data []byte, v any) error
}

// FileSystem is an abstraction for file system operations.
// fstest.MapFS satisfies it, which keeps tests off the disk.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// FileLoader reads a configuration file and decodes it by extension.
type FileLoader struct {
	fs       FileSystem
	decoders map[string]Decoder
}

// NewFileLoader creates a loader over the OS file system.
func NewFileLoader() *FileLoader {
	return NewFileLoaderWithFS(DefaultFS())
}

// NewFileLoaderWithFS creates a loader with a custom file system.
func NewFileLoaderWithFS(fsys FileSystem) *FileLoader {
	return &FileLoader{
		fs: fsys,
		decoders: map[string]Decoder{
			".toml": TOML{},
			".yaml": YAML{},
			".yml":  YAML{},
		},
	}
}

// LoadInto decodes the file at path into v. It reports false, with a nil
// error, when the file does not exist.
func (l *FileLoader) LoadInto(path string, v any) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := l.decoders[ext]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := dec.Decode(path, data, v); err != nil {
		return false, err
	}
	return true, nil
}
