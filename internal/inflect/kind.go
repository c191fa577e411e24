package inflect

import (
	"fmt"
	"strings"
)

// Kind names one of the four inflection operations.
type Kind uint8

const (
	KindPluralize Kind = iota
	KindSingularize
	KindOrdinalize
	KindTransliterate
)

var kindNames = [...]string{
	KindPluralize:     "pluralize",
	KindSingularize:   "singularize",
	KindOrdinalize:    "ordinalize",
	KindTransliterate: "transliterate",
}

// String returns the lower-case operation name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Kinds returns every Kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindPluralize, KindSingularize, KindOrdinalize, KindTransliterate}
}

// ParseKind parses an operation name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Transform is a pure text-to-text function.
type Transform func(string) string

// Func returns the Transform of inf selected by k.
func Func(inf Inflector, k Kind) (Transform, error) {
	switch k {
	case KindPluralize:
		return inf.Pluralize, nil
	case KindSingularize:
		return inf.Singularize, nil
	case KindOrdinalize:
		return inf.Ordinalize, nil
	case KindTransliterate:
		return inf.Transliterate, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
}
