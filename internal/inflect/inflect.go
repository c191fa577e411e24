package inflect

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/jinzhu/inflection"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Inflector is the linguistic capability the inflection commands run on.
// Every method is a pure text-to-text function.
type Inflector interface {
	Pluralize(s string) string
	Singularize(s string) string
	Ordinalize(s string) string
	Transliterate(s string) string
}

// Engine is the default Inflector. Plural and singular forms come from
// github.com/jinzhu/inflection after the engine's own override tables.
type Engine struct {
	plural      map[string]string // singular -> plural, lower-case keys
	singular    map[string]string // plural -> singular, lower-case keys
	uncountable map[string]struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithIrregular registers singular/plural pairs that override the library rules.
func WithIrregular(pairs map[string]string) Option {
	return func(e *Engine) {
		for s, p := range pairs {
			e.addIrregular(s, p)
		}
	}
}

// WithUncountable registers words that have no distinct plural.
func WithUncountable(words ...string) Option {
	return func(e *Engine) {
		for _, w := range words {
			e.uncountable[strings.ToLower(w)] = struct{}{}
		}
	}
}

// New creates an Engine preloaded with DefaultIrregulars.
func New(opts ...Option) *Engine {
	e := &Engine{
		plural:      make(map[string]string),
		singular:    make(map[string]string),
		uncountable: make(map[string]struct{}),
	}
	for s, p := range DefaultIrregulars {
		e.addIrregular(s, p)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) addIrregular(singular, plural string) {
	s, p := strings.ToLower(singular), strings.ToLower(plural)
	e.plural[s] = p
	e.singular[p] = s
}

// Pluralize returns the plural form of s.
func (e *Engine) Pluralize(s string) string {
	if s == "" {
		return s
	}
	if out, ok := e.lookup(e.plural, s); ok {
		return out
	}
	return inflection.Plural(s)
}

// Singularize returns the singular form of s.
func (e *Engine) Singularize(s string) string {
	if s == "" {
		return s
	}
	if out, ok := e.lookup(e.singular, s); ok {
		return out
	}
	return inflection.Singular(s)
}

// lookup consults the uncountable set and an override table for the final
// word of s. The words before it and any trailing space are kept, and a match
// keeps the capitalisation of that word: all upper, leading upper, or as
// stored.
func (e *Engine) lookup(table map[string]string, s string) (string, bool) {
	body := strings.TrimRightFunc(s, unicode.IsSpace)
	prefix, word := splitLastWord(body)
	if word == "" {
		return "", false
	}
	lower := strings.ToLower(word)
	if _, ok := e.uncountable[lower]; ok {
		return s, true
	}
	out, ok := table[lower]
	if !ok {
		return "", false
	}
	switch {
	case word == strings.ToUpper(word) && utf8.RuneCountInString(word) > 1:
		out = strings.ToUpper(out)
	case startsUpper(word):
		out = titleFirst(out)
	}
	return prefix + out + s[len(body):], true
}

// splitLastWord splits s after its last non-letter rune.
func splitLastWord(s string) (prefix, word string) {
	i := strings.LastIndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if i < 0 {
		return "", s
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[:i+size], s[i+size:]
}

// Ordinalize appends the English ordinal suffix to an integer, so "1"
// becomes "1st" and "-12" becomes "-12th". The digits are kept as written
// and may be of any length. Text that is not an integer is returned unchanged.
func (e *Engine) Ordinalize(s string) string {
	body := strings.TrimRightFunc(s, unicode.IsSpace)
	digits := strings.TrimLeftFunc(body, unicode.IsSpace)
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return s
	}
	n, _ := strconv.Atoi(digits[max(0, len(digits)-2):])
	suffix := strings.TrimPrefix(humanize.Ordinal(n), strconv.Itoa(n))
	return body + suffix + s[len(body):]
}

// Transliterate folds s to ASCII: characters are decomposed (NFKD) and
// whatever is still outside ASCII is dropped, so "café" becomes "cafe".
func (e *Engine) Transliterate(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isNonASCII)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isNonASCII(r rune) bool {
	return r > unicode.MaxASCII
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func titleFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
