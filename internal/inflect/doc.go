// Package inflect provides the text transforms behind the inflection
// commands: pluralize, singularize, ordinalize and transliterate-to-ASCII.
//
// Engine is the default Inflector. It checks its own irregular and
// uncountable tables first and defers to github.com/jinzhu/inflection for
// everything else; ordinals use github.com/dustin/go-humanize and
// transliteration uses golang.org/x/text.
//
// Engines never mutate the jinzhu/inflection global rule set, so several
// engines with different overrides can coexist in one process.
package inflect
