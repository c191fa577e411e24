// Command keystorm-inflect rewrites selected spans of a text with their
// plural, singular, ordinal or ASCII-transliterated forms.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
