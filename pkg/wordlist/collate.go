package wordlist

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation names the ordering used for the final word sort.
type Collation string

const (
	// CollationCodepoint orders by UTF-8 bytes. Output is identical on every platform.
	CollationCodepoint Collation = "codepoint"
	// CollationLocale orders with the English collation tables of x/text.
	CollationLocale Collation = "locale"
)

// ParseCollation maps a config value to a Collation.
// Unknown names fall back to codepoint.
func ParseCollation(name string) Collation {
	switch Collation(strings.ToLower(strings.TrimSpace(name))) {
	case CollationCodepoint, "":
		return CollationCodepoint
	case CollationLocale:
		return CollationLocale
	default:
		log.Warnf("Unknown collation %q, using %s", name, CollationCodepoint)
		return CollationCodepoint
	}
}

// SortEntries sorts entries in place by word. The sort is stable.
func SortEntries(entries []Entry, c Collation) {
	switch c {
	case CollationLocale:
		// collator keeps internal buffers, one per sort
		col := collate.New(language.English)
		sort.SliceStable(entries, func(i, j int) bool {
			if n := col.CompareString(entries[i].Word, entries[j].Word); n != 0 {
				return n < 0
			}
			return entries[i].Word < entries[j].Word
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Word < entries[j].Word
		})
	}
}
