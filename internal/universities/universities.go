// Package universities holds the static prestige tables used to annotate
// education entries. The tables are read-only after package initialisation.
package universities

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var institutionSuffixes = []string{"大学", "学院"}

// genericTerms name no particular institution. An input made only of these
// never matches by being contained in a canonical name.
var genericTerms = map[string]struct{}{
	"university": {}, "universities": {}, "college": {}, "institute": {}, "institution": {},
	"school": {}, "of": {}, "the": {}, "and": {}, "at": {}, "technology": {}, "technological": {},
	"science": {}, "sciences": {}, "national": {}, "federal": {}, "state": {}, "royal": {},
	"中国": {}, "北京": {}, "上海": {}, "南京": {}, "科技": {}, "理工": {}, "师范": {},
	"农业": {}, "工业": {}, "交通": {}, "国立": {}, "国防": {},
}

// Table is a set of canonical institution names with a lenient membership test.
type Table struct {
	name    string
	entries []string
}

// NewTable builds a table from canonical names. Names are normalised once here.
func NewTable(name string, canonical ...string) *Table {
	entries := make([]string, 0, len(canonical))
	seen := make(map[string]struct{}, len(canonical))
	for _, c := range canonical {
		n := normalize(c)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		entries = append(entries, n)
	}

	return &Table{name: name, entries: entries}
}

// Name returns the table label.
func (t *Table) Name() string {
	return t.name
}

// Len reports the number of distinct canonical names.
func (t *Table) Len() int {
	return len(t.entries)
}

// Contains reports whether the institution belongs to the table.
//
// The input is NFKC- and case-folded. It matches when its suffix-stripped form
// (at least two runes, not only generic words such as "university" or "中国")
// occurs inside a canonical name, or when a canonical
// name occurs inside the full input. Short aliases such as "MIT" or "北大"
// only match as a whole word or as the entire stripped input.
func (t *Table) Contains(institution string) bool {
	full := normalize(institution)
	if full == "" {
		return false
	}

	cleaned := stripSuffixes(full)
	words := wordSet(full)
	specific := utf8.RuneCountInString(cleaned) >= 2 && !isGeneric(cleaned)

	for _, entry := range t.entries {
		if isAlias(entry) {
			if _, ok := words[entry]; ok || cleaned == entry {
				return true
			}
			continue
		}

		if specific && strings.Contains(entry, cleaned) {
			return true
		}

		if strings.Contains(full, entry) {
			return true
		}
	}

	return false
}

func normalize(s string) string {
	s = norm.NFKC.String(s)
	// Casers keep state between calls and must not be shared across goroutines.
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

func stripSuffixes(s string) string {
	for _, suffix := range institutionSuffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}
	return strings.TrimSpace(s)
}

func isAlias(entry string) bool {
	n := utf8.RuneCountInString(entry)
	if n <= 2 {
		return true
	}
	if n > 4 {
		return false
	}
	for _, r := range entry {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isGeneric(cleaned string) bool {
	words := wordSet(cleaned)
	if len(words) == 0 {
		return true
	}
	for w := range words {
		if _, ok := genericTerms[w]; !ok {
			return false
		}
	}
	return true
}

func wordSet(s string) map[string]struct{} {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
