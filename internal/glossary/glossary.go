// Package glossary loads a term list from an external glossary document and
// scans free text for known terms. Scanning is a pure function over
// (text, glossary), safe to call from any goroutine.
package glossary

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"bundledit/internal/errors"
	"bundledit/pkg/types"
)

// Glossary lines look like "- Crest - **Герб**". The emphasis markers around
// the translation are decoration in the source document and are stripped.
var linePattern = regexp.MustCompile(`^\s*-\s+(.+?)\s+-\s+(.+?)\s*$`)

// Glossary is an ordered, immutable list of term/translation pairs.
type Glossary struct {
	entries []types.GlossaryEntry
}

// Load parses glossary entries from r. Lines not matching the entry pattern
// are skipped silently; only a read failure is an error.
func Load(r io.Reader) (*Glossary, error) {
	g := &Glossary{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := linePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		g.entries = append(g.entries, types.GlossaryEntry{
			Term:        m[1],
			Translation: strings.Trim(m[2], "*_"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewParseError("cannot read glossary", "", err)
	}
	return g, nil
}

// LoadFile loads a glossary document from disk. A missing or unreadable file
// is a parse error; callers treat it as non-fatal and run with an empty
// glossary.
func LoadFile(path string) (*Glossary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewParseError("cannot open glossary", path, err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, errors.NewParseError("cannot read glossary", path, errors.Unwrap(err))
	}
	return g, nil
}

// Empty returns a glossary with no entries.
func Empty() *Glossary {
	return &Glossary{}
}

// Len returns the number of entries.
func (g *Glossary) Len() int {
	return len(g.entries)
}

// Entries returns the entries in document order.
func (g *Glossary) Entries() []types.GlossaryEntry {
	return g.entries
}

// TranslationFor looks up the fixed translation for a term,
// case-insensitively. The first matching entry wins.
func (g *Glossary) TranslationFor(term string) (string, bool) {
	for _, e := range g.entries {
		if strings.EqualFold(e.Term, term) {
			return e.Translation, true
		}
	}
	return "", false
}

// Scan reports which glossary terms appear in text as case-insensitive
// substrings. Each term is reported once no matter how often it occurs, and
// the result is sorted for stable display.
func (g *Glossary) Scan(text string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, e := range g.entries {
		if seen[e.Term] {
			continue
		}
		if containsFold(text, e.Term) {
			seen[e.Term] = true
			terms = append(terms, e.Term)
		}
	}
	sort.Strings(terms)
	return terms
}

// Occurrences reports every appearance of every glossary term in text as
// byte ranges, including overlapping and repeated matches, for visual
// marking. Offsets index the original text, so callers can slice it
// directly. Results are ordered by start offset, then term.
func (g *Glossary) Occurrences(text string) []types.Occurrence {
	var occs []types.Occurrence
	reported := make(map[string]bool)
	for _, e := range g.entries {
		if reported[e.Term] || e.Term == "" {
			continue
		}
		reported[e.Term] = true
		for i := 0; i < len(text); {
			if n := matchLen(text[i:], e.Term); n > 0 {
				occs = append(occs, types.Occurrence{
					Term:  e.Term,
					Start: i,
					End:   i + n,
				})
			}
			// Step one rune so overlapping repeats are still found.
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
	}
	sort.Slice(occs, func(i, j int) bool {
		if occs[i].Start != occs[j].Start {
			return occs[i].Start < occs[j].Start
		}
		return occs[i].Term < occs[j].Term
	})
	return occs
}

// matchLen reports the byte length of a case-insensitive match of term at
// the start of s, or 0 when there is none. Matching folds rune by rune over
// the original bytes, so lowercasing a character never shifts the offsets
// (strings.ToLower changes the byte length of characters like U+0130).
func matchLen(s, term string) int {
	n := 0
	for _, tr := range term {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0
		}
		if unicode.ToLower(r) != unicode.ToLower(tr) {
			return 0
		}
		n += size
	}
	return n
}

func containsFold(s, term string) bool {
	if term == "" {
		return false
	}
	for i := 0; i < len(s); {
		if matchLen(s[i:], term) > 0 {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return false
}
