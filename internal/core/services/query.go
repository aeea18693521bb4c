package services

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// yearPattern finds a 1900-2099 year standing as its own word, also
// inside tokens such as "report-2022" or "(2022)".
var yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// Decompose splits a query into its year and core intent and derives
// the search variants to try, in order.
//
// The year is the first match of yearPattern. Every occurrence of it is
// removed; a token left with only punctuation is dropped.
func Decompose(query string) domain.QueryPlan {
	year := yearPattern.FindString(query)

	tokens := strings.Fields(query)
	core := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if year != "" {
			tok = stripYear(tok, year)
			if tok == "" {
				continue
			}
		}
		core = append(core, tok)
	}

	coreIntent := strings.Join(core, " ")
	return domain.QueryPlan{
		Year:       year,
		CoreIntent: coreIntent,
		Variants:   Variants(coreIntent),
	}
}

// stripYear removes whole-word occurrences of year from tok and trims the
// punctuation left at the edges.
func stripYear(tok, year string) string {
	if !strings.Contains(tok, year) {
		return tok
	}
	var b strings.Builder
	rest := tok
	for {
		i := strings.Index(rest, year)
		if i < 0 {
			b.WriteString(rest)
			break
		}
		end := i + len(year)
		if isWordEdge(rest, i-1) && isWordEdge(rest, end) {
			b.WriteString(rest[:i])
		} else {
			b.WriteString(rest[:end])
		}
		rest = rest[end:]
	}
	stripped := b.String()
	if stripped == tok {
		return tok
	}
	return trimPunct(stripped)
}

// isWordEdge reports whether s has no word character at byte index i.
func isWordEdge(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z')
}

// Variants returns progressively narrower rephrasings of a core intent:
// the whole phrase, the first word, the rest after the first word, the
// second word and the third word. Empty entries are dropped and duplicates
// removed keeping the first occurrence.
func Variants(core string) []string {
	core = strings.TrimSpace(core)
	if core == "" {
		return nil
	}

	words := strings.Fields(strings.ToLower(core))
	candidates := []string{core, words[0]}
	if len(words) > 1 {
		candidates = append(candidates, strings.Join(words[1:], " "), words[1])
	}
	if len(words) > 2 {
		candidates = append(candidates, words[2])
	}

	seen := make(map[string]bool, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		variants = append(variants, c)
	}
	return variants
}

// CoreTerms returns the lower-cased words of a core intent, used as
// lexical match terms.
func CoreTerms(core string) []string {
	return strings.Fields(strings.ToLower(core))
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
