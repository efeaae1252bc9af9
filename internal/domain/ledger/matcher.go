package ledger

import "strings"

// CategoryMatcher resolves loose category tokens from user text against the
// known category set. "food" should find "Food & Dining", "dining" should
// too; a token that matches nothing returns false.
type CategoryMatcher struct {
	categories []string
}

// NewCategoryMatcher builds a matcher over the known category names
func NewCategoryMatcher(categories []string) *CategoryMatcher {
	return &CategoryMatcher{categories: categories}
}

// Match resolves a token to a known category. Resolution order: exact
// case-insensitive match, then substring containment in either direction,
// then word-level overlap ("food" vs "Food & Dining"). First hit in category
// order wins so resolution is deterministic.
func (m *CategoryMatcher) Match(token string) (string, bool) {
	needle := normalize(token)
	if needle == "" {
		return "", false
	}

	for _, cat := range m.categories {
		if normalize(cat) == needle {
			return cat, true
		}
	}

	for _, cat := range m.categories {
		haystack := normalize(cat)
		if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
			return cat, true
		}
	}

	needleWords := fields(needle)
	for _, cat := range m.categories {
		catWords := fields(normalize(cat))
		for _, nw := range needleWords {
			for _, cw := range catWords {
				if nw == cw {
					return cat, true
				}
			}
		}
	}

	return "", false
}

// Categories returns the known category names in matcher order
func (m *CategoryMatcher) Categories() []string {
	out := make([]string, len(m.categories))
	copy(out, m.categories)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// fields splits on spaces and drops connective noise words so "food and
// dining" and "Food & Dining" produce the same word set.
func fields(s string) []string {
	raw := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '&' || r == '/' || r == ','
	})
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if w == "and" || w == "the" || w == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}
