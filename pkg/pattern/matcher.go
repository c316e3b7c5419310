package pattern

import (
	"strings"
)

// Matcher handles pattern matching for base58 addresses.
// Matching is case-insensitive.
type Matcher struct {
	pattern   string
	matchType MatchType
	skip      int
}

// NewMatcher creates a new address matcher. skip is the number of fixed
// leading symbols the network always emits (Tron 'T', Bitcoin P2PKH '1');
// prefix and contains matching start after them.
func NewMatcher(pattern string, matchType MatchType, skip int) *Matcher {
	return &Matcher{
		pattern:   strings.ToLower(pattern),
		matchType: matchType,
		skip:      skip,
	}
}

// Matches checks if an address matches the pattern.
func (m *Matcher) Matches(address string) bool {
	if len(address) <= m.skip {
		return false
	}
	address = strings.ToLower(address)

	switch m.matchType {
	case Prefix:
		return strings.HasPrefix(address[m.skip:], m.pattern)
	case Suffix:
		return strings.HasSuffix(address, m.pattern)
	case Contains:
		return strings.Contains(address[m.skip:], m.pattern)
	default:
		return false
	}
}

// Pattern returns the lower-cased pattern the matcher compares against.
func (m *Matcher) Pattern() string {
	return m.pattern
}
