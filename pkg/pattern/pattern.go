// Package pattern validates vanity patterns against the base58 alphabet and
// estimates how hard they are to find.
package pattern

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Alphabet is the Base58 alphabet (Bitcoin/Solana style - excludes 0, O, I, l).
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	// MaxLength caps patterns so estimates stay in a range we can honestly report.
	MaxLength = 6

	// ReferenceThroughput is the attempts/sec used for user guidance only.
	ReferenceThroughput = 1000
)

// Validation errors
var (
	ErrEmpty        = errors.New("pattern is empty")
	ErrTooLong      = errors.New("pattern is too long")
	ErrInvalidChars = errors.New("pattern contains characters outside the base58 alphabet")
	ErrMatchType    = errors.New("unknown match type")
)

// MatchType selects where in the address the pattern must appear.
type MatchType string

const (
	Prefix   MatchType = "prefix"
	Suffix   MatchType = "suffix"
	Contains MatchType = "contains"
)

// ParseMatchType parses a match type name, case-insensitively.
func ParseMatchType(s string) (MatchType, error) {
	switch MatchType(strings.ToLower(strings.TrimSpace(s))) {
	case Prefix:
		return Prefix, nil
	case Suffix:
		return Suffix, nil
	case Contains:
		return Contains, nil
	}
	return "", fmt.Errorf("%w: %q", ErrMatchType, s)
}

// Valid reports whether m is one of the known match types.
func (m MatchType) Valid() bool {
	return m == Prefix || m == Suffix || m == Contains
}

// WarningLevel buckets the estimated search time.
type WarningLevel string

const (
	Easy    WarningLevel = "easy"
	Medium  WarningLevel = "medium"
	Hard    WarningLevel = "hard"
	Extreme WarningLevel = "extreme"
)

// Difficulty is the estimate computed once when a pattern is validated.
type Difficulty struct {
	Base              float64      // 1/p for a single attempt
	EstimatedAttempts uint64       // attempts for a 50% chance of a match
	EstimatedSeconds  float64      // at ReferenceThroughput
	Warning           WarningLevel // bucket of EstimatedSeconds
}

// EstimatedTime formats EstimatedSeconds as a short human string ("45s", "2m", "3h", "5d").
func (d Difficulty) EstimatedTime() string {
	s := d.EstimatedSeconds
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", int(s))
	case s < 3600:
		return fmt.Sprintf("%dm", int(s/60))
	case s < 86400:
		return fmt.Sprintf("%dh", int(s/3600))
	default:
		return fmt.Sprintf("%dd", int(s/86400))
	}
}

// Validate checks pattern and matchType and returns the difficulty estimate.
// Every problem found is reported in the joined error.
func Validate(pattern string, matchType MatchType) (Difficulty, error) {
	var errs []error

	n := len([]rune(pattern))
	if n == 0 {
		errs = append(errs, ErrEmpty)
	}
	if n > MaxLength {
		errs = append(errs, fmt.Errorf("%w: %d symbols, max %d", ErrTooLong, n, MaxLength))
	}
	if invalid := InvalidChars(pattern); len(invalid) > 0 {
		errs = append(errs, fmt.Errorf("%w: %q (not allowed: 0, O, I, l)", ErrInvalidChars, string(invalid)))
	}
	if !matchType.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrMatchType, string(matchType)))
	}
	if len(errs) > 0 {
		return Difficulty{}, errors.Join(errs...)
	}

	return Estimate(n, matchType), nil
}

// Estimate computes the difficulty of a pattern of the given length.
//
// For contains, 58^n/n is a rough heuristic: an address offers roughly n
// candidate start offsets per attempt. It is not an occupancy-probability
// computation and is kept as an explicit approximation.
func Estimate(length int, matchType MatchType) Difficulty {
	base := math.Pow(float64(len(Alphabet)), float64(length))
	if matchType == Contains && length > 0 {
		base /= float64(length)
	}

	// Poisson process: P(at least one hit after k trials) = 0.5 at k = base*ln2
	attempts := uint64(math.Round(base * math.Ln2))
	seconds := float64(attempts) / ReferenceThroughput

	return Difficulty{
		Base:              base,
		EstimatedAttempts: attempts,
		EstimatedSeconds:  seconds,
		Warning:           warningFor(seconds),
	}
}

func warningFor(seconds float64) WarningLevel {
	switch {
	case seconds < 60:
		return Easy
	case seconds < 300:
		return Medium
	case seconds < 1800:
		return Hard
	default:
		return Extreme
	}
}

// IsValidBase58 checks if a string contains only valid Base58 characters.
func IsValidBase58(s string) bool {
	return len(InvalidChars(s)) == 0
}

// InvalidChars returns any invalid Base58 characters in the input.
// Useful for providing helpful error messages to users.
func InvalidChars(s string) []rune {
	var invalid []rune
	for _, c := range s {
		if !strings.ContainsRune(Alphabet, c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}
