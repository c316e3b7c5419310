package pattern

import "testing"

func TestMatcher(t *testing.T) {
	const addr = "AmrX9kQwE4tyUvPp3NnZ7hJbd2sRfCmG8LxKaYWqz5Du"

	tests := []struct {
		name    string
		pattern string
		mt      MatchType
		skip    int
		want    bool
	}{
		{name: "prefix", pattern: "Amr", mt: Prefix, want: true},
		{name: "prefix case-insensitive", pattern: "aMR", mt: Prefix, want: true},
		{name: "prefix miss", pattern: "Amz", mt: Prefix, want: false},
		{name: "suffix", pattern: "5Du", mt: Suffix, want: true},
		{name: "suffix case-insensitive", pattern: "5dU", mt: Suffix, want: true},
		{name: "suffix miss", pattern: "Du5", mt: Suffix, want: false},
		{name: "contains", pattern: "tyUv", mt: Contains, want: true},
		{name: "contains case-insensitive", pattern: "TYuV", mt: Contains, want: true},
		{name: "contains miss", pattern: "zzzz", mt: Contains, want: false},
		{name: "prefix after fixed symbol", pattern: "mrX", mt: Prefix, skip: 1, want: true},
		{name: "prefix on fixed symbol", pattern: "Amr", mt: Prefix, skip: 1, want: false},
		{name: "contains ignores fixed symbol", pattern: "Am", mt: Contains, skip: 1, want: false},
		{name: "unknown match type", pattern: "Amr", mt: "exact", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(tt.pattern, tt.mt, tt.skip)
			if got := m.Matches(addr); got != tt.want {
				t.Errorf("Matches(%q) with %s %q skip %d = %v, want %v", addr, tt.mt, tt.pattern, tt.skip, got, tt.want)
			}
		})
	}
}

func TestMatcherShortAddress(t *testing.T) {
	m := NewMatcher("T", Prefix, 1)
	if m.Matches("T") {
		t.Error("address no longer than the fixed symbols must not match")
	}
}
