package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		prefix string
		want   string
	}{
		{"local digits", "771234567", "+221", "+221771234567"},
		{"local with spaces", "77 123 45 67", "+221", "+221771234567"},
		{"local with punctuation", "77-123-45-67", "+221", "+221771234567"},
		{"already international", "+221771234567", "+221", "+221771234567"},
		{"international with spaces", "+221 77 123 45 67", "+221", "+221771234567"},
		{"foreign international kept", "+33612345678", "+221", "+33612345678"},
		{"leading zero kept as digits", "0771234567", "+221", "+2210771234567"},
		{"letters dropped", "tel: 771234567", "+221", "+221771234567"},
		{"empty input", "", "+221", ""},
		{"no digits at all", "call me", "+221", ""},
		{"whitespace only", "   \t", "+221", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.prefix)
			if got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.raw, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"771234567",
		"+221 77 123 45 67",
		"77-123-45-67",
		"+33612345678",
		"",
		"no digits",
	}

	for _, raw := range inputs {
		once := Normalize(raw, "+221")
		twice := Normalize(once, "+221")
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", raw, once, twice)
		}
	}
}

func TestNormalize_SameNumberDifferentFormats(t *testing.T) {
	// A recommender typing local digits and a provider typing the full
	// international form must converge on one canonical value.
	a := Normalize("77 123 45 67", "+221")
	b := Normalize("+221771234567", "+221")
	if a != b {
		t.Errorf("formats diverged: %q vs %q", a, b)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		canonical string
		want      bool
	}{
		{"+221771234567", true},
		{"+1", true},
		{"", false},
		{"+", false},
		{"771234567", false},
		{"+---", false},
	}

	for _, tt := range tests {
		if got := IsValid(tt.canonical); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.canonical, got, tt.want)
		}
	}
}
