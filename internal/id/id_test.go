package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("prov")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "prov-") {
		t.Errorf("expected prov- prefix, got %q", got)
	}
	// prefix + "-" + 21-char nanoid
	if len(got) != len("prov-")+21 {
		t.Errorf("unexpected length %d for %q", len(got), got)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		got, err := Generate("rec")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[got] {
			t.Fatalf("duplicate ID generated: %q", got)
		}
		seen[got] = true
	}
}

func TestMustGenerate(t *testing.T) {
	got := MustGenerate("vote")
	if !strings.HasPrefix(got, "vote-") {
		t.Errorf("expected vote- prefix, got %q", got)
	}
}
