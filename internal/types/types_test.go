package types

import (
	"strings"
	"testing"
)

func TestSeverityOrder(t *testing.T) {
	for i := 1; i < len(Severities); i++ {
		if Severities[i-1].Rank() <= Severities[i].Rank() {
			t.Fatalf("%s should outrank %s", Severities[i-1], Severities[i])
		}
	}
	if Severity("bogus").Valid() {
		t.Fatal("unexpected valid severity")
	}
}

func TestParseSeverity(t *testing.T) {
	got, err := ParseSeverity(" high ")
	if err != nil || got != SevHigh {
		t.Fatalf("ParseSeverity(high) = %q, %v", got, err)
	}
	if _, err := ParseSeverity("urgent"); err == nil {
		t.Fatal("expected error for unknown severity")
	}
}

func TestCapEvidence(t *testing.T) {
	long := strings.Repeat("é", MaxEvidence+10)
	capped := CapEvidence(long)
	if n := len([]rune(capped)); n != MaxEvidence {
		t.Fatalf("expected %d runes, got %d", MaxEvidence, n)
	}
	if CapEvidence("short") != "short" {
		t.Fatal("short evidence must be unchanged")
	}
}
