package models

import (
	"strings"
	"testing"
	"time"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestQuarterLabel(t *testing.T) {
	tests := []struct {
		filed    string
		expected string
	}{
		{"2023-05-10", "2023Q1"},
		{"2023-08-01", "2023Q2"},
		{"2023-11-30", "2023Q3"},
		{"2023-02-14", "2022Q4"},
		{"2024-01-02", "2023Q4"},
		{"2023-12-31", "2023Q3"},
		{"2023-04-01", "2023Q1"},
	}

	for _, tc := range tests {
		if got := QuarterLabel(date(tc.filed)); got != tc.expected {
			t.Errorf("QuarterLabel(%s) = %q, want %q", tc.filed, got, tc.expected)
		}
	}
}

func TestBuildReportKey(t *testing.T) {
	if got := BuildReportKey("ACME", "10-Q", date("2024-02-01")); got != "ACME_2023Q4" {
		t.Errorf("10-Q key = %q, want ACME_2023Q4", got)
	}

	if got := BuildReportKey("ACME", "10-K", date("2023-11-15")); got != "ACME_2023Q3&Annual" {
		t.Errorf("10-K key = %q, want ACME_2023Q3&Annual", got)
	}
}

func TestFactSetText(t *testing.T) {
	facts := FactSet{
		"Revenue": {Value: "1000", UnitRef: "USD", ContextRef: "c1"},
		"Shares":  {Value: "42", ContextRef: "c1"},
	}

	text := facts.Text("ACME_2023Q4")

	lines := strings.Split(text, "\n")
	if lines[0] != "Report: ACME_2023Q4" {
		t.Errorf("first line = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), text)
	}
	if lines[1] != "Revenue: 1000 USD" {
		t.Errorf("revenue line = %q", lines[1])
	}
	// No trailing space when the fact has no unit.
	if lines[2] != "Shares: 42" {
		t.Errorf("shares line = %q", lines[2])
	}
}
