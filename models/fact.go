package models

import (
	"fmt"
	"sort"
	"strings"
)

// Fact is one tagged data point from an XBRL instance document.
type Fact struct {
	Value      string `json:"value"`
	UnitRef    string `json:"unitRef,omitempty"`
	ContextRef string `json:"contextRef"`
	Decimals   string `json:"decimals,omitempty"`
}

// FactSet maps a fact's local tag name to its value. When a document
// repeats a tag, the later occurrence wins; facts are not keyed by
// context.
type FactSet map[string]Fact

// Text renders the set as readable lines, one fact per line, for
// consumers that want plain text rather than JSON.
func (fs FactSet) Text(report string) string {
	tags := make([]string, 0, len(fs))
	for tag := range fs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	lines := make([]string, 0, len(fs)+1)
	lines = append(lines, fmt.Sprintf("Report: %s", report))
	for _, tag := range tags {
		fact := fs[tag]
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%s: %s %s", tag, fact.Value, fact.UnitRef)))
	}

	return strings.Join(lines, "\n")
}
