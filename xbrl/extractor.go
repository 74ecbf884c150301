// Package xbrl extracts flat fact mappings from XBRL instance
// documents.
package xbrl

import (
	"bytes"
	"errors"
	"fmt"

	"filingfacts/models"

	"github.com/antchfx/xmlquery"
)

// ErrEmptyFactSet means the document parsed cleanly but held no
// elements carrying a contextRef. It is distinct from a parse error so
// callers know the document is well-formed yet useless and can move on
// to the next candidate.
var ErrEmptyFactSet = errors.New("document contains no facts")

// Extract parses an XBRL instance document and returns its facts keyed
// by local tag name. Only elements carrying a contextRef attribute
// qualify; anything else is structure, not data. When a tag repeats,
// the last occurrence wins.
func Extract(document []byte) (models.FactSet, error) {
	root, err := xmlquery.Parse(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse fact document: %w", err)
	}

	facts := models.FactSet{}
	for _, node := range xmlquery.Find(root, "//*[@contextRef]") {
		facts[node.Data] = models.Fact{
			Value:      node.InnerText(),
			UnitRef:    node.SelectAttr("unitRef"),
			ContextRef: node.SelectAttr("contextRef"),
			Decimals:   node.SelectAttr("decimals"),
		}
	}

	if len(facts) == 0 {
		return nil, ErrEmptyFactSet
	}

	return facts, nil
}
