package numbering

import (
	"fmt"
	"strings"
)

// Scope identifies one independent sequence: a prefix, an optional document
// type marker and a financial year.
type Scope struct {
	FinancialYear string
	Prefix        string
	Marker        string
}

// Render assembles the document number for sequence seq in this scope.
func (s Scope) Render(seq int64) string {
	parts := []string{s.Prefix}
	if s.Marker != "" {
		parts = append(parts, s.Marker)
	}
	parts = append(parts, s.FinancialYear, fmt.Sprintf("%05d", seq))
	return strings.Join(parts, "/")
}

// Key is a stable identifier for the scope, usable as a map or cache key.
func (s Scope) Key() string {
	return s.Prefix + ":" + s.Marker + ":" + s.FinancialYear
}

func (s Scope) String() string {
	if s.Marker == "" {
		return s.Prefix + "/" + s.FinancialYear
	}
	return s.Prefix + "/" + s.Marker + "/" + s.FinancialYear
}
