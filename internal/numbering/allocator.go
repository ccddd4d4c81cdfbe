package numbering

import "context"

// Allocation is a document number together with its sequence integer.
type Allocation struct {
	Number        string `json:"number"`
	Sequence      int64  `json:"sequence"`
	FinancialYear string `json:"financial_year"`
	Placeholder   bool   `json:"placeholder,omitempty"`
}

func newAllocation(scope Scope, seq int64) Allocation {
	return Allocation{
		Number:        scope.Render(seq),
		Sequence:      seq,
		FinancialYear: scope.FinancialYear,
	}
}

// Allocator owns the per-scope counters.
//
// Preview returns what the next Commit would hand out without changing any
// state. Commit advances the counter and reads it back as one atomic step, so
// concurrent callers always receive distinct consecutive sequences.
type Allocator interface {
	Preview(ctx context.Context, scope Scope) (Allocation, error)
	Commit(ctx context.Context, scope Scope) (Allocation, error)
}
