package repositories

import (
	"context"
	"errors"
	"fmt"

	"ecsbilling/internal/numbering"

	"github.com/jackc/pgx/v5"
)

const (
	previewSequenceSQL = `
		SELECT last_sequence
		FROM document_sequences
		WHERE financial_year = $1 AND prefix = $2 AND doc_marker = $3
	`

	commitSequenceSQL = `
		INSERT INTO document_sequences (financial_year, prefix, doc_marker, last_sequence, updated_at)
		VALUES ($1, $2, $3, 1, NOW())
		ON CONFLICT (financial_year, prefix, doc_marker)
		DO UPDATE SET
			last_sequence = document_sequences.last_sequence + 1,
			updated_at = NOW()
		RETURNING last_sequence
	`
)

// SequenceRepository is the Postgres implementation of numbering.Allocator.
// Each scope owns one row of document_sequences.
type SequenceRepository interface {
	numbering.Allocator
}

type sequenceRepo struct {
	db DBTX
}

func NewSequenceRepo(db DBTX) SequenceRepository {
	return &sequenceRepo{db: db}
}

func (r *sequenceRepo) Preview(ctx context.Context, scope numbering.Scope) (numbering.Allocation, error) {
	var last int64
	err := r.db.QueryRow(ctx, previewSequenceSQL, scope.FinancialYear, scope.Prefix, scope.Marker).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return numbering.Allocation{}, fmt.Errorf("read sequence %s: %w", scope, err)
	}
	return allocation(scope, last+1), nil
}

// Commit increments and reads the counter in a single statement, so
// concurrent commits serialise on the row lock.
func (r *sequenceRepo) Commit(ctx context.Context, scope numbering.Scope) (numbering.Allocation, error) {
	var seq int64
	err := r.db.QueryRow(ctx, commitSequenceSQL, scope.FinancialYear, scope.Prefix, scope.Marker).Scan(&seq)
	if err != nil {
		return numbering.Allocation{}, fmt.Errorf("commit sequence %s: %w", scope, err)
	}
	return allocation(scope, seq), nil
}

func allocation(scope numbering.Scope, seq int64) numbering.Allocation {
	return numbering.Allocation{
		Number:        scope.Render(seq),
		Sequence:      seq,
		FinancialYear: scope.FinancialYear,
	}
}
