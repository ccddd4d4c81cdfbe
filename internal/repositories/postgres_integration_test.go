package repositories

import (
	"context"
	"testing"

	"ecsbilling/internal/numbering"
	"ecsbilling/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSequenceRepoConcurrentCommits(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewSequenceRepo(db.Pool)
	ctx := context.Background()
	scope := numbering.Scope{FinancialYear: "25-26", Prefix: "ECS"}

	const workers = 25
	sequences := make([]int64, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			alloc, err := repo.Commit(ctx, scope)
			sequences[i] = alloc.Sequence
			return err
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[int64]bool, workers)
	for _, seq := range sequences {
		assert.False(t, seen[seq], "sequence %d allocated twice", seq)
		seen[seq] = true
	}
	for seq := int64(1); seq <= workers; seq++ {
		assert.True(t, seen[seq], "sequence %d missing", seq)
	}

	preview, err := repo.Preview(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, int64(workers+1), preview.Sequence)
}

func TestInvoiceRepoRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewInvoiceRepo(db.Pool)
	ctx := context.Background()

	invoice := testhelpers.SampleInvoice("ECS/25-26/00001", 1)
	require.NoError(t, repo.Save(ctx, invoice))

	got, err := repo.GetByNumber(ctx, "ECS/25-26/00001")
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, got.ID)
	assert.True(t, got.GrandTotal.Equal(invoice.GrandTotal))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Nursing care", got.Items[0].Description)

	stats, err := repo.Stats(ctx, "25-26")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Count)

	require.NoError(t, repo.Delete(ctx, invoice.ID))
	_, err = repo.GetByID(ctx, invoice.ID)
	assert.Error(t, err)
}
