package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"ecsbilling/internal/numbering"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SequenceRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    SequenceRepository
	scope   numbering.Scope
	context context.Context
}

func (suite *SequenceRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewSequenceRepo(mock)
	suite.scope = numbering.Scope{FinancialYear: "25-26", Prefix: "ECS", Marker: "PO"}
	suite.context = context.Background()
}

func (suite *SequenceRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestSequenceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceRepoTestSuite))
}

func (suite *SequenceRepoTestSuite) TestPreview_NoRowYet() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(previewSequenceSQL)).
		WithArgs("25-26", "ECS", "PO").
		WillReturnError(pgx.ErrNoRows)

	alloc, err := suite.repo.Preview(suite.context, suite.scope)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), alloc.Sequence)
	assert.Equal(suite.T(), "ECS/PO/25-26/00001", alloc.Number)
}

func (suite *SequenceRepoTestSuite) TestPreview_ExistingRow() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(previewSequenceSQL)).
		WithArgs("25-26", "ECS", "PO").
		WillReturnRows(pgxmock.NewRows([]string{"last_sequence"}).AddRow(int64(41)))

	alloc, err := suite.repo.Preview(suite.context, suite.scope)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), alloc.Sequence)
	assert.Equal(suite.T(), "25-26", alloc.FinancialYear)
}

func (suite *SequenceRepoTestSuite) TestPreview_QueryFails() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(previewSequenceSQL)).
		WithArgs("25-26", "ECS", "PO").
		WillReturnError(errors.New("connection refused"))

	_, err := suite.repo.Preview(suite.context, suite.scope)
	assert.ErrorContains(suite.T(), err, "connection refused")
}

func (suite *SequenceRepoTestSuite) TestCommit_ReturnsIncrementedValue() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(commitSequenceSQL)).
		WithArgs("25-26", "ECS", "PO").
		WillReturnRows(pgxmock.NewRows([]string{"last_sequence"}).AddRow(int64(7)))

	alloc, err := suite.repo.Commit(suite.context, suite.scope)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ECS/PO/25-26/00007", alloc.Number)
	assert.False(suite.T(), alloc.Placeholder)
}

func (suite *SequenceRepoTestSuite) TestCommit_Fails() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(commitSequenceSQL)).
		WithArgs("25-26", "ECS", "PO").
		WillReturnError(errors.New("deadlock detected"))

	_, err := suite.repo.Commit(suite.context, suite.scope)
	assert.ErrorContains(suite.T(), err, "commit sequence")
}
