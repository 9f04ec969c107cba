package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rhammad/visitflow/internal/domain/contract"
	"github.com/rhammad/visitflow/internal/domain/visit"
	"github.com/rhammad/visitflow/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestContract(t *testing.T, db *DB) *contract.Contract {
	t.Helper()

	c := &contract.Contract{
		ID:             uuid.NewString(),
		Name:           "Maintenance 2025",
		ClientID:       "client-1",
		ClientName:     "Acme Corp",
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		VisitsPerMonth: 2,
		State:          contract.StateInProgress,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, NewContractRepository(db).Create(context.Background(), c))
	return c
}

func newTestVisit(c *contract.Contract, seq int) *visit.Visit {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return &visit.Visit{
		ID:          uuid.NewString(),
		Reference:   fmt.Sprintf("%s - 2025/03 - %d", c.ClientName, seq),
		Seq:         seq,
		PeriodYear:  2025,
		PeriodMonth: 3,
		Kind:        visit.KindContracted,
		ContractID:  &c.ID,
		ClientID:    c.ClientID,
		ClientName:  c.ClientName,
		VisitDate:   date,
		State:       visit.StatePending,
		CreatedAt:   time.Now(),
	}
}

func TestVisitRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVisitRepository(db)
	ctx := context.Background()

	c := createTestContract(t, db)
	v := newTestVisit(c, 1)
	v.Engineer = "Jordan"
	v.EngineerSignature = []byte{0x89, 0x50, 0x4e, 0x47}

	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.Get(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, v.Reference, got.Reference)
	require.Equal(t, 1, got.Seq)
	require.Equal(t, visit.KindContracted, got.Kind)
	require.Equal(t, "Jordan", got.Engineer)
	require.Equal(t, v.EngineerSignature, got.EngineerSignature)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVisitRepository_DuplicateSeq(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVisitRepository(db)
	ctx := context.Background()

	c := createTestContract(t, db)
	require.NoError(t, repo.Create(ctx, newTestVisit(c, 1)))

	dup := newTestVisit(c, 1)
	dup.Reference = "Acme Corp - 2025/03 - 1 again"
	require.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)
}

func TestVisitRepository_UpdateKeepsNumbering(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVisitRepository(db)
	ctx := context.Background()

	c := createTestContract(t, db)
	v := newTestVisit(c, 1)
	require.NoError(t, repo.Create(ctx, v))

	v.State = visit.StateDone
	v.Reference = "tampered"
	v.Seq = 99
	require.NoError(t, repo.Update(ctx, v))

	got, err := repo.Get(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, visit.StateDone, got.State)
	require.Equal(t, "Acme Corp - 2025/03 - 1", got.Reference, "reference is immutable")
	require.Equal(t, 1, got.Seq, "seq is immutable")
}

func TestVisitRepository_MaxSeq(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVisitRepository(db)
	ctx := context.Background()

	c := createTestContract(t, db)

	max, err := repo.MaxSeq(ctx, c.ClientID, 2025, 3)
	require.NoError(t, err)
	require.Equal(t, 0, max, "empty scope yields zero")

	require.NoError(t, repo.Create(ctx, newTestVisit(c, 1)))
	require.NoError(t, repo.Create(ctx, newTestVisit(c, 2)))

	// An ad-hoc visit in the same month must not contribute to the
	// contracted scope.
	adHoc := newTestVisit(c, 9)
	adHoc.Kind = visit.KindAdHoc
	adHoc.ContractID = nil
	adHoc.Reference = "Acme Corp-VIS-009"
	require.NoError(t, repo.Create(ctx, adHoc))

	max, err = repo.MaxSeq(ctx, c.ClientID, 2025, 3)
	require.NoError(t, err)
	require.Equal(t, 2, max)

	max, err = repo.MaxSeq(ctx, c.ClientID, 2025, 4)
	require.NoError(t, err)
	require.Equal(t, 0, max, "other months are independent scopes")
}

func TestVisitRepository_CountByContractAndFolder(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVisitRepository(db)
	folderRepo := NewFolderRepository(db)
	ctx := context.Background()

	c := createTestContract(t, db)
	root := createTestFolder(t, folderRepo, "Acme Corp", nil)
	march := createTestFolder(t, folderRepo, "2025-03 (March)", &root.ID)
	april := createTestFolder(t, folderRepo, "2025-04 (April)", &root.ID)

	v := newTestVisit(c, 1)
	v.FolderID = &march.ID
	require.NoError(t, repo.Create(ctx, v))

	count, err := repo.CountByContractAndFolder(ctx, c.ID, march.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = repo.CountByContractAndFolder(ctx, c.ID, april.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestVisitRepository_ListByContract(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVisitRepository(db)
	ctx := context.Background()

	c := createTestContract(t, db)
	require.NoError(t, repo.Create(ctx, newTestVisit(c, 1)))
	require.NoError(t, repo.Create(ctx, newTestVisit(c, 2)))

	visits, err := repo.ListByContract(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	require.Equal(t, 1, visits[0].Seq)
	require.Equal(t, 2, visits[1].Seq)
}

func TestVisitRepository_SetReportDocument(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVisitRepository(db)
	ctx := context.Background()

	c := createTestContract(t, db)
	v := newTestVisit(c, 1)
	require.NoError(t, repo.Create(ctx, v))

	docID := "doc-1"
	require.NoError(t, repo.SetReportDocument(ctx, v.ID, &docID))

	got, err := repo.Get(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReportDocumentID)
	require.Equal(t, docID, *got.ReportDocumentID)

	require.ErrorIs(t, repo.SetReportDocument(ctx, "missing", &docID), repository.ErrNotFound)
}
