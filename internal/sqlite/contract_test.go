package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rhammad/visitflow/internal/domain/contract"
	"github.com/rhammad/visitflow/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestContractRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	c := &contract.Contract{
		ID:             uuid.NewString(),
		Name:           "Maintenance 2025",
		ClientID:       "client-1",
		ClientName:     "Acme Corp",
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		VisitsPerMonth: 3,
		Weekdays:       []time.Weekday{time.Monday, time.Thursday},
		State:          contract.StateDraft,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Maintenance 2025", got.Name)
	require.Equal(t, 3, got.VisitsPerMonth)
	require.Equal(t, []time.Weekday{time.Monday, time.Thursday}, got.Weekdays)
	require.Equal(t, contract.StateDraft, got.State)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestContractRepository_EmptyWeekdays(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	c := createTestContract(t, db)

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Nil(t, got.Weekdays, "no preference stored as empty set")
}

func TestContractRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	c := createTestContract(t, db)
	c.State = contract.StateDone
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, contract.StateDone, got.State)

	missing := *c
	missing.ID = "missing"
	require.ErrorIs(t, repo.Update(ctx, &missing), repository.ErrNotFound)
}

func TestContractRepository_ListByState(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	active := createTestContract(t, db)
	done := createTestContract(t, db)
	done.State = contract.StateDone
	require.NoError(t, repo.Update(ctx, done))

	list, err := repo.ListByState(ctx, contract.StateInProgress)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, active.ID, list[0].ID)
}

func TestContractRepository_ListExpiring(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	soon := createTestContract(t, db)
	soon.EndDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Update(ctx, soon))

	later := createTestContract(t, db)
	later.EndDate = time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Update(ctx, later))

	window := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	list, err := repo.ListExpiring(ctx, window, window.AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, soon.ID, list[0].ID)
}
