package visit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rhammad/visitflow/internal/domain/contract"
	"github.com/rhammad/visitflow/internal/domain/folder"
	"github.com/rhammad/visitflow/internal/domain/visit"
	"github.com/rhammad/visitflow/internal/repository"
	"github.com/rhammad/visitflow/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(t time.Time) visit.Clock {
	return visit.ClockFunc(func() time.Time { return t })
}

func activeContract() *contract.Contract {
	folderID := "folder-root"
	return &contract.Contract{
		ID:             "contract-1",
		Name:           "Maintenance 2025",
		ClientID:       "client-1",
		ClientName:     "Acme Corp",
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		VisitsPerMonth: 2,
		State:          contract.StateInProgress,
		FolderID:       &folderID,
	}
}

// schedulerFixture wires a scheduler over a real visit service and mocked
// storage, collecting every created visit.
type schedulerFixture struct {
	contracts *mocks.ContractSource
	finder    *mocks.MonthFolderFinder
	repo      *mocks.VisitRepository
	scheduler *visit.Scheduler
	created   *[]visit.Visit
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()

	repo := &mocks.VisitRepository{}
	contracts := &mocks.ContractSource{}
	finder := &mocks.MonthFolderFinder{}

	var created []visit.Visit
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = append(created, *args.Get(1).(*visit.Visit))
	}).Return(nil).Maybe()

	svc := visit.NewService(repo, contracts, &mocks.FolderService{}, &mocks.SequenceRepository{},
		fixedClock(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)), testLogger())
	scheduler := visit.NewScheduler(contracts, finder, svc, testLogger())

	return &schedulerFixture{
		contracts: contracts,
		finder:    finder,
		repo:      repo,
		scheduler: scheduler,
		created:   &created,
	}
}

func TestScheduler_GeneratesQuotaForPeriod(t *testing.T) {
	ctx := context.Background()
	fx := newSchedulerFixture(t)
	c := activeContract()
	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	fx.contracts.On("ListActive", ctx).Return([]contract.Contract{*c}, nil)
	fx.finder.On("FindChildByPrefix", ctx, *c.FolderID, "2025-03").
		Return(&folder.Folder{ID: "folder-march", Name: "2025-03 (March)"}, nil)
	fx.repo.On("CountByContractAndFolder", ctx, c.ID, "folder-march").Return(0, nil)
	fx.repo.On("MaxSeq", ctx, c.ClientID, 2025, 3).Return(0, nil).Once()

	total, err := fx.scheduler.GenerateForPeriod(ctx, period)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	created := *fx.created
	require.Len(t, created, 2)
	require.Equal(t, "Acme Corp - 2025/03 - 1", created[0].Reference)
	require.Equal(t, "Acme Corp - 2025/03 - 2", created[1].Reference)
	for _, v := range created {
		require.Equal(t, visit.KindContracted, v.Kind)
		require.Equal(t, "folder-march", *v.FolderID)
		require.Equal(t, period, v.VisitDate, "no weekday preference lands on the period start")
		require.Equal(t, visit.StatePending, v.State)
	}
}

func TestScheduler_WeekdayPreferenceRoundRobin(t *testing.T) {
	ctx := context.Background()
	fx := newSchedulerFixture(t)
	c := activeContract()
	c.VisitsPerMonth = 3
	c.Weekdays = []time.Weekday{time.Tuesday}
	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	fx.contracts.On("Get", ctx, c.ID).Return(c, nil)
	fx.finder.On("FindChildByPrefix", ctx, *c.FolderID, "2025-03").
		Return(&folder.Folder{ID: "folder-march"}, nil)
	fx.repo.On("CountByContractAndFolder", ctx, c.ID, "folder-march").Return(0, nil)
	fx.repo.On("MaxSeq", ctx, c.ClientID, 2025, 3).Return(0, nil).Once()

	total, err := fx.scheduler.GenerateForContract(ctx, c.ID, period)
	require.NoError(t, err)
	require.Equal(t, 3, total)

	// March 2025 Tuesdays are the 4th, 11th, 18th and 25th; the quota of
	// three takes the first three in ascending order.
	created := *fx.created
	require.Len(t, created, 3)
	require.Equal(t, 4, created[0].VisitDate.Day())
	require.Equal(t, 11, created[1].VisitDate.Day())
	require.Equal(t, 18, created[2].VisitDate.Day())
}

func TestScheduler_TwoWeekdayPreference(t *testing.T) {
	ctx := context.Background()
	fx := newSchedulerFixture(t)
	c := activeContract()
	c.VisitsPerMonth = 5
	c.Weekdays = []time.Weekday{time.Monday, time.Wednesday}
	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	fx.contracts.On("Get", ctx, c.ID).Return(c, nil)
	fx.finder.On("FindChildByPrefix", ctx, *c.FolderID, "2025-03").
		Return(&folder.Folder{ID: "folder-march"}, nil)
	fx.repo.On("CountByContractAndFolder", ctx, c.ID, "folder-march").Return(0, nil)
	fx.repo.On("MaxSeq", ctx, c.ClientID, 2025, 3).Return(0, nil).Once()

	total, err := fx.scheduler.GenerateForContract(ctx, c.ID, period)
	require.NoError(t, err)
	require.Equal(t, 5, total)

	// March 2025 Mondays and Wednesdays start 3, 5, 10, 12, 17; the quota
	// of five never exhausts the nine matching days, so nothing repeats.
	days := make([]int, 0, 5)
	for _, v := range *fx.created {
		days = append(days, v.VisitDate.Day())
		require.Contains(t, []time.Weekday{time.Monday, time.Wednesday}, v.VisitDate.Weekday())
	}
	require.Equal(t, []int{3, 5, 10, 12, 17}, days)
}

func TestScheduler_QuotaBeyondMatchingDaysWrapsAround(t *testing.T) {
	ctx := context.Background()
	fx := newSchedulerFixture(t)
	c := activeContract()
	c.VisitsPerMonth = 5
	c.Weekdays = []time.Weekday{time.Friday}
	period := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	fx.contracts.On("Get", ctx, c.ID).Return(c, nil)
	fx.finder.On("FindChildByPrefix", ctx, *c.FolderID, "2025-02").
		Return(&folder.Folder{ID: "folder-feb"}, nil)
	fx.repo.On("CountByContractAndFolder", ctx, c.ID, "folder-feb").Return(0, nil)
	fx.repo.On("MaxSeq", ctx, c.ClientID, 2025, 2).Return(0, nil).Once()

	total, err := fx.scheduler.GenerateForContract(ctx, c.ID, period)
	require.NoError(t, err)
	require.Equal(t, 5, total)

	// February 2025 has four Fridays (7, 14, 21, 28); the fifth visit
	// wraps around to the first Friday again.
	days := make([]int, 0, 5)
	for _, v := range *fx.created {
		days = append(days, v.VisitDate.Day())
	}
	require.Equal(t, []int{7, 7, 14, 21, 28}, days)
}

func TestScheduler_SkipsAlreadyGeneratedPeriod(t *testing.T) {
	ctx := context.Background()
	fx := newSchedulerFixture(t)
	c := activeContract()
	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	fx.contracts.On("Get", ctx, c.ID).Return(c, nil)
	fx.finder.On("FindChildByPrefix", ctx, *c.FolderID, "2025-03").
		Return(&folder.Folder{ID: "folder-march"}, nil)
	fx.repo.On("CountByContractAndFolder", ctx, c.ID, "folder-march").Return(2, nil)

	total, err := fx.scheduler.GenerateForContract(ctx, c.ID, period)
	require.NoError(t, err)
	require.Equal(t, 0, total)
	require.Empty(t, *fx.created)
}

func TestScheduler_SkipsContractsOutsideScope(t *testing.T) {
	ctx := context.Background()
	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	draft := activeContract()
	draft.ID = "draft"
	draft.State = contract.StateDraft

	unlinked := activeContract()
	unlinked.ID = "unlinked"
	unlinked.FolderID = nil

	fx := newSchedulerFixture(t)
	fx.contracts.On("ListActive", ctx).Return([]contract.Contract{*draft, *unlinked}, nil)

	total, err := fx.scheduler.GenerateForPeriod(ctx, period)
	require.NoError(t, err)
	require.Equal(t, 0, total)
	fx.finder.AssertNotCalled(t, "FindChildByPrefix", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_MissingMonthFolderIsNoop(t *testing.T) {
	ctx := context.Background()
	fx := newSchedulerFixture(t)
	c := activeContract()
	period := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	fx.contracts.On("Get", ctx, c.ID).Return(c, nil)
	fx.finder.On("FindChildByPrefix", ctx, *c.FolderID, "2026-01").
		Return((*folder.Folder)(nil), repository.ErrNotFound)

	total, err := fx.scheduler.GenerateForContract(ctx, c.ID, period)
	require.NoError(t, err)
	require.Equal(t, 0, total)
}

func TestScheduler_BatchContinuesPastFailingContract(t *testing.T) {
	ctx := context.Background()
	fx := newSchedulerFixture(t)
	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	broken := activeContract()
	broken.ID = "broken"
	brokenFolder := "folder-broken"
	broken.FolderID = &brokenFolder

	healthy := activeContract()

	fx.contracts.On("ListActive", ctx).Return([]contract.Contract{*broken, *healthy}, nil)
	fx.finder.On("FindChildByPrefix", ctx, brokenFolder, "2025-03").
		Return((*folder.Folder)(nil), errors.New("disk on fire"))
	fx.finder.On("FindChildByPrefix", ctx, *healthy.FolderID, "2025-03").
		Return(&folder.Folder{ID: "folder-march"}, nil)
	fx.repo.On("CountByContractAndFolder", ctx, healthy.ID, "folder-march").Return(0, nil)
	fx.repo.On("MaxSeq", ctx, healthy.ClientID, 2025, 3).Return(0, nil).Once()

	total, err := fx.scheduler.GenerateForPeriod(ctx, period)
	require.NoError(t, err)
	require.Equal(t, 2, total, "healthy contract still generates")
}
