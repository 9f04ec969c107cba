package visit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/rhammad/visitflow/internal/domain/contract"
	"github.com/rhammad/visitflow/internal/domain/folder"
	"github.com/rhammad/visitflow/internal/repository"
)

// Scheduler generates the periodic visit batch for active contracts.
// Generation is idempotent per (contract, month): the presence of any visit
// in the month folder is treated as proof the period was already generated.
type Scheduler struct {
	contracts ContractSource
	folders   MonthFolderFinder
	visits    *Service
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewScheduler creates a visit scheduler.
func NewScheduler(contracts ContractSource, folders MonthFolderFinder, visits *Service, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		contracts: contracts,
		folders:   folders,
		visits:    visits,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// GenerateForPeriod runs monthly generation for every in-progress contract.
// Per-contract failures are logged and skipped so one broken contract never
// blocks the rest of the batch. Returns the total number of visits created.
func (s *Scheduler) GenerateForPeriod(ctx context.Context, periodStart time.Time) (int, error) {
	contracts, err := s.contracts.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing active contracts: %w", err)
	}

	total := 0
	for i := range contracts {
		created, err := s.generateForContract(ctx, &contracts[i], periodStart)
		if err != nil {
			s.logger.Error("monthly generation failed for contract",
				"contract", contracts[i].ID, "error", err)
			continue
		}
		total += created
	}
	return total, nil
}

// GenerateForContract runs the same procedure scoped to one contract, for
// on-demand triggering. A zero return means the period was already generated.
func (s *Scheduler) GenerateForContract(ctx context.Context, contractID string, periodStart time.Time) (int, error) {
	c, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return 0, err
	}
	return s.generateForContract(ctx, c, periodStart)
}

func (s *Scheduler) generateForContract(ctx context.Context, c *contract.Contract, periodStart time.Time) (int, error) {
	if c.State != contract.StateInProgress || c.FolderID == nil {
		return 0, nil
	}

	// Serialize runs per contract so two concurrent triggers cannot both
	// pass the already-generated check.
	lock := s.contractLock(c.ID)
	lock.Lock()
	defer lock.Unlock()

	monthFolder, err := s.folders.FindChildByPrefix(ctx, *c.FolderID, folder.MonthFolderPrefix(periodStart))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The month folder is built at activation time; a missing one
			// means the period is outside the contract window.
			return 0, nil
		}
		return 0, fmt.Errorf("locating month folder: %w", err)
	}

	existing, err := s.visits.repo.CountByContractAndFolder(ctx, c.ID, monthFolder.ID)
	if err != nil {
		return 0, fmt.Errorf("counting existing visits: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	dates := targetDates(c, periodStart)
	batch := NewBatch()
	created := 0
	for _, date := range dates {
		_, err := s.visits.Create(ctx, CreateRequest{
			Kind:       KindContracted,
			ContractID: &c.ID,
			ClientID:   c.ClientID,
			ClientName: c.ClientName,
			FolderID:   &monthFolder.ID,
			VisitDate:  date,
		}, batch)
		if err != nil {
			return created, fmt.Errorf("creating visit for %s: %w", date.Format("2006-01-02"), err)
		}
		created++
	}

	s.logger.Info("generated monthly visits",
		"contract", c.ID, "month", folder.MonthFolderPrefix(periodStart), "count", created)
	return created, nil
}

// targetDates computes the visit dates for a contract's period. Without a
// weekday preference every visit lands on the period start. With one, the
// matching days of the month are cycled round-robin until the quota is met,
// then sorted ascending.
func targetDates(c *contract.Contract, periodStart time.Time) []time.Time {
	quota := c.VisitsPerMonth

	if len(c.Weekdays) == 0 {
		dates := make([]time.Time, quota)
		for i := range dates {
			dates[i] = periodStart
		}
		return dates
	}

	matching := matchingDays(c, periodStart)
	if len(matching) == 0 {
		dates := make([]time.Time, quota)
		for i := range dates {
			dates[i] = periodStart
		}
		return dates
	}

	dates := make([]time.Time, quota)
	for i := 0; i < quota; i++ {
		dates[i] = matching[i%len(matching)]
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// matchingDays enumerates every day of the period's month whose weekday is
// in the contract's preference set, ascending.
func matchingDays(c *contract.Contract, periodStart time.Time) []time.Time {
	first := time.Date(periodStart.Year(), periodStart.Month(), 1, 0, 0, 0, 0, periodStart.Location())

	var days []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if c.PrefersWeekday(d.Weekday()) {
			days = append(days, d)
		}
	}
	return days
}

func (s *Scheduler) contractLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}
