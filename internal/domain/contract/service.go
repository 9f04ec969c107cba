package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rhammad/visitflow/internal/domain/folder"
	"github.com/rhammad/visitflow/internal/repository"
	"github.com/google/uuid"
)

// Service handles contract lifecycle operations.
type Service struct {
	repo    Repository
	folders FolderService
	logger  *slog.Logger
}

// NewService creates a new contract service.
func NewService(repo Repository, folders FolderService, logger *slog.Logger) *Service {
	return &Service{repo: repo, folders: folders, logger: logger}
}

// CreateRequest defines contract creation inputs.
type CreateRequest struct {
	Name           string
	ClientID       string
	ClientName     string
	StartDate      time.Time
	EndDate        time.Time
	VisitsPerMonth int
	Weekdays       []time.Weekday
}

// Create creates a new contract in draft state.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Contract, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.ClientID) == "" {
		return nil, ErrInvalidInput
	}
	if req.VisitsPerMonth <= 0 {
		return nil, ErrInvalidInput
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, ErrInvalidInput
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidWindow
	}

	c := &Contract{
		ID:             uuid.NewString(),
		Name:           req.Name,
		ClientID:       req.ClientID,
		ClientName:     req.ClientName,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		VisitsPerMonth: req.VisitsPerMonth,
		Weekdays:       req.Weekdays,
		State:          StateDraft,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contract: %w", err)
	}
	return c, nil
}

// Activate starts a draft contract: it builds the folder skeleton (one root
// named after the client plus one child per covered calendar month) and
// transitions the contract to in_progress. Folder creation is skipped when a
// folder is already linked, so a retried activation never duplicates the
// subtree.
func (s *Service) Activate(ctx context.Context, id string) (*Contract, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.State != StateDraft {
		return nil, ErrNotDraft
	}

	if c.FolderID == nil {
		root, err := s.folders.CreateRoot(ctx, c.ClientName)
		if err != nil {
			return nil, fmt.Errorf("creating contract folder: %w", err)
		}
		for _, month := range c.MonthsCovered() {
			name := folder.MonthFolderName(month)
			if _, err := s.folders.GetOrCreateChild(ctx, root.ID, name); err != nil {
				return nil, fmt.Errorf("creating month folder %q: %w", name, err)
			}
		}
		c.FolderID = &root.ID
	}

	c.State = StateInProgress
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating contract: %w", err)
	}

	s.logger.Info("contract activated", "contract", c.ID, "client", c.ClientID)
	return c, nil
}

// Get returns a contract by ID.
func (s *Service) Get(ctx context.Context, id string) (*Contract, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("getting contract: %w", err)
	}
	return c, nil
}

// ListActive returns all in-progress contracts.
func (s *Service) ListActive(ctx context.Context) ([]Contract, error) {
	return s.repo.ListByState(ctx, StateInProgress)
}

// ExpireDue runs the daily expiry pass: in-progress contracts whose end date
// has passed are moved to done, and contracts ending within the reminder
// window are logged so the action layer can surface them. Safe to re-run.
func (s *Service) ExpireDue(ctx context.Context, today time.Time, reminderWindow time.Duration) (int, error) {
	active, err := s.repo.ListByState(ctx, StateInProgress)
	if err != nil {
		return 0, fmt.Errorf("listing active contracts: %w", err)
	}

	expired := 0
	for i := range active {
		c := &active[i]
		if c.EndDate.Before(today) {
			c.State = StateDone
			if err := s.repo.Update(ctx, c); err != nil {
				return expired, fmt.Errorf("expiring contract %s: %w", c.ID, err)
			}
			s.logger.Info("contract expired", "contract", c.ID, "client", c.ClientID, "end_date", c.EndDate)
			expired++
		}
	}

	expiring, err := s.repo.ListExpiring(ctx, today, today.Add(reminderWindow))
	if err != nil {
		return expired, fmt.Errorf("listing expiring contracts: %w", err)
	}
	for _, c := range expiring {
		s.logger.Warn("contract expiring soon", "contract", c.ID, "client", c.ClientID, "end_date", c.EndDate)
	}

	return expired, nil
}
