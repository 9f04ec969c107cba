package visit

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

// AdHocRootFolder is the well-known root for visits without a contract.
const AdHocRootFolder = "Non-Contracted Visits"

// Service handles visit lifecycle operations.
type Service struct {
	repo       Repository
	contracts  ContractSource
	folders    FolderService
	contracted Numbering
	adHoc      Numbering
	reports    ReportGenerator
	clock      Clock
	logger     *slog.Logger
}

// NewService creates a new visit service. Contracted visits are numbered by
// the recount-per-month strategy, ad-hoc visits by the counter strategy.
func NewService(
	repo Repository,
	contracts ContractSource,
	folders FolderService,
	sequences SequenceRepository,
	clock Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		contracts:  contracts,
		folders:    folders,
		contracted: NewMonthlyRecount(repo),
		adHoc:      NewScopedCounter(sequences, "VIS"),
		clock:      clock,
		logger:     logger,
	}
}

// SetReportGenerator wires the draft-report generator. Wired after
// construction because the document service depends on visit types.
func (s *Service) SetReportGenerator(reports ReportGenerator) {
	s.reports = reports
}

// CreateRequest defines visit creation inputs.
type CreateRequest struct {
	Kind        Kind
	ContractID  *string
	ClientID    string
	ClientName  string
	FolderID    *string
	VisitDate   time.Time
	Engineer    string
	Reason      string
	Description string
	IsExtra     bool
}

// Create creates a visit: numbering is assigned atomically at creation and
// never changes, then draft generation is attempted. Generation is defensive
// (no-op without a folder, no-op when a document already exists) and its
// failure never fails the creation.
func (s *Service) Create(ctx context.Context, req CreateRequest, batch *Batch) (*Visit, error) {
	if strings.TrimSpace(req.ClientID) == "" {
		return nil, ErrInvalidInput
	}
	if req.Kind == KindContracted && req.ContractID == nil {
		return nil, ErrInvalidInput
	}
	if batch == nil {
		batch = NewBatch()
	}

	date := req.VisitDate
	if date.IsZero() {
		date = s.clock.Now()
	}

	v := &Visit{
		ID:          uuid.NewString(),
		Kind:        req.Kind,
		ContractID:  req.ContractID,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		FolderID:    req.FolderID,
		VisitDate:   date,
		PeriodYear:  date.Year(),
		PeriodMonth: int(date.Month()),
		Engineer:    req.Engineer,
		Reason:      req.Reason,
		Description: req.Description,
		IsExtra:     req.IsExtra,
		State:       StatePending,
		CreatedAt:   time.Now(),
	}

	numbering := s.contracted
	if req.Kind == KindAdHoc {
		numbering = s.adHoc
	}
	seq, ref, err := numbering.Next(ctx, batch, v)
	if err != nil {
		return nil, fmt.Errorf("numbering visit: %w", err)
	}
	v.Seq = seq
	v.Reference = ref

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("creating visit: %w", err)
	}

	s.generateReport(ctx, v)
	return v, nil
}

// CreateAdHoc creates a visit for a client without a contract. The month
// folder under the non-contracted root is created lazily.
func (s *Service) CreateAdHoc(ctx context.Context, req CreateRequest) (*Visit, error) {
	req.Kind = KindAdHoc
	req.ContractID = nil

	if req.FolderID == nil {
		date := req.VisitDate
		if date.IsZero() {
			date = s.clock.Now()
		}
		root, err := s.folders.GetOrCreateRoot(ctx, AdHocRootFolder)
		if err != nil {
			return nil, fmt.Errorf("resolving ad-hoc root folder: %w", err)
		}
		month, err := s.folders.GetOrCreateChild(ctx, root.ID, folder.MonthFolderName(date))
		if err != nil {
			return nil, fmt.Errorf("resolving ad-hoc month folder: %w", err)
		}
		req.FolderID = &month.ID
	}

	return s.Create(ctx, req, nil)
}

// CreateExtraVisits creates n extra visits for a contract in the given month
// folder. The count is validated before any side effect occurs.
func (s *Service) CreateExtraVisits(ctx context.Context, contractID, monthFolderID string, n int, reason string) ([]Visit, error) {
	if n <= 0 {
		return nil, ErrInvalidVisitCount
	}

	c, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if _, err := s.folders.Get(ctx, monthFolderID); err != nil {
		return nil, err
	}

	batch := NewBatch()
	visits := make([]Visit, 0, n)
	for i := 0; i < n; i++ {
		v, err := s.Create(ctx, CreateRequest{
			Kind:       KindContracted,
			ContractID: &c.ID,
			ClientID:   c.ClientID,
			ClientName: c.ClientName,
			FolderID:   &monthFolderID,
			VisitDate:  s.clock.Now(),
			Reason:     reason,
			IsExtra:    true,
		}, batch)
		if err != nil {
			return visits, err
		}
		visits = append(visits, *v)
	}
	return visits, nil
}

// Get returns a visit by ID.
func (s *Service) Get(ctx context.Context, id string) (*Visit, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("getting visit: %w", err)
	}
	return v, nil
}

// MarkDone transitions a visit to done.
func (s *Service) MarkDone(ctx context.Context, id string) (*Visit, error) {
	return s.transition(ctx, id, StateDone)
}

// Cancel transitions a visit to cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*Visit, error) {
	return s.transition(ctx, id, StateCancelled)
}

func (s *Service) transition(ctx context.Context, id string, to State) (*Visit, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.State == to {
		return v, nil
	}

	v.State = to
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("updating visit: %w", err)
	}
	return v, nil
}

// ListByContract returns all visits of a contract.
func (s *Service) ListByContract(ctx context.Context, contractID string) ([]Visit, error) {
	return s.repo.ListByContract(ctx, contractID)
}

func (s *Service) generateReport(ctx context.Context, v *Visit) {
	if s.reports == nil {
		return
	}
	if err := s.reports.GenerateDraft(ctx, v); err != nil {
		s.logger.Warn("report generation failed", "visit", v.ID, "reference", v.Reference, "error", err)
	}
}
