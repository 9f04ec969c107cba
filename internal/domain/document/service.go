package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rhammad/visitflow/internal/domain/visit"
	"github.com/rhammad/visitflow/internal/repository"
	"github.com/google/uuid"
)

// SignedRootFolder is the well-known root for signed reports.
const SignedRootFolder = "Signed Reports"

// Service handles the report document lifecycle: draft generation and
// supersession by the signed version.
type Service struct {
	repo     Repository
	folders  FolderService
	visits   VisitLinker
	renderer Renderer
	logger   *slog.Logger
}

// NewService creates a new document service.
func NewService(repo Repository, folders FolderService, visits VisitLinker, renderer Renderer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		folders:  folders,
		visits:   visits,
		renderer: renderer,
		logger:   logger,
	}
}

// GenerateDraft renders and stores the draft report for a visit. No-op when
// the visit already has a linked document or has no folder. Render failures
// are logged and swallowed: a missing report must never block visit creation.
func (s *Service) GenerateDraft(ctx context.Context, v *visit.Visit) error {
	if v.ReportDocumentID != nil || v.FolderID == nil {
		return nil
	}
	if existing, err := s.repo.GetDraftByVisit(ctx, v.ID); err == nil {
		v.ReportDocumentID = &existing.ID
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("checking existing draft: %w", err)
	}

	payload, err := s.renderer.Render(ctx, v)
	if err != nil {
		s.logger.Warn("rendering report failed", "visit", v.ID, "reference", v.Reference, "error", err)
		return nil
	}

	doc := &Document{
		ID:        uuid.NewString(),
		Name:      DraftName(v.Reference),
		FolderID:  *v.FolderID,
		Data:      payload,
		VisitID:   &v.ID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return fmt.Errorf("storing draft document: %w", err)
	}
	if err := s.visits.SetReportDocument(ctx, v.ID, &doc.ID); err != nil {
		return fmt.Errorf("linking draft document: %w", err)
	}
	v.ReportDocumentID = &doc.ID

	return nil
}

// SupersedeWithSigned stores the signed report for a visit in the per-client
// subfolder under the signed-reports root and retires the draft. The signed
// document carries an explicit link to the draft it supersedes; the draft is
// deleted only after the signed row is durably stored. Calling again for a
// visit that already has a signed document returns it unchanged.
func (s *Service) SupersedeWithSigned(ctx context.Context, v *visit.Visit, payload []byte, signatureRequestID string) (*Document, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	if existing, err := s.repo.GetSignedByVisit(ctx, v.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking existing signed document: %w", err)
	}

	root, err := s.folders.GetOrCreateRoot(ctx, SignedRootFolder)
	if err != nil {
		return nil, fmt.Errorf("resolving signed-reports root: %w", err)
	}
	clientFolder, err := s.folders.GetOrCreateChild(ctx, root.ID, v.ClientName)
	if err != nil {
		return nil, fmt.Errorf("resolving client folder: %w", err)
	}

	var supersedes *string
	draft, err := s.repo.GetDraftByVisit(ctx, v.ID)
	switch {
	case err == nil:
		supersedes = &draft.ID
	case errors.Is(err, repository.ErrNotFound):
		// Nothing to retire; the visit may never have had a rendered draft.
	default:
		return nil, fmt.Errorf("locating draft: %w", err)
	}

	signed := &Document{
		ID:                 uuid.NewString(),
		Name:               SignedName(v.Reference),
		FolderID:           clientFolder.ID,
		Data:               payload,
		VisitID:            &v.ID,
		Signed:             true,
		SupersedesID:       supersedes,
		SignatureRequestID: &signatureRequestID,
		CreatedAt:          time.Now(),
	}
	if err := s.repo.Create(ctx, signed); err != nil {
		return nil, fmt.Errorf("storing signed document: %w", err)
	}
	if err := s.visits.SetReportDocument(ctx, v.ID, &signed.ID); err != nil {
		return nil, fmt.Errorf("linking signed document: %w", err)
	}
	v.ReportDocumentID = &signed.ID

	if draft != nil {
		if err := s.repo.Delete(ctx, draft.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("retiring draft failed", "visit", v.ID, "draft", draft.ID, "error", err)
		}
	}

	return signed, nil
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return doc, nil
}

// ListByFolder returns the documents stored directly in a folder.
func (s *Service) ListByFolder(ctx context.Context, folderID string) ([]Document, error) {
	return s.repo.ListByFolder(ctx, folderID)
}
