package signature

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rhammad/visitflow/internal/domain/visit"
	"github.com/rhammad/visitflow/internal/repository"
	"github.com/google/uuid"
)

// Service bridges the external signing workflow to the visit and document
// lifecycles.
type Service struct {
	repo      Repository
	visits    VisitSource
	documents DocumentService
	client    SigningClient
	logger    *slog.Logger
}

// NewService creates a new signature service.
func NewService(repo Repository, visits VisitSource, documents DocumentService, client SigningClient, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		visits:    visits,
		documents: documents,
		client:    client,
		logger:    logger,
	}
}

// Send creates a signature request for a visit's report and hands the
// attachment to the external integration. Validation failures abort before
// any side effect.
func (s *Service) Send(ctx context.Context, visitID, signerRole, signerEmail string) (*Request, error) {
	if strings.TrimSpace(signerEmail) == "" {
		return nil, ErrMissingSignerEmail
	}

	v, err := s.visits.Get(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if v.ReportDocumentID == nil {
		return nil, ErrNoReportDocument
	}
	doc, err := s.documents.Get(ctx, *v.ReportDocumentID)
	if err != nil {
		return nil, err
	}

	req := &Request{
		ID:          uuid.NewString(),
		VisitID:     v.ID,
		SignerRole:  signerRole,
		SignerEmail: signerEmail,
		Status:      StatusSent,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("creating signature request: %w", err)
	}

	if _, err := s.client.Send(ctx, SendRequest{
		RequestID:  req.ID,
		Attachment: doc.Data,
		Name:       doc.Name,
		Role:       signerRole,
		Contact:    signerEmail,
	}); err != nil {
		return nil, fmt.Errorf("sending signature request: %w", err)
	}

	s.logger.Info("signature request sent", "request", req.ID, "visit", v.ID, "signer", signerEmail)
	return req, nil
}

// Complete handles the external completion callback. The signed payload's
// presence is the completion signal; the status flag from the originating
// system is known to be unreliable and is never trusted on its own. The
// operation is idempotent and treats a missing target as a no-op.
func (s *Service) Complete(ctx context.Context, requestID string, payload []byte) error {
	if len(payload) == 0 {
		s.logger.Warn("completion callback without payload ignored", "request", requestID)
		return nil
	}

	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("completion for unknown signature request ignored", "request", requestID)
			return nil
		}
		return fmt.Errorf("loading signature request: %w", err)
	}

	v, err := s.visits.Get(ctx, req.VisitID)
	if err != nil {
		if errors.Is(err, visit.ErrVisitNotFound) {
			s.logger.Warn("completion for missing visit ignored", "request", requestID, "visit", req.VisitID)
			return nil
		}
		return fmt.Errorf("loading visit: %w", err)
	}

	signed, err := s.documents.SupersedeWithSigned(ctx, v, payload, req.ID)
	if err != nil {
		return fmt.Errorf("superseding draft: %w", err)
	}

	if v.State == visit.StatePending {
		if _, err := s.visits.MarkDone(ctx, v.ID); err != nil {
			return fmt.Errorf("marking visit done: %w", err)
		}
	}

	if req.Status != StatusCompleted {
		now := time.Now()
		req.Status = StatusCompleted
		req.SignedPayload = payload
		req.DocumentID = &signed.ID
		req.CompletedAt = &now
		if err := s.repo.Update(ctx, req); err != nil {
			return fmt.Errorf("updating signature request: %w", err)
		}
	}

	s.logger.Info("signature completed", "request", req.ID, "visit", v.ID, "document", signed.ID)
	return nil
}

// Get returns a signature request by ID.
func (s *Service) Get(ctx context.Context, id string) (*Request, error) {
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("getting signature request: %w", err)
	}
	return req, nil
}
