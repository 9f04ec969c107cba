package folder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rhammad/visitflow/internal/repository"
	"github.com/google/uuid"
)

// Service handles folder tree operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new folder service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRoot creates a top-level folder with the given name.
func (s *Service) CreateRoot(ctx context.Context, name string) (*Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	f := &Folder{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("creating root folder: %w", err)
	}
	return f, nil
}

// GetOrCreateRoot returns the top-level folder with the given name,
// creating it if absent. Used for well-known roots like "Signed Reports".
func (s *Service) GetOrCreateRoot(ctx context.Context, name string) (*Folder, error) {
	f, err := s.repo.FindRootByName(ctx, name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up root folder: %w", err)
	}
	return s.CreateRoot(ctx, name)
}

// GetOrCreateChild looks up a child folder by exact name under the given
// parent, creating it if absent. Safe to call concurrently for the same
// (parent, name): the repository upserts under a unique constraint, so two
// racing calls converge on a single row.
func (s *Service) GetOrCreateChild(ctx context.Context, parentID, name string) (*Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	f, err := s.repo.GetOrCreateChild(ctx, parentID, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("get-or-create child folder: %w", err)
	}
	return f, nil
}

// Get returns a folder by ID.
func (s *Service) Get(ctx context.Context, id string) (*Folder, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("getting folder: %w", err)
	}
	return f, nil
}

// Children lists direct subfolders.
func (s *Service) Children(ctx context.Context, parentID string) ([]Folder, error) {
	return s.repo.Children(ctx, parentID)
}

// Delete removes a folder. Descendant folders and all documents in the
// subtree are removed by cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFolderNotFound
		}
		return fmt.Errorf("deleting folder: %w", err)
	}
	return nil
}

// DocumentCount returns the recursive document count over the subtree.
func (s *Service) DocumentCount(ctx context.Context, id string) (int, error) {
	count, err := s.repo.DocumentCount(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}
