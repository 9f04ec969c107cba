package contract

import (
	"context"
	"time"

	"github.com/rhammad/visitflow/internal/domain/folder"
)

// Repository provides persistence for contracts.
type Repository interface {
	Create(ctx context.Context, c *Contract) error
	Get(ctx context.Context, id string) (*Contract, error)
	Update(ctx context.Context, c *Contract) error
	ListByState(ctx context.Context, state State) ([]Contract, error)
	ListExpiring(ctx context.Context, after, before time.Time) ([]Contract, error)
}

// FolderService builds and resolves the contract's folder subtree.
type FolderService interface {
	CreateRoot(ctx context.Context, name string) (*folder.Folder, error)
	GetOrCreateChild(ctx context.Context, parentID, name string) (*folder.Folder, error)
}
