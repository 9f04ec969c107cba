package folder

import "context"

// Repository provides persistence for folders.
type Repository interface {
	Create(ctx context.Context, f *Folder) error
	Get(ctx context.Context, id string) (*Folder, error)
	GetOrCreateChild(ctx context.Context, parentID, name string) (*Folder, error)
	FindRootByName(ctx context.Context, name string) (*Folder, error)
	FindChildByPrefix(ctx context.Context, parentID, prefix string) (*Folder, error)
	Children(ctx context.Context, parentID string) ([]Folder, error)
	Delete(ctx context.Context, id string) error
	DocumentCount(ctx context.Context, id string) (int, error)
}
