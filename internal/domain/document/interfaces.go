package document

import (
	"context"

	"github.com/rhammad/visitflow/internal/domain/folder"
	"github.com/rhammad/visitflow/internal/domain/visit"
)

// Repository provides persistence for documents.
type Repository interface {
	Create(ctx context.Context, d *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	GetDraftByVisit(ctx context.Context, visitID string) (*Document, error)
	GetSignedByVisit(ctx context.Context, visitID string) (*Document, error)
	ListByFolder(ctx context.Context, folderID string) ([]Document, error)
	Delete(ctx context.Context, id string) error
}

// FolderService resolves folders for stored documents.
type FolderService interface {
	GetOrCreateRoot(ctx context.Context, name string) (*folder.Folder, error)
	GetOrCreateChild(ctx context.Context, parentID, name string) (*folder.Folder, error)
}

// VisitLinker maintains the visit's current-report back-reference.
type VisitLinker interface {
	SetReportDocument(ctx context.Context, visitID string, documentID *string) error
}

// Renderer produces the report artifact for a visit. External collaborator;
// failures are treated as best-effort by the caller.
type Renderer interface {
	Render(ctx context.Context, v *visit.Visit) ([]byte, error)
}
