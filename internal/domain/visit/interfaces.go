package visit

import (
	"context"
	"time"

	"github.com/rhammad/visitflow/internal/domain/contract"
	"github.com/rhammad/visitflow/internal/domain/folder"
)

// Repository provides persistence for visits.
type Repository interface {
	Create(ctx context.Context, v *Visit) error
	Get(ctx context.Context, id string) (*Visit, error)
	Update(ctx context.Context, v *Visit) error
	ListByContract(ctx context.Context, contractID string) ([]Visit, error)
	CountByContractAndFolder(ctx context.Context, contractID, folderID string) (int, error)
	MaxSeq(ctx context.Context, clientID string, year, month int) (int, error)
	SetReportDocument(ctx context.Context, visitID string, documentID *string) error
}

// SequenceRepository hands out the next value of a named counter.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

// ContractSource resolves contracts for scheduling and extra-visit creation.
type ContractSource interface {
	Get(ctx context.Context, id string) (*contract.Contract, error)
	ListActive(ctx context.Context) ([]contract.Contract, error)
}

// FolderService resolves and creates folders for visit documents.
type FolderService interface {
	GetOrCreateRoot(ctx context.Context, name string) (*folder.Folder, error)
	GetOrCreateChild(ctx context.Context, parentID, name string) (*folder.Folder, error)
	Get(ctx context.Context, id string) (*folder.Folder, error)
}

// MonthFolderFinder locates the month subfolder for a period under a
// contract's root folder.
type MonthFolderFinder interface {
	FindChildByPrefix(ctx context.Context, parentID, prefix string) (*folder.Folder, error)
}

// ReportGenerator produces the draft report document for a visit.
// Implementations are best-effort: a failed render must not surface as an
// error from visit creation.
type ReportGenerator interface {
	GenerateDraft(ctx context.Context, v *Visit) error
}

// Clock abstracts "today" so scheduling is testable.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }
