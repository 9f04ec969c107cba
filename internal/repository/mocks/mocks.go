// Package mocks provides testify mocks for the domain-facing repository and
// collaborator interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/rhammad/visitflow/internal/domain/contract"
	"github.com/rhammad/visitflow/internal/domain/document"
	"github.com/rhammad/visitflow/internal/domain/folder"
	"github.com/rhammad/visitflow/internal/domain/signature"
	"github.com/rhammad/visitflow/internal/domain/visit"
	"github.com/stretchr/testify/mock"
)

// VisitRepository is a mock for visit.Repository.
type VisitRepository struct {
	mock.Mock
}

func (m *VisitRepository) Create(ctx context.Context, v *visit.Visit) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VisitRepository) Get(ctx context.Context, id string) (*visit.Visit, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*visit.Visit); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VisitRepository) Update(ctx context.Context, v *visit.Visit) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VisitRepository) ListByContract(ctx context.Context, contractID string) ([]visit.Visit, error) {
	args := m.Called(ctx, contractID)
	if list, ok := args.Get(0).([]visit.Visit); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VisitRepository) CountByContractAndFolder(ctx context.Context, contractID, folderID string) (int, error) {
	args := m.Called(ctx, contractID, folderID)
	return args.Int(0), args.Error(1)
}

func (m *VisitRepository) MaxSeq(ctx context.Context, clientID string, year, month int) (int, error) {
	args := m.Called(ctx, clientID, year, month)
	return args.Int(0), args.Error(1)
}

func (m *VisitRepository) SetReportDocument(ctx context.Context, visitID string, documentID *string) error {
	args := m.Called(ctx, visitID, documentID)
	return args.Error(0)
}

// DocumentRepository is a mock for document.Repository.
type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Create(ctx context.Context, d *document.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DocumentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*document.Document); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) GetDraftByVisit(ctx context.Context, visitID string) (*document.Document, error) {
	args := m.Called(ctx, visitID)
	if d, ok := args.Get(0).(*document.Document); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) GetSignedByVisit(ctx context.Context, visitID string) (*document.Document, error) {
	args := m.Called(ctx, visitID)
	if d, ok := args.Get(0).(*document.Document); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) ListByFolder(ctx context.Context, folderID string) ([]document.Document, error) {
	args := m.Called(ctx, folderID)
	if list, ok := args.Get(0).([]document.Document); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SignatureRepository is a mock for signature.Repository.
type SignatureRepository struct {
	mock.Mock
}

func (m *SignatureRepository) Create(ctx context.Context, r *signature.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *SignatureRepository) Get(ctx context.Context, id string) (*signature.Request, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*signature.Request); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SignatureRepository) Update(ctx context.Context, r *signature.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Renderer is a mock for document.Renderer.
type Renderer struct {
	mock.Mock
}

func (m *Renderer) Render(ctx context.Context, v *visit.Visit) ([]byte, error) {
	args := m.Called(ctx, v)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

// SigningClient is a mock for signature.SigningClient.
type SigningClient struct {
	mock.Mock
}

func (m *SigningClient) Send(ctx context.Context, req signature.SendRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// FolderService is a mock for the folder lookup collaborators.
type FolderService struct {
	mock.Mock
}

func (m *FolderService) CreateRoot(ctx context.Context, name string) (*folder.Folder, error) {
	args := m.Called(ctx, name)
	if f, ok := args.Get(0).(*folder.Folder); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FolderService) GetOrCreateRoot(ctx context.Context, name string) (*folder.Folder, error) {
	args := m.Called(ctx, name)
	if f, ok := args.Get(0).(*folder.Folder); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FolderService) GetOrCreateChild(ctx context.Context, parentID, name string) (*folder.Folder, error) {
	args := m.Called(ctx, parentID, name)
	if f, ok := args.Get(0).(*folder.Folder); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FolderService) Get(ctx context.Context, id string) (*folder.Folder, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*folder.Folder); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

// VisitLinker is a mock for document.VisitLinker.
type VisitLinker struct {
	mock.Mock
}

func (m *VisitLinker) SetReportDocument(ctx context.Context, visitID string, documentID *string) error {
	args := m.Called(ctx, visitID, documentID)
	return args.Error(0)
}

// VisitSource is a mock for signature.VisitSource.
type VisitSource struct {
	mock.Mock
}

func (m *VisitSource) Get(ctx context.Context, id string) (*visit.Visit, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*visit.Visit); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VisitSource) MarkDone(ctx context.Context, id string) (*visit.Visit, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*visit.Visit); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// DocumentService is a mock for signature.DocumentService.
type DocumentService struct {
	mock.Mock
}

func (m *DocumentService) Get(ctx context.Context, id string) (*document.Document, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*document.Document); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentService) SupersedeWithSigned(ctx context.Context, v *visit.Visit, payload []byte, signatureRequestID string) (*document.Document, error) {
	args := m.Called(ctx, v, payload, signatureRequestID)
	if d, ok := args.Get(0).(*document.Document); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

// ContractRepository is a mock for contract.Repository.
type ContractRepository struct {
	mock.Mock
}

func (m *ContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*contract.Contract); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContractRepository) Update(ctx context.Context, c *contract.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContractRepository) ListByState(ctx context.Context, state contract.State) ([]contract.Contract, error) {
	args := m.Called(ctx, state)
	if list, ok := args.Get(0).([]contract.Contract); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContractRepository) ListExpiring(ctx context.Context, after, before time.Time) ([]contract.Contract, error) {
	args := m.Called(ctx, after, before)
	if list, ok := args.Get(0).([]contract.Contract); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// FolderRepository is a mock for folder.Repository.
type FolderRepository struct {
	mock.Mock
}

func (m *FolderRepository) Create(ctx context.Context, f *folder.Folder) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *FolderRepository) Get(ctx context.Context, id string) (*folder.Folder, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*folder.Folder); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FolderRepository) GetOrCreateChild(ctx context.Context, parentID, name string) (*folder.Folder, error) {
	args := m.Called(ctx, parentID, name)
	if f, ok := args.Get(0).(*folder.Folder); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FolderRepository) FindRootByName(ctx context.Context, name string) (*folder.Folder, error) {
	args := m.Called(ctx, name)
	if f, ok := args.Get(0).(*folder.Folder); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FolderRepository) FindChildByPrefix(ctx context.Context, parentID, prefix string) (*folder.Folder, error) {
	args := m.Called(ctx, parentID, prefix)
	if f, ok := args.Get(0).(*folder.Folder); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FolderRepository) Children(ctx context.Context, parentID string) ([]folder.Folder, error) {
	args := m.Called(ctx, parentID)
	if list, ok := args.Get(0).([]folder.Folder); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FolderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *FolderRepository) DocumentCount(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// SequenceRepository is a mock for visit.SequenceRepository.
type SequenceRepository struct {
	mock.Mock
}

func (m *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// MonthFolderFinder is a mock for visit.MonthFolderFinder.
type MonthFolderFinder struct {
	mock.Mock
}

func (m *MonthFolderFinder) FindChildByPrefix(ctx context.Context, parentID, prefix string) (*folder.Folder, error) {
	args := m.Called(ctx, parentID, prefix)
	if f, ok := args.Get(0).(*folder.Folder); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

// ContractSource is a mock for visit.ContractSource.
type ContractSource struct {
	mock.Mock
}

func (m *ContractSource) Get(ctx context.Context, id string) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*contract.Contract); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContractSource) ListActive(ctx context.Context) ([]contract.Contract, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]contract.Contract); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
