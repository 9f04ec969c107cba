package signature

import (
	"context"

	"github.com/rhammad/visitflow/internal/domain/document"
	"github.com/rhammad/visitflow/internal/domain/visit"
)

// Repository provides persistence for signature requests.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	Update(ctx context.Context, r *Request) error
}

// VisitSource resolves and transitions the linked visit.
type VisitSource interface {
	Get(ctx context.Context, id string) (*visit.Visit, error)
	MarkDone(ctx context.Context, id string) (*visit.Visit, error)
}

// DocumentService supersedes the visit's draft with the signed artifact and
// resolves the document under signature.
type DocumentService interface {
	Get(ctx context.Context, id string) (*document.Document, error)
	SupersedeWithSigned(ctx context.Context, v *visit.Visit, payload []byte, signatureRequestID string) (*document.Document, error)
}

// SendRequest is the payload handed to the external signing integration.
type SendRequest struct {
	RequestID  string
	Attachment []byte
	Name       string
	Role       string
	Contact    string
}

// SigningClient is the single stable interface to the external e-signature
// integration, pinned at build time.
type SigningClient interface {
	Send(ctx context.Context, req SendRequest) (ack string, err error)
}
