package signature

import "time"

// Status mirrors the originating system's request status. Completion is
// signaled by payload presence, never by this flag alone.
type Status string

const (
	StatusSent      Status = "sent"
	StatusCompleted Status = "completed"
)

// Request correlates an external signing request with exactly one visit.
type Request struct {
	ID            string     `json:"id"`
	VisitID       string     `json:"visit_id"`
	SignerRole    string     `json:"signer_role"`
	SignerEmail   string     `json:"signer_email"`
	Status        Status     `json:"status"`
	SignedPayload []byte     `json:"-"`
	DocumentID    *string    `json:"document_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
