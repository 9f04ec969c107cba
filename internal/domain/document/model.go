package document

import "time"

// Document is a stored generated artifact: a draft report or its signed
// counterpart.
type Document struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	FolderID           string    `json:"folder_id"`
	Data               []byte    `json:"-"`
	VisitID            *string   `json:"visit_id,omitempty"`
	Signed             bool      `json:"signed"`
	SupersedesID       *string   `json:"supersedes_id,omitempty"`
	SignatureRequestID *string   `json:"signature_request_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// DraftName is the deterministic draft report name for a visit reference.
func DraftName(reference string) string {
	return "Visit Report - " + reference + ".pdf"
}

// SignedName is the deterministic signed report name for a visit reference.
func SignedName(reference string) string {
	return "Signed - " + DraftName(reference)
}
