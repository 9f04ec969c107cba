package visit

import "time"

// State represents the workflow state of a visit.
type State string

const (
	StatePending   State = "pending"
	StateDone      State = "done"
	StateCancelled State = "cancelled"
)

// Kind distinguishes contracted visits from ad-hoc ones.
type Kind string

const (
	KindContracted Kind = "contracted"
	KindAdHoc      Kind = "ad_hoc"
)

// Visit is one scheduled or performed service engagement.
type Visit struct {
	ID                string    `json:"id"`
	Reference         string    `json:"reference"`
	Seq               int       `json:"seq"`
	PeriodYear        int       `json:"period_year"`
	PeriodMonth       int       `json:"period_month"`
	Kind              Kind      `json:"kind"`
	ContractID        *string   `json:"contract_id,omitempty"`
	ClientID          string    `json:"client_id"`
	ClientName        string    `json:"client_name"`
	FolderID          *string   `json:"folder_id,omitempty"`
	VisitDate         time.Time `json:"visit_date"`
	Engineer          string    `json:"engineer,omitempty"`
	Reason            string    `json:"reason,omitempty"`
	Description       string    `json:"description,omitempty"`
	EngineerSignature []byte    `json:"-"`
	ClientSignature   []byte    `json:"-"`
	IsExtra           bool      `json:"is_extra"`
	State             State     `json:"state"`
	ReportDocumentID  *string   `json:"report_document_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
