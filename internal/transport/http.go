// Package transport exposes the user-facing action layer over HTTP. The
// handlers are thin: they decode inputs, call the domain services and map
// sentinel errors to status codes.
package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rhammad/visitflow/internal/domain/contract"
	"github.com/rhammad/visitflow/internal/domain/document"
	"github.com/rhammad/visitflow/internal/domain/folder"
	"github.com/rhammad/visitflow/internal/domain/signature"
	"github.com/rhammad/visitflow/internal/domain/visit"
	"github.com/go-chi/chi/v5"
)

// Services bundles the domain services the transport dispatches to.
type Services struct {
	Contracts  *contract.Service
	Folders    *folder.Service
	Visits     *visit.Service
	Scheduler  *visit.Scheduler
	Documents  *document.Service
	Signatures *signature.Service
}

// Server wires HTTP handlers.
type Server struct {
	services Services
	logger   *slog.Logger
}

// NewRouter creates the HTTP router.
func NewRouter(services Services, logger *slog.Logger) *chi.Mux {
	srv := &Server{services: services, logger: logger}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)

	r.Route("/contracts", func(r chi.Router) {
		r.Post("/", srv.handleCreateContract)
		r.Get("/{id}", srv.handleGetContract)
		r.Post("/{id}/activate", srv.handleActivateContract)
		r.Post("/{id}/generate", srv.handleGenerateVisits)
		r.Post("/{id}/extra-visits", srv.handleCreateExtraVisits)
		r.Get("/{id}/visits", srv.handleListContractVisits)
	})

	r.Route("/visits", func(r chi.Router) {
		r.Post("/", srv.handleCreateAdHocVisit)
		r.Get("/{id}", srv.handleGetVisit)
		r.Post("/{id}/done", srv.handleMarkVisitDone)
		r.Post("/{id}/cancel", srv.handleCancelVisit)
		r.Post("/{id}/signature", srv.handleSendSignature)
	})

	r.Post("/signatures/{id}/complete", srv.handleCompleteSignature)

	r.Route("/folders", func(r chi.Router) {
		r.Get("/{id}", srv.handleGetFolder)
		r.Delete("/{id}", srv.handleDeleteFolder)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type createContractRequest struct {
	Name           string `json:"name"`
	ClientID       string `json:"client_id"`
	ClientName     string `json:"client_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	VisitsPerMonth int    `json:"visits_per_month"`
	Weekdays       []int  `json:"weekdays,omitempty"`
}

func (s *Server) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid start_date (use YYYY-MM-DD)")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid end_date (use YYYY-MM-DD)")
		return
	}

	weekdays := make([]time.Weekday, 0, len(req.Weekdays))
	for _, d := range req.Weekdays {
		if d < 0 || d > 6 {
			s.writeError(w, http.StatusUnprocessableEntity, "weekdays must be 0 (Sunday) through 6 (Saturday)")
			return
		}
		weekdays = append(weekdays, time.Weekday(d))
	}

	c, err := s.services.Contracts.Create(r.Context(), contract.CreateRequest{
		Name:           req.Name,
		ClientID:       req.ClientID,
		ClientName:     req.ClientName,
		StartDate:      start,
		EndDate:        end,
		VisitsPerMonth: req.VisitsPerMonth,
		Weekdays:       weekdays,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request) {
	c, err := s.services.Contracts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleActivateContract(w http.ResponseWriter, r *http.Request) {
	c, err := s.services.Contracts.Activate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleGenerateVisits(w http.ResponseWriter, r *http.Request) {
	created, err := s.services.Scheduler.GenerateForContract(r.Context(), chi.URLParam(r, "id"), time.Now())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"visits_created": created})
}

type extraVisitsRequest struct {
	MonthFolderID  string `json:"month_folder_id"`
	NumberOfVisits int    `json:"number_of_visits"`
	Reason         string `json:"reason"`
}

func (s *Server) handleCreateExtraVisits(w http.ResponseWriter, r *http.Request) {
	var req extraVisitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	visits, err := s.services.Visits.CreateExtraVisits(r.Context(),
		chi.URLParam(r, "id"), req.MonthFolderID, req.NumberOfVisits, req.Reason)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, visits)
}

func (s *Server) handleListContractVisits(w http.ResponseWriter, r *http.Request) {
	visits, err := s.services.Visits.ListByContract(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, visits)
}

type createVisitRequest struct {
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	VisitDate   string `json:"visit_date,omitempty"`
	Engineer    string `json:"engineer,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleCreateAdHocVisit(w http.ResponseWriter, r *http.Request) {
	var req createVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var date time.Time
	if req.VisitDate != "" {
		var err error
		if date, err = time.Parse("2006-01-02", req.VisitDate); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid visit_date (use YYYY-MM-DD)")
			return
		}
	}

	v, err := s.services.Visits.CreateAdHoc(r.Context(), visit.CreateRequest{
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		VisitDate:   date,
		Engineer:    req.Engineer,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGetVisit(w http.ResponseWriter, r *http.Request) {
	v, err := s.services.Visits.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleMarkVisitDone(w http.ResponseWriter, r *http.Request) {
	v, err := s.services.Visits.MarkDone(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleCancelVisit(w http.ResponseWriter, r *http.Request) {
	v, err := s.services.Visits.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

type sendSignatureRequest struct {
	SignerRole  string `json:"signer_role"`
	SignerEmail string `json:"signer_email"`
}

func (s *Server) handleSendSignature(w http.ResponseWriter, r *http.Request) {
	var req sendSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sig, err := s.services.Signatures.Send(r.Context(), chi.URLParam(r, "id"), req.SignerRole, req.SignerEmail)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sig)
}

type completeSignatureRequest struct {
	// Payload is the signed artifact, base64-encoded. Its presence is the
	// completion signal; the originating system's status flag is ignored.
	Payload []byte `json:"payload"`
}

func (s *Server) handleCompleteSignature(w http.ResponseWriter, r *http.Request) {
	var req completeSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.services.Signatures.Complete(r.Context(), chi.URLParam(r, "id"), req.Payload); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type folderResponse struct {
	*folder.Folder
	IsRoot        bool                `json:"is_root"`
	DocumentCount int                 `json:"document_count"`
	Children      []folder.Folder     `json:"children,omitempty"`
	Documents     []document.Document `json:"documents,omitempty"`
}

func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	f, err := s.services.Folders.Get(ctx, id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	count, err := s.services.Folders.DocumentCount(ctx, id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	children, err := s.services.Folders.Children(ctx, id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	docs, err := s.services.Documents.ListByFolder(ctx, id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, folderResponse{
		Folder:        f,
		IsRoot:        f.IsRoot(),
		DocumentCount: count,
		Children:      children,
		Documents:     docs,
	})
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Folders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps sentinel errors to HTTP status codes: missing
// records to 404, user-correctable validation failures to 422.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contract.ErrContractNotFound),
		errors.Is(err, visit.ErrVisitNotFound),
		errors.Is(err, folder.ErrFolderNotFound),
		errors.Is(err, document.ErrDocumentNotFound),
		errors.Is(err, signature.ErrRequestNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, contract.ErrInvalidInput),
		errors.Is(err, contract.ErrInvalidWindow),
		errors.Is(err, contract.ErrNotDraft),
		errors.Is(err, visit.ErrInvalidInput),
		errors.Is(err, visit.ErrInvalidVisitCount),
		errors.Is(err, folder.ErrInvalidInput),
		errors.Is(err, signature.ErrMissingSignerEmail),
		errors.Is(err, signature.ErrNoReportDocument):
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
