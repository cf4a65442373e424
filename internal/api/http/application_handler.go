package http

import (
	"encoding/json"
	"net/http"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/service"
)

type ApplicationHandler struct {
	applicationSvc service.ApplicationService
}

func NewApplicationHandler(applicationSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationSvc: applicationSvc}
}

type submitApplicationRequest struct {
	PostingID    int32  `json:"posting_id"`
	Name         string `json:"name"`
	Skills       string `json:"skills"`
	Availability string `json:"availability"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	Sex          string `json:"sex"`
	Message      string `json:"message"`
	CVURL        string `json:"cv_url"`
	AccessKey    string `json:"access_key"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req submitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, domain.ErrValidation("malformed request body"))
		return
	}

	app := &domain.Application{
		PostingID:    req.PostingID,
		Name:         req.Name,
		Skills:       req.Skills,
		Availability: req.Availability,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Sex:          domain.Gender(req.Sex),
		Message:      req.Message,
		CVURL:        req.CVURL,
	}
	created, err := h.applicationSvc.Submit(r.Context(), account.UserID, app, req.AccessKey)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type decideRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, domain.ErrValidation("malformed request body"))
		return
	}

	app, err := h.applicationSvc.Decide(r.Context(), account.UserID, id, domain.ApplicationStatus(req.Status))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	app, err := h.applicationSvc.Withdraw(r.Context(), account.UserID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	apps, total, err := h.applicationSvc.ListMine(r.Context(), account.UserID, status, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: apps, Total: total, Page: page, PageSize: pageSize})
}

func (h *ApplicationHandler) ListForPosting(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	postingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	apps, total, err := h.applicationSvc.ListForPosting(r.Context(), account.UserID, postingID, status, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: apps, Total: total, Page: page, PageSize: pageSize})
}

func (h *ApplicationHandler) ListForOrganizer(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	apps, total, err := h.applicationSvc.ListForOrganizer(r.Context(), account.UserID, status, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: apps, Total: total, Page: page, PageSize: pageSize})
}

func (h *ApplicationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	postingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	stats, err := h.applicationSvc.Stats(r.Context(), account.UserID, postingID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
