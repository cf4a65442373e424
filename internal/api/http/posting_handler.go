package http

import (
	"encoding/json"
	"net/http"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/service"
)

type PostingHandler struct {
	postingSvc service.PostingService
}

func NewPostingHandler(postingSvc service.PostingService) *PostingHandler {
	return &PostingHandler{postingSvc: postingSvc}
}

type postingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Visibility  string `json:"visibility"`
	Status      string `json:"status"`
	// AccessKey arrives in plaintext on create/update only and is hashed
	// before it reaches storage. It is never echoed back.
	AccessKey string `json:"access_key"`
}

func (h *PostingHandler) Create(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req postingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, domain.ErrValidation("malformed request body"))
		return
	}

	posting := &domain.Posting{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Visibility:  domain.Visibility(req.Visibility),
	}
	created, err := h.postingSvc.Create(r.Context(), account.UserID, posting, req.AccessKey)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *PostingHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req postingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, domain.ErrValidation("malformed request body"))
		return
	}

	posting := &domain.Posting{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Visibility:  domain.Visibility(req.Visibility),
		Status:      domain.PostingStatus(req.Status),
	}
	updated, err := h.postingSvc.Update(r.Context(), account.UserID, posting, req.AccessKey)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *PostingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	posting, err := h.postingSvc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, posting)
}

func (h *PostingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	visibility := r.URL.Query().Get("visibility")
	postings, total, err := h.postingSvc.List(r.Context(), visibility, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: postings, Total: total, Page: page, PageSize: pageSize})
}

func (h *PostingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, pageSize := pagination(r)
	postings, total, err := h.postingSvc.ListMine(r.Context(), account.UserID, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: postings, Total: total, Page: page, PageSize: pageSize})
}
