package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/service"
)

type OrganizerHandler struct {
	onboardingSvc service.OnboardingService
}

func NewOrganizerHandler(onboardingSvc service.OnboardingService) *OrganizerHandler {
	return &OrganizerHandler{onboardingSvc: onboardingSvc}
}

type submitOrganizerApplicationRequest struct {
	OrganizationName string `json:"organization_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	OrganizerType    string `json:"organizer_type"`
	CardImageURL     string `json:"card_image_url"`
}

func (h *OrganizerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req submitOrganizerApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, domain.ErrValidation("malformed request body"))
		return
	}

	app := &domain.OrganizerApplication{
		OrganizationName: req.OrganizationName,
		Email:            req.Email,
		Phone:            req.Phone,
		OrganizerType:    domain.OrganizerType(req.OrganizerType),
		CardImageURL:     req.CardImageURL,
	}
	created, err := h.onboardingSvc.Submit(r.Context(), account.UserID, app)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *OrganizerHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	app, err := h.onboardingSvc.GetMine(r.Context(), account.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

func (h *OrganizerHandler) List(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	apps, total, err := h.onboardingSvc.List(r.Context(), account.UserID, status, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: apps, Total: total, Page: page, PageSize: pageSize})
}

type reviewRequest struct {
	Reason string `json:"reason"`
}

func (h *OrganizerHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, func(actorID string, id int32, _ string) (*domain.OrganizerApplication, error) {
		return h.onboardingSvc.Approve(r.Context(), actorID, id)
	}, false)
}

func (h *OrganizerHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, func(actorID string, id int32, reason string) (*domain.OrganizerApplication, error) {
		return h.onboardingSvc.Reject(r.Context(), actorID, id, reason)
	}, true)
}

func (h *OrganizerHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, func(actorID string, id int32, reason string) (*domain.OrganizerApplication, error) {
		return h.onboardingSvc.Suspend(r.Context(), actorID, id, reason)
	}, true)
}

func (h *OrganizerHandler) review(w http.ResponseWriter, r *http.Request,
	fn func(actorID string, id int32, reason string) (*domain.OrganizerApplication, error), wantsReason bool) {
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

	var reason string
	if wantsReason {
		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, r, domain.ErrValidation("malformed request body"))
			return
		}
		reason = req.Reason
	}

	app, err := fn(account.UserID, id, reason)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

func (h *OrganizerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	stats, err := h.onboardingSvc.Stats(r.Context(), account.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// pathID parses a numeric path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid id in path")
	}
	return int32(id), nil
}

// pagination reads page/page_size query params with sane bounds.
func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
