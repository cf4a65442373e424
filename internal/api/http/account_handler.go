package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/service"
)

type AccountHandler struct {
	accountSvc service.AccountService
	auditSvc   service.AuditService
}

func NewAccountHandler(accountSvc service.AccountService, auditSvc service.AuditService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc, auditSvc: auditSvc}
}

// Me returns the caller's own ledger row, provisioned by the middleware.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, domain.ErrValidation("malformed request body"))
		return
	}

	updated, err := h.accountSvc.UpdateProfile(r.Context(), account.UserID, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, pageSize := pagination(r)
	role := r.URL.Query().Get("role")
	search := r.URL.Query().Get("search")
	accounts, total, err := h.accountSvc.ListAccounts(r.Context(), account.UserID, role, search, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: accounts, Total: total, Page: page, PageSize: pageSize})
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *AccountHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	targetID := mux.Vars(r)["user_id"]

	var req changeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, domain.ErrValidation("malformed request body"))
		return
	}

	if err := h.accountSvc.ChangeRole(r.Context(), account.UserID, targetID, domain.Role(req.Role)); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"user_id": targetID, "role": req.Role})
}

func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	targetID := mux.Vars(r)["user_id"]
	if err := h.accountSvc.Deactivate(r.Context(), account.UserID, targetID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"user_id": targetID, "status": string(domain.AccountStatusInactive)})
}

func (h *AccountHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	limit := int32(100)
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil && v > 0 {
		limit = int32(v)
	}

	entries, err := h.auditSvc.List(r.Context(), account.UserID, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
