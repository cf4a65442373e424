package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"volunteerhub-backend/internal/security"
	"volunteerhub-backend/internal/service"
)

// NewRouter assembles the full HTTP surface. Every route except the health
// check sits behind token verification.
func NewRouter(
	verifier security.TokenVerifier,
	accountSvc service.AccountService,
	onboardingSvc service.OnboardingService,
	postingSvc service.PostingService,
	applicationSvc service.ApplicationService,
	auditSvc service.AuditService,
) *mux.Router {
	accountHandler := NewAccountHandler(accountSvc, auditSvc)
	organizerHandler := NewOrganizerHandler(onboardingSvc)
	postingHandler := NewPostingHandler(postingSvc)
	applicationHandler := NewApplicationHandler(applicationSvc)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(verifier, accountSvc))

	// Caller's own account.
	api.HandleFunc("/me", accountHandler.Me).Methods(http.MethodGet)
	api.HandleFunc("/me", accountHandler.UpdateProfile).Methods(http.MethodPut)

	// Organizer onboarding.
	api.HandleFunc("/organizer-applications", organizerHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/organizer-applications/mine", organizerHandler.GetMine).Methods(http.MethodGet)

	// Postings.
	api.HandleFunc("/postings", postingHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/postings", postingHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/postings/mine", postingHandler.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/postings/{id:[0-9]+}", postingHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/postings/{id:[0-9]+}", postingHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/postings/{id:[0-9]+}/applications", applicationHandler.ListForPosting).Methods(http.MethodGet)
	api.HandleFunc("/postings/{id:[0-9]+}/applications/stats", applicationHandler.Stats).Methods(http.MethodGet)

	// Volunteer applications.
	api.HandleFunc("/applications", applicationHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/applications/mine", applicationHandler.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/applications/received", applicationHandler.ListForOrganizer).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id:[0-9]+}/decision", applicationHandler.Decide).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id:[0-9]+}/withdraw", applicationHandler.Withdraw).Methods(http.MethodPost)

	// Admin surface.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/organizer-applications", organizerHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/organizer-applications/{id:[0-9]+}/approve", organizerHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/organizer-applications/{id:[0-9]+}/reject", organizerHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/organizer-applications/{id:[0-9]+}/suspend", organizerHandler.Suspend).Methods(http.MethodPost)
	admin.HandleFunc("/stats", organizerHandler.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/users", accountHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{user_id}/role", accountHandler.ChangeRole).Methods(http.MethodPut)
	admin.HandleFunc("/users/{user_id}/deactivate", accountHandler.Deactivate).Methods(http.MethodPost)
	admin.HandleFunc("/activity-log", accountHandler.AuditLog).Methods(http.MethodGet)

	return r
}
