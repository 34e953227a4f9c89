package controllers

import (
	"net/http"

	"github.com/hrgrifes/atelier-backend/api/responses"
	"github.com/hrgrifes/atelier-backend/api/validators"
	authsvc "github.com/hrgrifes/atelier-backend/internal/auth"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
)

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

type adminModeRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// AuthLogin checks the operator password and returns a bearer token.
func AuthLogin(svc *authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), req.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the calling session.
func AuthLogout(svc *authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthSession returns the calling session's current record.
func AuthSession(svc *authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := svc.Session(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// AuthSetAdminMode flips the edit-mode flag on the calling session.
func AuthSetAdminMode(svc *authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminModeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetAdminMode(r.Context(), *req.Enabled); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"admin_mode": *req.Enabled})
	}
}
