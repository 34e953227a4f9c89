package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hrgrifes/atelier-backend/api/responses"
	"github.com/hrgrifes/atelier-backend/api/validators"
	"github.com/hrgrifes/atelier-backend/internal/transfer"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
)

type importRequest struct {
	Document json.RawMessage `json:"document" validate:"required"`
	Confirm  bool            `json:"confirm"`
}

// TransferExport streams the current document as a JSON download.
func TransferExport(gw *transfer.Gateway, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := gw.Export(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(doc.Body); err != nil && logg != nil {
			logg.Error(r.Context(), "writing export", err)
		}
	}
}

// TransferImport replaces the live document with an uploaded one.
func TransferImport(gw *transfer.Gateway, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := gw.Import(r.Context(), req.Document, req.Confirm); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "imported"})
	}
}
