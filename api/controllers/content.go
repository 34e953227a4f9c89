package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrgrifes/atelier-backend/api/responses"
	"github.com/hrgrifes/atelier-backend/api/validators"
	"github.com/hrgrifes/atelier-backend/internal/content"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
)

type fieldValueRequest struct {
	Value *string `json:"value" validate:"required"`
}

type reorderRequest struct {
	Items []content.Item `json:"items" validate:"required"`
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// ContentGet returns the full site document. Public; the site renders from it.
func ContentGet(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Snapshot(r.Context()))
	}
}

// ContentSaveStatus reports where the persistence loop currently stands.
func ContentSaveStatus(sched *content.Scheduler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": string(sched.Status())})
	}
}

// ContentUpdateField replaces one text field within a section.
func ContentUpdateField(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req fieldValueRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		section := chi.URLParam(r, "section")
		key := chi.URLParam(r, "key")
		if err := svc.UpdateField(r.Context(), section, key, *req.Value); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"section": section, "key": key})
	}
}

// ContentUpdateItemField replaces one field of an item within a collection
// section.
func ContentUpdateItemField(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req fieldValueRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		section := chi.URLParam(r, "section")
		itemID := chi.URLParam(r, "itemID")
		field := chi.URLParam(r, "field")
		if err := svc.UpdateItemField(r.Context(), section, itemID, field, *req.Value); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"section": section, "item_id": itemID, "field": field})
	}
}

// ContentReorderItems replaces a collection section's item sequence. The same
// endpoint carries removals: the client sends the sequence without the
// dropped item.
func ContentReorderItems(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		section := chi.URLParam(r, "section")
		if err := svc.ReorderItems(r.Context(), section, req.Items); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"section": section, "count": len(req.Items)})
	}
}

// ContentAddItem appends a new item to a collection section. The body is the
// item itself; a blank id gets minted.
func ContentAddItem(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item content.Item
		if err := validators.DecodeJSONBody(r, &item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		section := chi.URLParam(r, "section")
		added, err := svc.AddItem(r.Context(), section, item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, added)
	}
}

// ContentReset restores the built-in default document.
func ContentReset(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Reset(r.Context(), req.Confirm); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reset"})
	}
}
