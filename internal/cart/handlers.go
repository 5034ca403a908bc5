package cart

import (
	"encoding/json"
	"net/http"

	"github.com/dnminh/fashionshop-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	item, err := h.svc.Create(r.Context(), in, actor)
	if err != nil {
		writeError(w, err, "Error creating cart item")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Cart item created successfully",
		"cartItem": item,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	items, err := h.svc.List(r.Context(), actor)
	if err != nil {
		writeError(w, err, "Error retrieving cart items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	item, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		writeError(w, err, "Error retrieving cart item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	item, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in, actor)
	if err != nil {
		writeError(w, err, "Error updating cart item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Cart item updated successfully",
		"cartItem": item,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeError(w, err, "Error deleting cart item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart item deleted successfully"})
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case ErrItemNotFound, ErrVariantNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case ErrForbidden:
		writeJSON(w, http.StatusForbidden, map[string]string{"message": err.Error()})
	case ErrInvalidQuantity, ErrInvalidID:
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": fallback})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
