package favorite

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

type addReq struct {
	ProductID string `json:"pro_id"`
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	f, err := h.svc.Add(r.Context(), req.ProductID, actor)
	if err != nil {
		writeError(w, err, "Error adding favorite")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Product added to favorites successfully",
		"favorite": f,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	favorites, err := h.svc.List(r.Context(), actor)
	if err != nil {
		writeError(w, err, "Error retrieving favorites")
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeError(w, err, "Error deleting favorite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product removed from favorites successfully"})
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case ErrNotFound, ErrProductNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case ErrAlreadyFavorite, ErrInvalidID:
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
