package order

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dnminh/fashionshop-backend/internal/middleware"
	"github.com/dnminh/fashionshop-backend/internal/types/order"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc     *Service
	details *DetailService
}

func NewHandler(svc *Service, details *DetailService) *Handler {
	return &Handler{svc: svc, details: details}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	o, err := h.svc.Create(r.Context(), in, actor)
	if err != nil {
		writeError(w, err, "Error creating order")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   o,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	orders, err := h.svc.List(r.Context(), actor)
	if err != nil {
		writeError(w, err, "Error retrieving orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	orders, err := h.svc.Search(r.Context(), searchFilterFromQuery(r), actor)
	if err != nil {
		writeError(w, err, "Error searching orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	o, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		writeError(w, err, "Error retrieving order")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	o, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in, actor)
	if err != nil {
		writeError(w, err, "Error updating order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order updated successfully",
		"order":   o,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeError(w, err, "Error deleting order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func (h *Handler) CreateDetail(w http.ResponseWriter, r *http.Request) {
	var in DetailCreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	d, err := h.details.Create(r.Context(), in, actor)
	if err != nil {
		writeError(w, err, "Error creating order detail")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Order detail created successfully",
		"orderDetail": d,
	})
}

func (h *Handler) ListDetails(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	details, err := h.details.List(r.Context(), r.URL.Query().Get("order_id"), actor)
	if err != nil {
		writeError(w, err, "Error retrieving order details")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) SearchDetailFeedback(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	q := r.URL.Query()
	f := order.DetailSearchFilter{
		OrderID:   q.Get("order_id"),
		VariantID: q.Get("variant_id"),
		Feedback:  q.Get("feedback"),
		Query:     q.Get("q"),
	}
	details, err := h.details.SearchFeedback(r.Context(), f, actor)
	if err != nil {
		writeError(w, err, "Error searching order details")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) GetDetailByID(w http.ResponseWriter, r *http.Request) {
	d, err := h.details.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Error retrieving order detail")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) UpdateDetail(w http.ResponseWriter, r *http.Request) {
	var in DetailUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	d, err := h.details.Update(r.Context(), chi.URLParam(r, "id"), in, actor)
	if err != nil {
		writeError(w, err, "Error updating order detail")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Order detail updated successfully",
		"orderDetail": d,
	})
}

func (h *Handler) DeleteDetail(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.details.Delete(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeError(w, err, "Error deleting order detail")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order detail deleted successfully"})
}

func searchFilterFromQuery(r *http.Request) order.SearchFilter {
	q := r.URL.Query()
	f := order.SearchFilter{
		AccountID:      q.Get("acc_id"),
		OrderStatus:    q.Get("order_status"),
		PayStatus:      q.Get("pay_status"),
		ShippingStatus: q.Get("shipping_status"),
		Query:          q.Get("q"),
	}
	if v := q.Get("dateFrom"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DateFrom = &t
		}
	}
	if v := q.Get("dateTo"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Millisecond)
			f.DateTo = &end
		}
	}
	if v := q.Get("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	return f
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case ErrOrderNotFound, ErrAccountNotFound, ErrDetailNotFound, ErrVariantNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case ErrForbidden:
		writeJSON(w, http.StatusForbidden, map[string]string{"message": err.Error()})
	case ErrInvalidAccountID, ErrInvalidPhone, ErrInvalidAddress, ErrInvalidPrice, ErrInvalidQuantity:
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
