package importbill

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dnminh/fashionshop-backend/internal/types/importbill"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var in BillInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	b, err := h.svc.CreateBill(r.Context(), in)
	if err != nil {
		writeError(w, err, "Error creating import bill")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Import bill created successfully",
		"importBill": b,
	})
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.ListBills(r.Context())
	if err != nil {
		writeError(w, err, "Error retrieving import bills")
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *Handler) SearchBills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f importbill.Filter
	if v := q.Get("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.StartDate = &t
		}
	}
	if v := q.Get("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Millisecond)
			f.EndDate = &end
		}
	}
	if v := q.Get("minAmount"); v != "" {
		if a, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinAmount = &a
		}
	}
	if v := q.Get("maxAmount"); v != "" {
		if a, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxAmount = &a
		}
	}
	bills, err := h.svc.SearchBills(r.Context(), f)
	if err != nil {
		writeError(w, err, "Error searching import bills")
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBill(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Error retrieving import bill")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	var in BillInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	b, err := h.svc.UpdateBill(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err, "Error updating import bill")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Import bill updated successfully",
		"importBill": b,
	})
}

func (h *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBill(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Error deleting import bill")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Import bill deleted successfully"})
}

func (h *Handler) CreateDetail(w http.ResponseWriter, r *http.Request) {
	var in DetailInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	d, err := h.svc.CreateDetail(r.Context(), in)
	if err != nil {
		writeError(w, err, "Error creating import bill detail")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":          "Import bill detail created successfully",
		"importBillDetail": d,
	})
}

func (h *Handler) ListDetailsByBill(w http.ResponseWriter, r *http.Request) {
	details, err := h.svc.ListDetailsByBill(r.Context(), chi.URLParam(r, "billId"))
	if err != nil {
		writeError(w, err, "Error retrieving import bill details")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) GetDetail(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Error retrieving import bill detail")
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
	d, err := h.svc.UpdateDetail(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err, "Error updating import bill detail")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":          "Import bill detail updated successfully",
		"importBillDetail": d,
	})
}

func (h *Handler) DeleteDetail(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDetail(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Error deleting import bill detail")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Import bill detail deleted successfully"})
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case ErrBillNotFound, ErrDetailNotFound, ErrVariantNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case ErrInvalidQuantity, ErrInvalidAmount:
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
