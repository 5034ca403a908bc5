package statistic

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Customers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error retrieving customer statistics"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Revenue(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error retrieving revenue statistics"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Orders(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error retrieving order statistics"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) RevenueByWeek(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.RevenueByWeek(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error retrieving weekly revenue"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) RevenueByMonth(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.RevenueByMonth(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error retrieving monthly revenue"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) RevenueByYear(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.RevenueByYear(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error retrieving yearly revenue"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
