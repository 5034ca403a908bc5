package payment

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dnminh/fashionshop-backend/internal/middleware"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// CreatePaymentURL handles GET /payment-url?orderId=...&bankCode=...&language=...
func (h *Handler) CreatePaymentURL(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "orderId is required"})
		return
	}

	url, err := h.svc.CreatePaymentURL(
		r.Context(),
		orderID,
		r.URL.Query().Get("bankCode"),
		r.URL.Query().Get("language"),
		actor,
		clientIP(r),
	)
	if err != nil {
		switch err {
		case ErrOrderNotFound:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
		case ErrForbidden:
			writeJSON(w, http.StatusForbidden, map[string]string{"message": err.Error()})
		case ErrAlreadyPaid:
			writeJSON(w, http.StatusConflict, map[string]string{"message": err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error creating payment url"})
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"paymentUrl": url})
}

// Return handles GET /vnpay-return, the user's browser redirect.
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.HandleReturn(r.Context(), queryParams(r))
	if err != nil {
		switch err {
		case ErrMissingParam, ErrChecksum, ErrAmountMismatch:
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		case ErrOrderNotFound:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error handling payment return"})
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// IPN handles GET/POST /vnpay-ipn. The gateway contract requires HTTP 200
// and the {RspCode, Message} body regardless of the business outcome.
func (h *Handler) IPN(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			for k, vs := range r.PostForm {
				if len(vs) > 0 {
					params[k] = vs[0]
				}
			}
		}
	}
	writeJSON(w, http.StatusOK, h.svc.HandleIPN(r.Context(), params))
}

func queryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

// clientIP prefers the forwarded-for header, falling back to the raw
// connection address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if i := strings.LastIndexByte(r.RemoteAddr, ':'); i >= 0 {
		return r.RemoteAddr[:i]
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
