package account

import (
	"encoding/json"
	"net/http"

	"github.com/dnminh/fashionshop-backend/internal/middleware"
	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func accountView(a *account.Account) map[string]any {
	return map[string]any{
		"_id":        a.ID,
		"username":   a.Username,
		"name":       a.Name,
		"email":      a.Email,
		"phone":      a.Phone,
		"address":    a.Address,
		"image":      a.Image,
		"role":       a.Role,
		"acc_status": a.Status,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	a, token, err := h.svc.Register(r.Context(), in)
	if err != nil {
		writeError(w, err, "Error registering account")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"token":   token,
		"account": accountView(a),
	})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	a, token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err, "Error logging in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"account": accountView(a),
	})
}

type otpReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) RequestRegisterOTP(w http.ResponseWriter, r *http.Request) {
	var req otpReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	code, err := h.svc.RequestRegisterOTP(r.Context(), req.Email)
	if err != nil {
		writeError(w, err, "Error generating OTP")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "OTP generated successfully",
		"otp":     code,
	})
}

func (h *Handler) RequestPasswordResetOTP(w http.ResponseWriter, r *http.Request) {
	var req otpReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	code, err := h.svc.RequestPasswordResetOTP(r.Context(), req.Email)
	if err != nil {
		writeError(w, err, "Error generating OTP")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "OTP generated successfully",
		"otp":     code,
	})
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	if err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeError(w, err, "Error verifying OTP")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP verified successfully"})
}

type resetReq struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	if err := h.svc.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		writeError(w, err, "Error resetting password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err, "Error retrieving accounts")
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	a, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		writeError(w, err, "Error retrieving account")
		return
	}
	writeJSON(w, http.StatusOK, accountView(a))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	a, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in, actor)
	if err != nil {
		writeError(w, err, "Error updating account")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Account updated successfully",
		"account": accountView(a),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeError(w, err, "Error deleting account")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case ErrAccountNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case ErrForbidden, ErrAccountInactive:
		writeJSON(w, http.StatusForbidden, map[string]string{"message": err.Error()})
	case ErrInvalidCreds:
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": err.Error()})
	case ErrAccountExists, ErrMissingFields, ErrPasswordTooShort, ErrInvalidEmail, ErrInvalidOTP, ErrEmailRegistered:
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
