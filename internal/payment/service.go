package payment

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/dnminh/fashionshop-backend/internal/logger"
	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/dnminh/fashionshop-backend/internal/types/order"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrForbidden      = errors.New("access denied: can only pay for own order")
	ErrAlreadyPaid    = errors.New("order already paid")
	ErrMissingParam   = errors.New("missing required callback parameter")
	ErrChecksum       = errors.New("checksum failed")
	ErrAmountMismatch = errors.New("amount mismatch")
)

// Config is the gateway collaborator contract; every field is required at
// startup.
type Config struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
}

// OrderRepository is payment's view of the order store. The Mark* methods
// are conditional updates: they apply only while pay_status is not yet
// "paid" and report whether a write happened, which is what makes replayed
// and racing notifications safe.
type OrderRepository interface {
	FindOrderByID(ctx context.Context, id string) (*order.Order, error)
	MarkOrderPaid(ctx context.Context, id string) (bool, error)
	MarkOrderPayFailed(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo OrderRepository
	cfg  Config
	now  func() time.Time
}

func NewService(repo OrderRepository, cfg Config) *Service {
	return &Service{repo: repo, cfg: cfg, now: time.Now}
}

// CreatePaymentURL builds the signed redirect URL for an order. The order is
// not mutated here: payment is confirmed only by the gateway callbacks.
func (s *Service) CreatePaymentURL(ctx context.Context, orderID, bankCode, locale string, actor account.Actor, clientIP string) (string, error) {
	o, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	if !actor.CanActOn(o.AccountID.Hex()) {
		return "", ErrForbidden
	}
	if o.PayStatus == order.PayPaid {
		return "", ErrAlreadyPaid
	}

	if locale == "" {
		locale = "vn"
	}
	amount := strconv.FormatInt(int64(math.Round(o.TotalPrice*100)), 10)

	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    s.cfg.TmnCode,
		"vnp_Locale":     locale,
		"vnp_CurrCode":   "VND",
		paramTxnRef:      orderID,
		"vnp_OrderInfo":  "Thanh toan don hang:" + orderID,
		"vnp_OrderType":  "other",
		paramAmount:      amount,
		"vnp_ReturnUrl":  s.cfg.ReturnURL,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": s.now().Format("20060102150405"),
	}
	if bankCode != "" {
		params["vnp_BankCode"] = bankCode
	}

	signData := Serialize(Canonicalize(params))
	signed := Sign(signData, s.cfg.HashSecret)
	return s.cfg.BaseURL + "?" + signData + "&" + paramSecureHash + "=" + signed, nil
}

// ReturnResult is the synchronous return outcome; Code "00" means the
// payment succeeded (or had already succeeded).
type ReturnResult struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleReturn reconciles the browser-redirect callback. It is a convenience
// path: the IPN remains authoritative, so a lost or hostile redirect never
// decides the order's fate alone.
func (s *Service) HandleReturn(ctx context.Context, params map[string]string) (ReturnResult, error) {
	if err := requireParams(params); err != nil {
		return ReturnResult{}, err
	}
	if !Verify(params, params[paramSecureHash], s.cfg.HashSecret) {
		return ReturnResult{}, ErrChecksum
	}

	orderID := params[paramTxnRef]
	o, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ReturnResult{}, ErrOrderNotFound
		}
		return ReturnResult{}, err
	}
	if !amountMatches(params[paramAmount], o.TotalPrice) {
		return ReturnResult{}, ErrAmountMismatch
	}

	rspCode := params[paramResponseCode]
	if rspCode != "00" {
		if _, err := s.repo.MarkOrderPayFailed(ctx, orderID); err != nil {
			return ReturnResult{}, err
		}
		return ReturnResult{Code: rspCode, Message: "Payment failed or cancelled"}, nil
	}

	if o.PayStatus == order.PayPaid {
		return ReturnResult{Code: "00", Message: "Order already paid"}, nil
	}
	applied, err := s.repo.MarkOrderPaid(ctx, orderID)
	if err != nil {
		return ReturnResult{}, err
	}
	if !applied {
		return ReturnResult{Code: "00", Message: "Order already paid"}, nil
	}
	return ReturnResult{Code: "00", Message: "Payment successful"}, nil
}

// IPNResponse is the exact two-field acknowledgment shape the gateway
// retries until it receives.
type IPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

// HandleIPN is the authoritative, idempotent settlement step. Every failure
// is translated into an acknowledgment; nothing escapes to the transport
// layer, because the gateway treats anything but this shape as a delivery
// failure and retries.
func (s *Service) HandleIPN(ctx context.Context, params map[string]string) IPNResponse {
	if err := requireParams(params); err != nil {
		return IPNResponse{RspCode: "99", Message: "Invalid request"}
	}
	if !Verify(params, params[paramSecureHash], s.cfg.HashSecret) {
		return IPNResponse{RspCode: "97", Message: "Checksum failed"}
	}

	orderID := params[paramTxnRef]
	o, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return IPNResponse{RspCode: "01", Message: "Order not found"}
		}
		logger.Log.Error("ipn: find order", zap.String("order", orderID), zap.Error(err))
		return IPNResponse{RspCode: "99", Message: "Internal server error"}
	}
	if !amountMatches(params[paramAmount], o.TotalPrice) {
		return IPNResponse{RspCode: "04", Message: "Amount invalid"}
	}
	if o.PayStatus == order.PayPaid {
		return IPNResponse{RspCode: "02", Message: "Order already updated"}
	}

	rspCode := params[paramResponseCode]
	if rspCode != "00" {
		if _, err := s.repo.MarkOrderPayFailed(ctx, orderID); err != nil {
			logger.Log.Error("ipn: mark failed", zap.String("order", orderID), zap.Error(err))
			return IPNResponse{RspCode: "99", Message: "Internal server error"}
		}
		// receipt acknowledgment, not a business success
		return IPNResponse{RspCode: "00", Message: "Payment failed"}
	}

	applied, err := s.repo.MarkOrderPaid(ctx, orderID)
	if err != nil {
		logger.Log.Error("ipn: mark paid", zap.String("order", orderID), zap.Error(err))
		return IPNResponse{RspCode: "99", Message: "Internal server error"}
	}
	if !applied {
		// a concurrent delivery won the conditional update
		return IPNResponse{RspCode: "02", Message: "Order already updated"}
	}
	return IPNResponse{RspCode: "00", Message: "Success"}
}

func requireParams(params map[string]string) error {
	for _, k := range []string{paramAmount, paramTxnRef, paramResponseCode, paramSecureHash} {
		if params[k] == "" {
			return ErrMissingParam
		}
	}
	return nil
}

// amountMatches compares the callback amount (scaled by 100 per gateway
// convention) against the stored total, tolerating float rounding.
func amountMatches(raw string, totalPrice float64) bool {
	cents, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	return math.Round(cents) == math.Round(totalPrice*100)
}
