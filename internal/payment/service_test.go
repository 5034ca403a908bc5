package payment

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/dnminh/fashionshop-backend/internal/types/order"
)

type mockOrderRepo struct {
	findOrderByIDFn      func(ctx context.Context, id string) (*order.Order, error)
	markOrderPaidFn      func(ctx context.Context, id string) (bool, error)
	markOrderPayFailedFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockOrderRepo) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	return m.findOrderByIDFn(ctx, id)
}
func (m *mockOrderRepo) MarkOrderPaid(ctx context.Context, id string) (bool, error) {
	return m.markOrderPaidFn(ctx, id)
}
func (m *mockOrderRepo) MarkOrderPayFailed(ctx context.Context, id string) (bool, error) {
	return m.markOrderPayFailedFn(ctx, id)
}

var testConfig = Config{
	TmnCode:    "TESTTMN",
	HashSecret: "testhashsecret",
	BaseURL:    "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
	ReturnURL:  "http://localhost:8080/api/payment/vnpay-return",
}

func newTestOrder(total float64, status order.PayStatus) *order.Order {
	return &order.Order{
		ID:         primitive.NewObjectID(),
		AccountID:  primitive.NewObjectID(),
		TotalPrice: total,
		PayStatus:  status,
	}
}

// signedCallback stamps a valid gateway signature over the given params.
func signedCallback(params map[string]string, secret string) map[string]string {
	out := clone(params)
	out["vnp_SecureHash"] = Sign(Serialize(Canonicalize(params)), secret)
	return out
}

func callbackFor(o *order.Order, amount, rspCode string) map[string]string {
	return signedCallback(map[string]string{
		"vnp_Amount":        amount,
		"vnp_TxnRef":        o.ID.Hex(),
		"vnp_ResponseCode":  rspCode,
		"vnp_TransactionNo": "14241551",
	}, testConfig.HashSecret)
}

func TestCreatePaymentURL(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	owner := account.Actor{ID: o.AccountID.Hex(), Role: account.RoleUser}

	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) {
			if id == o.ID.Hex() {
				return o, nil
			}
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := NewService(repo, testConfig)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC) }

	rawURL, err := svc.CreatePaymentURL(context.Background(), o.ID.Hex(), "", "", owner, "10.0.0.1")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(rawURL, testConfig.BaseURL+"?"))

	// the trailing hash must be the HMAC of everything before it
	query := strings.TrimPrefix(rawURL, testConfig.BaseURL+"?")
	idx := strings.LastIndex(query, "&vnp_SecureHash=")
	assert.True(t, idx > 0)
	signData, hash := query[:idx], query[idx+len("&vnp_SecureHash="):]
	assert.Equal(t, Sign(signData, testConfig.HashSecret), hash)

	parsed, err := url.ParseQuery(query)
	assert.NoError(t, err)
	assert.Equal(t, "15000000", parsed.Get("vnp_Amount"))
	assert.Equal(t, o.ID.Hex(), parsed.Get("vnp_TxnRef"))
	assert.Equal(t, "vn", parsed.Get("vnp_Locale"))
	assert.Equal(t, "20240501123045", parsed.Get("vnp_CreateDate"))
	assert.Empty(t, parsed.Get("vnp_BankCode"))
}

func TestCreatePaymentURLBankCodeAndLocale(t *testing.T) {
	o := newTestOrder(99000, order.PayUnpaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
	}
	svc := NewService(repo, testConfig)

	rawURL, err := svc.CreatePaymentURL(context.Background(), o.ID.Hex(), "NCB", "en",
		account.Actor{ID: o.AccountID.Hex(), Role: account.RoleUser}, "10.0.0.1")
	assert.NoError(t, err)

	parsed, _ := url.ParseQuery(strings.TrimPrefix(rawURL, testConfig.BaseURL+"?"))
	assert.Equal(t, "NCB", parsed.Get("vnp_BankCode"))
	assert.Equal(t, "en", parsed.Get("vnp_Locale"))
}

func TestCreatePaymentURLForbidden(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
	}
	svc := NewService(repo, testConfig)

	stranger := account.Actor{ID: primitive.NewObjectID().Hex(), Role: account.RoleUser}
	_, err := svc.CreatePaymentURL(context.Background(), o.ID.Hex(), "", "", stranger, "10.0.0.1")
	assert.Equal(t, ErrForbidden, err)

	// elevated roles may pay for any order
	admin := account.Actor{ID: primitive.NewObjectID().Hex(), Role: account.RoleAdmin}
	_, err = svc.CreatePaymentURL(context.Background(), o.ID.Hex(), "", "", admin, "10.0.0.1")
	assert.NoError(t, err)
}

func TestCreatePaymentURLOrderNotFound(t *testing.T) {
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := NewService(repo, testConfig)
	_, err := svc.CreatePaymentURL(context.Background(), primitive.NewObjectID().Hex(), "", "",
		account.Actor{Role: account.RoleAdmin}, "10.0.0.1")
	assert.Equal(t, ErrOrderNotFound, err)
}

func TestCreatePaymentURLAlreadyPaid(t *testing.T) {
	o := newTestOrder(150000, order.PayPaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
	}
	svc := NewService(repo, testConfig)
	_, err := svc.CreatePaymentURL(context.Background(), o.ID.Hex(), "", "",
		account.Actor{ID: o.AccountID.Hex(), Role: account.RoleUser}, "10.0.0.1")
	assert.Equal(t, ErrAlreadyPaid, err)
}

func TestHandleIPNSuccess(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	var paidID string
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
		markOrderPaidFn: func(ctx context.Context, id string) (bool, error) {
			paidID = id
			return true, nil
		},
	}
	svc := NewService(repo, testConfig)

	resp := svc.HandleIPN(context.Background(), callbackFor(o, "15000000", "00"))
	assert.Equal(t, IPNResponse{RspCode: "00", Message: "Success"}, resp)
	assert.Equal(t, o.ID.Hex(), paidID)
}

func TestHandleIPNReplayAfterPaid(t *testing.T) {
	o := newTestOrder(150000, order.PayPaid)
	var marked bool
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
		markOrderPaidFn: func(ctx context.Context, id string) (bool, error) {
			marked = true
			return false, nil
		},
	}
	svc := NewService(repo, testConfig)

	resp := svc.HandleIPN(context.Background(), callbackFor(o, "15000000", "00"))
	assert.Equal(t, IPNResponse{RspCode: "02", Message: "Order already updated"}, resp)
	assert.False(t, marked)
}

func TestHandleIPNConcurrentDelivery(t *testing.T) {
	// the order still reads as unpaid but another delivery wins the
	// conditional update
	o := newTestOrder(150000, order.PayUnpaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
		markOrderPaidFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	svc := NewService(repo, testConfig)

	resp := svc.HandleIPN(context.Background(), callbackFor(o, "15000000", "00"))
	assert.Equal(t, IPNResponse{RspCode: "02", Message: "Order already updated"}, resp)
}

func TestHandleIPNDeclined(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	var failedID string
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
		markOrderPayFailedFn: func(ctx context.Context, id string) (bool, error) {
			failedID = id
			return true, nil
		},
	}
	svc := NewService(repo, testConfig)

	resp := svc.HandleIPN(context.Background(), callbackFor(o, "15000000", "24"))
	// receipt acknowledgment: RspCode "00" even though the payment failed
	assert.Equal(t, IPNResponse{RspCode: "00", Message: "Payment failed"}, resp)
	assert.Equal(t, o.ID.Hex(), failedID)
}

func TestHandleIPNChecksumFailed(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) {
			t.Fatal("order must not be loaded when the checksum fails")
			return nil, nil
		},
	}
	svc := NewService(repo, testConfig)

	params := callbackFor(o, "15000000", "00")
	params["vnp_Amount"] = "99999999"
	resp := svc.HandleIPN(context.Background(), params)
	assert.Equal(t, IPNResponse{RspCode: "97", Message: "Checksum failed"}, resp)
}

func TestHandleIPNOrderNotFound(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := NewService(repo, testConfig)

	resp := svc.HandleIPN(context.Background(), callbackFor(o, "15000000", "00"))
	assert.Equal(t, IPNResponse{RspCode: "01", Message: "Order not found"}, resp)
}

func TestHandleIPNAmountMismatch(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
	}
	svc := NewService(repo, testConfig)

	resp := svc.HandleIPN(context.Background(), callbackFor(o, "14000000", "00"))
	assert.Equal(t, IPNResponse{RspCode: "04", Message: "Amount invalid"}, resp)
}

func TestHandleIPNMissingParams(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(repo, testConfig)

	resp := svc.HandleIPN(context.Background(), map[string]string{"vnp_TxnRef": "abc"})
	assert.Equal(t, IPNResponse{RspCode: "99", Message: "Invalid request"}, resp)
}

func TestHandleIPNStoreError(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := NewService(repo, testConfig)

	resp := svc.HandleIPN(context.Background(), callbackFor(o, "15000000", "00"))
	assert.Equal(t, IPNResponse{RspCode: "99", Message: "Internal server error"}, resp)
}

func TestHandleReturnSuccess(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
		markOrderPaidFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
	}
	svc := NewService(repo, testConfig)

	res, err := svc.HandleReturn(context.Background(), callbackFor(o, "15000000", "00"))
	assert.NoError(t, err)
	assert.Equal(t, ReturnResult{Code: "00", Message: "Payment successful"}, res)
}

func TestHandleReturnAlreadyPaid(t *testing.T) {
	o := newTestOrder(150000, order.PayPaid)
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
	}
	svc := NewService(repo, testConfig)

	res, err := svc.HandleReturn(context.Background(), callbackFor(o, "15000000", "00"))
	assert.NoError(t, err)
	assert.Equal(t, ReturnResult{Code: "00", Message: "Order already paid"}, res)
}

func TestHandleReturnDeclined(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	var failed bool
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
		markOrderPayFailedFn: func(ctx context.Context, id string) (bool, error) {
			failed = true
			return true, nil
		},
	}
	svc := NewService(repo, testConfig)

	res, err := svc.HandleReturn(context.Background(), callbackFor(o, "15000000", "24"))
	assert.NoError(t, err)
	assert.Equal(t, ReturnResult{Code: "24", Message: "Payment failed or cancelled"}, res)
	assert.True(t, failed)
}

func TestHandleReturnChecksumFailed(t *testing.T) {
	o := newTestOrder(150000, order.PayUnpaid)
	repo := &mockOrderRepo{}
	svc := NewService(repo, testConfig)

	params := callbackFor(o, "15000000", "00")
	params["vnp_ResponseCode"] = "24"
	_, err := svc.HandleReturn(context.Background(), params)
	assert.Equal(t, ErrChecksum, err)
}

func TestAmountMatches(t *testing.T) {
	assert.True(t, amountMatches("15000000", 150000))
	assert.True(t, amountMatches("15000000.4", 150000))
	assert.False(t, amountMatches("15000100", 150000))
	assert.False(t, amountMatches("abc", 150000))
}
