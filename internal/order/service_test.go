package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/dnminh/fashionshop-backend/internal/types/order"
)

type mockOrderRepo struct {
	createOrderFn           func(ctx context.Context, o *order.Order) error
	findOrderByIDFn         func(ctx context.Context, id string) (*order.Order, error)
	listOrdersFn            func(ctx context.Context) ([]order.Order, error)
	listOrdersByAccountFn   func(ctx context.Context, accountID string) ([]order.Order, error)
	searchOrdersFn          func(ctx context.Context, f order.SearchFilter) ([]order.Order, error)
	updateOrderFn           func(ctx context.Context, o *order.Order) error
	deleteOrderFn           func(ctx context.Context, id string) error
	listOrderIDsByAccountFn func(ctx context.Context, accountID string) ([]primitive.ObjectID, error)
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, o *order.Order) error {
	return m.createOrderFn(ctx, o)
}
func (m *mockOrderRepo) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	return m.findOrderByIDFn(ctx, id)
}
func (m *mockOrderRepo) ListOrders(ctx context.Context) ([]order.Order, error) {
	return m.listOrdersFn(ctx)
}
func (m *mockOrderRepo) ListOrdersByAccount(ctx context.Context, accountID string) ([]order.Order, error) {
	return m.listOrdersByAccountFn(ctx, accountID)
}
func (m *mockOrderRepo) SearchOrders(ctx context.Context, f order.SearchFilter) ([]order.Order, error) {
	return m.searchOrdersFn(ctx, f)
}
func (m *mockOrderRepo) UpdateOrder(ctx context.Context, o *order.Order) error {
	return m.updateOrderFn(ctx, o)
}
func (m *mockOrderRepo) DeleteOrder(ctx context.Context, id string) error {
	return m.deleteOrderFn(ctx, id)
}
func (m *mockOrderRepo) ListOrderIDsByAccount(ctx context.Context, accountID string) ([]primitive.ObjectID, error) {
	return m.listOrderIDsByAccountFn(ctx, accountID)
}

type mockAccountRepo struct {
	findAccountByIDFn func(ctx context.Context, id string) (*account.Account, error)
}

func (m *mockAccountRepo) FindAccountByID(ctx context.Context, id string) (*account.Account, error) {
	return m.findAccountByIDFn(ctx, id)
}

func existingAccounts(ids ...string) *mockAccountRepo {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &mockAccountRepo{
		findAccountByIDFn: func(ctx context.Context, id string) (*account.Account, error) {
			if !known[id] {
				return nil, mongo.ErrNoDocuments
			}
			return &account.Account{}, nil
		},
	}
}

func TestCreateOrderDefaults(t *testing.T) {
	accID := primitive.NewObjectID()
	var created *order.Order
	repo := &mockOrderRepo{
		createOrderFn: func(ctx context.Context, o *order.Order) error {
			created = o
			return nil
		},
	}
	svc := NewService(repo, existingAccounts(accID.Hex()))

	o, err := svc.Create(context.Background(), CreateInput{
		AccountID:      accID.Hex(),
		AddressReceive: "12 Nguyen Trai, Ha Noi",
		Phone:          "0912345678",
		TotalPrice:     150000,
	}, account.Actor{ID: accID.Hex(), Role: account.RoleUser})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, order.StatusPending, o.OrderStatus)
	assert.Equal(t, order.PayUnpaid, o.PayStatus)
	assert.Equal(t, order.ShippingNotShipped, o.ShippingStatus)
	assert.Equal(t, "None", o.Feedback)
	assert.False(t, o.OrderDate.IsZero())
}

func TestCreateOrderValidation(t *testing.T) {
	accID := primitive.NewObjectID()
	repo := &mockOrderRepo{
		createOrderFn: func(ctx context.Context, o *order.Order) error { return nil },
	}
	svc := NewService(repo, existingAccounts(accID.Hex()))
	actor := account.Actor{ID: accID.Hex(), Role: account.RoleUser}

	base := CreateInput{
		AccountID:      accID.Hex(),
		AddressReceive: "12 Nguyen Trai, Ha Noi",
		Phone:          "0912345678",
		TotalPrice:     150000,
	}

	t.Run("missing address", func(t *testing.T) {
		in := base
		in.AddressReceive = ""
		_, err := svc.Create(context.Background(), in, actor)
		assert.Equal(t, ErrInvalidAddress, err)
	})

	t.Run("phone not ten digits", func(t *testing.T) {
		in := base
		in.Phone = "09123"
		_, err := svc.Create(context.Background(), in, actor)
		assert.Equal(t, ErrInvalidPhone, err)
	})

	t.Run("phone with letters", func(t *testing.T) {
		in := base
		in.Phone = "09123abc78"
		_, err := svc.Create(context.Background(), in, actor)
		assert.Equal(t, ErrInvalidPhone, err)
	})

	t.Run("negative price", func(t *testing.T) {
		in := base
		in.TotalPrice = -1
		_, err := svc.Create(context.Background(), in, actor)
		assert.Equal(t, ErrInvalidPrice, err)
	})

	t.Run("malformed account id", func(t *testing.T) {
		in := base
		in.AccountID = "nothex"
		_, err := svc.Create(context.Background(), in, account.Actor{ID: "nothex", Role: account.RoleUser})
		assert.Equal(t, ErrInvalidAccountID, err)
	})

	t.Run("unknown account", func(t *testing.T) {
		other := primitive.NewObjectID().Hex()
		in := base
		in.AccountID = other
		_, err := svc.Create(context.Background(), in, account.Actor{ID: other, Role: account.RoleUser})
		assert.Equal(t, ErrAccountNotFound, err)
	})
}

func TestCreateOrderForbidden(t *testing.T) {
	accID := primitive.NewObjectID()
	svc := NewService(&mockOrderRepo{}, existingAccounts(accID.Hex()))

	_, err := svc.Create(context.Background(), CreateInput{
		AccountID:      accID.Hex(),
		AddressReceive: "12 Nguyen Trai, Ha Noi",
		Phone:          "0912345678",
	}, account.Actor{ID: primitive.NewObjectID().Hex(), Role: account.RoleUser})
	assert.Equal(t, ErrForbidden, err)
}

func TestListOrdersScoping(t *testing.T) {
	var listedAll bool
	var listedFor string
	repo := &mockOrderRepo{
		listOrdersFn: func(ctx context.Context) ([]order.Order, error) {
			listedAll = true
			return nil, nil
		},
		listOrdersByAccountFn: func(ctx context.Context, accountID string) ([]order.Order, error) {
			listedFor = accountID
			return nil, nil
		},
	}
	svc := NewService(repo, &mockAccountRepo{})

	_, err := svc.List(context.Background(), account.Actor{ID: "u1", Role: account.RoleUser})
	assert.NoError(t, err)
	assert.False(t, listedAll)
	assert.Equal(t, "u1", listedFor)

	_, err = svc.List(context.Background(), account.Actor{ID: "m1", Role: account.RoleManager})
	assert.NoError(t, err)
	assert.True(t, listedAll)
}

func TestSearchOrdersForcesOwnAccount(t *testing.T) {
	var got order.SearchFilter
	repo := &mockOrderRepo{
		searchOrdersFn: func(ctx context.Context, f order.SearchFilter) ([]order.Order, error) {
			got = f
			return nil, nil
		},
	}
	svc := NewService(repo, &mockAccountRepo{})

	other := primitive.NewObjectID().Hex()
	_, err := svc.Search(context.Background(), order.SearchFilter{AccountID: other},
		account.Actor{ID: "u1", Role: account.RoleUser})
	assert.NoError(t, err)
	assert.Equal(t, "u1", got.AccountID)

	_, err = svc.Search(context.Background(), order.SearchFilter{AccountID: other},
		account.Actor{ID: "adm", Role: account.RoleAdmin})
	assert.NoError(t, err)
	assert.Equal(t, other, got.AccountID)
}

func TestGetOrderOwnership(t *testing.T) {
	o := &order.Order{ID: primitive.NewObjectID(), AccountID: primitive.NewObjectID()}
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
	}
	svc := NewService(repo, &mockAccountRepo{})

	_, err := svc.GetByID(context.Background(), o.ID.Hex(),
		account.Actor{ID: primitive.NewObjectID().Hex(), Role: account.RoleUser})
	assert.Equal(t, ErrForbidden, err)

	got, err := svc.GetByID(context.Background(), o.ID.Hex(),
		account.Actor{ID: o.AccountID.Hex(), Role: account.RoleUser})
	assert.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestGetOrderNotFound(t *testing.T) {
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := NewService(repo, &mockAccountRepo{})

	_, err := svc.GetByID(context.Background(), "missing", account.Actor{Role: account.RoleAdmin})
	assert.Equal(t, ErrOrderNotFound, err)
}

func TestUpdateOrderPartial(t *testing.T) {
	o := &order.Order{
		ID:             primitive.NewObjectID(),
		AccountID:      primitive.NewObjectID(),
		AddressReceive: "old address",
		Phone:          "0912345678",
		TotalPrice:     150000,
		OrderStatus:    order.StatusPending,
		PayStatus:      order.PayUnpaid,
		ShippingStatus: order.ShippingNotShipped,
	}
	var saved *order.Order
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
		updateOrderFn: func(ctx context.Context, u *order.Order) error {
			saved = u
			return nil
		},
	}
	svc := NewService(repo, &mockAccountRepo{})

	newStatus := order.StatusConfirmed
	got, err := svc.Update(context.Background(), o.ID.Hex(),
		UpdateInput{OrderStatus: &newStatus},
		account.Actor{ID: o.AccountID.Hex(), Role: account.RoleUser})

	assert.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, got.OrderStatus)
	// untouched fields survive
	assert.Equal(t, "old address", saved.AddressReceive)
	assert.Equal(t, 150000.0, saved.TotalPrice)
}

func TestUpdateOrderRejectsBadPhone(t *testing.T) {
	o := &order.Order{ID: primitive.NewObjectID(), AccountID: primitive.NewObjectID()}
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
	}
	svc := NewService(repo, &mockAccountRepo{})

	bad := "123"
	_, err := svc.Update(context.Background(), o.ID.Hex(), UpdateInput{Phone: &bad},
		account.Actor{ID: o.AccountID.Hex(), Role: account.RoleUser})
	assert.Equal(t, ErrInvalidPhone, err)
}

func TestDeleteOrderOwnership(t *testing.T) {
	o := &order.Order{ID: primitive.NewObjectID(), AccountID: primitive.NewObjectID()}
	var deleted string
	repo := &mockOrderRepo{
		findOrderByIDFn: func(ctx context.Context, id string) (*order.Order, error) { return o, nil },
		deleteOrderFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	svc := NewService(repo, &mockAccountRepo{})

	err := svc.Delete(context.Background(), o.ID.Hex(),
		account.Actor{ID: primitive.NewObjectID().Hex(), Role: account.RoleUser})
	assert.Equal(t, ErrForbidden, err)
	assert.Empty(t, deleted)

	err = svc.Delete(context.Background(), o.ID.Hex(),
		account.Actor{ID: "any", Role: account.RoleAdmin})
	assert.NoError(t, err)
	assert.Equal(t, o.ID.Hex(), deleted)
}
