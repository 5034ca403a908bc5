package account

import (
	"context"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, a *account.Account) error
	FindAccountByID(ctx context.Context, id string) (*account.Account, error)
	FindAccountByUsername(ctx context.Context, username string) (*account.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*account.Account, error)
	FindAccountByUsernameOrEmail(ctx context.Context, username, email string) (*account.Account, error)
	ListAccounts(ctx context.Context) ([]account.Account, error)
	UpdateAccount(ctx context.Context, a *account.Account) error
	DeleteAccount(ctx context.Context, id string) error
}

// OTPStore abstracts the redis-backed one-time password store.
type OTPStore interface {
	Generate() string
	Put(ctx context.Context, email, code string) error
	Verify(ctx context.Context, email, code string) (bool, error)
}
