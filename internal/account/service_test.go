package account

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/dnminh/fashionshop-backend/internal/middleware"
	"github.com/dnminh/fashionshop-backend/internal/types/account"
)

// stubAccountRepo keeps accounts in memory, indexed by username and email
// the way the unique indexes would enforce it.
type stubAccountRepo struct {
	byID map[string]*account.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*account.Account)}
}

func (r *stubAccountRepo) CreateAccount(ctx context.Context, a *account.Account) error {
	a.ID = primitive.NewObjectID()
	r.byID[a.ID.Hex()] = a
	return nil
}

func (r *stubAccountRepo) FindAccountByID(ctx context.Context, id string) (*account.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *a
	return &cp, nil
}

func (r *stubAccountRepo) FindAccountByUsername(ctx context.Context, username string) (*account.Account, error) {
	for _, a := range r.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *stubAccountRepo) FindAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	for _, a := range r.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *stubAccountRepo) FindAccountByUsernameOrEmail(ctx context.Context, username, email string) (*account.Account, error) {
	for _, a := range r.byID {
		if a.Username == username || a.Email == email {
			return a, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *stubAccountRepo) ListAccounts(ctx context.Context) ([]account.Account, error) {
	out := make([]account.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAccountRepo) UpdateAccount(ctx context.Context, a *account.Account) error {
	if _, ok := r.byID[a.ID.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *a
	r.byID[a.ID.Hex()] = &cp
	return nil
}

func (r *stubAccountRepo) DeleteAccount(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.byID, id)
	return nil
}

// stubOTPStore hands out a fixed code and remembers what was stored.
type stubOTPStore struct {
	stored map[string]string
}

func newStubOTPStore() *stubOTPStore {
	return &stubOTPStore{stored: make(map[string]string)}
}

func (s *stubOTPStore) Generate() string { return "123456" }

func (s *stubOTPStore) Put(ctx context.Context, email, code string) error {
	s.stored[email] = code
	return nil
}

func (s *stubOTPStore) Verify(ctx context.Context, email, code string) (bool, error) {
	got, ok := s.stored[email]
	if !ok || got != code {
		return false, nil
	}
	delete(s.stored, email)
	return true, nil
}

func newTestService(repo *stubAccountRepo, otp *stubOTPStore) *Service {
	return NewService(repo, otp, []byte("testsecret"), time.Hour)
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username: "minh",
		Name:     "Minh Nguyen",
		Email:    "minh@example.com",
		Phone:    "0912345678",
		Password: "password123",
	}
}

func TestRegister(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestService(repo, newStubOTPStore())

	t.Run("successful registration", func(t *testing.T) {
		a, token, err := svc.Register(context.Background(), validRegistration())
		assert.NoError(t, err)
		assert.Equal(t, account.RoleUser, a.Role)
		assert.Equal(t, account.StatusActive, a.Status)
		assert.Equal(t, defaultImage, a.Image)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("password123")))

		claims := &middleware.Claims{}
		_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte("testsecret"), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, a.ID.Hex(), claims.ID)
		assert.Equal(t, "minh", claims.Username)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		in := validRegistration()
		in.Email = "other@example.com"
		_, _, err := svc.Register(context.Background(), in)
		assert.Equal(t, ErrAccountExists, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		in := validRegistration()
		in.Username = "someoneelse"
		_, _, err := svc.Register(context.Background(), in)
		assert.Equal(t, ErrAccountExists, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		in := validRegistration()
		in.Email = ""
		_, _, err := svc.Register(context.Background(), in)
		assert.Equal(t, ErrMissingFields, err)
	})

	t.Run("short password", func(t *testing.T) {
		in := validRegistration()
		in.Username = "short"
		in.Email = "short@example.com"
		in.Password = "1234567"
		_, _, err := svc.Register(context.Background(), in)
		assert.Equal(t, ErrPasswordTooShort, err)
	})
}

func TestLogin(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestService(repo, newStubOTPStore())
	registered, _, err := svc.Register(context.Background(), validRegistration())
	assert.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		a, token, err := svc.Login(context.Background(), "minh", "password123")
		assert.NoError(t, err)
		assert.Equal(t, registered.ID, a.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "minh", "wrongpass")
		assert.Equal(t, ErrInvalidCreds, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "ghost", "password123")
		assert.Equal(t, ErrInvalidCreds, err)
	})

	t.Run("suspended account", func(t *testing.T) {
		repo.byID[registered.ID.Hex()].Status = account.StatusSuspended
		_, _, err := svc.Login(context.Background(), "minh", "password123")
		assert.Equal(t, ErrAccountInactive, err)
		repo.byID[registered.ID.Hex()].Status = account.StatusActive
	})
}

func TestRegisterOTPFlow(t *testing.T) {
	repo := newStubAccountRepo()
	otp := newStubOTPStore()
	svc := newTestService(repo, otp)

	code, err := svc.RequestRegisterOTP(context.Background(), "new@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "123456", code)

	// single use: first verify succeeds, replay fails
	assert.NoError(t, svc.VerifyOTP(context.Background(), "new@example.com", code))
	assert.Equal(t, ErrInvalidOTP, svc.VerifyOTP(context.Background(), "new@example.com", code))

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := svc.RequestRegisterOTP(context.Background(), "not-an-email")
		assert.Equal(t, ErrInvalidEmail, err)
	})

	t.Run("rejects registered email", func(t *testing.T) {
		_, _, err := svc.Register(context.Background(), validRegistration())
		assert.NoError(t, err)
		_, err = svc.RequestRegisterOTP(context.Background(), "minh@example.com")
		assert.Equal(t, ErrEmailRegistered, err)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	repo := newStubAccountRepo()
	otp := newStubOTPStore()
	svc := newTestService(repo, otp)
	_, _, err := svc.Register(context.Background(), validRegistration())
	assert.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.RequestPasswordResetOTP(context.Background(), "ghost@example.com")
		assert.Equal(t, ErrAccountNotFound, err)
	})

	code, err := svc.RequestPasswordResetOTP(context.Background(), "minh@example.com")
	assert.NoError(t, err)
	assert.NoError(t, svc.VerifyOTP(context.Background(), "minh@example.com", code))

	assert.NoError(t, svc.ResetPassword(context.Background(), "minh@example.com", "newpassword1"))
	_, _, err = svc.Login(context.Background(), "minh", "newpassword1")
	assert.NoError(t, err)
	_, _, err = svc.Login(context.Background(), "minh", "password123")
	assert.Equal(t, ErrInvalidCreds, err)
}

func TestAccountAccessControl(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestService(repo, newStubOTPStore())
	a, _, err := svc.Register(context.Background(), validRegistration())
	assert.NoError(t, err)

	self := account.Actor{ID: a.ID.Hex(), Role: account.RoleUser}
	stranger := account.Actor{ID: primitive.NewObjectID().Hex(), Role: account.RoleUser}
	manager := account.Actor{ID: primitive.NewObjectID().Hex(), Role: account.RoleManager}
	admin := account.Actor{ID: primitive.NewObjectID().Hex(), Role: account.RoleAdmin}

	t.Run("self and admin may read, others may not", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), a.ID.Hex(), self)
		assert.NoError(t, err)
		_, err = svc.GetByID(context.Background(), a.ID.Hex(), admin)
		assert.NoError(t, err)
		_, err = svc.GetByID(context.Background(), a.ID.Hex(), stranger)
		assert.Equal(t, ErrForbidden, err)
		// managers run the shop, not the accounts
		_, err = svc.GetByID(context.Background(), a.ID.Hex(), manager)
		assert.Equal(t, ErrForbidden, err)
	})

	t.Run("role change ignored for non-admin", func(t *testing.T) {
		role := account.RoleManager
		got, err := svc.Update(context.Background(), a.ID.Hex(), UpdateInput{Role: &role}, self)
		assert.NoError(t, err)
		assert.Equal(t, account.RoleUser, got.Role)
	})

	t.Run("admin may change role and status", func(t *testing.T) {
		role := account.RoleManager
		status := account.StatusSuspended
		got, err := svc.Update(context.Background(), a.ID.Hex(),
			UpdateInput{Role: &role, Status: &status}, admin)
		assert.NoError(t, err)
		assert.Equal(t, account.RoleManager, got.Role)
		assert.Equal(t, account.StatusSuspended, got.Status)
	})

	t.Run("delete is admin-or-self", func(t *testing.T) {
		assert.Equal(t, ErrForbidden, svc.Delete(context.Background(), a.ID.Hex(), stranger))
		assert.NoError(t, svc.Delete(context.Background(), a.ID.Hex(), admin))
		assert.Equal(t, ErrAccountNotFound, svc.Delete(context.Background(), a.ID.Hex(), admin))
	})
}
