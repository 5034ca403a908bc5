package account

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dnminh/fashionshop-backend/internal/middleware"
	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountExists    = errors.New("username or email already exists")
	ErrAccountNotFound  = errors.New("account not found")
	ErrInvalidCreds     = errors.New("invalid username or password")
	ErrAccountInactive  = errors.New("account is inactive or suspended")
	ErrForbidden        = errors.New("access denied")
	ErrMissingFields    = errors.New("username, email, and password are required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidOTP       = errors.New("invalid or expired OTP")
	ErrEmailRegistered  = errors.New("email already registered")
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const defaultImage = "https://example.com/default-profile-image.jpg"

type Service struct {
	repo      AccountRepository
	otp       OTPStore
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewService(repo AccountRepository, otp OTPStore, jwtSecret []byte, jwtTTL time.Duration) *Service {
	return &Service{repo: repo, otp: otp, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

type RegisterInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*account.Account, string, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, "", ErrMissingFields
	}
	if len(in.Password) < 8 {
		return nil, "", ErrPasswordTooShort
	}
	if _, err := s.repo.FindAccountByUsernameOrEmail(ctx, in.Username, in.Email); err == nil {
		return nil, "", ErrAccountExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	a := &account.Account{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		PasswordHash: string(hash),
		Image:        in.Image,
		Role:         account.RoleUser,
		Status:       account.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
	if a.Image == "" {
		a.Image = defaultImage
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(a)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*account.Account, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrInvalidCreds
	}
	a, err := s.repo.FindAccountByUsername(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	if a.Status != account.StatusActive {
		return nil, "", ErrAccountInactive
	}
	token, err := s.issueToken(a)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// RequestRegisterOTP issues a code for an email that is not yet registered.
// Delivery is the caller's concern; the code is returned.
func (s *Service) RequestRegisterOTP(ctx context.Context, email string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	if _, err := s.repo.FindAccountByEmail(ctx, email); err == nil {
		return "", ErrEmailRegistered
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}
	return s.storeOTP(ctx, email)
}

// RequestPasswordResetOTP issues a code for an existing account's email.
func (s *Service) RequestPasswordResetOTP(ctx context.Context, email string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	if _, err := s.repo.FindAccountByEmail(ctx, email); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrAccountNotFound
		}
		return "", err
	}
	return s.storeOTP(ctx, email)
}

func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return ErrInvalidOTP
	}
	ok, err := s.otp.Verify(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}
	a, err := s.repo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return s.repo.UpdateAccount(ctx, a)
}

func (s *Service) List(ctx context.Context) ([]account.Account, error) {
	return s.repo.ListAccounts(ctx)
}

// Account-level access is admin-or-self; managers do not administer
// accounts.
func canAdminister(actor account.Actor, id string) bool {
	return actor.Role == account.RoleAdmin || actor.ID == id
}

func (s *Service) GetByID(ctx context.Context, id string, actor account.Actor) (*account.Account, error) {
	if !canAdminister(actor, id) {
		return nil, ErrForbidden
	}
	a, err := s.repo.FindAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

type UpdateInput struct {
	Username *string         `json:"username"`
	Name     *string         `json:"name"`
	Email    *string         `json:"email"`
	Phone    *string         `json:"phone"`
	Address  *string         `json:"address"`
	Password *string         `json:"password"`
	Image    *string         `json:"image"`
	Role     *account.Role   `json:"role"`
	Status   *account.Status `json:"acc_status"`
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput, actor account.Actor) (*account.Account, error) {
	if !canAdminister(actor, id) {
		return nil, ErrForbidden
	}
	a, err := s.repo.FindAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if in.Username != nil || in.Email != nil {
		username, email := a.Username, a.Email
		if in.Username != nil {
			username = *in.Username
		}
		if in.Email != nil {
			email = *in.Email
		}
		if other, err := s.repo.FindAccountByUsernameOrEmail(ctx, username, email); err == nil && other.ID != a.ID {
			return nil, ErrAccountExists
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		a.Username = username
		a.Email = email
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Phone != nil {
		a.Phone = *in.Phone
	}
	if in.Address != nil {
		a.Address = *in.Address
	}
	if in.Image != nil {
		a.Image = *in.Image
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = string(hash)
	}
	// role and status changes stay with admins
	if actor.Role == account.RoleAdmin {
		if in.Role != nil {
			a.Role = *in.Role
		}
		if in.Status != nil {
			a.Status = *in.Status
		}
	}

	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string, actor account.Actor) error {
	if !canAdminister(actor, id) {
		return ErrForbidden
	}
	if _, err := s.repo.FindAccountByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return err
	}
	return s.repo.DeleteAccount(ctx, id)
}

func (s *Service) issueToken(a *account.Account) (string, error) {
	now := time.Now().UTC()
	claims := middleware.Claims{
		ID:       a.ID.Hex(),
		Username: a.Username,
		Role:     string(a.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *Service) storeOTP(ctx context.Context, email string) (string, error) {
	code := s.otp.Generate()
	if err := s.otp.Put(ctx, email, code); err != nil {
		return "", err
	}
	return code, nil
}
