package middleware

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/golang-jwt/jwt/v4"
)

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (w gzipResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func GzipHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") == "gzip" {
			gzr, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(rw, "Failed to create gzip reader", http.StatusBadRequest)
				return
			}
			defer gzr.Close()
			r.Body = io.NopCloser(gzr)
		}

		if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			rw.Header().Set("Content-Encoding", "gzip")
			gzw := gzip.NewWriter(rw)
			defer gzw.Close()

			gzrw := gzipResponseWriter{Writer: gzw, ResponseWriter: rw}
			next.ServeHTTP(gzrw, r)
		} else {
			next.ServeHTTP(rw, r)
		}
	})
}

// Claims mirrors the token payload issued at login.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type ctxKeyActor struct{}

// AccountRepository is what the auth middleware needs from the store.
type AccountRepository interface {
	FindAccountByID(ctx context.Context, id string) (*account.Account, error)
}

// JWTMiddleware authenticates the bearer token, re-checks the account and
// its status against the store, and attaches the Actor to the context.
func JWTMiddleware(secret []byte, repo AccountRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "authentication token required", http.StatusUnauthorized)
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			acc, err := repo.FindAccountByID(r.Context(), claims.ID)
			if err != nil {
				http.Error(w, "invalid token: account not found", http.StatusUnauthorized)
				return
			}
			if acc.Status != account.StatusActive {
				http.Error(w, "account is inactive or suspended", http.StatusForbidden)
				return
			}

			actor := account.Actor{ID: acc.ID.Hex(), Username: acc.Username, Role: acc.Role}
			ctx := context.WithValue(r.Context(), ctxKeyActor{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireElevated gates admin/manager-only routes; it must run after
// JWTMiddleware.
func RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ActorFromContext(r.Context()).Elevated() {
			http.Error(w, "access denied: not authorized", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ActorFromContext(ctx context.Context) account.Actor {
	actor, _ := ctx.Value(ctxKeyActor{}).(account.Actor)
	return actor
}

func ContextWithActor(ctx context.Context, actor account.Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor{}, actor)
}
