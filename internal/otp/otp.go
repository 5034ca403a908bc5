// Package otp keeps one-time password state in redis with explicit expiry,
// keyed by email. Codes are single-use: a successful verification consumes
// the key.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(addr, password string, db int, ttl time.Duration) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{client: client, ttl: ttl}
}

// Generate returns a 6-digit code.
func (s *Store) Generate() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

func (s *Store) Put(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, key(email), code, s.ttl).Err()
}

// Verify reports whether code matches the stored one and deletes it on
// success. A missing or expired key is a plain mismatch, not an error.
func (s *Store) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, key(email)).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func key(email string) string {
	return "otp:" + email
}
