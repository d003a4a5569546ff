package transport

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type principalKey struct{}

// KeyResolver resolves the caller's principal from a bearer token.
type KeyResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// PrincipalFromContext returns the authenticated principal, if present.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(principalKey{}).(string)
	return principal, ok
}

// StaticKeys accepts a fixed set of API keys. Keys are held as SHA-256
// hashes and compared in constant time.
type StaticKeys struct {
	hashes [][]byte
}

// NewStaticKeys builds a resolver for keys. The principal of the n-th key
// is "key-n", counting from 1.
func NewStaticKeys(keys ...string) *StaticKeys {
	s := &StaticKeys{}
	for _, key := range keys {
		sum := hashToken(key)
		s.hashes = append(s.hashes, sum)
	}
	return s
}

func (s *StaticKeys) Resolve(_ context.Context, token string) (string, error) {
	sum := hashToken(token)
	for i, h := range s.hashes {
		if subtle.ConstantTimeCompare(h, sum) == 1 {
			return fmt.Sprintf("key-%d", i+1), nil
		}
	}
	return "", ErrUnauthorized
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver KeyResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			principal, err := resolver.Resolve(r.Context(), token)
			if err != nil || principal == "" {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func hashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum[:])
	return out
}
