// Package session persists the single bearer token the app holds between
// runs. The token lives in one file under the user's config directory; it is
// written on login and removed on logout.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store is a file-backed holder for one bearer token.
type Store struct {
	path string
}

// NewStore returns a store persisting to the given file path. The parent
// directory is created on first Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token returns the stored token, or an empty string when none is stored.
func (s *Store) Token() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save persists the token, replacing any previous one. Mode 0600: the token
// is a credential.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Expiry returns the expiration time embedded in a JWT bearer token. The
// signature is not verified; the backend does that on every request. This
// only exists so a restart with a token that is already past its exp claim
// goes straight to the login screen instead of failing on the first fetch.
// ok is false when the token is not a JWT or carries no exp claim.
func Expiry(token string) (expiry time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
