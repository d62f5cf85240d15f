package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func Test_Store(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "billterm", "token"))

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token() on empty store error = %v", err)
	}
	if token != "" {
		t.Errorf("Token() on empty store = %q, want empty", token)
	}

	if err = store.Save("tok123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if token, err = store.Token(); err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "tok123" {
		t.Errorf("Token() = %q, want tok123", token)
	}

	if err = store.Save("tok456"); err != nil {
		t.Fatalf("Save() replacing error = %v", err)
	}
	if token, _ = store.Token(); token != "tok456" {
		t.Errorf("Token() after replace = %q, want tok456", token)
	}

	if err = store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if token, _ = store.Token(); token != "" {
		t.Errorf("Token() after Clear = %q, want empty", token)
	}
	// clearing twice must not fail.
	if err = store.Clear(); err != nil {
		t.Errorf("Clear() on empty store error = %v", err)
	}
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return token
}

func Test_Expiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tests := []struct {
		name   string
		token  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "token with exp claim",
			token:  signedToken(t, jwt.MapClaims{"exp": exp.Unix(), "role": "admin"}),
			want:   exp,
			wantOK: true,
		},
		{
			name:   "token without exp claim",
			token:  signedToken(t, jwt.MapClaims{"role": "admin"}),
			wantOK: false,
		},
		{
			name:   "not a JWT",
			token:  "opaque-session-token",
			wantOK: false,
		},
		{
			name:   "empty token",
			token:  "",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Expiry(tt.token)
			if ok != tt.wantOK {
				t.Fatalf("Expiry() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Expiry() = %v, want %v", got, tt.want)
			}
		})
	}
}
