package api

import (
	"errors"
	"testing"
	"time"

	"github.com/lexhours/lexhours/internal/types"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	user := &types.User{ID: 42, Username: "zhang.wei", Role: "admin"}

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatal(err)
	}

	identity, err := tm.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if identity.UserID != 42 || identity.Username != "zhang.wei" || identity.Role != "admin" {
		t.Errorf("Unexpected identity: %+v", identity)
	}
	if !identity.IsAdmin() {
		t.Error("Expected admin identity")
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	user := &types.User{ID: 1, Username: "u", Role: "user"}

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		tm    *TokenManager
		token string
	}{
		{"empty", tm, ""},
		{"garbage", tm, "not-a-token"},
		{"wrong_secret", NewTokenManager("other-secret", time.Hour), token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.tm.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenManager_Expiry(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute)
	user := &types.User{ID: 1, Username: "u", Role: "user"}

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tm.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected expired token to be rejected, got %v", err)
	}
}
