package services

import (
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	s := NewAuthService(db, "access-secret", "refresh-secret")

	pair, err := s.Register("host", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pair.Token == "" || pair.RefreshToken == "" {
		t.Fatal("register returned empty tokens")
	}

	if _, err := s.Register("host", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate register: err = %v, want ErrUsernameTaken", err)
	}

	loginPair, user, err := s.Login("host", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "host" {
		t.Errorf("login user = %s, want host", user.Username)
	}

	userID, err := s.ValidateToken(loginPair.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != user.ID {
		t.Errorf("token user id = %d, want %d", userID, user.ID)
	}

	if _, _, err := s.Login("host", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := s.Login("ghost", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshToken(t *testing.T) {
	db := openTestDB(t)
	s := NewAuthService(db, "access-secret", "refresh-secret")

	pair, err := s.Register("host", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := s.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := s.ValidateToken(token); err != nil {
		t.Errorf("refreshed access token invalid: %v", err)
	}

	// Tokens are not interchangeable across secrets.
	if _, err := s.Refresh(pair.Token); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := s.ValidateToken(pair.RefreshToken); err == nil {
		t.Error("refresh token accepted as access token")
	}
}
