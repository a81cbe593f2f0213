package service

import (
	"errors"
	"testing"
	"time"

	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/repository"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, repository.AdminRepository) {
	t.Helper()
	db := openServiceTestDB(t)
	if err := models.InitDefaultAdmin(db, "admin", "Boutique123"); err != nil {
		t.Fatalf("init admin failed: %v", err)
	}
	repo := repository.NewAdminRepository(db)
	return NewAuthService(testConfig(), repo), repo
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("nobody", "Boutique123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials, got %v", err)
	}

	session, err := svc.Login("admin", "Boutique123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	admin, token := session.Admin, session.Token
	if token == "" || session.ExpiresAt.IsZero() || admin.LastLoginAt == nil {
		t.Fatalf("unexpected login result: %+v", session)
	}

	claims, err := svc.ParseToken(token)
	if err != nil || claims.AdminID != admin.ID || claims.Username != "admin" {
		t.Fatalf("unexpected claims: %+v %v", claims, err)
	}
	authed, err := svc.Authenticate(token)
	if err != nil || authed.ID != admin.ID {
		t.Fatalf("authenticate failed: %v", err)
	}
}

func TestAuthServiceChangePasswordRevokesTokens(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	session, err := svc.Login("admin", "Boutique123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	admin, token := session.Admin, session.Token

	if err := svc.ChangePassword(admin.ID, "bad-old", "NewPass123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "Boutique123", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password want ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "Boutique123", "NewPass123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.Authenticate(token); err == nil {
		t.Fatalf("old token should be revoked after password change")
	}
	if _, err := svc.Login("admin", "NewPass123"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if err := svc.ChangePassword(9999, "x", "NewPass123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing admin want ErrNotFound, got %v", err)
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	other := NewAuthService(testConfig(), nil)
	other.cfg.JWT.SecretKey = "another-secret"

	token, _, err := other.IssueToken(&models.Admin{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatalf("token signed with a different secret must be rejected")
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	cfg := testConfig().Security.PasswordPolicy
	cases := map[string]string{
		"Ab1":        "error.password_min_length",
		"lowercase1": "error.password_require_upper",
		"UPPERCASE1": "error.password_require_lower",
		"NoDigitsHr": "error.password_require_number",
	}
	for password, wantKey := range cases {
		err := validatePassword(cfg, password)
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("%s: want ErrWeakPassword, got %v", password, err)
		}
		var perr PasswordRuleError
		if !errors.As(err, &perr) || perr.Key() != wantKey {
			t.Fatalf("%s: want key %s, got %v", password, wantKey, err)
		}
	}
	if err := validatePassword(cfg, "Boutique123"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, expiresAt, err := svc.IssueToken(&models.Admin{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	svc.now = func() time.Time { return expiresAt.Add(time.Minute) }
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatalf("expired token must be rejected")
	}
}
