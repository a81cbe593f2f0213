package service

import (
	"errors"
	"testing"
	"time"

	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/repository"
)

func newUserAuthServiceForTest(t *testing.T) *UserAuthService {
	t.Helper()
	return NewUserAuthService(testConfig(), repository.NewUserRepository(openServiceTestDB(t)))
}

func registerAna(t *testing.T, svc *UserAuthService) *UserSession {
	t.Helper()
	session, err := svc.Register(RegisterUserInput{
		Email:     " Ana@Example.com ",
		Password:  "Boutique123",
		FirstName: "Ana",
		LastName:  "Souza",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return session
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"Ana@Example.com":   "ana@example.com",
		" bia@example.com ": "bia@example.com",
		"":                  "",
		"not-an-email":      "",
		"Ana <ana@x.com>":   "",
	}
	for input, want := range cases {
		got, err := NormalizeEmail(input)
		if want == "" {
			if !errors.Is(err, ErrInvalidEmail) {
				t.Fatalf("NormalizeEmail(%q) want ErrInvalidEmail, got %q %v", input, got, err)
			}
			continue
		}
		if err != nil || got != want {
			t.Fatalf("NormalizeEmail(%q) = %q %v, want %q", input, got, err, want)
		}
	}
}

func TestUserRegisterAndLogin(t *testing.T) {
	svc := newUserAuthServiceForTest(t)
	session := registerAna(t, svc)
	if session.Token == "" || session.User.Email != "ana@example.com" || session.User.DisplayName() != "Ana Souza" {
		t.Fatalf("unexpected register session: %+v", session.User)
	}

	if _, err := svc.Register(RegisterUserInput{Email: "ana@example.com", Password: "Boutique123", FirstName: "A", LastName: "S"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists, got %v", err)
	}
	if _, err := svc.Register(RegisterUserInput{Email: "bia@example.com", Password: "Boutique123", FirstName: " ", LastName: "S"}); !errors.Is(err, ErrProfileInvalid) {
		t.Fatalf("blank first name want ErrProfileInvalid, got %v", err)
	}
	if _, err := svc.Register(RegisterUserInput{Email: "bia@example.com", Password: "short", FirstName: "Bia", LastName: "Lima"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password want ErrWeakPassword, got %v", err)
	}

	if _, err := svc.Login("ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("garbage", "Boutique123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("malformed email want ErrInvalidCredentials, got %v", err)
	}
	login, err := svc.Login("ANA@example.com", "Boutique123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	user, err := svc.Authenticate(login.Token)
	if err != nil || user.ID != session.User.ID {
		t.Fatalf("authenticate failed: %+v %v", user, err)
	}
}

func TestUserTokenIsolatedFromAdminToken(t *testing.T) {
	svc := newUserAuthServiceForTest(t)
	session := registerAna(t, svc)

	admins := NewAuthService(testConfig(), repository.NewAdminRepository(openServiceTestDB(t)))
	adminToken, _, err := admins.IssueToken(&models.Admin{ID: session.User.ID, Username: "ana"})
	if err != nil {
		t.Fatalf("issue admin token failed: %v", err)
	}
	if _, err := svc.Authenticate(adminToken); err == nil {
		t.Fatalf("admin token must not authenticate a customer")
	}
	if _, err := admins.ParseToken(session.Token); err == nil {
		t.Fatalf("customer token must not parse as an admin token")
	}
}

func TestUserChangePasswordRevokesTokens(t *testing.T) {
	svc := newUserAuthServiceForTest(t)
	session := registerAna(t, svc)

	if err := svc.ChangePassword(session.User.ID, "wrong", "Boutique456"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(session.User.ID, "Boutique123", "Boutique456"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.Authenticate(session.Token); err == nil {
		t.Fatalf("old token must be revoked")
	}
	if _, err := svc.Login("ana@example.com", "Boutique456"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if err := svc.ChangePassword(999, "x", "Boutique789"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user want ErrNotFound, got %v", err)
	}
}

func TestUserTokenExpires(t *testing.T) {
	svc := newUserAuthServiceForTest(t)
	session := registerAna(t, svc)
	svc.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	if _, err := svc.Authenticate(session.Token); err == nil {
		t.Fatalf("expired token must be rejected")
	}
}
