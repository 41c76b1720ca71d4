package service_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/msomdec/ticketboard/internal/domain"
	"github.com/msomdec/ticketboard/internal/repository/sqlite"
	"github.com/msomdec/ticketboard/internal/service"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests-000"
	testPassword  = "Passw0rd!"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), testJWTSecret, 4), db
}

func registration(loginID string) service.Registration {
	return service.Registration{
		LoginID:         loginID,
		Name:            "Name " + loginID,
		Email:           fmt.Sprintf("%s@example.com", loginID),
		Password:        testPassword,
		ConfirmPassword: testPassword,
	}
}

func seedUserForTest(t *testing.T, db *sqlite.DB, loginID string) int64 {
	t.Helper()
	user := &domain.User{
		LoginID:      loginID,
		Name:         "Name " + loginID,
		Email:        loginID + "@example.com",
		PasswordHash: "unused",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)

	user, err := auth.Register(context.Background(), registration("newbie"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.PasswordHash == testPassword {
		t.Fatal("password must be stored hashed")
	}
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, registration("dup")); err != nil {
		t.Fatalf("first register: %v", err)
	}

	again := registration("dup")
	again.Email = "other@example.com"
	if _, err := auth.Register(ctx, again); !errors.Is(err, domain.ErrDuplicateLoginID) {
		t.Fatalf("expected ErrDuplicateLoginID, got %v", err)
	}

	sameEmail := registration("another")
	sameEmail.Email = "dup@example.com"
	if _, err := auth.Register(ctx, sameEmail); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_PasswordPolicy(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	for _, pw := range []string{"Sh0rt!", "password1!", "PASSWORD1!", "Password!!", "Password12"} {
		reg := registration("weak")
		reg.Password = pw
		reg.ConfirmPassword = pw
		if _, err := auth.Register(ctx, reg); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("password %q: expected ErrInvalidInput, got %v", pw, err)
		}
	}
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	auth, _ := newTestAuthService(t)

	reg := registration("mismatch")
	reg.ConfirmPassword = "Different1!"
	if _, err := auth.Register(context.Background(), reg); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, registration("login"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := auth.Login(ctx, "login", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, userID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, registration("wrongpw")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := auth.Login(ctx, "wrongpw", "Wrong0ne!"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := auth.Login(ctx, "ghost", testPassword); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	auth, _ := newTestAuthService(t)

	if _, err := auth.ValidateToken("not-a-jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
