package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/ticketboard/internal/handler"
	"github.com/msomdec/ticketboard/internal/i18n"
	"github.com/msomdec/ticketboard/internal/queue"
	"github.com/msomdec/ticketboard/internal/repository/sqlite"
	"github.com/msomdec/ticketboard/internal/service"
)

const (
	testJWTSecret = "test-secret-for-handler-tests-0123456789"
	testPassword  = "Passw0rd!"
)

type testEnv struct {
	deps  handler.Deps
	db    *sqlite.DB
	queue *queue.Memory
}

func newTestEnv(t *testing.T) *testEnv {
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

	q := queue.NewMemory()
	return &testEnv{
		db:    db,
		queue: q,
		deps: handler.Deps{
			DB:           db,
			Auth:         service.NewAuthService(db.Users(), testJWTSecret, 4),
			Questions:    service.NewQuestionService(db.Questions(), db.Answers()),
			Answers:      service.NewAnswerService(db.Answers(), db.Questions()),
			Votes:        service.NewVoteService(db.Questions(), db.Answers()),
			Reservations: service.NewReservationService(q, time.Second),
			Tickets:      service.NewTicketService(db.Tickets(), db.Purchases()),
			Translator:   i18n.New("ko"),
		},
	}
}

func (e *testEnv) register(t *testing.T, loginID string) string {
	t.Helper()
	ctx := context.Background()
	_, err := e.deps.Auth.Register(ctx, service.Registration{
		LoginID:         loginID,
		Name:            strings.ToUpper(loginID[:1]) + loginID[1:],
		Email:           loginID + "@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	if err != nil {
		t.Fatalf("Register %s: %v", loginID, err)
	}
	token, err := e.deps.Auth.Login(ctx, loginID, testPassword)
	if err != nil {
		t.Fatalf("Login %s: %v", loginID, err)
	}
	return token
}

func TestRequireAuth_ValidJWT(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "valid")

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := handler.UserFromContext(r.Context())
		if user != nil {
			gotUser = user.Name
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(env.deps.Auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != "Valid" {
		t.Fatalf("expected user 'Valid', got %q", gotUser)
	}
}

func TestRequireAuth_MissingCookieRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/question/create/", nil)
	w := httptest.NewRecorder()

	handler.RequireAuth(env.deps.Auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?next=%2Fquestion%2Fcreate%2F" {
		t.Fatalf("unexpected Location %q", loc)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodPost, "/question/reserve_tickets", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "invalid.jwt.token"})
	w := httptest.NewRecorder()

	handler.RequireAuth(env.deps.Auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "tamper")

	tampered := token[:len(token)-2] + "xx"

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: tampered})
	w := httptest.NewRecorder()

	handler.RequireAuth(env.deps.Auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
}

func TestOptionalAuth_WithToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "optional")

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := handler.UserFromContext(r.Context()); user != nil {
			gotUser = user.LoginID
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.OptionalAuth(env.deps.Auth, inner).ServeHTTP(w, req)

	if gotUser != "optional" {
		t.Fatalf("expected user 'optional', got %q", gotUser)
	}
}

func TestOptionalAuth_WithoutToken(t *testing.T) {
	env := newTestEnv(t)

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if handler.UserFromContext(r.Context()) != nil {
			t.Fatal("expected no user in context")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.OptionalAuth(env.deps.Auth, inner).ServeHTTP(w, req)

	if !called {
		t.Fatal("inner handler should be called")
	}
}

func TestRateLimit_RejectsWithRetryAfter(t *testing.T) {
	limiter := service.NewTokenBucket(0.5, 1)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := handler.RateLimit(limiter, func(*http.Request) string { return "k" }, inner)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("first request: expected 204, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", w.Code)
	}
	if ra := w.Header().Get("Retry-After"); ra != "2" {
		t.Fatalf("expected Retry-After 2, got %q", ra)
	}
}

func TestSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	handler.SecurityHeaders(http.NotFoundHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("expected DENY, got %q", got)
	}
}
