package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/ticketboard/internal/domain"
	"github.com/msomdec/ticketboard/internal/service"
	"github.com/msomdec/ticketboard/internal/view"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	auth         *service.AuthService
	pages        pages
	cookieSecure bool
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	view.LoginPage(h.pages.page(w, r, "Login"), next, "").Render(r.Context(), w)
}

// HandleLogin processes the login form and sets the auth cookie.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	loginID := r.FormValue("login_id")
	password := r.FormValue("password")
	next := safeNext(r.FormValue("next"))

	token, err := h.auth.Login(r.Context(), loginID, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			pg := h.pages.page(w, r, "Login")
			w.WriteHeader(http.StatusUnauthorized)
			view.LoginPage(pg, next, "Invalid ID or password.").Render(r.Context(), w)
			return
		}
		slog.Error("login user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(authCookieMaxAge.Seconds()),
	})

	http.Redirect(w, r, next, http.StatusSeeOther)
}

// HandleRegisterPage renders the sign-up form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	view.RegisterPage(h.pages.page(w, r, "Register"), "").Render(r.Context(), w)
}

// HandleRegister creates an account and sends the user to the login page.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	reg := service.Registration{
		LoginID:         r.FormValue("login_id"),
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
		Address:         r.FormValue("address"),
		Phone:           r.FormValue("phone"),
	}

	if _, err := h.auth.Register(r.Context(), reg); err != nil {
		var msg string
		switch {
		case errors.Is(err, domain.ErrDuplicateLoginID):
			msg = "That ID is already taken."
		case errors.Is(err, domain.ErrDuplicateEmail):
			msg = "An account with that email already exists."
		case errors.Is(err, domain.ErrInvalidInput):
			msg = err.Error()
		default:
			slog.Error("register user", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		pg := h.pages.page(w, r, "Register")
		w.WriteHeader(http.StatusUnprocessableEntity)
		view.RegisterPage(pg, msg).Render(r.Context(), w)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLogout clears the auth cookie.
// POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
