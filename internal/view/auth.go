package view

import (
	"context"

	"github.com/a-h/templ"
)

// LoginPage renders the login form. next is the path to return to after login.
func LoginPage(p Page, next, errMsg string) templ.Component {
	return Layout(p, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Login</h1>`)
		errorBox(h, errMsg)
		h.raw(`<form method="post" action="/login">`)
		h.raw(`<input type="hidden" name="next" value="`)
		h.text(next)
		h.raw(`">`)
		h.raw(`<label>ID <input name="login_id" required></label>`)
		h.raw(`<label>Password <input type="password" name="password" required></label>`)
		h.raw(`<button type="submit">Login</button></form>`)
	}))
}

// RegisterPage renders the sign-up form.
func RegisterPage(p Page, errMsg string) templ.Component {
	return Layout(p, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Register</h1>`)
		errorBox(h, errMsg)
		h.raw(`<form method="post" action="/register">`)
		h.raw(`<label>ID <input name="login_id" maxlength="50" required></label>`)
		h.raw(`<label>Name <input name="name" maxlength="50" required></label>`)
		h.raw(`<label>Email <input type="email" name="email" required></label>`)
		h.raw(`<label>Password <input type="password" name="password" minlength="8" required></label>`)
		h.raw(`<label>Confirm password <input type="password" name="confirm_password" required></label>`)
		h.raw(`<label>Address <input name="address"></label>`)
		h.raw(`<label>Phone <input name="phone" maxlength="15"></label>`)
		h.raw(`<button type="submit">Register</button></form>`)
	}))
}
