package view

import (
	"context"

	"github.com/a-h/templ"
)

// Page carries the chrome shared by every page.
type Page struct {
	Title    string
	UserName string // empty when not logged in
	Flash    string
}

// Layout wraps body in the site frame with navigation and the flash banner.
func Layout(p Page, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="ko"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"></script>`)
		h.raw(`<title>`)
		h.text(p.Title)
		h.raw(`</title></head><body><nav>`)
		h.raw(`<a href="/">Home</a> <a href="/question/list/">Questions</a> <a href="/tickets/">Tickets</a> `)
		if p.UserName != "" {
			h.raw(`<a href="/purchases/">Purchases</a> <span class="user">`)
			h.text(p.UserName)
			h.raw(`</span> <form method="post" action="/logout" class="inline"><button type="submit">Logout</button></form>`)
		} else {
			h.raw(`<a href="/login">Login</a> <a href="/register">Register</a>`)
		}
		h.raw(`</nav>`)
		if p.Flash != "" {
			h.raw(`<div class="flash" role="alert">`)
			h.text(p.Flash)
			h.raw(`</div>`)
		}
		h.raw(`<main>`)
		h.render(ctx, body)
		h.raw(`</main></body></html>`)
	})
}

// HomePage renders the landing page.
func HomePage(p Page) templ.Component {
	return Layout(p, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Ticketboard</h1><p>Ask questions about events and reserve tickets.</p>`)
		h.raw(`<p><a href="/question/list/">Browse questions</a> · <a href="/tickets/">Reserve tickets</a></p>`)
	}))
}

func errorBox(h *htmlWriter, msg string) {
	if msg == "" {
		return
	}
	h.raw(`<div class="error" role="alert">`)
	h.text(msg)
	h.raw(`</div>`)
}
