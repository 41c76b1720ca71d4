package handler

import (
	"net/http"

	"github.com/msomdec/ticketboard/internal/i18n"
	"github.com/msomdec/ticketboard/internal/view"
)

const flashCookieName = "flash"

// setFlash stores a message key for the next rendered page. Only keys travel
// in the cookie; text is resolved per request locale when it is shown.
func setFlash(w http.ResponseWriter, key string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending message key and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return cookie.Value
}

// pages builds the shared page chrome for handlers.
type pages struct {
	tr *i18n.Translator
}

func (p pages) page(w http.ResponseWriter, r *http.Request, title string) view.Page {
	pg := view.Page{Title: title}
	if user := UserFromContext(r.Context()); user != nil {
		pg.UserName = user.Name
	}
	if key := popFlash(w, r); key != "" {
		pg.Flash = p.tr.Translate(r.Header.Get("Accept-Language"), key)
	}
	return pg
}

// redirectWithFlash is the recovery path for rejected actions: the user lands
// back on a page that shows why.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, key, target string) {
	setFlash(w, key)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
