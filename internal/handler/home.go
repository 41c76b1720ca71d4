package handler

import (
	"net/http"

	"github.com/msomdec/ticketboard/internal/view"
)

// HomeHandler renders the landing page, which also receives the flash set by
// a successful reservation.
type HomeHandler struct {
	pages pages
}

// HandleHome renders the home page. Unknown paths fall through to 404.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	view.HomePage(h.pages.page(w, r, "Ticketboard")).Render(r.Context(), w)
}
