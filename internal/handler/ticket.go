package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/ticketboard/internal/domain"
	"github.com/msomdec/ticketboard/internal/i18n"
	"github.com/msomdec/ticketboard/internal/service"
	"github.com/msomdec/ticketboard/internal/view"
)

// TicketHandler serves the ticket catalog, reservation submission and the
// purchase history page.
type TicketHandler struct {
	tickets      *service.TicketService
	reservations *service.ReservationService
	pages        pages
}

// HandleList renders the catalog with the reservation form.
// GET /tickets/
func (h *TicketHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.tickets.List(r.Context())
	if err != nil {
		slog.Error("list tickets", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.TicketListPage(h.pages.page(w, r, "Tickets"), tickets, "").Render(r.Context(), w)
}

// HandleReserve validates a reservation and enqueues it for ticket issuance.
// Nothing is stored locally; the purchase record is written downstream.
// POST /question/reserve_tickets
func (h *TicketHandler) HandleReserve(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	req := domain.ReservationRequest{
		EventType:         r.FormValue("event_type"),
		EventTime:         r.FormValue("event_time"),
		TicketCount:       r.FormValue("ticket_count"),
		ReservationStatus: r.FormValue("reservation_status"),
	}

	_, err := h.reservations.Submit(r.Context(), user.ID, req)
	switch {
	case err == nil:
		setFlash(w, i18n.ReservationAccepted)
		http.Redirect(w, r, "/", http.StatusFound)
	case errors.Is(err, domain.ErrInvalidInput):
		h.renderReservationError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrDispatchTimeout):
		h.renderReservationError(w, r, http.StatusGatewayTimeout, "The reservation service did not respond. Please try again.")
	case errors.Is(err, domain.ErrDispatchFailed):
		h.renderReservationError(w, r, http.StatusBadGateway, "The reservation could not be submitted. Please try again.")
	default:
		slog.Error("submit reservation", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *TicketHandler) renderReservationError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	tickets, err := h.tickets.List(r.Context())
	if err != nil {
		slog.Error("list tickets", "error", err)
	}
	pg := h.pages.page(w, r, "Tickets")
	w.WriteHeader(status)
	view.TicketListPage(pg, tickets, msg).Render(r.Context(), w)
}

// HandlePurchases lists the current user's purchase history.
// GET /purchases/
func (h *TicketHandler) HandlePurchases(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	history, err := h.tickets.PurchaseHistory(r.Context(), user.ID)
	if err != nil {
		slog.Error("list purchases", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.PurchaseHistoryPage(h.pages.page(w, r, "Purchases"), history).Render(r.Context(), w)
}
