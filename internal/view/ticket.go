package view

import (
	"context"

	"github.com/a-h/templ"
	"github.com/msomdec/ticketboard/internal/domain"
)

// TicketListPage renders the ticket catalog with the reservation form.
func TicketListPage(p Page, tickets []domain.Ticket, errMsg string) templ.Component {
	return Layout(p, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Tickets</h1>`)
		errorBox(h, errMsg)

		if len(tickets) == 0 {
			h.raw(`<p class="empty">No tickets on sale.</p>`)
		} else {
			h.raw(`<table><thead><tr><th>Event</th><th>Entry</th><th>Price</th><th>Quantity</th></tr></thead><tbody>`)
			for _, t := range tickets {
				h.raw(`<tr><td>`)
				h.text(t.Name)
				h.raw(`</td><td>`)
				h.text(formatTime(t.EntryAt))
				h.rawf(`</td><td>%d</td><td>%d</td></tr>`, t.Price, t.TotalQuantity)
			}
			h.raw(`</tbody></table>`)
		}

		if p.UserName == "" {
			h.raw(`<p><a href="/login?next=/tickets/">Log in</a> to reserve tickets.</p>`)
			return
		}

		h.raw(`<h2>Reserve</h2><form method="post" action="/question/reserve_tickets">`)
		h.raw(`<label>Event <input name="event_type" list="events" required></label><datalist id="events">`)
		for _, t := range tickets {
			h.raw(`<option value="`)
			h.text(t.Name)
			h.raw(`">`)
		}
		h.raw(`</datalist>`)
		h.raw(`<label>Time <input type="datetime-local" name="event_time" required></label>`)
		h.raw(`<label>Count <input type="number" name="ticket_count" min="1" max="250" value="1" required></label>`)
		h.raw(`<input type="hidden" name="reservation_status" value="pending">`)
		h.raw(`<button type="submit">Reserve</button></form>`)
	}))
}

// PurchaseHistoryPage renders the viewer's purchase history.
func PurchaseHistoryPage(p Page, history []domain.PurchaseHistory) templ.Component {
	return Layout(p, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Purchases</h1>`)
		if len(history) == 0 {
			h.raw(`<p class="empty">No purchases yet. Reservations appear here once processed.</p>`)
			return
		}
		h.raw(`<table><thead><tr><th>Ticket</th><th>Purchased</th><th>Quantity</th><th>Total</th></tr></thead><tbody>`)
		for _, ph := range history {
			h.raw(`<tr><td>`)
			h.text(ph.TicketName)
			h.raw(`</td><td>`)
			h.text(formatTime(ph.PurchasedAt))
			h.rawf(`</td><td>%d</td><td>%d</td></tr>`, ph.Quantity, ph.TotalPrice)
		}
		h.raw(`</tbody></table>`)
	}))
}
