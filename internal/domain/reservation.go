package domain

// ReservationRequest carries the raw reservation form fields.
type ReservationRequest struct {
	EventType         string
	EventTime         string
	TicketCount       string
	ReservationStatus string
}

// ReservationMessage is the canonical queue payload. Field order matches the
// wire shape consumers expect.
type ReservationMessage struct {
	EventType         string `json:"event_type"`
	EventTime         string `json:"event_time"`
	TicketCount       string `json:"ticket_count"`
	ReservationStatus string `json:"reservation_status"`
	UID               int64  `json:"uid"`
}
