package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/msomdec/ticketboard/internal/domain"
)

const (
	// EventTimeInputLayout is the only accepted form layout for event_time
	// (an HTML datetime-local value).
	EventTimeInputLayout = "2006-01-02T15:04"
	// EventTimeWireLayout is the event_time layout carried on queue messages.
	EventTimeWireLayout = "2006-01-02 15:04:05"

	// DefaultDispatchTimeout bounds the queue send when none is configured.
	DefaultDispatchTimeout = 5 * time.Second
)

// ReservationService validates reservation requests and hands them to the
// external queue. Nothing is persisted locally; ticket issuance and purchase
// history belong to the queue consumer.
type ReservationService struct {
	queue   domain.MessageQueue
	timeout time.Duration
}

// NewReservationService creates a new ReservationService. A non-positive
// timeout selects DefaultDispatchTimeout.
func NewReservationService(queue domain.MessageQueue, timeout time.Duration) *ReservationService {
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}
	return &ReservationService{queue: queue, timeout: timeout}
}

// Submit validates req, builds the canonical message for userID and sends it.
// Validation failures return ErrInvalidInput before the queue is contacted.
// A send that exceeds the timeout returns ErrDispatchTimeout; any other send
// failure returns ErrDispatchFailed.
func (s *ReservationService) Submit(ctx context.Context, userID int64, req domain.ReservationRequest) (*domain.ReservationMessage, error) {
	msg, err := BuildReservationMessage(userID, req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode reservation: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messageID, err := s.queue.Send(sendCtx, body)
	if err != nil {
		kind := domain.ErrDispatchFailed
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(sendCtx.Err(), context.DeadlineExceeded) {
			kind = domain.ErrDispatchTimeout
		}
		slog.Error("reservation dispatch failed",
			"uid", msg.UID,
			"event_type", msg.EventType,
			"event_time", msg.EventTime,
			"body", string(body),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", kind, err)
	}

	slog.Info("reservation enqueued",
		"uid", msg.UID,
		"event_type", msg.EventType,
		"event_time", msg.EventTime,
		"message_id", messageID,
	)
	return msg, nil
}

// BuildReservationMessage validates the form fields and converts them to the
// wire message. event_time must match EventTimeInputLayout exactly.
func BuildReservationMessage(userID int64, req domain.ReservationRequest) (*domain.ReservationMessage, error) {
	if strings.TrimSpace(req.EventType) == "" {
		return nil, fmt.Errorf("%w: event type is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.ReservationStatus) == "" {
		return nil, fmt.Errorf("%w: reservation status is required", domain.ErrInvalidInput)
	}

	eventTime, err := time.Parse(EventTimeInputLayout, req.EventTime)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed event time %q", domain.ErrInvalidInput, req.EventTime)
	}

	count, err := strconv.Atoi(req.TicketCount)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket count must be a whole number", domain.ErrInvalidInput)
	}
	if count < 1 || count > domain.MaxTicketQuantity {
		return nil, fmt.Errorf("%w: ticket count must be between 1 and %d", domain.ErrInvalidInput, domain.MaxTicketQuantity)
	}

	return &domain.ReservationMessage{
		EventType:         req.EventType,
		EventTime:         eventTime.Format(EventTimeWireLayout),
		TicketCount:       req.TicketCount,
		ReservationStatus: req.ReservationStatus,
		UID:               userID,
	}, nil
}
