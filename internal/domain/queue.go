package domain

import "context"

// MessageQueue sends a message body to an external durable FIFO queue.
// Send returns once the queue service has accepted the message; consumer
// processing is not observed.
type MessageQueue interface {
	Send(ctx context.Context, body []byte) (messageID string, err error)
}
