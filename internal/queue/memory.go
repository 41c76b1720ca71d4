package queue

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
)

// Memory is an in-process queue used for local development and tests.
// Messages are kept in send order.
type Memory struct {
	mu       sync.Mutex
	messages [][]byte
}

// NewMemory creates an empty in-memory queue.
func NewMemory() *Memory {
	return &Memory{}
}

// Send implements domain.MessageQueue.
func (m *Memory) Send(ctx context.Context, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, append([]byte(nil), body...))
	id := strconv.Itoa(len(m.messages))
	slog.Debug("message queued in memory", "message_id", id, "bytes", len(body))
	return id, nil
}

// Messages returns a copy of every body sent so far, oldest first.
func (m *Memory) Messages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]byte, len(m.messages))
	copy(out, m.messages)
	return out
}
