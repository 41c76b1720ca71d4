package queue_test

import (
	"context"
	"testing"

	"github.com/msomdec/ticketboard/internal/queue"
)

func TestMemory_PreservesOrder(t *testing.T) {
	q := queue.NewMemory()
	ctx := context.Background()

	for _, body := range []string{"a", "b", "c"} {
		if _, err := q.Send(ctx, []byte(body)); err != nil {
			t.Fatalf("Send %s: %v", body, err)
		}
	}

	msgs := q.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if string(msgs[i]) != want {
			t.Fatalf("message %d: expected %q, got %q", i, want, msgs[i])
		}
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	q := queue.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := q.Send(ctx, []byte("x")); err == nil {
		t.Fatal("expected error for canceled context")
	}
	if len(q.Messages()) != 0 {
		t.Fatal("expected nothing queued")
	}
}
