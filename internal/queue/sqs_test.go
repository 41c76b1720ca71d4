package queue_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/msomdec/ticketboard/internal/queue"
)

type fakeSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSQSPublisher_FIFOQueue(t *testing.T) {
	client := &fakeSQS{}
	pub := queue.NewSQSPublisher(client, "https://sqs.us-east-1.amazonaws.com/123/reservations.fifo", "reservations")

	id, err := pub.Send(context.Background(), []byte(`{"uid":1}`))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if id != "msg-1" {
		t.Fatalf("expected message id msg-1, got %q", id)
	}
	if _, err := pub.Send(context.Background(), []byte(`{"uid":1}`)); err != nil {
		t.Fatalf("second Send: %v", err)
	}

	in := client.inputs[0]
	if aws.ToString(in.MessageBody) != `{"uid":1}` {
		t.Fatalf("unexpected body %q", aws.ToString(in.MessageBody))
	}
	if aws.ToString(in.MessageGroupId) != "reservations" {
		t.Fatalf("expected group id reservations, got %q", aws.ToString(in.MessageGroupId))
	}
	first := aws.ToString(client.inputs[0].MessageDeduplicationId)
	second := aws.ToString(client.inputs[1].MessageDeduplicationId)
	if first == "" || first == second {
		t.Fatalf("expected distinct deduplication ids, got %q and %q", first, second)
	}
}

func TestSQSPublisher_StandardQueue(t *testing.T) {
	client := &fakeSQS{}
	pub := queue.NewSQSPublisher(client, "https://sqs.us-east-1.amazonaws.com/123/reservations", "ignored")

	if _, err := pub.Send(context.Background(), []byte("{}")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	in := client.inputs[0]
	if in.MessageGroupId != nil || in.MessageDeduplicationId != nil {
		t.Fatal("standard queues must not carry FIFO attributes")
	}
}

func TestSQSPublisher_Error(t *testing.T) {
	boom := errors.New("connection refused")
	pub := queue.NewSQSPublisher(&fakeSQS{err: boom}, "https://example/q.fifo", "g")

	_, err := pub.Send(context.Background(), []byte("{}"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}
