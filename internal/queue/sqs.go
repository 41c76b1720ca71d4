package queue

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
)

// SendMessageAPI is the slice of the SQS client the publisher needs.
type SendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher sends message bodies to a single SQS queue. FIFO queues
// (URL ending in ".fifo") get a message group and a fresh deduplication id
// on every send, so resubmitting the same form yields a new message.
type SQSPublisher struct {
	client   SendMessageAPI
	queueURL string
	groupID  string
	fifo     bool
}

// NewSQSPublisher creates a publisher around an existing client.
func NewSQSPublisher(client SendMessageAPI, queueURL, groupID string) *SQSPublisher {
	return &SQSPublisher{
		client:   client,
		queueURL: queueURL,
		groupID:  groupID,
		fifo:     strings.HasSuffix(queueURL, ".fifo"),
	}
}

// DialSQS loads the default AWS credential chain for region and returns a
// publisher for queueURL.
func DialSQS(ctx context.Context, region, queueURL, groupID string) (*SQSPublisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSQSPublisher(sqs.NewFromConfig(cfg), queueURL, groupID), nil
}

// Send implements domain.MessageQueue.
func (p *SQSPublisher) Send(ctx context.Context, body []byte) (string, error) {
	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	}
	if p.fifo {
		input.MessageGroupId = aws.String(p.groupID)
		input.MessageDeduplicationId = aws.String(uuid.NewString())
	}

	out, err := p.client.SendMessage(ctx, input)
	if err != nil {
		return "", fmt.Errorf("sqs send message: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}
