package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"immunotrack/internal/models"
)

const defaultDispatchTimeout = 10 * time.Second

// snsAPI is the subset of the SNS client used here, abstracted for tests.
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNS publishes alert notifications to a topic. Email and SMS subscribers
// are managed on the topic itself, outside this process.
type SNS struct {
	client   snsAPI
	topicARN string
	timeout  time.Duration
}

// NewSNS resolves AWS credentials from the default chain (env, shared
// config, instance role) and returns a topic-bound notifier.
func NewSNS(ctx context.Context, topicARN string, timeout time.Duration) (*SNS, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &SNS{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
		timeout:  timeout,
	}, nil
}

// Dispatch publishes the alert once. The plain-text body goes in the message
// itself (compatible with email subscriptions); the HTML rendering travels
// as a message attribute for subscribers that can use it.
func (n *SNS) Dispatch(ctx context.Context, a models.Alert) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(Subject(a)),
		Message:  aws.String(RenderText(a)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"severity": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(a.Severity)),
			},
			"alert_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(a.Type)),
			},
			"html": {
				DataType:    aws.String("String"),
				StringValue: aws.String(RenderHTML(a)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
