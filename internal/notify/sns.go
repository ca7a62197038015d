package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/dmitrijs2005/weighttracker/internal/awsx"
	"github.com/dmitrijs2005/weighttracker/internal/logging"
)

// PublishAPI is the part of *sns.Client used here.
type PublishAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier sends SMS through Amazon SNS direct publish.
type SNSNotifier struct {
	client PublishAPI
	log    logging.Logger
}

func NewSNSNotifier(client PublishAPI, log logging.Logger) *SNSNotifier {
	return &SNSNotifier{client: client, log: log}
}

// NewSNSNotifierFromConfig builds an SNS client from o.
func NewSNSNotifierFromConfig(ctx context.Context, o awsx.Options, log logging.Logger) (*SNSNotifier, error) {
	cfg, err := awsx.LoadConfig(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := sns.NewFromConfig(cfg, func(opts *sns.Options) {
		opts.BaseEndpoint = o.BaseEndpoint()
	})
	return NewSNSNotifier(client, log), nil
}

func (n *SNSNotifier) Send(ctx context.Context, phone, message string) error {
	out, err := n.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(E164(phone)),
		Message:     aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("publish sms: %w", err)
	}

	n.log.Debug(ctx, "sms published", "phone", maskPhone(phone), "message_id", aws.ToString(out.MessageId))
	return nil
}
