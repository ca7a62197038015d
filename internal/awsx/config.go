// Package awsx loads the AWS SDK configuration shared by the SMS notifier and
// the backup exporter.
package awsx

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Options mirrors the WT_AWS_* settings. Empty keys fall back to the default
// credential chain; Endpoint is applied per service client.
type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// loadDefaultConfig is a seam for tests.
var loadDefaultConfig = config.LoadDefaultConfig

// LoadConfig resolves an aws.Config for o.
func LoadConfig(ctx context.Context, o Options) (aws.Config, error) {
	optFns := []func(*config.LoadOptions) error{
		config.WithRegion(o.Region),
	}
	if o.AccessKeyID != "" {
		optFns = append(optFns, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, ""),
		))
	}
	return loadDefaultConfig(ctx, optFns...)
}

// BaseEndpoint returns the custom endpoint as an SDK option value, or nil.
func (o Options) BaseEndpoint() *string {
	if o.Endpoint == "" {
		return nil
	}
	return aws.String(o.Endpoint)
}
