package export

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	DefaultRegion = "us-east-1" // Default region if not specified in AWS profile
)

// LoadConfig resolves AWS settings from the environment and shared config files.
// An empty profile uses the default chain.
func LoadConfig(ctx context.Context, profile, region string) (*awssdk.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(DefaultRegion),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return &awsCfg, nil
}

func NewS3Uploader(ctx context.Context, profile, region string) (Uploader, error) {
	awsCfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(*awsCfg), nil
}
