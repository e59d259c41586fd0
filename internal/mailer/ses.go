package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESConfig holds the credentials and region for the Amazon SES provider.
type SESConfig struct {
	AccessKey string
	SecretKey string
	Region    string
}

// SESProvider delivers email through Amazon SES (the sesv2 API).
type SESProvider struct {
	client *sesv2.Client
}

// NewSESProvider creates an SES provider with static credentials.
func NewSESProvider(cfg SESConfig) (*SESProvider, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("SES access key and secret key are required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("SES region is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &SESProvider{client: sesv2.NewFromConfig(awsCfg)}, nil
}

// Name returns the provider identifier.
func (p *SESProvider) Name() string { return "ses" }

// Send delivers one email via SES and returns the SES message ID.
func (p *SESProvider) Send(ctx context.Context, email Email) (string, error) {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(email.TextBody), Charset: aws.String("UTF-8")},
	}
	if email.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(email.HTMLBody), Charset: aws.String("UTF-8")}
	}

	out, err := p.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(email.From),
		Destination: &types.Destination{
			ToAddresses: []string{email.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ses send to %s: %w", email.To, err)
	}
	return aws.ToString(out.MessageId), nil
}
