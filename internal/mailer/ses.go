package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer delivers transactional mail and manages sender identities.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
	VerifyIdentity(ctx context.Context, email string) error
}

// SESMailer sends mail through Amazon SES from a verified source address.
type SESMailer struct {
	client *ses.Client
	source string
}

// Ensure SESMailer implements Mailer
var _ Mailer = (*SESMailer)(nil)

// NewSES builds an SES-backed mailer from static credentials.
func NewSES(ctx context.Context, region, accessKey, secretKey, source string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), source: source}, nil
}

// Send delivers a plain-text email to a single recipient.
func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
		Source: aws.String(m.source),
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// VerifyIdentity asks SES to start verification of a sender address. SES
// emails the address a confirmation link; sending from it works only after
// that link is followed.
func (m *SESMailer) VerifyIdentity(ctx context.Context, email string) error {
	_, err := m.client.VerifyEmailIdentity(ctx, &ses.VerifyEmailIdentityInput{
		EmailAddress: aws.String(email),
	})
	if err != nil {
		return fmt.Errorf("verify email identity: %w", err)
	}
	return nil
}
