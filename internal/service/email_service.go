package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	appconfig "github.com/SnigdhoNext27/bliss-store-suite-sub001/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ErrEmailDisabled marks a send skipped because no provider key is
// configured. Callers treat it as a skip, not a failure.
var ErrEmailDisabled = errors.New("email channel disabled: no credentials configured")

// EmailService delivers transactional notification email via AWS SES.
// Without credentials the client stays nil and every send is a logged
// no-op skip.
type EmailService struct {
	client   *sesv2.Client
	from     string
	fromName string
}

func NewEmailService(cfg *appconfig.EmailConfig) *EmailService {
	svc := &EmailService{from: cfg.FromEmail, fromName: cfg.FromName}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		log.Printf("[Email] channel disabled: set SES_ACCESS_KEY / SES_SECRET_KEY to enable")
		return svc
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		log.Printf("[Email] failed to initialize AWS config: %v", err)
		return svc
	}
	svc.client = sesv2.NewFromConfig(awsCfg)
	return svc
}

func (s *EmailService) Enabled() bool { return s.client != nil }

// Send delivers a single email. Returns ErrEmailDisabled when no
// provider is configured.
func (s *EmailService) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.client == nil {
		return ErrEmailDisabled
	}
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.from)),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send to %s: %w", to, err)
	}
	return nil
}

// BuildNotificationHTML wraps notification content in the transactional
// email shell shared by every notification type.
func BuildNotificationHTML(title, message, link, imageURL string) string {
	body := fmt.Sprintf("<h2>%s</h2><p>%s</p>", title, message)
	if imageURL != "" {
		body += fmt.Sprintf(`<p><img src=%q alt="" style="max-width:480px"/></p>`, imageURL)
	}
	if link != "" {
		body += fmt.Sprintf(`<p><a href=%q>View in store</a></p>`, link)
	}
	return fmt.Sprintf(`<div style="font-family:sans-serif;max-width:560px;margin:0 auto">%s</div>`, body)
}
