package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

// PostmarkSender delivers messages through Postmark's transactional API.
type PostmarkSender struct {
	client *postmark.Client
	cfg    Config
}

var _ mailqueue.Sender = (*PostmarkSender)(nil)

// NewPostmarkSender creates a Postmark-backed sender. Both tokens are
// required for runtime operation - this enforces explicit configuration
// rather than silent failures in production.
func NewPostmarkSender(cfg Config) (*PostmarkSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SupportEmail != "" && !emailRegex.MatchString(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}

	return &PostmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		cfg:    cfg,
	}, nil
}

// MustNewPostmarkSender creates a Postmark sender that panics on invalid
// config, failing fast during initialization rather than allowing a broken
// service to start.
func MustNewPostmarkSender(cfg Config) *PostmarkSender {
	sender, err := NewPostmarkSender(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

// Send delivers one queued message. Tracking is enabled by default for
// analytics - opens and HTML link clicks only to avoid privacy issues with
// plain text. Message metadata is forwarded to Postmark unmodified.
func (s *PostmarkSender) Send(ctx context.Context, msg mailqueue.Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.cfg.SenderEmail,
		ReplyTo:    s.cfg.SupportEmail,
		To:         strings.Join(msg.Recipients, ","),
		Subject:    msg.Subject,
		HTMLBody:   msg.HTMLBody,
		TextBody:   msg.TextBody,
		Metadata:   msg.Metadata,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
