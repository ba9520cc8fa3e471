package email_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailout/pkg/email"
	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

func validConfig() email.Config {
	return email.Config{
		PostmarkServerToken:  "test-server-token",
		PostmarkAccountToken: "test-account-token",
		SenderEmail:          "sender@example.com",
		SupportEmail:         "support@example.com",
	}
}

func TestNewPostmarkSender_ValidConfig(t *testing.T) {
	t.Parallel()

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()

		sender, err := email.NewPostmarkSender(validConfig())
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})

	t.Run("support email optional", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.SupportEmail = ""

		sender, err := email.NewPostmarkSender(cfg)
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})
}

func TestNewPostmarkSender_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*email.Config)
		wantMsg string
	}{
		{
			name:    "empty server token",
			mutate:  func(c *email.Config) { c.PostmarkServerToken = "" },
			wantMsg: "PostmarkServerToken is required",
		},
		{
			name:    "empty account token",
			mutate:  func(c *email.Config) { c.PostmarkAccountToken = "" },
			wantMsg: "PostmarkAccountToken is required",
		},
		{
			name:    "missing sender email",
			mutate:  func(c *email.Config) { c.SenderEmail = "" },
			wantMsg: "SenderEmail is required",
		},
		{
			name:    "invalid sender email format",
			mutate:  func(c *email.Config) { c.SenderEmail = "invalid-email" },
			wantMsg: "SenderEmail must be a valid email address",
		},
		{
			name:    "invalid support email format",
			mutate:  func(c *email.Config) { c.SupportEmail = "@invalid.com" },
			wantMsg: "SupportEmail must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			sender, err := email.NewPostmarkSender(cfg)
			assert.Nil(t, sender)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestMustNewPostmarkSender(t *testing.T) {
	t.Parallel()

	t.Run("panics on invalid config", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			email.MustNewPostmarkSender(email.Config{})
		})
	})

	t.Run("returns sender on valid config", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() {
			sender := email.MustNewPostmarkSender(validConfig())
			assert.NotNil(t, sender)
		})
	})
}

func TestPostmarkSender_Send_InvalidMessage(t *testing.T) {
	t.Parallel()

	sender, err := email.NewPostmarkSender(validConfig())
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("no recipients", func(t *testing.T) {
		t.Parallel()

		err := sender.Send(ctx, mailqueue.Message{
			Subject:  "Test",
			HTMLBody: "<p>Test</p>",
		})
		assert.ErrorIs(t, err, email.ErrInvalidMessage)
		assert.Contains(t, err.Error(), "no recipients")
	})

	t.Run("malformed recipient", func(t *testing.T) {
		t.Parallel()

		err := sender.Send(ctx, mailqueue.Message{
			Recipients: []string{"not-an-address"},
			Subject:    "Test",
			HTMLBody:   "<p>Test</p>",
		})
		assert.ErrorIs(t, err, email.ErrInvalidMessage)
		assert.Contains(t, err.Error(), "not a valid email address")
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()

		err := sender.Send(ctx, mailqueue.Message{
			Recipients: []string{"user@example.com"},
		})
		assert.ErrorIs(t, err, email.ErrInvalidMessage)
		assert.Contains(t, err.Error(), "empty subject and body")
	})
}
