package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailout/pkg/email"
	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

func TestDevSender_Send(t *testing.T) {
	t.Parallel()

	t.Run("writes html, text, and metadata files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		queuedAt := time.Now().Add(-time.Minute).UTC().Truncate(time.Second)
		msg := mailqueue.Message{
			ID:         uuid.New(),
			Recipients: []string{"user@example.com", "other@example.com"},
			Subject:    "Welcome Aboard",
			HTMLBody:   "<h1>Welcome</h1>",
			TextBody:   "Welcome",
			QueuedAt:   queuedAt,
			Attempts:   2,
			Metadata:   map[string]string{"campaign": "onboarding"},
		}

		require.NoError(t, sender.Send(context.Background(), msg))

		htmlFiles, err := filepath.Glob(filepath.Join(dir, "*_welcome_aboard.html"))
		require.NoError(t, err)
		require.Len(t, htmlFiles, 1)
		htmlContent, err := os.ReadFile(htmlFiles[0])
		require.NoError(t, err)
		assert.Equal(t, "<h1>Welcome</h1>", string(htmlContent))

		textFiles, err := filepath.Glob(filepath.Join(dir, "*_welcome_aboard.txt"))
		require.NoError(t, err)
		require.Len(t, textFiles, 1)
		textContent, err := os.ReadFile(textFiles[0])
		require.NoError(t, err)
		assert.Equal(t, "Welcome", string(textContent))

		jsonFiles, err := filepath.Glob(filepath.Join(dir, "*_welcome_aboard.json"))
		require.NoError(t, err)
		require.Len(t, jsonFiles, 1)
		jsonContent, err := os.ReadFile(jsonFiles[0])
		require.NoError(t, err)

		var meta struct {
			MessageID  string            `json:"message_id"`
			Recipients []string          `json:"recipients"`
			Subject    string            `json:"subject"`
			QueuedAt   time.Time         `json:"queued_at"`
			Attempts   int               `json:"attempts"`
			Metadata   map[string]string `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal(jsonContent, &meta))
		assert.Equal(t, msg.ID.String(), meta.MessageID)
		assert.Equal(t, msg.Recipients, meta.Recipients)
		assert.Equal(t, "Welcome Aboard", meta.Subject)
		assert.True(t, meta.QueuedAt.Equal(queuedAt))
		assert.Equal(t, 2, meta.Attempts)
		assert.Equal(t, map[string]string{"campaign": "onboarding"}, meta.Metadata)
	})

	t.Run("text only message skips the html file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		require.NoError(t, sender.Send(context.Background(), mailqueue.Message{
			ID:         uuid.New(),
			Recipients: []string{"user@example.com"},
			Subject:    "Plain",
			TextBody:   "just text",
		}))

		htmlFiles, err := filepath.Glob(filepath.Join(dir, "*.html"))
		require.NoError(t, err)
		assert.Empty(t, htmlFiles)

		textFiles, err := filepath.Glob(filepath.Join(dir, "*.txt"))
		require.NoError(t, err)
		assert.Len(t, textFiles, 1)
	})

	t.Run("sanitizes unsafe subject characters", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		require.NoError(t, sender.Send(context.Background(), mailqueue.Message{
			ID:         uuid.New(),
			Recipients: []string{"user@example.com"},
			Subject:    "Invoice #42 / März!",
			TextBody:   "see attachment",
		}))

		jsonFiles, err := filepath.Glob(filepath.Join(dir, "*.json"))
		require.NoError(t, err)
		require.Len(t, jsonFiles, 1)
		name := filepath.Base(jsonFiles[0])
		assert.NotContains(t, name, "#")
		assert.NotContains(t, name, "/")
		assert.NotContains(t, name, "!")
		assert.NotContains(t, name, " ")
	})

	t.Run("creates the directory on demand", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "emails")
		sender := email.NewDevSender(dir)

		require.NoError(t, sender.Send(context.Background(), mailqueue.Message{
			ID:         uuid.New(),
			Recipients: []string{"user@example.com"},
			Subject:    "First",
			TextBody:   "hello",
		}))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects invalid message", func(t *testing.T) {
		t.Parallel()

		sender := email.NewDevSender(t.TempDir())

		err := sender.Send(context.Background(), mailqueue.Message{
			Subject:  "No recipients",
			TextBody: "lost",
		})
		assert.ErrorIs(t, err, email.ErrInvalidMessage)
	})
}
