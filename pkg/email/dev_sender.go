package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

// DevSender implements delivery for local development. It saves each message
// as files in a directory instead of sending it through an email provider,
// so queued mail can be inspected without a provider account.
type DevSender struct {
	dir string
}

var _ mailqueue.Sender = (*DevSender)(nil)

// NewDevSender creates a development sender that saves messages to dir.
// The directory is created on first send if it does not exist.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

// devMetadata is the message data saved to JSON, excluding the bodies which
// get their own files.
type devMetadata struct {
	MessageID  string            `json:"message_id"`
	Timestamp  string            `json:"timestamp"`
	Recipients []string          `json:"recipients"`
	Subject    string            `json:"subject"`
	QueuedAt   time.Time         `json:"queued_at"`
	Attempts   int               `json:"attempts"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Send saves the message bodies and a JSON metadata file to the configured
// directory. HTML lands in an .html file, plain text in a .txt file; a
// message carrying both produces both files under the same base name.
func (d *DevSender) Send(ctx context.Context, msg mailqueue.Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := time.Now()
	baseFilename := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(msg.Subject))

	if msg.HTMLBody != "" {
		htmlPath := filepath.Join(d.dir, baseFilename+".html")
		if err := os.WriteFile(htmlPath, []byte(msg.HTMLBody), 0644); err != nil {
			return fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
		}
	}
	if msg.TextBody != "" {
		textPath := filepath.Join(d.dir, baseFilename+".txt")
		if err := os.WriteFile(textPath, []byte(msg.TextBody), 0644); err != nil {
			return fmt.Errorf("%w: failed to write text file: %v", ErrFailedToSendEmail, err)
		}
	}

	id := msg.ID.String()
	if msg.ID == uuid.Nil {
		id = ""
	}
	metadata := devMetadata{
		MessageID:  id,
		Timestamp:  now.Format(time.RFC3339),
		Recipients: msg.Recipients,
		Subject:    msg.Subject,
		QueuedAt:   msg.QueuedAt,
		Attempts:   msg.Attempts,
		Metadata:   msg.Metadata,
	}

	jsonData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}

	jsonPath := filepath.Join(d.dir, baseFilename+".json")
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}

	return nil
}

// sanitizeRegex matches characters that are not alphanumeric, dash, underscore, or dot
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a subject line into a safe filename: spaces
// become underscores, special characters are dropped, and the result is
// truncated to a length every filesystem tolerates.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}

	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
