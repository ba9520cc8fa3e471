package mailqueue

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message represents one queued outbound email and its retry history
type Message struct {
	ID            uuid.UUID         `json:"id"`
	Recipients    []string          `json:"recipients"`
	Subject       string            `json:"subject"`
	HTMLBody      string            `json:"html_body,omitempty"`
	TextBody      string            `json:"text_body,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	QueuedAt      time.Time         `json:"queued_at"`
	Attempts      int               `json:"attempts"`
	LastAttemptAt *time.Time        `json:"last_attempt_at,omitempty"`
	LastError     *string           `json:"last_error,omitempty"`
}

// EnqueueParams carries the content of a new outbound message
type EnqueueParams struct {
	Recipients []string
	Subject    string
	HTMLBody   string
	TextBody   string
	Metadata   map[string]string
}

// Validate checks that the message has somewhere to go and something to say
func (p EnqueueParams) Validate() error {
	if len(p.Recipients) == 0 {
		return ErrNoRecipients
	}
	for _, rcpt := range p.Recipients {
		if strings.TrimSpace(rcpt) == "" {
			return ErrEmptyRecipient
		}
	}
	if p.Subject == "" && p.HTMLBody == "" && p.TextBody == "" {
		return ErrEmptyContent
	}
	return nil
}

// newMessage builds a Message from params, copying slices and maps so later
// mutation by the caller cannot reach the stored message.
func newMessage(params EnqueueParams, now time.Time) *Message {
	recipients := make([]string, len(params.Recipients))
	copy(recipients, params.Recipients)

	return &Message{
		ID:         uuid.New(),
		Recipients: recipients,
		Subject:    params.Subject,
		HTMLBody:   params.HTMLBody,
		TextBody:   params.TextBody,
		Metadata:   maps.Clone(params.Metadata),
		QueuedAt:   now,
	}
}
