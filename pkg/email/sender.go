package email

import (
	"fmt"
	"regexp"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

// emailRegex checks the basic shape of an address without attempting full
// RFC 5322 compliance; the receiving provider has the final say.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validateMessage rejects messages no sender could deliver. The queue already
// guarantees non-empty recipients and content; address format is checked here
// because a malformed address is a delivery failure, not an enqueue error.
func validateMessage(msg mailqueue.Message) error {
	if len(msg.Recipients) == 0 {
		return fmt.Errorf("%w: no recipients", ErrInvalidMessage)
	}
	for _, rcpt := range msg.Recipients {
		if !emailRegex.MatchString(rcpt) {
			return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidMessage, rcpt)
		}
	}
	if msg.Subject == "" && msg.HTMLBody == "" && msg.TextBody == "" {
		return fmt.Errorf("%w: empty subject and body", ErrInvalidMessage)
	}
	return nil
}
