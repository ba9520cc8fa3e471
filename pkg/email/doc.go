// Package email provides concrete delivery transports for the mail queue:
// Postmark for production, plain SMTP for self-hosted relays, and a
// development sender that writes messages to disk.
//
// Every sender implements mailqueue.Sender, so any of them can be registered
// on a queue and swapped without touching application code. All senders
// validate recipient addresses before transmitting; a malformed address is
// reported as a delivery failure so the queue's retry accounting applies.
//
// # Usage
//
// Production delivery through Postmark:
//
//	sender, err := email.NewPostmarkSender(email.Config{
//	    PostmarkServerToken:  "server-token",
//	    PostmarkAccountToken: "account-token",
//	    SenderEmail:          "noreply@example.com",
//	    SupportEmail:         "support@example.com",
//	})
//	if err != nil {
//	    return err
//	}
//	q.RegisterSender(sender)
//
// Self-hosted relay over SMTP with STARTTLS:
//
//	sender, err := email.NewSMTPSender(email.Config{
//	    SMTPHost:     "mail.example.com",
//	    SMTPPort:     587,
//	    SMTPUsername: "mailer",
//	    SMTPPassword: "secret",
//	    SenderEmail:  "noreply@example.com",
//	})
//
// Local development without a provider account:
//
//	q.RegisterSender(email.NewDevSender("./tmp/emails"))
//
// # Error Handling
//
// Constructors return ErrInvalidConfig for incomplete configuration. Send
// returns ErrInvalidMessage for undeliverable input and ErrFailedToSendEmail
// wrapping the transport error otherwise; both match with errors.Is.
package email
