package email

// Config holds the delivery settings shared by the senders in this package.
// SenderEmail is always required as it establishes the sender identity for
// all outbound email. The Postmark tokens matter only to NewPostmarkSender
// and the SMTP fields only to NewSMTPSender, so a deployment configures just
// the transport it uses.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	SenderEmail string `env:"SENDER_EMAIL,required"`
	// SupportEmail becomes the Reply-To address when set, so replies reach a
	// mailbox someone reads.
	SupportEmail string `env:"SUPPORT_EMAIL"`
}
