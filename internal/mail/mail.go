package mail

import "context"

// Attachment is a named binary carried by an outbound message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a fully assembled outbound email. The pipeline builds the whole
// message up front so the provider client stays a dumb transport.
type Message struct {
	From        string
	To          []string
	Cc          []string
	ReplyTo     string
	Subject     string
	Html        string
	Attachments []Attachment
	Headers     map[string]string
}

// Mailer sends a single message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}
