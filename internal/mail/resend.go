package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type ResendMailer struct {
	client *resend.Client
}

// Make sure we conform to Mailer interface
var _ Mailer = (*ResendMailer)(nil)

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Cc:      msg.Cc,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.Html,
		Headers: msg.Headers,
	}

	for _, att := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: att.Filename,
			Content:  att.Content,
		})
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("sending email %q: %w", msg.Subject, err)
	}
	return sent.Id, nil
}
