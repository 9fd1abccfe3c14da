package templates

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"text/template"
	"time"

	api "github.com/grandupright/quote-intake/api/v1alpha1"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// NotificationData feeds the internal email sent to the bookings inbox.
type NotificationData struct {
	Quote           api.QuoteRequest
	JobReference    string
	DocumentUrl     string
	AttachmentCount int
	SubmittedAt     time.Time
}

// AcknowledgementData feeds the confirmation email sent to the customer.
type AcknowledgementData struct {
	Quote          api.QuoteRequest
	JobReference   string
	ContactCardUrl string
}

type notificationTemplateData struct {
	CSS             string
	JobReference    string
	SubmittedDate   string
	FullName        string
	Phone           string
	Email           string
	PianoType       string
	PickupAddress   string
	PickupSteps     int
	DeliveryAddress string
	DeliverySteps   int

	RequirementsSection string
	AttachmentsNote     string
	DocumentUrl         string
}

type acknowledgementTemplateData struct {
	CSS                string
	FullName           string
	JobReference       string
	ContactCardSection string
}

func (r *Renderer) Notification(data NotificationData) (string, error) {
	pianoType := data.Quote.PianoType
	if pianoType == "" {
		pianoType = "Not specified"
	}

	templateData := notificationTemplateData{
		CSS:             r.getEmailCSS(),
		JobReference:    data.JobReference,
		SubmittedDate:   data.SubmittedAt.Format("02 Jan 2006 15:04"),
		FullName:        html.EscapeString(data.Quote.FullName),
		Phone:           html.EscapeString(data.Quote.Phone),
		Email:           html.EscapeString(data.Quote.Email),
		PianoType:       html.EscapeString(pianoType),
		PickupAddress:   html.EscapeString(data.Quote.PickupAddress),
		PickupSteps:     data.Quote.PickupSteps,
		DeliveryAddress: html.EscapeString(data.Quote.DeliveryAddress),
		DeliverySteps:   data.Quote.DeliverySteps,

		RequirementsSection: r.generateRequirementsSection(data.Quote.SpecialRequirements),
		AttachmentsNote:     r.generateAttachmentsNote(data.AttachmentCount),
		DocumentUrl:         data.DocumentUrl,
	}

	return r.executeTemplate(notificationTemplate, templateData)
}

func (r *Renderer) Acknowledgement(data AcknowledgementData) (string, error) {
	templateData := acknowledgementTemplateData{
		CSS:                r.getEmailCSS(),
		FullName:           html.EscapeString(data.Quote.FullName),
		JobReference:       data.JobReference,
		ContactCardSection: r.generateContactCardSection(data.ContactCardUrl),
	}

	return r.executeTemplate(acknowledgementTemplate, templateData)
}

func (r *Renderer) executeTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}

func (r *Renderer) generateRequirementsSection(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	escaped := strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")

	return fmt.Sprintf(`
            <div class="requirements">
                <h3>Special Requirements</h3>
                <p>%s</p>
            </div>`, escaped)
}

func (r *Renderer) generateContactCardSection(url string) string {
	if url == "" {
		return ""
	}

	return fmt.Sprintf(`<p><a class="button" href="%s">Save our contact card</a></p>`, url)
}

func (r *Renderer) generateAttachmentsNote(count int) string {
	if count == 0 {
		return ""
	}

	plural := "photo"
	if count > 1 {
		plural = "photos"
	}

	return fmt.Sprintf(`<p class="note">The customer attached %d %s; find them alongside the job sheet on this email.</p>`, count, plural)
}

func (r *Renderer) getEmailCSS() string {
	return `
        body { font-family: Arial, sans-serif; color: #2c3e50; margin: 0; padding: 20px; background: #f5f5f5; }
        .container { max-width: 640px; margin: 0 auto; background: white; padding: 24px; border-radius: 8px; }
        .header { border-bottom: 3px solid #8e44ad; padding-bottom: 12px; margin-bottom: 20px; }
        .header h1 { margin: 0; font-size: 1.4em; }
        .header p { margin: 4px 0 0 0; color: #7f8c8d; }
        .reference { display: inline-block; background: #8e44ad; color: white; padding: 4px 12px; border-radius: 4px; font-weight: bold; }
        table { width: 100%; border-collapse: collapse; margin: 16px 0; }
        th, td { padding: 8px 10px; text-align: left; border-bottom: 1px solid #eee; }
        th { width: 35%; color: #7f8c8d; font-weight: 600; }
        .steps { font-weight: bold; color: #8e44ad; }
        .requirements { background: #fdf6e3; border-left: 4px solid #f39c12; padding: 12px 16px; margin: 16px 0; }
        .requirements h3 { margin-top: 0; }
        .note { color: #7f8c8d; font-style: italic; }
        .button { display: inline-block; background: #8e44ad; color: white !important; padding: 10px 18px; border-radius: 4px; text-decoration: none; margin: 8px 0; }
        .footer { margin-top: 24px; padding-top: 12px; border-top: 1px solid #eee; color: #7f8c8d; font-size: 0.9em; }`
}

const notificationTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <style>
        {{.CSS}}
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Quote Request</h1>
            <p>Received {{.SubmittedDate}} &middot; <span class="reference">{{.JobReference}}</span></p>
        </div>

        <table>
            <tbody>
                <tr><th>Name</th><td>{{.FullName}}</td></tr>
                <tr><th>Phone</th><td>{{.Phone}}</td></tr>
                <tr><th>Email</th><td>{{.Email}}</td></tr>
                <tr><th>Piano</th><td>{{.PianoType}}</td></tr>
            </tbody>
        </table>

        <table>
            <tbody>
                <tr><th>Pickup</th><td>{{.PickupAddress}} &mdash; <span class="steps">{{.PickupSteps}} steps</span></td></tr>
                <tr><th>Delivery</th><td>{{.DeliveryAddress}} &mdash; <span class="steps">{{.DeliverySteps}} steps</span></td></tr>
            </tbody>
        </table>

        {{.RequirementsSection}}

        {{.AttachmentsNote}}

        <p><a class="button" href="{{.DocumentUrl}}">Open the job sheet</a></p>

        <div class="footer">
            <p>The printable job sheet is attached to this email and stored at the link above.</p>
            <p>Reply to this email to reach the customer directly.</p>
        </div>
    </div>
</body>
</html>`

const acknowledgementTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <style>
        {{.CSS}}
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>We received your quote request</h1>
            <p>Your reference: <span class="reference">{{.JobReference}}</span></p>
        </div>

        <p>Hi {{.FullName}},</p>

        <p>Thanks for getting in touch with Grand &amp; Upright Piano Moving. Your
        request is with our bookings team and we will come back to you with a
        quote, usually within one working day.</p>

        <p>If you need to add anything in the meantime, just reply to this email
        and mention your reference number.</p>

        {{.ContactCardSection}}

        <div class="footer">
            <p>Grand &amp; Upright Piano Moving</p>
            <p>0117 496 0372 &middot; bookings@grandupright.co.uk &middot; grandupright.co.uk</p>
        </div>
    </div>
</body>
</html>`
