package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"

	api "github.com/grandupright/quote-intake/api/v1alpha1"
	"github.com/grandupright/quote-intake/internal/config"
	"github.com/grandupright/quote-intake/internal/document"
	"github.com/grandupright/quote-intake/internal/mail"
	"github.com/grandupright/quote-intake/internal/mail/templates"
	"github.com/grandupright/quote-intake/internal/storage"
	"github.com/grandupright/quote-intake/internal/store"
	"github.com/grandupright/quote-intake/internal/store/model"
	"github.com/grandupright/quote-intake/internal/validation"
	"github.com/grandupright/quote-intake/pkg/metrics"
)

const jobSheetContentType = "application/pdf"

// SubmissionSummary is what a successful submission reports back to the
// caller. AcknowledgementId stays empty when the customer email could not be
// delivered; that alone never fails the submission.
type SubmissionSummary struct {
	JobReference      string
	DocumentUrl       string
	AttachmentCount   int
	NotificationId    string
	AcknowledgementId string
	SubmittedAt       time.Time
}

// QuoteService drives a submission through its fixed side-effect order:
// validate, render, upload, persist, notify the business, acknowledge the
// customer. Each external call is attempted exactly once.
type QuoteService struct {
	store     store.Store
	storage   storage.ObjectStore
	mailer    mail.Mailer
	sheets    *document.JobSheetRenderer
	templates *templates.Renderer
	validator *validation.Validator
	cfg       *config.Config

	contactCardUrl string
	now            func() time.Time
}

func NewQuoteService(store store.Store, objectStore storage.ObjectStore, mailer mail.Mailer, cfg *config.Config) *QuoteService {
	v := validation.NewValidator()
	v.Register(validation.NewQuoteValidationRules()...)

	return &QuoteService{
		store:     store,
		storage:   objectStore,
		mailer:    mailer,
		sheets:    document.NewJobSheetRenderer(),
		templates: templates.NewRenderer(),
		validator: v,
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock overrides the pipeline clock. Intended for tests.
func (s *QuoteService) WithClock(now func() time.Time) *QuoteService {
	s.now = now
	return s
}

// PublishContactCard uploads the business vCard and remembers its URL for the
// acknowledgement emails. Unlike job sheets the card lives under a stable key
// and is replaced on every boot, so contact detail changes roll out without
// touching stored data. Called once at startup, before the service takes
// traffic.
func (s *QuoteService) PublishContactCard(ctx context.Context) (string, error) {
	card := document.ContactCard()

	url, err := s.storage.Overwrite(ctx, document.ContactCardFilename, bytes.NewReader(card), int64(len(card)), document.ContactCardContentType)
	if err != nil {
		return "", fmt.Errorf("publishing contact card: %w", err)
	}

	s.contactCardUrl = url
	return url, nil
}

// SubmitQuote runs the whole intake pipeline for one submission. Failures
// before the upload leave no trace anywhere; a failed insert is fatal only
// under the strict-persistence policy; a failed notification is always fatal;
// a failed acknowledgement is logged and swallowed.
func (s *QuoteService) SubmitQuote(ctx context.Context, quote api.QuoteRequest) (*SubmissionSummary, error) {
	if err := s.validator.Struct(quote); err != nil {
		metrics.IncreaseSubmissionsTotalMetric("rejected")
		return nil, NewErrValidation(validation.Fields(err))
	}

	photos := decodeAttachments(quote.Attachments)

	submittedAt := s.now()
	jobReference := NewJobReference(submittedAt)
	slug := Slugify(quote.FullName)

	sheet, err := s.sheets.Render(quote, jobReference, submittedAt)
	if err != nil {
		metrics.IncreaseSubmissionsTotalMetric("failed")
		return nil, NewErrRender(err)
	}

	// The key carries the full timestamp next to the truncated reference, so
	// stored sheets stay unique even when references repeat.
	key := fmt.Sprintf("job-sheets/%s-%d.pdf", jobReference, submittedAt.UnixMilli())
	documentUrl, err := s.storage.Upload(ctx, key, bytes.NewReader(sheet), int64(len(sheet)), jobSheetContentType)
	if err != nil {
		metrics.IncreaseJobSheetUploadsTotalMetric("error")
		metrics.IncreaseSubmissionsTotalMetric("failed")
		return nil, NewErrStorage(err)
	}
	metrics.IncreaseJobSheetUploadsTotalMetric("ok")

	submission := model.NewSubmissionFromQuote(jobReference, quote, documentUrl, len(photos), submittedAt)
	if _, err := s.store.Submission().Create(ctx, submission); err != nil {
		if s.cfg.Service.StrictPersistence {
			metrics.IncreaseSubmissionsTotalMetric("failed")
			return nil, NewErrPersistence(err)
		}
		// Best-effort persistence: the sheet is uploaded and the notification
		// email is the authoritative record, so the pipeline carries on.
		zap.S().Named("service").Errorw("submission row not persisted",
			"job_reference", jobReference,
			"error", err,
		)
	}

	notificationId, err := s.sendNotification(ctx, quote, jobReference, slug, documentUrl, photos, sheet, submittedAt)
	if err != nil {
		metrics.IncreaseEmailsSentTotalMetric("notification", "error")
		metrics.IncreaseSubmissionsTotalMetric("failed")
		return nil, NewErrNotification(err)
	}
	metrics.IncreaseEmailsSentTotalMetric("notification", "ok")

	acknowledgementId, err := s.sendAcknowledgement(ctx, quote, jobReference, slug)
	if err != nil {
		metrics.IncreaseEmailsSentTotalMetric("acknowledgement", "error")
		zap.S().Named("service").Warnw("acknowledgement not delivered",
			"job_reference", jobReference,
			"email", quote.Email,
			"error", NewErrAcknowledgement(err),
		)
	} else {
		metrics.IncreaseEmailsSentTotalMetric("acknowledgement", "ok")
	}

	metrics.IncreaseSubmissionsTotalMetric("accepted")
	return &SubmissionSummary{
		JobReference:      jobReference,
		DocumentUrl:       documentUrl,
		AttachmentCount:   len(photos),
		NotificationId:    notificationId,
		AcknowledgementId: acknowledgementId,
		SubmittedAt:       submittedAt,
	}, nil
}

func (s *QuoteService) sendNotification(ctx context.Context, quote api.QuoteRequest, jobReference, slug, documentUrl string, photos []mail.Attachment, sheet []byte, submittedAt time.Time) (string, error) {
	html, err := s.templates.Notification(templates.NotificationData{
		Quote:           quote,
		JobReference:    jobReference,
		DocumentUrl:     documentUrl,
		AttachmentCount: len(photos),
		SubmittedAt:     submittedAt,
	})
	if err != nil {
		return "", err
	}

	// customer photos in submission order, the job sheet always last
	attachments := make([]mail.Attachment, 0, len(photos)+1)
	attachments = append(attachments, photos...)
	attachments = append(attachments, mail.Attachment{
		Filename: fmt.Sprintf("%s-job-sheet.pdf", jobReference),
		Content:  sheet,
	})

	threadId := mail.ThreadMessageID(slug, s.cfg.Mail.ThreadDomain)

	return s.mailer.Send(ctx, mail.Message{
		From:        s.cfg.Mail.From,
		To:          []string{s.cfg.Mail.InternalTo},
		Cc:          s.cfg.Mail.InternalCc,
		ReplyTo:     quote.Email,
		Subject:     fmt.Sprintf("New quote request %s - %s", jobReference, quote.FullName),
		Html:        html,
		Attachments: attachments,
		Headers:     mail.ThreadingHeaders(threadId),
	})
}

func (s *QuoteService) sendAcknowledgement(ctx context.Context, quote api.QuoteRequest, jobReference, slug string) (string, error) {
	html, err := s.templates.Acknowledgement(templates.AcknowledgementData{
		Quote:          quote,
		JobReference:   jobReference,
		ContactCardUrl: s.contactCardUrl,
	})
	if err != nil {
		return "", err
	}

	threadId := mail.ThreadMessageID(slug, s.cfg.Mail.ThreadDomain)

	return s.mailer.Send(ctx, mail.Message{
		From:    s.cfg.Mail.From,
		To:      []string{quote.Email},
		Subject: fmt.Sprintf("We received your quote request %s", jobReference),
		Html:    html,
		Headers: mail.ThreadingHeaders(threadId),
	})
}

// decodeAttachments decodes the customer photo payloads. Entries missing a
// filename or content, or carrying undecodable base64, are dropped rather
// than failing the submission; order is preserved among the survivors.
func decodeAttachments(in []api.Attachment) []mail.Attachment {
	out := make([]mail.Attachment, 0, len(in))
	for _, attachment := range in {
		if attachment.Filename == "" || attachment.ContentBase64 == "" {
			continue
		}

		content, err := base64.StdEncoding.DecodeString(attachment.ContentBase64)
		if err != nil {
			zap.S().Named("service").Warnw("dropping undecodable attachment",
				"filename", attachment.Filename,
				"error", err,
			)
			continue
		}

		out = append(out, mail.Attachment{Filename: attachment.Filename, Content: content})
	}
	return out
}
