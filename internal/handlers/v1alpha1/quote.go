package v1alpha1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	api "github.com/grandupright/quote-intake/api/v1alpha1"
	"github.com/grandupright/quote-intake/internal/service"
)

type QuoteHandler struct {
	service *service.QuoteService
}

func NewQuoteHandler(service *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

func RegisterApi(router *chi.Mux, quoteService *service.QuoteService) {
	handler := NewQuoteHandler(quoteService)

	router.Post("/api/v1/quotes", handler.SubmitQuote)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (h *QuoteHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	var quote api.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		_ = render.Render(w, r, ValidationErrorReply{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	summary, err := h.service.SubmitQuote(r.Context(), quote)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	_ = render.Render(w, r, SubmissionReply{
		Success:           true,
		Message:           "Quote request received. We will be in touch shortly.",
		JobReference:      summary.JobReference,
		DocumentUrl:       summary.DocumentUrl,
		AttachmentCount:   summary.AttachmentCount,
		NotificationId:    summary.NotificationId,
		AcknowledgementId: summary.AcknowledgementId,
	})
}

func (h *QuoteHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *service.ErrValidation:
		_ = render.Render(w, r, ValidationErrorReply{Error: e.Error(), Fields: e.Fields})
	default:
		zap.S().Named("rest").Errorw("quote submission failed", "error", err)
		_ = render.Render(w, r, ErrorReply{Error: err.Error()})
	}
}

type SubmissionReply struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	JobReference      string `json:"jobReference"`
	DocumentUrl       string `json:"documentUrl"`
	AttachmentCount   int    `json:"attachmentCount"`
	NotificationId    string `json:"notificationId"`
	AcknowledgementId string `json:"acknowledgementId,omitempty"`
}

type ValidationErrorReply struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

type ErrorReply struct {
	Error string `json:"error"`
}

func (s SubmissionReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusCreated)
	return nil
}

func (v ValidationErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusBadRequest)
	return nil
}

func (e ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusInternalServerError)
	return nil
}
