package v1alpha1

import "strings"

// QuoteRequest is the quote-request submission payload accepted by the
// intake endpoint. It is immutable once received: the pipeline derives
// identifiers and documents from it but never writes back into it.
type QuoteRequest struct {
	FullName            string       `json:"fullName" validate:"required"`
	Email               string       `json:"email" validate:"required,quote_email"`
	Phone               string       `json:"phone" validate:"required"`
	PianoType           string       `json:"pianoType,omitempty"`
	PickupAddress       string       `json:"pickupAddress"`
	PickupSteps         int          `json:"pickupSteps"`
	DeliveryAddress     string       `json:"deliveryAddress"`
	DeliverySteps       int          `json:"deliverySteps"`
	SpecialRequirements string       `json:"specialRequirements,omitempty"`
	Attachments         []Attachment `json:"attachments,omitempty"`
}

// Attachment is a customer-supplied photo. Content is base64 encoded by the
// caller; entries missing either field are dropped during decoding, not
// rejected.
type Attachment struct {
	Filename      string `json:"filename"`
	ContentBase64 string `json:"contentBase64"`
}

// HasSpecialRequirements reports whether the free-text requirements block
// carries any content worth rendering.
func (q QuoteRequest) HasSpecialRequirements() bool {
	return strings.TrimSpace(q.SpecialRequirements) != ""
}
