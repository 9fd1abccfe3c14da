package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	api "github.com/grandupright/quote-intake/api/v1alpha1"
)

type Submission struct {
	gorm.Model
	ID uuid.UUID `gorm:"primaryKey;"`
	// JobReference is indexed but deliberately not unique: the reference is a
	// truncated-timestamp scheme chosen for phone readability, and two
	// submissions landing in the same window share it rather than failing.
	JobReference        string `gorm:"index;not null"`
	FullName            string `gorm:"not null"`
	Email               string `gorm:"not null"`
	Phone               string `gorm:"not null"`
	PianoType           string
	PickupAddress       string
	PickupSteps         int
	DeliveryAddress     string
	DeliverySteps       int
	SpecialRequirements string
	AttachmentCount     int
	DocumentUrl         string
	SubmittedAt         time.Time
}

type SubmissionList []Submission

func (s Submission) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}

// NewSubmissionFromQuote flattens an accepted quote request into the row
// persisted for the bookings ledger.
func NewSubmissionFromQuote(jobReference string, quote api.QuoteRequest, documentUrl string, attachmentCount int, submittedAt time.Time) Submission {
	return Submission{
		ID:                  uuid.New(),
		JobReference:        jobReference,
		FullName:            quote.FullName,
		Email:               quote.Email,
		Phone:               quote.Phone,
		PianoType:           quote.PianoType,
		PickupAddress:       quote.PickupAddress,
		PickupSteps:         quote.PickupSteps,
		DeliveryAddress:     quote.DeliveryAddress,
		DeliverySteps:       quote.DeliverySteps,
		SpecialRequirements: quote.SpecialRequirements,
		AttachmentCount:     attachmentCount,
		DocumentUrl:         documentUrl,
		SubmittedAt:         submittedAt,
	}
}

// SubmissionStats aggregates the ledger for the metrics collector.
type SubmissionStats struct {
	Total       int64
	ByPianoType map[string]int64
}

func NewSubmissionStats(submissions SubmissionList) SubmissionStats {
	stats := SubmissionStats{
		Total:       int64(len(submissions)),
		ByPianoType: make(map[string]int64),
	}
	for _, s := range submissions {
		pianoType := s.PianoType
		if pianoType == "" {
			pianoType = "unspecified"
		}
		stats.ByPianoType[pianoType]++
	}
	return stats
}
