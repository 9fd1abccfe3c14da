package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const jobReferencePrefix = "PM-"

var slugSeparatorRuns = regexp.MustCompile(`[^a-z0-9]+`)

// NewJobReference derives the reference quoted to the customer on the phone:
// a constant tag plus the last six digits of the submission's unix-millisecond
// timestamp. Recency-biased and readable aloud; two submissions inside the
// same truncation window share a reference, which the business accepts.
func NewJobReference(at time.Time) string {
	return fmt.Sprintf("%s%06d", jobReferencePrefix, at.UnixMilli()%1000000)
}

// Slugify normalizes a customer name into the identifier used for email
// threading: lowercased, runs of anything outside [a-z0-9] collapsed to a
// single hyphen, no leading or trailing hyphen.
func Slugify(name string) string {
	slug := slugSeparatorRuns.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
