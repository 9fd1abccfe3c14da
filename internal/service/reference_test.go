package service_test

import (
	"testing"
	"time"

	"github.com/grandupright/quote-intake/internal/service"
)

func TestNewJobReference(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			name: "takes the last six millisecond digits",
			at:   time.UnixMilli(1234567890123),
			want: "PM-890123",
		},
		{
			name: "zero pads short suffixes",
			at:   time.UnixMilli(1700000000042),
			want: "PM-000042",
		},
		{
			name: "wraps within the same second",
			at:   time.UnixMilli(1234567000000),
			want: "PM-000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.NewJobReference(tt.at); got != tt.want {
				t.Errorf("NewJobReference() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple name",
			in:   "Jane Doe",
			want: "jane-doe",
		},
		{
			name: "punctuation collapses into single hyphens",
			in:   "O'Brien & Sons!!!",
			want: "o-brien-sons",
		},
		{
			name: "no leading or trailing hyphen",
			in:   "  --Amelia Price--  ",
			want: "amelia-price",
		},
		{
			name: "digits survive",
			in:   "Studio 54",
			want: "studio-54",
		},
		{
			name: "non-ascii letters act as separators",
			in:   "Márta",
			want: "m-rta",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
