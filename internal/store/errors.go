package store

import "errors"

// Sentinel errors returned by the submission store. gorm's own errors
// are translated at the store boundary so the service layer matches on
// these instead.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("already exists")
)
