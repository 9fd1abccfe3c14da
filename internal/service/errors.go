package service

import (
	"fmt"
	"strings"
)

// ErrValidation carries the wire names of the offending fields so the caller
// can fix its payload. Returned before any side effect runs.
type ErrValidation struct {
	error
	Fields []string
}

func NewErrValidation(fields []string) *ErrValidation {
	if len(fields) == 0 {
		return &ErrValidation{error: fmt.Errorf("invalid quote request")}
	}
	return &ErrValidation{
		error:  fmt.Errorf("invalid quote request, offending fields: %s", strings.Join(fields, ", ")),
		Fields: fields,
	}
}

type ErrRender struct {
	error
}

func NewErrRender(err error) *ErrRender {
	return &ErrRender{fmt.Errorf("rendering job sheet: %w", err)}
}

type ErrStorage struct {
	error
}

func NewErrStorage(err error) *ErrStorage {
	return &ErrStorage{fmt.Errorf("storing job sheet: %w", err)}
}

type ErrPersistence struct {
	error
}

func NewErrPersistence(err error) *ErrPersistence {
	return &ErrPersistence{fmt.Errorf("persisting submission: %w", err)}
}

type ErrNotification struct {
	error
}

func NewErrNotification(err error) *ErrNotification {
	return &ErrNotification{fmt.Errorf("sending notification email: %w", err)}
}

// ErrAcknowledgement never crosses the service boundary: the pipeline logs it
// and reports the submission as successful anyway.
type ErrAcknowledgement struct {
	error
}

func NewErrAcknowledgement(err error) *ErrAcknowledgement {
	return &ErrAcknowledgement{fmt.Errorf("sending acknowledgement email: %w", err)}
}
