package checker

import (
	"errors"

	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/lookup"
	"github.com/Michaelcode2/pricechecker/internal/scan"
	"github.com/Michaelcode2/pricechecker/internal/storage"
)

// Status is the result class of a submission.
type Status int

const (
	Ignored Status = iota // empty input, nothing happened
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "ignored"
	}
}

// Outcome reports what one submission did.
type Outcome struct {
	ScanID  string
	Status  Status
	Code    string // cleaned code; empty if validation failed
	Product domain.ProductInfo
	Err     error
}

// Message is the short status line shown to the user.
func (o Outcome) Message() string {
	switch o.Status {
	case Succeeded:
		return "Scan successful"
	case Failed:
		return o.Err.Error()
	default:
		return ""
	}
}

// Reason classifies a failed outcome as "validation", "lookup", "storage" or "busy".
func (o Outcome) Reason() string {
	var (
		verr *scan.ValidationError
		lerr *lookup.Error
		serr *storage.Error
	)
	switch {
	case o.Err == nil:
		return ""
	case errors.Is(o.Err, ErrBusy):
		return "busy"
	case errors.As(o.Err, &verr):
		return "validation"
	case errors.As(o.Err, &lerr):
		return "lookup"
	case errors.As(o.Err, &serr):
		return "storage"
	default:
		return "unknown"
	}
}
