package billing

import (
	"context"

	"github.com/phonecompany/telebill/internal/domain/call"
	"github.com/phonecompany/telebill/internal/domain/values"
)

// LogSource supplies raw call logs to the billing service. The core never
// opens files itself; path resolution, charset decoding and outer trimming
// belong to the source implementation.
type LogSource interface {
	Read(ctx context.Context, path string) (string, error)
}

// Parser turns raw log text into validated call records
type Parser interface {
	Parse(rawLog string) []call.Record
}

// Calculator computes the total amount due for a set of call records
type Calculator interface {
	Calculate(records []call.Record) values.Money
	CalculateLog(rawLog string) values.Money
}

// RejectReason classifies why a log line was discarded
type RejectReason string

const (
	RejectFieldCount  RejectReason = "field_count"
	RejectPhoneNumber RejectReason = "phone_number"
	RejectTimestamp   RejectReason = "timestamp"
	RejectDuration    RejectReason = "duration"
)

// RejectionSink receives one notification per discarded log line. Rejections
// are diagnostics, never failures; parsing always continues with the next
// line. Implementations must not mutate the line.
type RejectionSink interface {
	Reject(lineNumber int, line string, reason RejectReason)
}
