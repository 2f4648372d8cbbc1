package billing

import (
	"strings"
	"time"
	"unicode"

	"github.com/phonecompany/telebill/internal/domain/call"
	"github.com/phonecompany/telebill/internal/domain/values"
)

const logFieldCount = 3

// logParser implements the Parser interface for the operator's CSV call log:
// one call per line, fields phone number, start time, end time.
type logParser struct {
	layout string
	sink   RejectionSink
}

// NewLogParser creates a call log parser. layout is the timestamp layout in
// Go reference-time notation; sink receives one notification per discarded
// line and may be nil.
func NewLogParser(layout string, sink RejectionSink) Parser {
	if sink == nil {
		sink = NewNopRejectionSink()
	}

	return &logParser{
		layout: layout,
		sink:   sink,
	}
}

// Parse splits the raw log into lines and returns the valid records in input
// order. Malformed lines are reported to the sink and dropped; they never
// abort the run.
func (p *logParser) Parse(rawLog string) []call.Record {
	lines := strings.Split(rawLog, "\n")
	records := make([]call.Record, 0, len(lines))

	for i, raw := range lines {
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		record, reason, ok := p.parseLine(line)
		if !ok {
			p.sink.Reject(i+1, line, reason)
			continue
		}

		records = append(records, record)
	}

	return records
}

// parseLine validates one non-empty log line. On failure it returns the
// rejection reason for the sink.
func (p *logParser) parseLine(line string) (call.Record, RejectReason, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != logFieldCount {
		return call.Record{}, RejectFieldCount, false
	}

	phoneNumber, err := values.NewPhoneNumber(strings.TrimSpace(fields[0]))
	if err != nil {
		return call.Record{}, RejectPhoneNumber, false
	}

	startTime, err := time.Parse(p.layout, strings.TrimSpace(fields[1]))
	if err != nil {
		return call.Record{}, RejectTimestamp, false
	}

	endTime, err := time.Parse(p.layout, strings.TrimSpace(fields[2]))
	if err != nil {
		return call.Record{}, RejectTimestamp, false
	}

	record, err := call.NewRecord(phoneNumber, startTime, endTime)
	if err != nil {
		return call.Record{}, RejectDuration, false
	}

	return record, "", true
}

// cleanLine trims surrounding whitespace and any leading non-printable
// characters some exporters prepend (BOMs, control bytes).
func cleanLine(raw string) string {
	line := strings.TrimSpace(raw)
	return strings.TrimLeftFunc(line, func(r rune) bool {
		return !unicode.IsPrint(r)
	})
}
