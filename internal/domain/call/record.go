package call

import (
	"fmt"
	"time"

	"github.com/phonecompany/telebill/internal/domain/values"
)

// Record is an immutable value describing one completed call from the
// operator log: the dialed number and the connection interval with second
// precision. Records are only ever constructed through NewRecord, which
// guarantees EndTime is strictly after StartTime.
type Record struct {
	PhoneNumber values.PhoneNumber
	StartTime   time.Time
	EndTime     time.Time
}

// NewRecord creates a validated Record
func NewRecord(phoneNumber values.PhoneNumber, startTime, endTime time.Time) (Record, error) {
	if phoneNumber.IsEmpty() {
		return Record{}, fmt.Errorf("phone number cannot be empty")
	}

	if !endTime.After(startTime) {
		return Record{}, fmt.Errorf("call end %s is not after start %s",
			endTime.Format(time.RFC3339), startTime.Format(time.RFC3339))
	}

	return Record{
		PhoneNumber: phoneNumber,
		StartTime:   startTime,
		EndTime:     endTime,
	}, nil
}

// Duration returns the connection time of the call
func (r Record) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
