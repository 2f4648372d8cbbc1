package financial

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phonecompany/telebill/internal/domain/call"
)

// Tariff is an immutable per-minute rate schedule. A call is billed for every
// minute started; the first FreeMinutes minutes bill at the time-of-day rate
// (peak or off-peak), every later minute bills at the flat additional-minute
// rate regardless of clock time.
type Tariff struct {
	peakRate             decimal.Decimal
	offPeakRate          decimal.Decimal
	additionalMinuteRate decimal.Decimal
	freeMinutes          int

	// peak window boundaries as seconds of day
	peakStart int
	peakEnd   int
}

const secondsPerMinute = 60

// NewTariff creates a validated Tariff. peakStart and peakEnd bound the
// half-open peak window [peakStart, peakEnd) as clock times of day.
func NewTariff(peakRate, offPeakRate, additionalMinuteRate decimal.Decimal, freeMinutes int, peakStart, peakEnd time.Duration) (Tariff, error) {
	if peakRate.IsNegative() || offPeakRate.IsNegative() || additionalMinuteRate.IsNegative() {
		return Tariff{}, fmt.Errorf("tariff rates cannot be negative")
	}

	if freeMinutes < 0 {
		return Tariff{}, fmt.Errorf("free minute threshold cannot be negative")
	}

	if peakStart < 0 || peakEnd > 24*time.Hour || peakEnd <= peakStart {
		return Tariff{}, fmt.Errorf("invalid peak window: start %s, end %s", peakStart, peakEnd)
	}

	return Tariff{
		peakRate:             peakRate,
		offPeakRate:          offPeakRate,
		additionalMinuteRate: additionalMinuteRate,
		freeMinutes:          freeMinutes,
		peakStart:            int(peakStart.Seconds()),
		peakEnd:              int(peakEnd.Seconds()),
	}, nil
}

// MustNewTariff creates a Tariff and panics on error (for constants/tests)
func MustNewTariff(peakRate, offPeakRate, additionalMinuteRate decimal.Decimal, freeMinutes int, peakStart, peakEnd time.Duration) Tariff {
	t, err := NewTariff(peakRate, offPeakRate, additionalMinuteRate, freeMinutes, peakStart, peakEnd)
	if err != nil {
		panic(err)
	}
	return t
}

// PeakRate returns the per-minute rate inside the peak window
func (t Tariff) PeakRate() decimal.Decimal {
	return t.peakRate
}

// OffPeakRate returns the per-minute rate outside the peak window
func (t Tariff) OffPeakRate() decimal.Decimal {
	return t.offPeakRate
}

// AdditionalMinuteRate returns the flat rate for minutes past the free threshold
func (t Tariff) AdditionalMinuteRate() decimal.Decimal {
	return t.additionalMinuteRate
}

// FreeMinutes returns how many leading minutes bill at the time-of-day rate
func (t Tariff) FreeMinutes() int {
	return t.freeMinutes
}

// CallCost walks the call minute by minute and sums the per-minute charges.
// Every minute started counts in full, including a trailing partial minute.
// Each minute is classified by the clock time of its start, before the cursor
// advances: a minute starting at 07:59:30 against an 08:00 window already
// bills at the peak rate. No rounding happens here; only the grand total is
// rounded by the calculator.
func (t Tariff) CallCost(record call.Record) decimal.Decimal {
	cost := decimal.Zero
	cursor := record.StartTime
	minutesCounted := 0

	for cursor.Before(record.EndTime) {
		minutesCounted++
		cost = cost.Add(t.minuteRate(minutesCounted, cursor))
		cursor = cursor.Add(time.Minute)
	}

	return cost
}

// minuteRate classifies a single counted minute. The free-minute threshold
// takes precedence over the time-of-day split.
func (t Tariff) minuteRate(minutesCounted int, minuteStart time.Time) decimal.Decimal {
	if minutesCounted > t.freeMinutes {
		return t.additionalMinuteRate
	}

	if t.inPeakWindow(minuteStart) {
		return t.peakRate
	}

	return t.offPeakRate
}

// inPeakWindow tests the start-of-minute clock time against the peak window.
// The lower bound is strict against one minute before the window start, so
// any minute whose start falls inside the minute leading up to the window is
// already billed as peak.
func (t Tariff) inPeakWindow(minuteStart time.Time) bool {
	hour, min, sec := minuteStart.Clock()
	secondOfDay := hour*3600 + min*60 + sec

	return secondOfDay > t.peakStart-secondsPerMinute && secondOfDay < t.peakEnd
}
