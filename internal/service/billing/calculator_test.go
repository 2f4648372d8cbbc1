package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonecompany/telebill/internal/domain/call"
	"github.com/phonecompany/telebill/internal/domain/financial"
	"github.com/phonecompany/telebill/internal/domain/values"
)

func newTestCalculator(t *testing.T) Calculator {
	t.Helper()
	tariff, err := financial.NewTariff(
		decimal.RequireFromString("1.00"),
		decimal.RequireFromString("0.50"),
		decimal.RequireFromString("0.20"),
		5,
		8*time.Hour,
		16*time.Hour,
	)
	require.NoError(t, err)

	parser := NewLogParser(testLayout, nil)
	calc, err := NewCalculator(tariff, values.CZK, parser)
	require.NoError(t, err)
	return calc
}

func TestCalculator_CalculateLog(t *testing.T) {
	tests := []struct {
		name     string
		rawLog   string
		expected string
	}{
		{
			name:     "empty log",
			rawLog:   "",
			expected: "0.00",
		},
		{
			name:     "whitespace only log",
			rawLog:   "  \n\t\n  ",
			expected: "0.00",
		},
		{
			name:     "every line malformed",
			rawLog:   "garbage\n15612,18-11-2021 19:09:55,18-11-2021 22:11:22\n420607607607,18-11-2021 25:10:15,18-11-2021 18:12:57",
			expected: "0.00",
		},
		{
			name:     "single call is fully exempt",
			rawLog:   "420607607607,07-07-2023 13:01:00,07-07-2023 13:04:58",
			expected: "0.00",
		},
		{
			name: "most frequent number is exempt",
			rawLog: "420607607607,18-11-2021 12:56:00,18-11-2021 13:13:13\n" +
				"420721721721,25-10-2021 19:44:00,26-10-2021 01:05:01\n" +
				"420721721721,25-10-2021 09:45:25,25-10-2021 09:48:00",
			expected: "7.60",
		},
		{
			name: "frequency tie exempts the smaller number",
			rawLog: "420721721721,18-11-2021 19:08:18,18-11-2021 19:22:00\n" +
				"420607607607,18-11-2021 12:56:00,18-11-2021 13:13:13",
			expected: "4.30",
		},
		{
			name: "short peak calls bill at peak rate",
			rawLog: "420607607607,18-11-2021 14:21:21,18-11-2021 14:23:57\n" +
				"420721721721,25-10-2021 09:45:25,25-10-2021 09:48:00\n" +
				"420721721721,25-10-2021 10:00:00,25-10-2021 10:02:00",
			expected: "3.00",
		},
		{
			name: "short off peak calls bill at off peak rate",
			rawLog: "420607607607,18-11-2021 21:21:21,18-11-2021 21:23:25\n" +
				"420721721721,25-10-2021 22:59:20,25-10-2021 23:03:00\n" +
				"420721721721,25-10-2021 23:30:00,25-10-2021 23:31:00",
			expected: "1.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator(t)
			total := calc.CalculateLog(tt.rawLog)

			assert.Equal(t, tt.expected, total.String())
			assert.Equal(t, values.CZK, total.Currency())
		})
	}
}

func TestCalculator_CalculateLogIsIdempotent(t *testing.T) {
	calc := newTestCalculator(t)
	rawLog := "420607607607,18-11-2021 12:56:00,18-11-2021 13:13:13\n" +
		"420721721721,25-10-2021 19:44:00,26-10-2021 01:05:01\n" +
		"420721721721,25-10-2021 09:45:25,25-10-2021 09:48:00"

	first := calc.CalculateLog(rawLog)
	second := calc.CalculateLog(rawLog)

	assert.True(t, first.Equal(second))
}

func TestNewCalculator_InvalidCurrency(t *testing.T) {
	tariff, err := financial.NewTariff(
		decimal.RequireFromString("1.00"),
		decimal.RequireFromString("0.50"),
		decimal.RequireFromString("0.20"),
		5,
		8*time.Hour,
		16*time.Hour,
	)
	require.NoError(t, err)

	_, err = NewCalculator(tariff, "XXX", NewLogParser(testLayout, nil))
	assert.Error(t, err)
}

func TestCalculator_CalculateEmptyRecords(t *testing.T) {
	calc := newTestCalculator(t)
	total := calc.Calculate(nil)

	assert.Equal(t, "0.00", total.String())
}

func TestCalculator_TotalRoundsHalfUp(t *testing.T) {
	tariff, err := financial.NewTariff(
		decimal.RequireFromString("1.00"),
		decimal.RequireFromString("0.335"),
		decimal.RequireFromString("0.20"),
		5,
		8*time.Hour,
		16*time.Hour,
	)
	require.NoError(t, err)

	calc, err := NewCalculator(tariff, values.CZK, NewLogParser(testLayout, nil))
	require.NoError(t, err)

	// one billable off-peak minute at 0.335, exempt number dialed twice
	rawLog := "420607607607,18-11-2021 20:00:00,18-11-2021 20:00:30\n" +
		"420721721721,25-10-2021 22:59:20,25-10-2021 23:03:00\n" +
		"420721721721,25-10-2021 23:30:00,25-10-2021 23:31:00"

	assert.Equal(t, "0.34", calc.CalculateLog(rawLog).String())
}

func TestMostFrequentNumber(t *testing.T) {
	smaller := values.MustNewPhoneNumber("420607607607")
	larger := values.MustNewPhoneNumber("420721721721")

	rec := func(phone values.PhoneNumber, start string) call.Record {
		startTime, err := time.Parse(testLayout, start)
		require.NoError(t, err)

		record, err := call.NewRecord(phone, startTime, startTime.Add(time.Minute))
		require.NoError(t, err)
		return record
	}

	tests := []struct {
		name     string
		records  []call.Record
		expected values.PhoneNumber
	}{
		{
			name:     "no records yields empty sentinel",
			records:  nil,
			expected: values.PhoneNumber{},
		},
		{
			name: "higher count wins",
			records: []call.Record{
				rec(larger, "18-11-2021 10:00:00"),
				rec(larger, "18-11-2021 11:00:00"),
				rec(smaller, "18-11-2021 12:00:00"),
			},
			expected: larger,
		},
		{
			name: "tie breaks toward smaller number",
			records: []call.Record{
				rec(larger, "18-11-2021 10:00:00"),
				rec(smaller, "18-11-2021 11:00:00"),
			},
			expected: smaller,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mostFrequentNumber(tt.records))
		})
	}
}
