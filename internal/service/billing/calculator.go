package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phonecompany/telebill/internal/domain/call"
	"github.com/phonecompany/telebill/internal/domain/financial"
	"github.com/phonecompany/telebill/internal/domain/values"
)

// calculator implements the Calculator interface. It owns the tariff schedule
// and the exemption rule: all calls to the single most-frequently-dialed
// number in a log are free.
type calculator struct {
	tariff   financial.Tariff
	currency string
	parser   Parser
}

// NewCalculator creates a bill calculator for the given tariff and currency.
// The currency is validated here so calculation itself can never fail.
func NewCalculator(tariff financial.Tariff, currency string, parser Parser) (Calculator, error) {
	zero, err := values.NewMoney(decimal.Zero, currency)
	if err != nil {
		return nil, err
	}

	return &calculator{
		tariff:   tariff,
		currency: zero.Currency(),
		parser:   parser,
	}, nil
}

// CalculateLog parses the raw log and computes the total amount due.
// Empty or whitespace-only logs short-circuit to zero without parsing.
func (c *calculator) CalculateLog(rawLog string) values.Money {
	if strings.TrimSpace(rawLog) == "" {
		return values.Zero(c.currency).RoundToNearestCent()
	}

	return c.Calculate(c.parser.Parse(rawLog))
}

// Calculate sums the per-call cost over every record not dialed to the exempt
// number and rounds the total half-up to two decimal places. Per-call costs
// are accumulated unrounded.
func (c *calculator) Calculate(records []call.Record) values.Money {
	exempt := mostFrequentNumber(records)

	total := decimal.Zero
	for _, record := range records {
		if !exempt.IsEmpty() && record.PhoneNumber.Equal(exempt) {
			continue
		}
		total = total.Add(c.tariff.CallCost(record))
	}

	return values.MustNewMoney(total, c.currency).RoundToNearestCent()
}

// mostFrequentNumber returns the number with the highest call count. Ties
// break toward the numerically smallest number; both candidates are
// fixed-width digit strings, so string order is numeric order. An empty
// record set yields the zero PhoneNumber, which matches nothing.
func mostFrequentNumber(records []call.Record) values.PhoneNumber {
	if len(records) == 0 {
		return values.PhoneNumber{}
	}

	frequency := make(map[values.PhoneNumber]int, len(records))
	for _, record := range records {
		frequency[record.PhoneNumber]++
	}

	var best values.PhoneNumber
	bestCount := 0
	for number, count := range frequency {
		if count > bestCount || (count == bestCount && number.Less(best)) {
			best = number
			bestCount = count
		}
	}

	return best
}
