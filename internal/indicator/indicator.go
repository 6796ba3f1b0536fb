// Package indicator computes technical indicator series over one instrument's
// price column.
//
// Every series function truncates its input at the column's first delisted day
// and aligns its output to a suffix of the day axis: the value at output index
// i corresponds to day i+period-1. Columns with fewer than period active days
// produce an empty series.
package indicator

import (
	"fmt"

	"stocksimv1/internal/model"
)

// Kind selects the oscillator formula.
type Kind string

const (
	Stochastic Kind = "stochastic"
	RSI        Kind = "rsi"
)

// activeLen returns the number of leading active days in a column. Delisting
// is monotonic, so everything past the first delisted quote is dead.
func activeLen(col []model.Quote) int {
	for i, q := range col {
		if q.Delisted {
			return i
		}
	}
	return len(col)
}

func checkPeriod(period int) error {
	if period < 1 {
		return fmt.Errorf("indicator: period must be positive, got %d", period)
	}
	return nil
}
