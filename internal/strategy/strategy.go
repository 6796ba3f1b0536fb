// Package strategy implements the trading policies. Each strategy is a
// per-instrument decision loop over the day axis, sharing one portfolio and
// one ledger sink per run: seed the portfolio at day 0, walk days forward,
// write off any position the day an instrument delists, and liquidate
// whatever is still held on the final day.
package strategy

import (
	"fmt"

	"stocksimv1/internal/model"
	"stocksimv1/internal/portfolio"
)

// ConfigError reports invalid strategy parameters. It is returned before any
// ledger entry is written, so a misconfigured run leaves no partial ledger.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "strategy config: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// allocations builds the per-instrument seed spend: amount for every stock.
func allocations(amount float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amount
	}
	return out
}

// liquidate closes out every position still held on the final day. Each
// instrument's own listing status decides whether it can be sold; delisted
// instruments were already written off in the day loop.
func liquidate(p *portfolio.Portfolio, prices *model.PriceSeries) error {
	final := prices.FinalDay()
	for s := 0; s < prices.NumStocks(); s++ {
		if prices.At(final, s).Delisted {
			continue
		}
		if err := p.Sell(final, s); err != nil {
			return err
		}
	}
	return nil
}
