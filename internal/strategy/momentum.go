package strategy

import (
	"stocksimv1/internal/indicator"
	"stocksimv1/internal/ledger"
	"stocksimv1/internal/model"
	"stocksimv1/internal/portfolio"
)

// MomentumConfig parameterizes the momentum strategy.
type MomentumConfig struct {
	Period      int            // oscillator period in days
	CoolDown    int            // minimum days between decisions, >= 1
	Overvalued  [2]float64     // sell when the oscillator is strictly inside
	Undervalued [2]float64     // buy when the oscillator is strictly inside
	Kind        indicator.Kind // stochastic or rsi
	Amount      float64
	Fees        float64
}

func (cfg MomentumConfig) validate() error {
	if cfg.Period < 2 {
		return configErrorf("oscillator period must be at least 2, got %d", cfg.Period)
	}
	if cfg.CoolDown < 1 {
		return configErrorf("cool-down must be at least 1 day, got %d", cfg.CoolDown)
	}
	for _, band := range [][2]float64{cfg.Overvalued, cfg.Undervalued} {
		if band[0] >= band[1] {
			return configErrorf("threshold band [%v, %v] is empty", band[0], band[1])
		}
	}
	switch cfg.Kind {
	case indicator.Stochastic, indicator.RSI:
	default:
		return configErrorf("unknown oscillator kind %q", cfg.Kind)
	}
	return nil
}

// Momentum trades on an oscillator: a value strictly inside the overvalued
// band sells, one strictly inside the undervalued band buys, and either
// trade starts a cool-down during which no day is re-evaluated. The bands
// should not overlap; if they do, overvalued is tested first.
func Momentum(prices *model.PriceSeries, cfg MomentumConfig, sink ledger.Sink) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	p, err := portfolio.New(allocations(cfg.Amount, prices.NumStocks()), prices, cfg.Fees, sink)
	if err != nil {
		return err
	}

	final := prices.FinalDay()
	for s := 0; s < prices.NumStocks(); s++ {
		osc, err := indicator.Oscillator(prices.Column(s), cfg.Period, cfg.Kind)
		if err != nil {
			return err
		}

		for i := cfg.Period; i < final; i++ {
			if prices.At(i, s).Delisted {
				if err := p.WriteOff(i, s); err != nil {
					return err
				}
				break
			}
			idx := i - cfg.Period
			if idx >= len(osc) {
				break
			}

			v := osc[idx]
			switch {
			case v > cfg.Overvalued[0] && v < cfg.Overvalued[1]:
				if err := p.Sell(i, s); err != nil {
					return err
				}
				i += cfg.CoolDown - 1
			case v > cfg.Undervalued[0] && v < cfg.Undervalued[1]:
				if err := p.Buy(i, s, cfg.Amount); err != nil {
					return err
				}
				i += cfg.CoolDown - 1
			}
		}
	}

	return liquidate(p, prices)
}
