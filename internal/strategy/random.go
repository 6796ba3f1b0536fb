package strategy

import (
	"math/rand"

	"stocksimv1/internal/ledger"
	"stocksimv1/internal/model"
	"stocksimv1/internal/portfolio"
)

// RandomConfig parameterizes the random strategy.
type RandomConfig struct {
	Period int     // decision interval in days
	Amount float64 // maximum spend per purchase, fees included
	Fees   float64 // fixed fee per transaction
}

// Random decides, every Period days, whether to buy, hold, or sell each
// instrument with equal probability. The random source is injected so runs
// are reproducible under a fixed seed.
func Random(prices *model.PriceSeries, cfg RandomConfig, rng *rand.Rand, sink ledger.Sink) error {
	if cfg.Period < 1 {
		return configErrorf("period must be positive, got %d", cfg.Period)
	}
	if rng == nil {
		return configErrorf("random source is required")
	}

	p, err := portfolio.New(allocations(cfg.Amount, prices.NumStocks()), prices, cfg.Fees, sink)
	if err != nil {
		return err
	}

	final := prices.FinalDay()
	for s := 0; s < prices.NumStocks(); s++ {
		for i := 1; cfg.Period*i < final; i++ {
			day := cfg.Period * i
			if prices.At(day, s).Delisted {
				if err := p.WriteOff(day, s); err != nil {
					return err
				}
				break
			}
			switch rng.Intn(3) {
			case 0:
				if err := p.Buy(day, s, cfg.Amount); err != nil {
					return err
				}
			case 1:
				// hold
			case 2:
				if err := p.Sell(day, s); err != nil {
					return err
				}
			}
		}
	}

	return liquidate(p, prices)
}
