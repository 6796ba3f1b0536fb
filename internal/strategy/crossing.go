package strategy

import (
	"stocksimv1/internal/indicator"
	"stocksimv1/internal/ledger"
	"stocksimv1/internal/model"
	"stocksimv1/internal/portfolio"
)

// CrossingConfig parameterizes the crossing-averages strategy.
type CrossingConfig struct {
	SMAPeriod  int       // slow moving average period
	FMAPeriod  int       // fast moving average period, must not exceed SMAPeriod
	SMAWeights []float64 // optional, length SMAPeriod
	FMAWeights []float64 // optional, length FMAPeriod
	Amount     float64
	Fees       float64
}

func (cfg CrossingConfig) validate() error {
	if cfg.FMAPeriod < 1 || cfg.SMAPeriod < 1 {
		return configErrorf("periods must be positive (SMA=%d, FMA=%d)", cfg.SMAPeriod, cfg.FMAPeriod)
	}
	if cfg.SMAPeriod < cfg.FMAPeriod {
		return configErrorf("SMA period %d is shorter than FMA period %d", cfg.SMAPeriod, cfg.FMAPeriod)
	}
	if len(cfg.SMAWeights) > 0 && len(cfg.SMAWeights) != cfg.SMAPeriod {
		return configErrorf("%d SMA weights for period %d", len(cfg.SMAWeights), cfg.SMAPeriod)
	}
	if len(cfg.FMAWeights) > 0 && len(cfg.FMAWeights) != cfg.FMAPeriod {
		return configErrorf("%d FMA weights for period %d", len(cfg.FMAWeights), cfg.FMAPeriod)
	}
	return nil
}

// CrossingAverages trades on crossings of a slow and a fast moving average.
// Both series are aligned to start at day SMAPeriod. A sign history of
// (SMA vs FMA) two days wide detects the flips: fast overtaking slow (golden
// cross) buys, fast falling below slow (death cross) sells. Configuration is
// validated before the seed purchase, so an invalid config writes nothing.
func CrossingAverages(prices *model.PriceSeries, cfg CrossingConfig, sink ledger.Sink) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	p, err := portfolio.New(allocations(cfg.Amount, prices.NumStocks()), prices, cfg.Fees, sink)
	if err != nil {
		return err
	}

	final := prices.FinalDay()
	for s := 0; s < prices.NumStocks(); s++ {
		col := prices.Column(s)
		sma, err := indicator.MovingAverage(col, cfg.SMAPeriod, cfg.SMAWeights)
		if err != nil {
			return err
		}
		fma, err := indicator.MovingAverage(col, cfg.FMAPeriod, cfg.FMAWeights)
		if err != nil {
			return err
		}
		// Drop the fast average's head so both series cover the same days.
		if off := cfg.SMAPeriod - cfg.FMAPeriod; off < len(fma) {
			fma = fma[off:]
		} else {
			fma = nil
		}

		prevSign, havePrev := 0, false
		for i := cfg.SMAPeriod; i < final; i++ {
			if prices.At(i, s).Delisted {
				if err := p.WriteOff(i, s); err != nil {
					return err
				}
				break
			}
			idx := i - cfg.SMAPeriod
			if idx >= len(sma) || idx >= len(fma) {
				break
			}

			sign := 0
			switch {
			case sma[idx] < fma[idx]:
				sign = 1
			case sma[idx] > fma[idx]:
				sign = -1
			}

			if havePrev {
				if sign > prevSign {
					if err := p.Buy(i, s, cfg.Amount); err != nil {
						return err
					}
				} else if sign < prevSign {
					if err := p.Sell(i, s); err != nil {
						return err
					}
				}
			}
			prevSign, havePrev = sign, true
		}
	}

	return liquidate(p, prices)
}
