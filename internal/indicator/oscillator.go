package indicator

import (
	"fmt"
	"math"

	"stocksimv1/internal/model"
)

// Oscillator calculates a bounded [0,1] momentum oscillator with a period-day
// window over a price column. Alignment and truncation rules match
// MovingAverage.
//
// Stochastic: |close - min(window)| / |max(window) - min(window)|, defined as
// 1 when the window is flat (price pinned at its own high).
//
// RSI: over the window's period-1 day-over-day deltas, 1 - 1/(1+G/L) where G
// is the mean positive delta and L the mean absolute negative delta. All
// deltas non-negative gives 1, all non-positive gives 0; the special cases
// take priority so there is no division by zero.
func Oscillator(col []model.Quote, period int, kind Kind) ([]float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	switch kind {
	case Stochastic, RSI:
	default:
		return nil, fmt.Errorf("indicator: unknown oscillator kind %q", kind)
	}

	days := activeLen(col)
	if days < period {
		return []float64{}, nil
	}
	out := make([]float64, 0, days-period+1)

	for i := period - 1; i < days; i++ {
		window := col[i-period+1 : i+1]
		if kind == Stochastic {
			out = append(out, stochastic(window))
		} else {
			out = append(out, rsi(window))
		}
	}
	return out, nil
}

func stochastic(window []model.Quote) float64 {
	lo, hi := window[0].Price, window[0].Price
	for _, q := range window[1:] {
		lo = math.Min(lo, q.Price)
		hi = math.Max(hi, q.Price)
	}
	if hi == lo {
		return 1
	}
	last := window[len(window)-1].Price
	return math.Abs(last-lo) / math.Abs(hi-lo)
}

func rsi(window []model.Quote) float64 {
	var gainSum, lossSum float64
	var gains, losses int
	for j := 1; j < len(window); j++ {
		delta := window[j].Price - window[j-1].Price
		if delta > 0 {
			gainSum += delta
			gains++
		} else if delta < 0 {
			lossSum -= delta
			losses++
		}
	}
	if losses == 0 {
		return 1
	}
	if gains == 0 {
		return 0
	}
	avgGain := gainSum / float64(gains)
	avgLoss := lossSum / float64(losses)
	rs := avgGain / avgLoss
	return 1 - 1/(1+rs)
}
