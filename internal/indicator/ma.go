package indicator

import (
	"fmt"

	"stocksimv1/internal/model"
)

// MovingAverage calculates the period-day moving average of a price column.
//
// With nil or empty weights the average is unweighted. Otherwise weights must
// have exactly period elements and each value is the dot product of the
// weights with the trailing period prices.
//
// Output length is max(0, activeDays-period+1); value i covers the window
// ending at day i+period-1.
func MovingAverage(col []model.Quote, period int, weights []float64) ([]float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	if len(weights) > 0 && len(weights) != period {
		return nil, fmt.Errorf("indicator: %d weights for period %d", len(weights), period)
	}

	days := activeLen(col)
	if days < period {
		return []float64{}, nil
	}
	out := make([]float64, 0, days-period+1)

	if len(weights) == 0 {
		sma := NewSMA(period)
		for i := 0; i < days; i++ {
			sma.Update(col[i].Price)
			if sma.Ready() {
				out = append(out, sma.Value())
			}
		}
		return out, nil
	}

	for i := period - 1; i < days; i++ {
		var dot float64
		for j := 0; j < period; j++ {
			dot += weights[j] * col[i-period+1+j].Price
		}
		out = append(out, dot)
	}
	return out, nil
}
