package model

import (
	"fmt"
	"math"
)

// PriceSeries is an immutable matrix of daily closing quotes, one column per
// instrument, indexed by day 0..Days()-1. Construction validates that active
// prices are finite and positive and that delisting is monotonic: once a
// column delists on day d, every later day is delisted too.
type PriceSeries struct {
	days int
	cols [][]Quote // cols[stock][day]
}

// NewPriceSeries validates the columns and wraps them in a PriceSeries.
// All columns must have the same length and at least one day, and day 0 of
// every column must be an active quote (an instrument cannot be born dead).
func NewPriceSeries(cols [][]Quote) (*PriceSeries, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("price series: no instruments")
	}
	days := len(cols[0])
	if days == 0 {
		return nil, fmt.Errorf("price series: no days")
	}
	for s, col := range cols {
		if len(col) != days {
			return nil, fmt.Errorf("price series: stock %d has %d days, want %d", s, len(col), days)
		}
		if col[0].Delisted {
			return nil, fmt.Errorf("price series: stock %d delisted on day 0", s)
		}
		delisted := false
		for d, q := range col {
			if q.Delisted {
				delisted = true
				continue
			}
			if delisted {
				return nil, fmt.Errorf("price series: stock %d active on day %d after delisting", s, d)
			}
			if q.Price <= 0 || math.IsNaN(q.Price) || math.IsInf(q.Price, 0) {
				return nil, fmt.Errorf("price series: stock %d day %d has invalid price %v", s, d, q.Price)
			}
		}
	}
	return &PriceSeries{days: days, cols: cols}, nil
}

// Days returns the number of days in the series.
func (p *PriceSeries) Days() int { return p.days }

// FinalDay returns the index of the last day.
func (p *PriceSeries) FinalDay() int { return p.days - 1 }

// NumStocks returns the number of instrument columns.
func (p *PriceSeries) NumStocks() int { return len(p.cols) }

// At returns the quote for one day of one instrument.
func (p *PriceSeries) At(day, stock int) Quote {
	return p.cols[stock][day]
}

// Column returns one instrument's full quote column. The slice is shared;
// callers must not mutate it.
func (p *PriceSeries) Column(stock int) []Quote {
	return p.cols[stock]
}

// DelistedOn returns the first delisted day for an instrument, if any.
func (p *PriceSeries) DelistedOn(stock int) (int, bool) {
	for d, q := range p.cols[stock] {
		if q.Delisted {
			return d, true
		}
	}
	return 0, false
}
