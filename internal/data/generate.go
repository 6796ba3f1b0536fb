// Package data provides the simulator's price data sources: a stochastic
// daily-close generator and a flat-file market data reader.
package data

import (
	"math"
	"math/rand"

	"stocksimv1/internal/model"
)

const (
	newsChance    = 0.1
	newsMinDays   = 3
	newsMaxDays   = 14
	newsMagnitude = 2.0 // stddev of the news impact multiplier
)

// MissingParameterError reports a required generation parameter that was not
// supplied.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return "please specify " + e.Name + " for each stock"
}

// GenerateColumn simulates one instrument's daily closing prices: a random
// walk with unit-normal increments plus occasional news shocks whose drift
// (scaled by the instrument's volatility) persists for a few days. The day a
// price would go non-positive the instrument delists, and stays delisted.
// Prices are rounded to 2 decimal places.
func GenerateColumn(days int, initialPrice, volatility float64, rng *rand.Rand) []model.Quote {
	col := make([]model.Quote, days)
	col[0] = model.Active(round2(initialPrice))

	totalDrift := make([]float64, days)
	price := initialPrice

	for day := 1; day < days; day++ {
		price += rng.NormFloat64()

		// News arrives with a fixed chance per day; its drift accumulates
		// over the following days.
		if rng.Float64() < newsChance {
			drift := rng.NormFloat64() * newsMagnitude * volatility
			duration := newsMinDays + rng.Intn(newsMaxDays-newsMinDays+1)
			for d := day; d < day+duration && d < days; d++ {
				totalDrift[d] += drift
			}
		}
		price += totalDrift[day]

		if price <= 0 {
			for d := day; d < days; d++ {
				col[d] = model.Gone
			}
			return col
		}
		col[day] = model.Active(round2(price))
	}
	return col
}

// GenerateSeries simulates a full price matrix, one column per entry in
// initialPrices/volatilities.
func GenerateSeries(days int, initialPrices, volatilities []float64, rng *rand.Rand) (*model.PriceSeries, error) {
	switch {
	case len(initialPrices) == 0 && len(volatilities) == 0:
		return nil, &MissingParameterError{Name: "the initial price and volatility"}
	case len(initialPrices) == 0:
		return nil, &MissingParameterError{Name: "the initial price"}
	case len(volatilities) == 0:
		return nil, &MissingParameterError{Name: "the volatility"}
	case len(initialPrices) != len(volatilities):
		return nil, &MissingParameterError{Name: "matching initial prices and volatilities"}
	}

	cols := make([][]model.Quote, len(initialPrices))
	for i := range initialPrices {
		cols[i] = GenerateColumn(days, initialPrices[i], volatilities[i], rng)
	}
	return model.NewPriceSeries(cols)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
