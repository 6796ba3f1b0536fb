// Package model defines the market data types shared across the simulator:
// daily price quotes, the price matrix, and instrument metadata.
package model

// Quote is one instrument's closing price for one day. A delisted quote
// carries no price; once an instrument delists it never relists.
type Quote struct {
	Price    float64 `json:"price"`
	Delisted bool    `json:"delisted,omitempty"`
}

// Active builds a quote for a trading day with the given closing price.
func Active(price float64) Quote {
	return Quote{Price: price}
}

// Gone is the quote recorded for every day on or after an instrument's
// delisting.
var Gone = Quote{Delisted: true}
