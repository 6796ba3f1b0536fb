// Package portfolio tracks per-instrument holdings for one strategy run and
// owns the buy/sell primitives that mutate holdings and append ledger
// entries atomically per call.
package portfolio

import (
	"fmt"
	"math"

	"stocksimv1/internal/ledger"
	"stocksimv1/internal/model"
)

// Portfolio holds integer share counts keyed by instrument id. It lives for
// one run; the ledger is the only state that outlives it.
type Portfolio struct {
	holdings map[int]int64
	prices   *model.PriceSeries
	fees     float64
	sink     ledger.Sink
}

// New seeds a portfolio at day 0 with one allocation per instrument,
// spending floor((allocation-fees)/price) on each and logging one buy entry
// per instrument. The sink should be freshly created for this run.
func New(allocations []float64, prices *model.PriceSeries, fees float64, sink ledger.Sink) (*Portfolio, error) {
	if len(allocations) != prices.NumStocks() {
		return nil, fmt.Errorf("portfolio: %d allocations for %d stocks", len(allocations), prices.NumStocks())
	}

	p := &Portfolio{
		holdings: make(map[int]int64, prices.NumStocks()),
		prices:   prices,
		fees:     fees,
		sink:     sink,
	}

	for s := 0; s < prices.NumStocks(); s++ {
		// Day 0 is always active; the price series guarantees it.
		price := prices.At(0, s).Price
		shares := int64(math.Floor((allocations[s] - fees) / price))
		p.holdings[s] = shares
		if err := sink.Append(ledger.NewEntry(ledger.ActionBuy, 0, s, shares, price, fees)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Buy spends up to capital (fees included) on one instrument at that day's
// closing price. Insufficient capital buys zero shares but still logs a buy
// whose cash flow is the fee alone. Negative capital is the caller's
// problem, as with the seed purchase.
func (p *Portfolio) Buy(day, stock int, capital float64) error {
	q := p.prices.At(day, stock)
	if q.Delisted {
		return fmt.Errorf("portfolio: buy stock %d on day %d: delisted", stock, day)
	}
	shares := int64(math.Floor((capital - p.fees) / q.Price))
	p.holdings[stock] += shares
	return p.sink.Append(ledger.NewEntry(ledger.ActionBuy, day, stock, shares, q.Price, p.fees))
}

// Sell liquidates the entire position in one instrument at that day's
// closing price. Selling with nothing held is a silent no-op: no entry is
// appended.
func (p *Portfolio) Sell(day, stock int) error {
	shares := p.holdings[stock]
	if shares == 0 {
		return nil
	}
	q := p.prices.At(day, stock)
	if q.Delisted {
		return fmt.Errorf("portfolio: sell stock %d on day %d: delisted", stock, day)
	}
	if err := p.sink.Append(ledger.NewEntry(ledger.ActionSell, day, stock, shares, q.Price, p.fees)); err != nil {
		return err
	}
	p.holdings[stock] = 0
	return nil
}

// WriteOff records a forced liquidation of a delisted instrument: the whole
// position sold at price 0 with zero fees. No-op when the position is flat.
func (p *Portfolio) WriteOff(day, stock int) error {
	shares := p.holdings[stock]
	if shares == 0 {
		return nil
	}
	if err := p.sink.Append(ledger.NewEntry(ledger.ActionSell, day, stock, shares, 0, 0)); err != nil {
		return err
	}
	p.holdings[stock] = 0
	return nil
}

// Shares returns the current holding for one instrument.
func (p *Portfolio) Shares(stock int) int64 {
	return p.holdings[stock]
}

// Holdings returns a snapshot of all holdings.
func (p *Portfolio) Holdings() map[int]int64 {
	out := make(map[int]int64, len(p.holdings))
	for s, n := range p.holdings {
		out[s] = n
	}
	return out
}
