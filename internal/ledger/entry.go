// Package ledger defines the transaction record and the sinks it is written
// to. The text ledger file is the system of record; the sqlite journal and
// redis stream are optional mirrors for querying and tailing.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Action is the transaction direction.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Entry is one immutable ledger record. NetCashFlow is negative for buys
// (shares*price plus fees) and positive for sells (shares*price minus fees),
// rounded to 2 decimal places.
type Entry struct {
	Action      Action          `json:"action"`
	Day         int             `json:"day"`
	Stock       int             `json:"stock"`
	Shares      int64           `json:"shares"`
	Price       float64         `json:"price"`
	NetCashFlow decimal.Decimal `json:"net_cash_flow"`
}

// NewEntry builds an entry, deriving the net cash flow from shares, price,
// and the fixed per-transaction fee.
func NewEntry(action Action, day, stock int, shares int64, price, fees float64) Entry {
	gross := decimal.NewFromInt(shares).Mul(decimal.NewFromFloat(price))
	fee := decimal.NewFromFloat(fees)

	var net decimal.Decimal
	if action == ActionBuy {
		net = gross.Add(fee).Neg()
	} else {
		net = gross.Sub(fee)
	}

	return Entry{
		Action:      action,
		Day:         day,
		Stock:       stock,
		Shares:      shares,
		Price:       price,
		NetCashFlow: net.Round(2),
	}
}

// Record renders the entry as one ledger file line (without the newline):
// type,day,stock,shares,price,net_cash_flow with both amounts at exactly 2
// decimal digits.
func (e Entry) Record() string {
	return fmt.Sprintf("%s,%d,%d,%d,%s,%s",
		e.Action, e.Day, e.Stock, e.Shares,
		decimal.NewFromFloat(e.Price).StringFixed(2),
		e.NetCashFlow.StringFixed(2))
}
