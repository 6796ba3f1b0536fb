// Package report reads a ledger back into transaction records and computes
// the performance summary for a run. The decision engine never depends on
// this package; only the reverse.
package report

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"stocksimv1/internal/ledger"
)

// Parse reads ledger file lines back into entries.
func Parse(r io.Reader) ([]ledger.Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []ledger.Entry
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		e, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ledger read: %w", err)
	}
	return entries, nil
}

func parseLine(text string) (ledger.Entry, error) {
	fields := strings.Split(text, ",")
	if len(fields) != 6 {
		return ledger.Entry{}, fmt.Errorf("%d fields, want 6", len(fields))
	}

	action := ledger.Action(fields[0])
	if action != ledger.ActionBuy && action != ledger.ActionSell {
		return ledger.Entry{}, fmt.Errorf("unknown transaction type %q", fields[0])
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("day: %w", err)
	}
	stock, err := strconv.Atoi(fields[2])
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("stock: %w", err)
	}
	shares, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("shares: %w", err)
	}
	price, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("price: %w", err)
	}
	net, err := decimal.NewFromString(fields[5])
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("net cash flow: %w", err)
	}

	return ledger.Entry{
		Action:      action,
		Day:         day,
		Stock:       stock,
		Shares:      shares,
		Price:       price,
		NetCashFlow: net,
	}, nil
}

// ProfitPoint is the cumulative profit up to one day with activity.
type ProfitPoint struct {
	Day        int
	Cumulative decimal.Decimal
}

// Summary aggregates a run's ledger.
type Summary struct {
	Buys        int
	Sells       int
	TotalSpent  decimal.Decimal // absolute sum of negative cash flows
	TotalEarned decimal.Decimal // sum of positive cash flows
	Profit      decimal.Decimal
	Curve       []ProfitPoint // cumulative profit on days with nonzero net
}

// Summarize computes the performance summary of a ledger.
func Summarize(entries []ledger.Entry) Summary {
	s := Summary{
		TotalSpent:  decimal.Zero,
		TotalEarned: decimal.Zero,
		Profit:      decimal.Zero,
	}

	byDay := map[int]decimal.Decimal{}
	maxDay := 0
	for _, e := range entries {
		if e.Action == ledger.ActionBuy {
			s.Buys++
		} else {
			s.Sells++
		}
		if e.NetCashFlow.IsNegative() {
			s.TotalSpent = s.TotalSpent.Add(e.NetCashFlow.Abs())
		} else {
			s.TotalEarned = s.TotalEarned.Add(e.NetCashFlow)
		}
		byDay[e.Day] = byDay[e.Day].Add(e.NetCashFlow)
		if e.Day > maxDay {
			maxDay = e.Day
		}
	}
	s.Profit = s.TotalEarned.Sub(s.TotalSpent)

	cumulative := decimal.Zero
	for day := 0; day <= maxDay; day++ {
		net, ok := byDay[day]
		if !ok || net.IsZero() {
			continue
		}
		cumulative = cumulative.Add(net)
		s.Curve = append(s.Curve, ProfitPoint{Day: day, Cumulative: cumulative})
	}
	return s
}

// FromJournal reads one strategy's entries back from the sqlite journal
// mirror, in insertion order.
func FromJournal(dbPath, strategy string) ([]ledger.Entry, error) {
	db, err := sql.Open("sqlite3", dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("journal open: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT action, day, stock, shares, price, net
		 FROM transactions WHERE strategy = ? ORDER BY id`, strategy)
	if err != nil {
		return nil, fmt.Errorf("journal query: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var (
			action       string
			day, stock   int
			shares       int64
			priceS, netS string
		)
		if err := rows.Scan(&action, &day, &stock, &shares, &priceS, &netS); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		price, err := strconv.ParseFloat(priceS, 64)
		if err != nil {
			return nil, fmt.Errorf("journal price: %w", err)
		}
		net, err := decimal.NewFromString(netS)
		if err != nil {
			return nil, fmt.Errorf("journal net: %w", err)
		}
		entries = append(entries, ledger.Entry{
			Action:      ledger.Action(action),
			Day:         day,
			Stock:       stock,
			Shares:      shares,
			Price:       price,
			NetCashFlow: net,
		})
	}
	return entries, rows.Err()
}
