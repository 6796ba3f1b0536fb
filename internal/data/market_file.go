package data

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"stocksimv1/internal/model"
)

// MaxReferenceStocks caps the number of columns in a market file.
const MaxReferenceStocks = 20

// MarketFile is a parsed market data file: row 0 holds per-instrument
// volatilities, and every following row the daily closing prices, day 0
// first. Delisted days are recorded as NaN in the file.
type MarketFile struct {
	Volatility []float64
	rows       [][]float64 // rows[day][stock]
}

// Selection is the result of matching requested instruments against the
// reference columns of a market file.
type Selection struct {
	Series     *model.PriceSeries
	Columns    []int     // chosen reference column per requested instrument
	Initial    []float64 // day-0 price of each chosen column
	Volatility []float64 // volatility of each chosen column
}

// ReadMarketFile parses a whitespace-separated float matrix.
func ReadMarketFile(r io.Reader) (*MarketFile, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var rows [][]float64
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) > MaxReferenceStocks {
			return nil, fmt.Errorf("market file line %d: %d columns, max %d", line, len(fields), MaxReferenceStocks)
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("market file line %d column %d: %w", line, i+1, err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("market file line %d: %d columns, want %d", line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("market file read: %w", err)
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("market file: %d rows, need a volatility row and at least 2 days", len(rows))
	}

	return &MarketFile{Volatility: rows[0], rows: rows[1:]}, nil
}

// NumStocks returns the number of reference columns.
func (m *MarketFile) NumStocks() int { return len(m.Volatility) }

// Days returns the number of price days.
func (m *MarketFile) Days() int { return len(m.rows) }

// Initial returns the day-0 prices of all reference columns.
func (m *MarketFile) Initial() []float64 { return m.rows[0] }

// column converts one file column into quotes, mapping NaN to delisted.
func (m *MarketFile) column(j int) []model.Quote {
	col := make([]model.Quote, len(m.rows))
	for d, row := range m.rows {
		if math.IsNaN(row[j]) {
			col[d] = model.Gone
		} else {
			col[d] = model.Active(row[j])
		}
	}
	return col
}

// WholeSeries returns every reference column as a price series.
func (m *MarketFile) WholeSeries() (*model.PriceSeries, error) {
	cols := make([][]model.Quote, m.NumStocks())
	for j := range cols {
		cols[j] = m.column(j)
	}
	return model.NewPriceSeries(cols)
}

// SelectByInitialPrice picks, for each target, the reference column whose
// day-0 price is closest. Ties keep the first column encountered, scanning
// low to high.
func (m *MarketFile) SelectByInitialPrice(targets []float64) (*Selection, error) {
	if len(targets) == 0 {
		return nil, &MissingParameterError{Name: "the initial price"}
	}
	return m.selectNearest(targets, m.Initial())
}

// SelectByVolatility picks, for each target, the reference column whose
// volatility is closest. Same tie-break as SelectByInitialPrice.
func (m *MarketFile) SelectByVolatility(targets []float64) (*Selection, error) {
	if len(targets) == 0 {
		return nil, &MissingParameterError{Name: "the volatility"}
	}
	return m.selectNearest(targets, m.Volatility)
}

func (m *MarketFile) selectNearest(targets, reference []float64) (*Selection, error) {
	sel := &Selection{
		Columns:    make([]int, len(targets)),
		Initial:    make([]float64, len(targets)),
		Volatility: make([]float64, len(targets)),
	}
	cols := make([][]model.Quote, len(targets))

	initial := m.Initial()
	for i, target := range targets {
		best := 0
		for j := 1; j < m.NumStocks(); j++ {
			// Strict improvement only: first column wins ties.
			if math.Abs(target-reference[j]) < math.Abs(target-reference[best]) {
				best = j
			}
		}
		sel.Columns[i] = best
		sel.Initial[i] = initial[best]
		sel.Volatility[i] = m.Volatility[best]
		cols[i] = m.column(best)
	}

	series, err := model.NewPriceSeries(cols)
	if err != nil {
		return nil, err
	}
	sel.Series = series
	return sel, nil
}

// WriteMarketFile writes a volatility row followed by one price row per day,
// recording delisted days as nan. The output round-trips through
// ReadMarketFile.
func WriteMarketFile(w io.Writer, volatilities []float64, cols [][]model.Quote) error {
	if len(volatilities) != len(cols) {
		return fmt.Errorf("market file write: %d volatilities for %d columns", len(volatilities), len(cols))
	}
	bw := bufio.NewWriter(w)

	for j, v := range volatilities {
		if j > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	bw.WriteByte('\n')

	days := len(cols[0])
	for d := 0; d < days; d++ {
		for j, col := range cols {
			if j > 0 {
				bw.WriteByte(' ')
			}
			if col[d].Delisted {
				bw.WriteString("nan")
			} else {
				bw.WriteString(strconv.FormatFloat(col[d].Price, 'f', 2, 64))
			}
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("market file write: %w", err)
	}
	return nil
}
