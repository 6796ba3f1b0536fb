package portfolio

import (
	"testing"

	"stocksimv1/internal/ledger"
	"stocksimv1/internal/model"
)

func series(t *testing.T, cols [][]model.Quote) *model.PriceSeries {
	t.Helper()
	ps, err := model.NewPriceSeries(cols)
	if err != nil {
		t.Fatal(err)
	}
	return ps
}

func flatColumn(price float64, days int) []model.Quote {
	col := make([]model.Quote, days)
	for i := range col {
		col[i] = model.Active(price)
	}
	return col
}

func TestNew_SeedsHoldingsAndLedger(t *testing.T) {
	ps := series(t, [][]model.Quote{flatColumn(100, 5)})
	sink := ledger.NewMemorySink()

	p, err := New([]float64{1000}, ps, 40, sink)
	if err != nil {
		t.Fatal(err)
	}
	// floor((1000-40)/100) = 9
	if got := p.Shares(0); got != 9 {
		t.Errorf("shares = %d, want 9", got)
	}

	entries := sink.Snapshot()
	if len(entries) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(entries))
	}
	if got := entries[0].Record(); got != "buy,0,0,9,100.00,-940.00" {
		t.Errorf("record = %q", got)
	}
}

func TestNew_AllocationCountMismatch(t *testing.T) {
	ps := series(t, [][]model.Quote{flatColumn(100, 3), flatColumn(50, 3)})
	if _, err := New([]float64{1000}, ps, 40, ledger.NewMemorySink()); err == nil {
		t.Fatal("expected error for 1 allocation over 2 stocks")
	}
}

func TestBuyThenSell_SameDayLosesTwiceTheFees(t *testing.T) {
	ps := series(t, [][]model.Quote{flatColumn(100, 5)})
	sink := ledger.NewMemorySink()

	p, err := New([]float64{0}, ps, 0, sink)
	if err != nil {
		t.Fatal(err)
	}
	sink.Reset() // drop the zero-share seed entry

	if err := p.Buy(2, 0, 1020); err != nil {
		t.Fatal(err)
	}
	if got := p.Shares(0); got != 10 {
		t.Fatalf("shares after buy = %d, want 10", got)
	}
	if err := p.Sell(2, 0); err != nil {
		t.Fatal(err)
	}
	if got := p.Shares(0); got != 0 {
		t.Errorf("shares after sell = %d, want 0", got)
	}

	entries := sink.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("ledger has %d entries, want 2", len(entries))
	}
	// fees are 0 here, so the flat-price round trip nets to zero
	net := entries[0].NetCashFlow.Add(entries[1].NetCashFlow)
	if !net.IsZero() {
		t.Errorf("round-trip net = %s, want 0", net)
	}
}

func TestBuyThenSell_WithFees(t *testing.T) {
	ps := series(t, [][]model.Quote{flatColumn(50, 3)})
	sink := ledger.NewMemorySink()

	p, err := New([]float64{20}, ps, 20, sink) // seed buys 0 shares
	if err != nil {
		t.Fatal(err)
	}
	sink.Reset()

	if err := p.Buy(1, 0, 520); err != nil { // floor(500/50) = 10 shares
		t.Fatal(err)
	}
	if err := p.Sell(1, 0); err != nil {
		t.Fatal(err)
	}

	entries := sink.Snapshot()
	net := entries[0].NetCashFlow.Add(entries[1].NetCashFlow)
	if net.String() != "-40" { // 2 x fees at unchanged price
		t.Errorf("round-trip net = %s, want -40", net)
	}
}

func TestBuy_InsufficientCapitalLogsFeeOnlyEntry(t *testing.T) {
	ps := series(t, [][]model.Quote{flatColumn(5000, 3)})
	sink := ledger.NewMemorySink()

	p, err := New([]float64{20}, ps, 20, sink) // seed buys 0 shares
	if err != nil {
		t.Fatal(err)
	}
	sink.Reset()

	if err := p.Buy(1, 0, 100); err != nil {
		t.Fatal(err)
	}
	entries := sink.Snapshot()
	if len(entries) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(entries))
	}
	if entries[0].Shares != 0 {
		t.Errorf("shares = %d, want 0", entries[0].Shares)
	}
	if entries[0].NetCashFlow.String() != "-20" {
		t.Errorf("net = %s, want -20 (fees only)", entries[0].NetCashFlow)
	}
}

func TestSell_FlatPositionIsSilentNoOp(t *testing.T) {
	ps := series(t, [][]model.Quote{flatColumn(100, 3)})
	sink := ledger.NewMemorySink()

	p, err := New([]float64{0}, ps, 0, sink)
	if err != nil {
		t.Fatal(err)
	}
	sink.Reset()

	if err := p.Sell(1, 0); err != nil {
		t.Fatal(err)
	}
	if got := len(sink.Snapshot()); got != 0 {
		t.Errorf("ledger has %d entries after no-op sell, want 0", got)
	}
}

func TestWriteOff_SellsAtZero(t *testing.T) {
	col := flatColumn(100, 2)
	col = append(col, model.Gone, model.Gone)
	ps := series(t, [][]model.Quote{col})
	sink := ledger.NewMemorySink()

	p, err := New([]float64{1040}, ps, 40, sink)
	if err != nil {
		t.Fatal(err)
	}
	sink.Reset()

	if err := p.WriteOff(2, 0); err != nil {
		t.Fatal(err)
	}
	if got := p.Shares(0); got != 0 {
		t.Errorf("shares after write-off = %d, want 0", got)
	}
	entries := sink.Snapshot()
	if len(entries) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(entries))
	}
	if got := entries[0].Record(); got != "sell,2,0,10,0.00,0.00" {
		t.Errorf("record = %q", got)
	}

	// A second write-off is a no-op.
	if err := p.WriteOff(3, 0); err != nil {
		t.Fatal(err)
	}
	if got := len(sink.Snapshot()); got != 1 {
		t.Errorf("ledger grew to %d entries on flat write-off", got)
	}
}
