package report

import (
	"strings"
	"testing"

	"stocksimv1/internal/ledger"
)

const sampleLedger = `buy,0,0,9,100.00,-940.00
buy,0,1,4,200.00,-840.00
sell,8,1,4,210.00,820.00
buy,14,0,5,95.00,-495.00
sell,20,0,14,105.00,1450.00
`

func TestParse_RoundTrip(t *testing.T) {
	entries, err := Parse(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Fatalf("parsed %d entries, want 5", len(entries))
	}

	lines := strings.Split(strings.TrimSpace(sampleLedger), "\n")
	for i, e := range entries {
		if e.Record() != lines[i] {
			t.Errorf("entry %d re-renders as %q, want %q", i, e.Record(), lines[i])
		}
	}
	if entries[0].Action != ledger.ActionBuy || entries[0].Shares != 9 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"wrong field count", "buy,0,0,9,100.00\n"},
		{"unknown type", "short,0,0,9,100.00,-940.00\n"},
		{"bad day", "buy,x,0,9,100.00,-940.00\n"},
		{"bad amount", "buy,0,0,9,100.00,oops\n"},
	}
	for _, tc := range cases {
		if _, err := Parse(strings.NewReader(tc.text)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestSummarize(t *testing.T) {
	entries, err := Parse(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(entries)

	if s.Buys != 3 || s.Sells != 2 {
		t.Errorf("buys=%d sells=%d, want 3 and 2", s.Buys, s.Sells)
	}
	if got := s.TotalSpent.String(); got != "2275" {
		t.Errorf("total spent = %s, want 2275", got)
	}
	if got := s.TotalEarned.String(); got != "2270" {
		t.Errorf("total earned = %s, want 2270", got)
	}
	if got := s.Profit.String(); got != "-5" {
		t.Errorf("profit = %s, want -5", got)
	}

	// Day 0 nets -1780, day 8 +820, day 14 -495, day 20 +1450.
	wantDays := []int{0, 8, 14, 20}
	wantCum := []string{"-1780", "-960", "-1455", "-5"}
	if len(s.Curve) != len(wantDays) {
		t.Fatalf("curve has %d points: %+v", len(s.Curve), s.Curve)
	}
	for i, p := range s.Curve {
		if p.Day != wantDays[i] || p.Cumulative.String() != wantCum[i] {
			t.Errorf("curve[%d] = day %d %s, want day %d %s",
				i, p.Day, p.Cumulative, wantDays[i], wantCum[i])
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Buys != 0 || s.Sells != 0 || !s.Profit.IsZero() || len(s.Curve) != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}
