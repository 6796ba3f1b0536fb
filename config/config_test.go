package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("LEDGER_DIR")
	os.Unsetenv("REDIS_ADDR")
	cfg := Load()
	if cfg.LedgerDir != "." {
		t.Errorf("LedgerDir = %q", cfg.LedgerDir)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want disabled", cfg.RedisAddr)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LEDGER_DIR", "/tmp/ledgers")
	t.Setenv("METRICS_ADDR", ":9090")
	cfg := Load()
	if cfg.LedgerDir != "/tmp/ledgers" {
		t.Errorf("LedgerDir = %q", cfg.LedgerDir)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
}

func writeScenario(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario_Momentum(t *testing.T) {
	path := writeScenario(t, `
strategy: momentum
seed: 7
amount: 5000
fees: 20
data:
  source: generate
  days: 1825
  initial_prices: [100, 250]
  volatilities: [1.2, 2.5]
momentum:
  period: 200
  cool_down: 10
  overvalued: [0.7, 0.8]
  undervalued: [0.2, 0.3]
  oscillator: stochastic
`)

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Strategy != StrategyMomentum || s.Momentum == nil {
		t.Fatalf("scenario = %+v", s)
	}
	if s.Momentum.CoolDown != 10 {
		t.Errorf("cool_down = %d", s.Momentum.CoolDown)
	}
	if s.Momentum.Overvalued != [2]float64{0.7, 0.8} {
		t.Errorf("overvalued = %v", s.Momentum.Overvalued)
	}
	if len(s.Data.InitialPrices) != 2 {
		t.Errorf("initial_prices = %v", s.Data.InitialPrices)
	}
}

func TestLoadScenario_Crossing(t *testing.T) {
	path := writeScenario(t, `
strategy: crossing_averages
amount: 5000
fees: 20
data:
  source: file
  path: market.txt
  select_by: initial_price
  initial_prices: [150]
crossing_averages:
  sma_period: 200
  fma_period: 50
`)
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Crossing.SMAPeriod != 200 || s.Crossing.FMAPeriod != 50 {
		t.Errorf("crossing = %+v", s.Crossing)
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"unknown strategy", "strategy: hodl\ndata:\n  source: generate\n  days: 10\n"},
		{"missing section", "strategy: momentum\ndata:\n  source: generate\n  days: 10\n"},
		{"bad source", "strategy: random\nrandom:\n  period: 7\ndata:\n  source: dream\n"},
		{"bad select_by", "strategy: random\nrandom:\n  period: 7\ndata:\n  source: file\n  select_by: mood\n"},
		{"too few days", "strategy: random\nrandom:\n  period: 7\ndata:\n  source: generate\n  days: 1\n"},
		{"not yaml", ":\t::"},
	}
	for _, tc := range cases {
		if _, err := LoadScenario(writeScenario(t, tc.text)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
