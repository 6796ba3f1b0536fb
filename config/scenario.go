package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Strategy names accepted in scenario files.
const (
	StrategyRandom   = "random"
	StrategyCrossing = "crossing_averages"
	StrategyMomentum = "momentum"
)

// Scenario describes one simulation run: where the prices come from, which
// strategy to apply, and its parameters.
type Scenario struct {
	Strategy string  `yaml:"strategy"`
	Seed     int64   `yaml:"seed"` // 0 = derive from wall clock
	Amount   float64 `yaml:"amount"`
	Fees     float64 `yaml:"fees"`

	Data DataSpec `yaml:"data"`

	Random   *RandomSpec   `yaml:"random,omitempty"`
	Crossing *CrossingSpec `yaml:"crossing_averages,omitempty"`
	Momentum *MomentumSpec `yaml:"momentum,omitempty"`
}

// DataSpec selects the price source.
type DataSpec struct {
	Source        string    `yaml:"source"` // "generate" or "file"
	Days          int       `yaml:"days"`
	InitialPrices []float64 `yaml:"initial_prices"`
	Volatilities  []float64 `yaml:"volatilities"`
	Path          string    `yaml:"path"`      // file source; empty = MARKET_FILE env
	SelectBy      string    `yaml:"select_by"` // "initial_price", "volatility", or "" for all columns
}

// RandomSpec holds the random strategy's parameters.
type RandomSpec struct {
	Period int `yaml:"period"`
}

// CrossingSpec holds the crossing-averages strategy's parameters.
type CrossingSpec struct {
	SMAPeriod  int       `yaml:"sma_period"`
	FMAPeriod  int       `yaml:"fma_period"`
	SMAWeights []float64 `yaml:"sma_weights,omitempty"`
	FMAWeights []float64 `yaml:"fma_weights,omitempty"`
}

// MomentumSpec holds the momentum strategy's parameters.
type MomentumSpec struct {
	Period      int        `yaml:"period"`
	CoolDown    int        `yaml:"cool_down"`
	Overvalued  [2]float64 `yaml:"overvalued"`
	Undervalued [2]float64 `yaml:"undervalued"`
	Oscillator  string     `yaml:"oscillator"` // "stochastic" or "rsi"
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario read: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("scenario parse: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	switch s.Strategy {
	case StrategyRandom:
		if s.Random == nil {
			return fmt.Errorf("scenario: strategy %q needs a random section", s.Strategy)
		}
	case StrategyCrossing:
		if s.Crossing == nil {
			return fmt.Errorf("scenario: strategy %q needs a crossing_averages section", s.Strategy)
		}
	case StrategyMomentum:
		if s.Momentum == nil {
			return fmt.Errorf("scenario: strategy %q needs a momentum section", s.Strategy)
		}
	default:
		return fmt.Errorf("scenario: unknown strategy %q", s.Strategy)
	}

	switch s.Data.Source {
	case "generate":
		if s.Data.Days < 2 {
			return fmt.Errorf("scenario: generated runs need at least 2 days, got %d", s.Data.Days)
		}
	case "file":
		switch s.Data.SelectBy {
		case "", "initial_price", "volatility":
		default:
			return fmt.Errorf("scenario: unknown select_by %q", s.Data.SelectBy)
		}
	default:
		return fmt.Errorf("scenario: unknown data source %q", s.Data.Source)
	}
	return nil
}
