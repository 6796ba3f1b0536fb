// cmd/simulate runs one trading scenario end to end: it builds or loads a
// price series, applies the configured strategy, and writes the resulting
// ledger. Optional mirrors (SQLite journal, Redis stream, websocket feed,
// Prometheus metrics) are enabled through environment variables.
//
// Usage:
//
//	go run ./cmd/simulate --scenario=scenarios/momentum.yaml --ledger=momentum_ledger.txt
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"stocksimv1/config"
	"stocksimv1/internal/data"
	"stocksimv1/internal/feed"
	"stocksimv1/internal/indicator"
	"stocksimv1/internal/ledger"
	"stocksimv1/internal/logger"
	"stocksimv1/internal/metrics"
	"stocksimv1/internal/model"
	"stocksimv1/internal/report"
	"stocksimv1/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	_ = godotenv.Load()

	scenarioPath := flag.String("scenario", "scenario.yaml", "Scenario YAML file")
	ledgerPath := flag.String("ledger", "", "Ledger output path (default <LEDGER_DIR>/<strategy>_ledger.txt)")
	seedFlag := flag.Int64("seed", 0, "Override the scenario's random seed")
	flag.Parse()

	cfg := config.Load()
	sc, err := config.LoadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("[simulate] %v", err)
	}

	slg := logger.Init("simulate", slog.LevelInfo)

	seed := sc.Seed
	if *seedFlag != 0 {
		seed = *seedFlag
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	prices, err := buildSeries(cfg, sc, rng)
	if err != nil {
		log.Fatalf("[simulate] price series: %v", err)
	}
	slg.Info("run starting",
		slog.String("strategy", sc.Strategy),
		slog.Int64("seed", seed),
		slog.Int("stocks", prices.NumStocks()),
		slog.Int("days", prices.Days()),
	)

	out := *ledgerPath
	if out == "" {
		out = filepath.Join(cfg.LedgerDir, sc.Strategy+"_ledger.txt")
	}
	file, err := ledger.NewFileSink(out)
	if err != nil {
		log.Fatalf("[simulate] ledger file: %v", err)
	}
	mem := ledger.NewMemorySink()
	sinks := []ledger.Sink{file, mem}

	if cfg.SQLitePath != "" {
		journal, err := ledger.NewJournal(cfg.SQLitePath, sc.Strategy)
		if err != nil {
			log.Fatalf("[simulate] sqlite journal: %v", err)
		}
		sinks = append(sinks, journal)
	}
	if cfg.RedisAddr != "" {
		pub, err := ledger.NewPublisher(ledger.PublisherConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Stream:   "ledger:" + sc.Strategy,
		})
		if err != nil {
			log.Fatalf("[simulate] redis publisher: %v", err)
		}
		sinks = append(sinks, pub)
	}
	if cfg.FeedAddr != "" {
		hub := feed.NewHub()
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.ServeWS)
		go func() {
			if err := http.ListenAndServe(cfg.FeedAddr, mux); err != nil {
				log.Printf("[simulate] feed server: %v", err)
			}
		}()
		sinks = append(sinks, feed.NewEntrySink(hub, sc.Strategy))
	}

	var sink ledger.Sink = ledger.NewTee(sinks...)
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		sink = m.WrapSink(sink, sc.Strategy)
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr, reg); err != nil {
				log.Printf("[simulate] metrics server: %v", err)
			}
		}()
	}

	if err := runStrategy(sc, prices, rng, sink); err != nil {
		sink.Close()
		log.Fatalf("[simulate] %s: %v", sc.Strategy, err)
	}
	if err := sink.Close(); err != nil {
		log.Fatalf("[simulate] ledger close: %v", err)
	}

	printSummary(sc.Strategy, out, report.Summarize(mem.Snapshot()))
}

// buildSeries constructs the price series the scenario asks for, either by
// generating fresh random walks or by loading columns from a market file.
func buildSeries(cfg *config.Config, sc *config.Scenario, rng *rand.Rand) (*model.PriceSeries, error) {
	if sc.Data.Source == "generate" {
		return data.GenerateSeries(sc.Data.Days, sc.Data.InitialPrices, sc.Data.Volatilities, rng)
	}

	path := sc.Data.Path
	if path == "" {
		path = cfg.MarketFile
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mf, err := data.ReadMarketFile(f)
	if err != nil {
		return nil, err
	}

	switch sc.Data.SelectBy {
	case "initial_price":
		sel, err := mf.SelectByInitialPrice(sc.Data.InitialPrices)
		if err != nil {
			return nil, err
		}
		return sel.Series, nil
	case "volatility":
		sel, err := mf.SelectByVolatility(sc.Data.Volatilities)
		if err != nil {
			return nil, err
		}
		return sel.Series, nil
	default:
		return mf.WholeSeries()
	}
}

func runStrategy(sc *config.Scenario, prices *model.PriceSeries, rng *rand.Rand, sink ledger.Sink) error {
	switch sc.Strategy {
	case config.StrategyRandom:
		return strategy.Random(prices, strategy.RandomConfig{
			Period: sc.Random.Period,
			Amount: sc.Amount,
			Fees:   sc.Fees,
		}, rng, sink)
	case config.StrategyCrossing:
		return strategy.CrossingAverages(prices, strategy.CrossingConfig{
			SMAPeriod:  sc.Crossing.SMAPeriod,
			FMAPeriod:  sc.Crossing.FMAPeriod,
			SMAWeights: sc.Crossing.SMAWeights,
			FMAWeights: sc.Crossing.FMAWeights,
			Amount:     sc.Amount,
			Fees:       sc.Fees,
		}, sink)
	case config.StrategyMomentum:
		kind := indicator.Kind(sc.Momentum.Oscillator)
		if sc.Momentum.Oscillator == "" {
			kind = indicator.Stochastic
		}
		return strategy.Momentum(prices, strategy.MomentumConfig{
			Period:      sc.Momentum.Period,
			CoolDown:    sc.Momentum.CoolDown,
			Overvalued:  sc.Momentum.Overvalued,
			Undervalued: sc.Momentum.Undervalued,
			Kind:        kind,
			Amount:      sc.Amount,
			Fees:        sc.Fees,
		}, sink)
	}
	return fmt.Errorf("unknown strategy %q", sc.Strategy)
}

func printSummary(name, path string, s report.Summary) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║        SIMULATION COMPLETE           ║")
	fmt.Println("╠══════════════════════════════════════╣")
	fmt.Printf("║  Strategy:     %-21s ║\n", name)
	fmt.Printf("║  Buys:         %-21d ║\n", s.Buys)
	fmt.Printf("║  Sells:        %-21d ║\n", s.Sells)
	fmt.Printf("║  Total spent:  %-21s ║\n", s.TotalSpent.StringFixed(2))
	fmt.Printf("║  Total earned: %-21s ║\n", s.TotalEarned.StringFixed(2))
	fmt.Printf("║  Profit:       %-21s ║\n", s.Profit.StringFixed(2))
	fmt.Println("╚══════════════════════════════════════╝")
	fmt.Printf("ledger written to %s\n", path)
}
