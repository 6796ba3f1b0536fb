// cmd/generate produces a synthetic market data file: independent random
// walks with occasional news drift, one column per stock.
//
// Usage:
//
//	go run ./cmd/generate --days=1825 --prices=100,250,40 --vols=1,2.5,0.8 --out=stock_data_5y.txt
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"stocksimv1/internal/data"
	"stocksimv1/internal/model"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	days := flag.Int("days", 1825, "Number of trading days to generate")
	pricesStr := flag.String("prices", "100", "Comma-separated initial prices, one per stock")
	volsStr := flag.String("vols", "1", "Comma-separated volatilities, one per stock")
	out := flag.String("out", "stock_data.txt", "Output file path")
	seed := flag.Int64("seed", 0, "Random seed (0=derive from wall clock)")
	flag.Parse()

	prices := parseFloats(*pricesStr)
	vols := parseFloats(*volsStr)
	if len(prices) == 0 {
		log.Fatal("[generate] no initial prices specified")
	}
	if len(vols) != len(prices) {
		log.Fatalf("[generate] got %d volatilities for %d stocks", len(vols), len(prices))
	}
	if *days < 2 {
		log.Fatalf("[generate] need at least 2 days, got %d", *days)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	cols := make([][]model.Quote, len(prices))
	for j := range prices {
		cols[j] = data.GenerateColumn(*days, prices[j], vols[j], rng)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("[generate] create %s failed: %v", *out, err)
	}
	if err := data.WriteMarketFile(f, vols, cols); err != nil {
		f.Close()
		log.Fatalf("[generate] write failed: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("[generate] close failed: %v", err)
	}

	log.Printf("[generate] wrote %d stocks x %d days to %s (seed=%d)", len(prices), *days, *out, *seed)
}

func parseFloats(s string) []float64 {
	var vals []float64
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			log.Fatalf("[generate] bad number %q: %v", p, err)
		}
		vals = append(vals, v)
	}
	return vals
}
