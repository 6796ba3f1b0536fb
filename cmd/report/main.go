// cmd/report summarizes a finished run's ledger: transaction counts, cash
// totals, and the cumulative profit curve. It reads either a ledger text
// file or a SQLite journal.
//
// Usage:
//
//	go run ./cmd/report --ledger=momentum_ledger.txt
//	go run ./cmd/report --journal=runs.db --strategy=momentum
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"stocksimv1/internal/ledger"
	"stocksimv1/internal/report"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	ledgerPath := flag.String("ledger", "", "Ledger text file to summarize")
	journalPath := flag.String("journal", "", "SQLite journal to read instead of a text file")
	strategyName := flag.String("strategy", "", "Strategy name to select from the journal")
	flag.Parse()

	var entries []ledger.Entry
	var err error
	switch {
	case *journalPath != "":
		if *strategyName == "" {
			log.Fatal("[report] --journal requires --strategy")
		}
		entries, err = report.FromJournal(*journalPath, *strategyName)
	case *ledgerPath != "":
		var f *os.File
		f, err = os.Open(*ledgerPath)
		if err != nil {
			log.Fatalf("[report] open %s failed: %v", *ledgerPath, err)
		}
		entries, err = report.Parse(f)
		f.Close()
	default:
		log.Fatal("[report] need --ledger or --journal")
	}
	if err != nil {
		log.Fatalf("[report] %v", err)
	}

	s := report.Summarize(entries)
	fmt.Printf("transactions: %d (%d buys, %d sells)\n", s.Buys+s.Sells, s.Buys, s.Sells)
	fmt.Printf("total spent:  %s\n", s.TotalSpent.StringFixed(2))
	fmt.Printf("total earned: %s\n", s.TotalEarned.StringFixed(2))
	fmt.Printf("profit:       %s\n", s.Profit.StringFixed(2))
	if len(s.Curve) > 0 {
		fmt.Println("\ncumulative profit:")
		for _, p := range s.Curve {
			fmt.Printf("  day %6d  %12s\n", p.Day, p.Cumulative.StringFixed(2))
		}
	}
}
