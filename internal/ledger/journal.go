package ledger

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Journal mirrors ledger entries into SQLite for analysis and audit. It
// implements Sink; the text ledger remains the system of record.
type Journal struct {
	mu       sync.Mutex
	db       *sql.DB
	strategy string
}

// NewJournal opens (or creates) the journal database and tags every row it
// writes with the given strategy name.
func NewJournal(dbPath, strategy string) (*Journal, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("journal open: %w", err)
	}

	// Single-writer pool
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		strategy   TEXT NOT NULL,
		action     TEXT NOT NULL,
		day        INTEGER NOT NULL,
		stock      INTEGER NOT NULL,
		shares     INTEGER NOT NULL,
		price      TEXT NOT NULL,
		net        TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_strategy ON transactions(strategy);
	CREATE INDEX IF NOT EXISTS idx_transactions_stock ON transactions(stock);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}

	log.Printf("[journal] opened transaction journal at %s", dbPath)
	return &Journal{db: db, strategy: strategy}, nil
}

// Append persists one entry to the journal.
func (j *Journal) Append(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(
		`INSERT INTO transactions (strategy, action, day, stock, shares, price, net)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.strategy,
		string(e.Action),
		e.Day,
		e.Stock,
		e.Shares,
		fmt.Sprintf("%.2f", e.Price),
		e.NetCashFlow.StringFixed(2),
	)
	if err != nil {
		return fmt.Errorf("journal append: %w", err)
	}
	return nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}
