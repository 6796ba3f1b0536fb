package ledger

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

const (
	// Stream trimming: more than enough for any single run
	streamMaxLen     = 100000
	defaultLatestTTL = 30 * time.Minute
)

// PublisherConfig configures the Redis publisher.
type PublisherConfig struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
	Stream   string // stream key, e.g. "ledger:momentum"
}

// Publisher mirrors ledger entries to a Redis stream so external consumers
// can tail a simulation as it runs. It implements Sink.
type Publisher struct {
	client *goredis.Client
	stream string
}

// NewPublisher creates a Publisher and pings the server.
func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[redis] connected to %s, publishing to %s", cfg.Addr, cfg.Stream)
	return &Publisher{client: client, stream: cfg.Stream}, nil
}

// Append XADDs the entry to the stream and refreshes the latest-entry key.
func (p *Publisher) Append(e Entry) error {
	ctx := context.Background()

	values := map[string]interface{}{
		"action": string(e.Action),
		"day":    strconv.Itoa(e.Day),
		"stock":  strconv.Itoa(e.Stock),
		"shares": strconv.FormatInt(e.Shares, 10),
		"price":  strconv.FormatFloat(e.Price, 'f', 2, 64),
		"net":    e.NetCashFlow.StringFixed(2),
	}

	if err := p.client.XAdd(ctx, &goredis.XAddArgs{
		Stream: p.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("redis xadd %s: %w", p.stream, err)
	}

	if err := p.client.Set(ctx, p.stream+":latest", e.Record(), defaultLatestTTL).Err(); err != nil {
		return fmt.Errorf("redis set latest: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
