package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"stocksimv1/internal/ledger"
)

func TestHub_BroadcastsEntryEnvelope(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// Wait for registration before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for hub.NumClients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	sink := NewEntrySink(hub, "momentum")
	entry := ledger.NewEntry(ledger.ActionSell, 8, 1, 5, 100, 20)
	if err := sink.Append(entry); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}

	var envelope struct {
		Channel string       `json:"channel"`
		Data    ledger.Entry `json:"data"`
		TS      time.Time    `json:"ts"`
		Seq     int64        `json:"seq"`
	}
	if err := json.Unmarshal(msg, &envelope); err != nil {
		t.Fatalf("envelope %q: %v", msg, err)
	}
	if envelope.Channel != "ledger.momentum" {
		t.Errorf("channel = %q", envelope.Channel)
	}
	if envelope.Seq != 1 {
		t.Errorf("seq = %d, want 1", envelope.Seq)
	}
	if envelope.Data.Record() != entry.Record() {
		t.Errorf("data = %+v, want %+v", envelope.Data, entry)
	}
	if envelope.TS.IsZero() {
		t.Error("envelope has no timestamp")
	}
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.NumClients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Never read from the connection; flooding must still return promptly.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10000; i++ {
			hub.Broadcast("ledger.random", []byte(`{"x":1}`))
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
}
