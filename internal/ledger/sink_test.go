package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSink_AppendsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := sink.Append(NewEntry(ActionBuy, 0, 0, 9, 100, 40)); err != nil {
		t.Fatal(err)
	}
	if err := sink.Append(NewEntry(ActionSell, 8, 1, 5, 100, 20)); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "buy,0,0,9,100.00,-940.00\nsell,8,1,5,100.00,480.00\n"
	if string(data) != want {
		t.Errorf("file contents:\n%q\nwant:\n%q", data, want)
	}
}

func TestFileSink_TruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	if err := os.WriteFile(path, []byte("stale,0,0,0,0.00,0.00\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file after reopen, got %q", data)
	}
}

func TestMemorySink_SnapshotAndReset(t *testing.T) {
	sink := NewMemorySink()
	e := NewEntry(ActionBuy, 1, 2, 3, 10, 1)
	if err := sink.Append(e); err != nil {
		t.Fatal(err)
	}

	snap := sink.Snapshot()
	if len(snap) != 1 || snap[0].Record() != e.Record() {
		t.Fatalf("snapshot = %+v", snap)
	}

	// Snapshot is a copy
	snap[0].Day = 99
	if sink.Snapshot()[0].Day != 1 {
		t.Error("mutating a snapshot leaked into the sink")
	}

	sink.Reset()
	if len(sink.Snapshot()) != 0 {
		t.Error("reset did not clear entries")
	}
}

type failingSink struct{ err error }

func (f *failingSink) Append(Entry) error { return f.err }
func (f *failingSink) Close() error       { return nil }

func TestTee_FanOutAndFirstError(t *testing.T) {
	a, b := NewMemorySink(), NewMemorySink()
	tee := NewTee(a, b)

	e := NewEntry(ActionSell, 2, 0, 4, 25, 5)
	if err := tee.Append(e); err != nil {
		t.Fatal(err)
	}
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Fatal("entry not fanned out to all sinks")
	}

	boom := errors.New("disk gone")
	failing := NewTee(a, &failingSink{err: boom}, b)
	if err := failing.Append(e); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	// b sits after the failing sink and must not receive the entry.
	if len(b.Snapshot()) != 1 {
		t.Error("sink after the failing one still received the entry")
	}
}
