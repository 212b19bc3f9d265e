package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lineupiq/context-api/internal/models"
)

type captureSink struct {
	mu      sync.Mutex
	batches [][]models.GameLogEntry
	err     error
}

func (s *captureSink) Append(_ context.Context, entries []models.GameLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	cp := make([]models.GameLogEntry, len(entries))
	copy(cp, entries)
	s.batches = append(s.batches, cp)
	return nil
}

func (s *captureSink) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func entry(player string) models.GameLogEntry {
	return models.GameLogEntry{
		Player: player,
		Team:   "LAD",
		Game:   models.GameRecord{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Hits: 2, AtBats: 4},
	}
}

func TestPoolFlushesOnStop(t *testing.T) {
	sink := &captureSink{}
	pool := NewPool(PoolConfig{
		WorkerCount:   2,
		QueueSize:     100,
		BatchSize:     50,
		FlushInterval: time.Hour, // only the final flush should fire
		Sink:          sink,
	})
	pool.Start(context.Background())

	for i := 0; i < 10; i++ {
		if !pool.Enqueue(entry("Mookie Betts")) {
			t.Fatalf("enqueue %d rejected with room in queue", i)
		}
	}
	pool.Stop()

	if got := sink.total(); got != 10 {
		t.Errorf("expected 10 entries flushed, got %d", got)
	}
}

func TestPoolFlushesOnBatchSize(t *testing.T) {
	sink := &captureSink{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     100,
		BatchSize:     3,
		FlushInterval: time.Hour,
		Sink:          sink,
	})
	pool.Start(context.Background())

	for i := 0; i < 3; i++ {
		pool.Enqueue(entry("Freddie Freeman"))
	}

	deadline := time.Now().Add(2 * time.Second)
	for sink.total() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := sink.total(); got != 3 {
		t.Errorf("expected batch of 3 flushed before stop, got %d", got)
	}

	sink.mu.Lock()
	if len(sink.batches) != 1 || len(sink.batches[0]) != 3 {
		t.Errorf("expected a single batch of 3, got %v", sink.batches)
	}
	sink.mu.Unlock()

	pool.Stop()
}

func TestPoolFlushesOnInterval(t *testing.T) {
	sink := &captureSink{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     100,
		BatchSize:     50,
		FlushInterval: 20 * time.Millisecond,
		Sink:          sink,
	})
	pool.Start(context.Background())

	pool.Enqueue(entry("Shohei Ohtani"))

	deadline := time.Now().Add(2 * time.Second)
	for sink.total() < 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := sink.total(); got != 1 {
		t.Errorf("expected interval flush of 1 entry, got %d", got)
	}

	pool.Stop()
}

func TestPoolShedsLoadWhenFull(t *testing.T) {
	sink := &captureSink{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     2,
		BatchSize:     50,
		FlushInterval: time.Hour,
		Sink:          sink,
	})
	// Not started: nothing drains the queue.

	if !pool.Enqueue(entry("a")) || !pool.Enqueue(entry("b")) {
		t.Fatal("expected first two enqueues to succeed")
	}
	if pool.Enqueue(entry("c")) {
		t.Error("expected enqueue on full queue to shed load")
	}
	if depth := pool.QueueDepth(); depth != 2 {
		t.Errorf("expected queue depth 2, got %d", depth)
	}
}

func TestPoolSinkErrorDoesNotStopWorkers(t *testing.T) {
	sink := &captureSink{err: errors.New("store down")}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     100,
		BatchSize:     1,
		FlushInterval: time.Hour,
		Sink:          sink,
	})
	pool.Start(context.Background())

	pool.Enqueue(entry("Juan Soto"))
	time.Sleep(50 * time.Millisecond)

	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()

	pool.Enqueue(entry("Juan Soto"))
	pool.Stop()

	if got := sink.total(); got != 1 {
		t.Errorf("expected 1 entry flushed after sink recovered, got %d", got)
	}
}

func TestEnqueueAfterStop(t *testing.T) {
	sink := &captureSink{}
	pool := NewPool(PoolConfig{Sink: sink})
	pool.Start(context.Background())
	pool.Stop()

	// Must not panic; the entry is dropped.
	pool.Enqueue(entry("late arrival"))
}
