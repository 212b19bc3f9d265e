// Package worker implements the buffered ingest pool for game-log entries.
// It decouples HTTP ingestion from store writes: entries queue in memory,
// workers flush them in batches on size or interval, and a full queue sheds
// load instead of blocking request handlers.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/lineupiq/context-api/internal/models"
)

var (
	entriesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contextapi_game_logs_ingested_total",
		Help: "Total number of game-log entries accepted into the queue",
	})

	entriesFlushed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contextapi_game_logs_flushed_total",
		Help: "Total number of game-log entries written to the store",
	})

	entriesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contextapi_game_logs_failed_total",
		Help: "Total number of game-log entries that failed to flush",
	})

	entriesLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contextapi_game_logs_load_shed_total",
		Help: "Total number of game-log entries dropped because the queue was full",
	})

	ingestQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "contextapi_ingest_queue_depth",
		Help: "Current depth of the ingest queue",
	})

	flushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "contextapi_ingest_flush_duration_seconds",
		Help:    "Duration of batch writes to the game-log store",
		Buckets: prometheus.DefBuckets,
	})
)

// Sink receives flushed batches; satisfied by the game-log stores.
type Sink interface {
	Append(ctx context.Context, entries []models.GameLogEntry) error
}

// PoolConfig configures the ingest pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	Sink          Sink
	Logger        *zap.Logger
}

// Pool manages the ingest workers.
type Pool struct {
	config PoolConfig
	queue  chan models.GameLogEntry
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.SugaredLogger
}

// NewPool creates an ingest pool; zero config fields take defaults.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 5000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Pool{
		config: cfg,
		queue:  make(chan models.GameLogEntry, cfg.QueueSize),
		logger: cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	go p.reportQueueDepth()
	p.logger.Infow("ingest pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop shuts the pool down, flushing everything already queued.
func (p *Pool) Stop() {
	p.cancel()
	close(p.queue)
	p.wg.Wait()
	p.logger.Info("ingest pool stopped")
}

// Enqueue offers one entry to the queue. It never blocks a request handler:
// a full queue sheds the entry and returns false.
func (p *Pool) Enqueue(entry models.GameLogEntry) bool {
	defer func() {
		// Sending on a closed queue during shutdown is dropped, not fatal.
		if r := recover(); r != nil {
			p.logger.Warnw("entry dropped, pool stopped", "player", entry.Player)
		}
	}()

	select {
	case p.queue <- entry:
		entriesIngested.Inc()
		return true
	default:
		entriesLoadShed.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]models.GameLogEntry, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		batchID := uuid.NewString()
		start := time.Now()
		err := p.config.Sink.Append(context.Background(), batch)
		flushDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			entriesFailed.Add(float64(len(batch)))
			p.logger.Errorw("batch flush failed",
				"worker", id, "batch", batchID, "entries", len(batch), "error", err)
		} else {
			entriesFlushed.Add(float64(len(batch)))
			p.logger.Debugw("batch flushed",
				"worker", id, "batch", batchID, "entries", len(batch), "duration", time.Since(start))
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-p.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= p.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ingestQueueDepth.Set(float64(len(p.queue)))
		case <-p.ctx.Done():
			return
		}
	}
}
