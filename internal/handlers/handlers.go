package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lineupiq/context-api/internal/logic"
	"github.com/lineupiq/context-api/internal/models"
	"github.com/lineupiq/context-api/internal/pattern"
	"github.com/lineupiq/context-api/internal/store"
)

// MaxBodySize limits ingest request bodies to 1MB
const MaxBodySize = 1048576

// IngestQueue is the interface the game-log ingest worker pool exposes to
// the HTTP layer.
type IngestQueue interface {
	Enqueue(entry models.GameLogEntry) bool
	QueueDepth() int
}

type Config struct {
	Context    logic.ContextService
	Store      store.GameLogStore
	WorkerPool IngestQueue
	Analysis   pattern.Options
	Logger     *zap.Logger
}

type Handler struct {
	context   logic.ContextService
	store     store.GameLogStore
	pool      IngestQueue
	analysis  pattern.Options
	logger    *zap.SugaredLogger
	validator *validator.Validate
}

func New(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Handler{
		context:   cfg.Context,
		store:     cfg.Store,
		pool:      cfg.WorkerPool,
		analysis:  cfg.Analysis,
		logger:    cfg.Logger.Sugar(),
		validator: validator.New(),
	}
}
