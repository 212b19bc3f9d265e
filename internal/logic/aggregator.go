package logic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lineupiq/context-api/internal/cache"
	"github.com/lineupiq/context-api/internal/models"
	"github.com/lineupiq/context-api/internal/pattern"
)

const defaultFeedTimeout = 2 * time.Second

// AggregatorConfig wires an aggregator's collaborators.
type AggregatorConfig struct {
	Feeds       []FeedSource
	History     HistoryProvider // optional; enables the pattern branch
	Cache       ContextCache
	Logger      *zap.Logger
	Thresholds  Thresholds
	Analysis    pattern.Options
	FeedTimeout time.Duration
}

type aggregator struct {
	feeds       []FeedSource
	history     HistoryProvider
	cache       ContextCache
	logger      *zap.SugaredLogger
	thresholds  Thresholds
	analysis    pattern.Options
	feedTimeout time.Duration
}

// NewAggregator builds the signal aggregation service. A nil Cache gets a
// private in-memory cache with the default TTL.
func NewAggregator(cfg AggregatorConfig) ContextService {
	if cfg.FeedTimeout <= 0 {
		cfg.FeedTimeout = defaultFeedTimeout
	}
	zero := Thresholds{}
	if cfg.Thresholds == zero {
		cfg.Thresholds = DefaultThresholds()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewMemory(0)
	}
	return &aggregator{
		feeds:       cfg.Feeds,
		history:     cfg.History,
		cache:       cfg.Cache,
		logger:      cfg.Logger.Sugar(),
		thresholds:  cfg.Thresholds,
		analysis:    cfg.Analysis,
		feedTimeout: cfg.FeedTimeout,
	}
}

// GetContext fuses every configured feed's signal for one (player, team,
// date) into a scored, explained context. Idempotent within the cache TTL.
// Individual feed failures degrade to "no signal"; the call itself never
// fails.
func (a *aggregator) GetContext(ctx context.Context, player, team, date string) *models.PlayerContext {
	contextRequests.Inc()
	key := cacheKey(player, team, date)
	if pc, ok := a.cache.Get(ctx, key); ok {
		contextCacheHits.Inc()
		return pc
	}
	contextCacheMisses.Inc()

	q := PlayerQuery{Player: player, Team: team, Date: date}

	// Fan out one goroutine per feed plus one for the pattern branch. Slots
	// are pre-allocated so no ordering is assumed across feeds; the badge
	// list is re-sorted after collection regardless.
	signals := make([]models.FeedSignal, len(a.feeds)+1)
	g, gctx := errgroup.WithContext(ctx)
	for i, feed := range a.feeds {
		i, feed := i, feed
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, a.feedTimeout)
			defer cancel()
			start := time.Now()
			sig, err := a.lookup(fctx, feed, q)
			feedLookupDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				feedLookupFailures.WithLabelValues(feed.Name()).Inc()
				a.logger.Warnw("feed lookup degraded to no signal",
					"feed", feed.Name(), "player", player, "error", err)
				return nil
			}
			signals[i] = sig
			return nil
		})
	}
	if a.history != nil {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, a.feedTimeout)
			defer cancel()
			history, err := a.history.History(fctx, player, team)
			if err != nil {
				feedLookupFailures.WithLabelValues("pattern").Inc()
				a.logger.Warnw("history lookup degraded to no signal",
					"player", player, "error", err)
				return nil
			}
			if len(history) == 0 {
				return nil
			}
			result := pattern.Analyze(history, a.analysis)
			signals[len(signals)-1] = &models.PatternSignal{Result: result}
			return nil
		})
	}
	// Branches never return errors; failures degrade to missing signals.
	_ = g.Wait()

	pc := a.build(q, signals)

	// A cancelled caller gets the partial result back but it is never
	// cached; the next request recomputes from live feeds.
	if ctx.Err() != nil {
		return pc
	}
	a.cache.Set(ctx, key, pc)
	return pc
}

// build runs the single aggregation pass that constructs the context.
func (a *aggregator) build(q PlayerQuery, signals []models.FeedSignal) *models.PlayerContext {
	pc := &models.PlayerContext{
		Player:      q.Player,
		Team:        q.Team,
		Date:        q.Date,
		Badges:      []models.Badge{},
		GeneratedAt: time.Now().UTC(),
	}

	for _, sig := range signals {
		if sig == nil {
			continue
		}
		if pc.Payloads == nil {
			pc.Payloads = make(map[models.SignalKind]models.FeedSignal)
		}
		pc.Payloads[sig.Kind()] = sig

		tr := a.thresholds.transform(sig)
		pc.Badges = append(pc.Badges, tr.badges...)
		pc.StandoutReasons = append(pc.StandoutReasons, tr.reasons...)
		pc.RiskFactors = append(pc.RiskFactors, tr.risks...)
	}

	total := 0
	for _, b := range pc.Badges {
		total += b.Delta
	}
	if len(pc.Badges) >= a.thresholds.CoOccurrenceMin {
		total += a.thresholds.CoOccurrenceBonus
	}
	pc.ConfidenceAdjustment = total

	sort.SliceStable(pc.Badges, func(i, j int) bool {
		if pc.Badges[i].Priority != pc.Badges[j].Priority {
			return pc.Badges[i].Priority < pc.Badges[j].Priority
		}
		return abs(pc.Badges[i].Delta) > abs(pc.Badges[j].Delta)
	})

	pc.Summary = summarize(total, len(pc.Badges))
	return pc
}

// lookup shields the aggregator from a misbehaving collaborator: errors and
// panics both degrade to no signal.
func (a *aggregator) lookup(ctx context.Context, feed FeedSource, q PlayerQuery) (sig models.FeedSignal, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig = nil
			err = fmt.Errorf("feed panicked: %v", r)
		}
	}()
	return feed.Lookup(ctx, q)
}

func summarize(adjustment, badgeCount int) string {
	switch {
	case adjustment < -10:
		return "risk present"
	case adjustment > 20:
		return "high-confidence, multiple positive indicators"
	case adjustment > 10:
		return "solid, favorable context"
	case badgeCount > 0 && adjustment >= 0:
		return "additional context present"
	case adjustment > 0:
		return "some positive indicators"
	default:
		return "base analysis only"
	}
}

func cacheKey(player, team, date string) string {
	return player + "|" + team + "|" + date
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
