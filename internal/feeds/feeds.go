// Package feeds supplies FeedSource implementations backed by static record
// tables — fixture files in development, pre-fetched snapshots in
// production. Every lookup resolves the requested player against the feed's
// own roster (team filter first, then name matching), so feeds that spell
// names differently still land on the right record.
package feeds

import (
	"context"
	"strings"

	"github.com/lineupiq/context-api/internal/logic"
	"github.com/lineupiq/context-api/internal/models"
	"github.com/lineupiq/context-api/internal/namematch"
)

// rosterMatch finds the index of the entry naming the queried player.
// Entries on other teams are skipped; among the survivors the first name
// satisfying the matcher wins, in feed-provided order.
func rosterMatch(q logic.PlayerQuery, names, teams []string) int {
	var kept []int
	var keptNames []string
	for i, name := range names {
		if q.Team != "" && !strings.EqualFold(teams[i], q.Team) {
			continue
		}
		kept = append(kept, i)
		keptNames = append(keptNames, name)
	}
	ref, ok := namematch.BestMatch(q.Player, keptNames)
	if !ok {
		return -1
	}
	for j, name := range keptNames {
		if name == ref {
			return kept[j]
		}
	}
	return -1
}

// StreakRecord is one row of a streak-status feed.
type StreakRecord struct {
	Player     string `json:"player"`
	Team       string `json:"team"`
	Length     int    `json:"length"`
	StreakType string `json:"streak_type,omitempty"`
}

type StreakFeed struct{ records []StreakRecord }

func NewStreakFeed(records []StreakRecord) *StreakFeed {
	return &StreakFeed{records: records}
}

func (f *StreakFeed) Name() string { return "streak" }

func (f *StreakFeed) Lookup(ctx context.Context, q logic.PlayerQuery) (models.FeedSignal, error) {
	idx := f.match(q)
	if idx < 0 {
		return nil, nil
	}
	r := f.records[idx]
	return &models.StreakSignal{Player: r.Player, Length: r.Length, StreakType: r.StreakType}, nil
}

func (f *StreakFeed) match(q logic.PlayerQuery) int {
	names := make([]string, len(f.records))
	teams := make([]string, len(f.records))
	for i, r := range f.records {
		names[i], teams[i] = r.Player, r.Team
	}
	return rosterMatch(q, names, teams)
}

// HRPredictionRecord is one row of a predicted home-run leaderboard.
type HRPredictionRecord struct {
	Player      string  `json:"player"`
	Team        string  `json:"team"`
	Rank        int     `json:"rank"`
	Probability float64 `json:"probability,omitempty"`
}

type HRPredictionFeed struct{ records []HRPredictionRecord }

func NewHRPredictionFeed(records []HRPredictionRecord) *HRPredictionFeed {
	return &HRPredictionFeed{records: records}
}

func (f *HRPredictionFeed) Name() string { return "hr_prediction" }

func (f *HRPredictionFeed) Lookup(ctx context.Context, q logic.PlayerQuery) (models.FeedSignal, error) {
	names := make([]string, len(f.records))
	teams := make([]string, len(f.records))
	for i, r := range f.records {
		names[i], teams[i] = r.Player, r.Team
	}
	idx := rosterMatch(q, names, teams)
	if idx < 0 {
		return nil, nil
	}
	r := f.records[idx]
	return &models.HRPredictionSignal{Player: r.Player, Rank: r.Rank, Probability: r.Probability}, nil
}

// MilestoneRecord is one row of a milestone-proximity feed.
type MilestoneRecord struct {
	Player  string `json:"player"`
	Team    string `json:"team"`
	Stat    string `json:"stat"`
	Current int    `json:"current"`
	Target  int    `json:"target"`
}

type MilestoneFeed struct{ records []MilestoneRecord }

func NewMilestoneFeed(records []MilestoneRecord) *MilestoneFeed {
	return &MilestoneFeed{records: records}
}

func (f *MilestoneFeed) Name() string { return "milestone" }

func (f *MilestoneFeed) Lookup(ctx context.Context, q logic.PlayerQuery) (models.FeedSignal, error) {
	names := make([]string, len(f.records))
	teams := make([]string, len(f.records))
	for i, r := range f.records {
		names[i], teams[i] = r.Player, r.Team
	}
	idx := rosterMatch(q, names, teams)
	if idx < 0 {
		return nil, nil
	}
	r := f.records[idx]
	return &models.MilestoneSignal{
		Player:   r.Player,
		Stat:     r.Stat,
		Current:  r.Current,
		Target:   r.Target,
		Distance: r.Target - r.Current,
	}, nil
}

// RiskRecord is one row of a performance-risk feed.
type RiskRecord struct {
	Player string   `json:"player"`
	Team   string   `json:"team"`
	Flags  []string `json:"flags"`
}

type RiskFeed struct{ records []RiskRecord }

func NewRiskFeed(records []RiskRecord) *RiskFeed {
	return &RiskFeed{records: records}
}

func (f *RiskFeed) Name() string { return "risk" }

func (f *RiskFeed) Lookup(ctx context.Context, q logic.PlayerQuery) (models.FeedSignal, error) {
	names := make([]string, len(f.records))
	teams := make([]string, len(f.records))
	for i, r := range f.records {
		names[i], teams[i] = r.Player, r.Team
	}
	idx := rosterMatch(q, names, teams)
	if idx < 0 {
		return nil, nil
	}
	r := f.records[idx]
	return &models.RiskSignal{Player: r.Player, Flags: r.Flags}, nil
}

// SlotMatchupRecord is one row of a time-slot / matchup history feed.
type SlotMatchupRecord struct {
	Player   string  `json:"player"`
	Team     string  `json:"team"`
	Slot     string  `json:"slot,omitempty"`
	Opponent string  `json:"opponent,omitempty"`
	Average  float64 `json:"average"`
	Games    int     `json:"games"`
}

type SlotMatchupFeed struct{ records []SlotMatchupRecord }

func NewSlotMatchupFeed(records []SlotMatchupRecord) *SlotMatchupFeed {
	return &SlotMatchupFeed{records: records}
}

func (f *SlotMatchupFeed) Name() string { return "slot_matchup" }

func (f *SlotMatchupFeed) Lookup(ctx context.Context, q logic.PlayerQuery) (models.FeedSignal, error) {
	names := make([]string, len(f.records))
	teams := make([]string, len(f.records))
	for i, r := range f.records {
		names[i], teams[i] = r.Player, r.Team
	}
	idx := rosterMatch(q, names, teams)
	if idx < 0 {
		return nil, nil
	}
	r := f.records[idx]
	return &models.SlotMatchupSignal{
		Player:   r.Player,
		Slot:     r.Slot,
		Opponent: r.Opponent,
		Average:  r.Average,
		Games:    r.Games,
	}, nil
}

// PowerSurgeRecord is one row of a recent-power-surge feed.
type PowerSurgeRecord struct {
	Player        string  `json:"player"`
	Team          string  `json:"team"`
	HomeRunsLast7 int     `json:"home_runs_last_7"`
	SluggingDelta float64 `json:"slugging_delta,omitempty"`
}

type PowerSurgeFeed struct{ records []PowerSurgeRecord }

func NewPowerSurgeFeed(records []PowerSurgeRecord) *PowerSurgeFeed {
	return &PowerSurgeFeed{records: records}
}

func (f *PowerSurgeFeed) Name() string { return "power_surge" }

func (f *PowerSurgeFeed) Lookup(ctx context.Context, q logic.PlayerQuery) (models.FeedSignal, error) {
	names := make([]string, len(f.records))
	teams := make([]string, len(f.records))
	for i, r := range f.records {
		names[i], teams[i] = r.Player, r.Team
	}
	idx := rosterMatch(q, names, teams)
	if idx < 0 {
		return nil, nil
	}
	r := f.records[idx]
	return &models.PowerSurgeSignal{
		Player:        r.Player,
		HomeRunsLast7: r.HomeRunsLast7,
		SluggingDelta: r.SluggingDelta,
	}, nil
}
