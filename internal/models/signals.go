package models

// SignalKind tags the payload a feed produced. The aggregator's transform
// tables switch on the concrete type rather than probing fields.
type SignalKind string

const (
	SignalStreak       SignalKind = "streak"
	SignalHRPrediction SignalKind = "hr_prediction"
	SignalMilestone    SignalKind = "milestone"
	SignalRisk         SignalKind = "risk"
	SignalSlotMatchup  SignalKind = "slot_matchup"
	SignalPowerSurge   SignalKind = "power_surge"
	SignalPattern      SignalKind = "pattern"
)

// FeedSignal is one feed's payload for one player. Concrete types carry only
// the fields their transform rules read; everything else stays with the feed.
type FeedSignal interface {
	Kind() SignalKind
}

// StreakSignal reports an active hitting streak.
type StreakSignal struct {
	Player     string `json:"player"`
	Length     int    `json:"length"`
	StreakType string `json:"streak_type,omitempty"`
}

func (*StreakSignal) Kind() SignalKind { return SignalStreak }

// HRPredictionSignal reports a player's rank on a predicted home-run board.
type HRPredictionSignal struct {
	Player      string  `json:"player"`
	Rank        int     `json:"rank"`
	Probability float64 `json:"probability,omitempty"`
}

func (*HRPredictionSignal) Kind() SignalKind { return SignalHRPrediction }

// MilestoneSignal reports proximity to a counting-stat milestone.
type MilestoneSignal struct {
	Player   string `json:"player"`
	Stat     string `json:"stat"`
	Current  int    `json:"current"`
	Target   int    `json:"target"`
	Distance int    `json:"distance"`
}

func (*MilestoneSignal) Kind() SignalKind { return SignalMilestone }

// RiskSignal carries performance-risk flags for a player.
type RiskSignal struct {
	Player string   `json:"player"`
	Flags  []string `json:"flags"`
}

func (*RiskSignal) Kind() SignalKind { return SignalRisk }

// SlotMatchupSignal reports historical performance in a time slot or against
// a specific opponent.
type SlotMatchupSignal struct {
	Player   string  `json:"player"`
	Slot     string  `json:"slot,omitempty"`
	Opponent string  `json:"opponent,omitempty"`
	Average  float64 `json:"average"`
	Games    int     `json:"games"`
}

func (*SlotMatchupSignal) Kind() SignalKind { return SignalSlotMatchup }

// PowerSurgeSignal reports a recent spike in power output.
type PowerSurgeSignal struct {
	Player        string  `json:"player"`
	HomeRunsLast7 int     `json:"home_runs_last_7"`
	SluggingDelta float64 `json:"slugging_delta,omitempty"`
}

func (*PowerSurgeSignal) Kind() SignalKind { return SignalPowerSurge }

// PatternSignal wraps a bounce-back analysis so it merges through the same
// transform path as external feeds.
type PatternSignal struct {
	Result PatternResult `json:"result"`
}

func (*PatternSignal) Kind() SignalKind { return SignalPattern }
