package models

import "time"

// BadgeKind enumerates the known badge types.
type BadgeKind string

const (
	BadgeHotStreak  BadgeKind = "hot_streak"
	BadgeHRChance   BadgeKind = "hr_candidate"
	BadgeMilestone  BadgeKind = "milestone_near"
	BadgeRisk       BadgeKind = "risk"
	BadgeSlotEdge   BadgeKind = "slot_history"
	BadgePowerSurge BadgeKind = "power_surge"
	BadgeBounceBack BadgeKind = "bounce_back"
)

// BadgeData is the provenance payload behind a badge. Each kind carries its
// own concrete type with only the fields that kind needs.
type BadgeData interface {
	badgeData()
}

type StreakData struct {
	Length     int    `json:"length"`
	StreakType string `json:"streak_type,omitempty"`
}

type HRPredictionData struct {
	Rank        int     `json:"rank"`
	Probability float64 `json:"probability,omitempty"`
}

type MilestoneData struct {
	Stat     string `json:"stat"`
	Current  int    `json:"current"`
	Target   int    `json:"target"`
	Distance int    `json:"distance"`
}

type RiskData struct {
	Flags []string `json:"flags"`
}

type SlotHistoryData struct {
	Slot     string  `json:"slot,omitempty"`
	Opponent string  `json:"opponent,omitempty"`
	Average  float64 `json:"average"`
	Games    int     `json:"games"`
}

type PowerSurgeData struct {
	HomeRunsLast7 int     `json:"home_runs_last_7"`
	SluggingDelta float64 `json:"slugging_delta,omitempty"`
}

type BounceBackData struct {
	Score          float64        `json:"score"`
	Classification Classification `json:"classification"`
}

func (*StreakData) badgeData()       {}
func (*HRPredictionData) badgeData() {}
func (*MilestoneData) badgeData()    {}
func (*RiskData) badgeData()         {}
func (*SlotHistoryData) badgeData()  {}
func (*PowerSurgeData) badgeData()   {}
func (*BounceBackData) badgeData()   {}

// Badge is one detected signal attached to a player context. Delta sign
// matches semantic polarity: risk badges carry negative deltas, opportunity
// badges non-negative. Never mutated after creation.
type Badge struct {
	Kind     BadgeKind `json:"kind"`
	Label    string    `json:"label"`
	Glyph    string    `json:"glyph,omitempty"`
	Delta    int       `json:"delta"`
	Priority int       `json:"priority"`
	Data     BadgeData `json:"data,omitempty"`
}

// PlayerContext is the fused decision record for one (player, team, date)
// request. Built in a single aggregation pass, then stored immutably in the
// context cache.
type PlayerContext struct {
	Player               string                    `json:"player"`
	Team                 string                    `json:"team"`
	Date                 string                    `json:"date"`
	Badges               []Badge                   `json:"badges"`
	ConfidenceAdjustment int                       `json:"confidence_adjustment"`
	StandoutReasons      []string                  `json:"standout_reasons,omitempty"`
	RiskFactors          []string                  `json:"risk_factors,omitempty"`
	Summary              string                    `json:"summary"`
	Payloads             map[SignalKind]FeedSignal `json:"payloads,omitempty"`
	GeneratedAt          time.Time                 `json:"generated_at"`
}
