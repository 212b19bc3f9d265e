package logic

import (
	"fmt"

	"github.com/lineupiq/context-api/internal/models"
)

// Thresholds holds every numeric cutoff the transform tables apply. All of
// them are configuration, not hidden logic, so each rule is independently
// testable.
type Thresholds struct {
	// Hitting streaks
	StreakElite       int
	StreakEliteDelta  int
	StreakActive      int
	StreakActiveDelta int

	// Predicted home-run board
	HRTopRank      int
	HRTopDelta     int
	HRMidRank      int
	HRMidDelta     int

	// Milestone proximity
	MilestoneWatch         int
	MilestoneWatchDelta    int
	MilestoneNear          int
	MilestoneNearDelta     int
	MilestoneApproach      int
	MilestoneApproachDelta int

	// Risk flags
	RiskFirstDelta int
	RiskExtraDelta int

	// Slot/matchup history
	SlotMinGames  int
	SlotHotAvg    float64
	SlotHotDelta  int
	SlotColdAvg   float64
	SlotColdDelta int

	// Power surges
	SurgeHot       int
	SurgeHotDelta  int
	SurgeWarm      int
	SurgeWarmDelta int

	// Pattern signals
	PatternStrongDelta   int
	PatternModerateDelta int
	PatternAvoidDelta    int

	// Co-occurrence bonus: applied once when the badge count reaches the
	// minimum; it never stacks per extra badge.
	CoOccurrenceMin   int
	CoOccurrenceBonus int
}

// DefaultThresholds returns the standard transform tables.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StreakElite:       8,
		StreakEliteDelta:  15,
		StreakActive:      5,
		StreakActiveDelta: 10,

		HRTopRank:  5,
		HRTopDelta: 12,
		HRMidRank:  15,
		HRMidDelta: 8,

		MilestoneWatch:         1,
		MilestoneWatchDelta:    15,
		MilestoneNear:          2,
		MilestoneNearDelta:     10,
		MilestoneApproach:      3,
		MilestoneApproachDelta: 5,

		RiskFirstDelta: -10,
		RiskExtraDelta: -5,

		SlotMinGames:  5,
		SlotHotAvg:    0.300,
		SlotHotDelta:  8,
		SlotColdAvg:   0.150,
		SlotColdDelta: -6,

		SurgeHot:       3,
		SurgeHotDelta:  10,
		SurgeWarm:      2,
		SurgeWarmDelta: 6,

		PatternStrongDelta:   12,
		PatternModerateDelta: 8,
		PatternAvoidDelta:    -5,

		CoOccurrenceMin:   3,
		CoOccurrenceBonus: 20,
	}
}

// transformResult is one signal's contribution to the context under build.
type transformResult struct {
	badges  []models.Badge
	reasons []string
	risks   []string
}

// transform converts one typed feed payload into badges, standout reasons
// and risk factors. Risk-producing rules append only to the risk list and
// always carry a negative delta.
func (t Thresholds) transform(sig models.FeedSignal) transformResult {
	var out transformResult
	switch s := sig.(type) {
	case *models.StreakSignal:
		switch {
		case s.Length >= t.StreakElite:
			out.badges = append(out.badges, models.Badge{
				Kind:     models.BadgeHotStreak,
				Label:    "elite streak",
				Glyph:    "🔥",
				Delta:    t.StreakEliteDelta,
				Priority: 2,
				Data:     &models.StreakData{Length: s.Length, StreakType: s.StreakType},
			})
			out.reasons = append(out.reasons, fmt.Sprintf("%d-game hit streak", s.Length))
		case s.Length >= t.StreakActive:
			out.badges = append(out.badges, models.Badge{
				Kind:     models.BadgeHotStreak,
				Label:    "active streak",
				Glyph:    "🔥",
				Delta:    t.StreakActiveDelta,
				Priority: 3,
				Data:     &models.StreakData{Length: s.Length, StreakType: s.StreakType},
			})
			out.reasons = append(out.reasons, fmt.Sprintf("%d-game hit streak", s.Length))
		}

	case *models.HRPredictionSignal:
		switch {
		case s.Rank <= 0:
			// Unranked; nothing to say.
		case s.Rank <= t.HRTopRank:
			out.badges = append(out.badges, models.Badge{
				Kind:     models.BadgeHRChance,
				Label:    fmt.Sprintf("hr top-%d", t.HRTopRank),
				Glyph:    "💣",
				Delta:    t.HRTopDelta,
				Priority: 3,
				Data:     &models.HRPredictionData{Rank: s.Rank, Probability: s.Probability},
			})
			out.reasons = append(out.reasons, fmt.Sprintf("ranked #%d on the HR prediction board", s.Rank))
		case s.Rank <= t.HRMidRank:
			out.badges = append(out.badges, models.Badge{
				Kind:     models.BadgeHRChance,
				Label:    fmt.Sprintf("hr top-%d", t.HRMidRank),
				Glyph:    "💣",
				Delta:    t.HRMidDelta,
				Priority: 4,
				Data:     &models.HRPredictionData{Rank: s.Rank, Probability: s.Probability},
			})
		}

	case *models.MilestoneSignal:
		// A non-positive distance means the milestone was already reached;
		// there is nothing upcoming to flag.
		if s.Distance <= 0 {
			return out
		}
		var delta, priority int
		switch {
		case s.Distance <= t.MilestoneWatch:
			delta, priority = t.MilestoneWatchDelta, 2
		case s.Distance <= t.MilestoneNear:
			delta, priority = t.MilestoneNearDelta, 3
		case s.Distance <= t.MilestoneApproach:
			delta, priority = t.MilestoneApproachDelta, 4
		default:
			return out
		}
		out.badges = append(out.badges, models.Badge{
			Kind:     models.BadgeMilestone,
			Label:    "milestone watch",
			Glyph:    "🎯",
			Delta:    delta,
			Priority: priority,
			Data:     &models.MilestoneData{Stat: s.Stat, Current: s.Current, Target: s.Target, Distance: s.Distance},
		})
		out.reasons = append(out.reasons,
			fmt.Sprintf("%d %s from %d", s.Distance, s.Stat, s.Target))

	case *models.RiskSignal:
		if len(s.Flags) == 0 {
			return out
		}
		delta := t.RiskFirstDelta + t.RiskExtraDelta*(len(s.Flags)-1)
		out.badges = append(out.badges, models.Badge{
			Kind:     models.BadgeRisk,
			Label:    "performance risk",
			Glyph:    "⚠️",
			Delta:    delta,
			Priority: 1,
			Data:     &models.RiskData{Flags: s.Flags},
		})
		out.risks = append(out.risks, s.Flags...)

	case *models.SlotMatchupSignal:
		if s.Games < t.SlotMinGames {
			return out
		}
		label := s.Slot
		if label == "" {
			label = "vs " + s.Opponent
		}
		switch {
		case s.Average >= t.SlotHotAvg:
			out.badges = append(out.badges, models.Badge{
				Kind:     models.BadgeSlotEdge,
				Label:    "favorable history",
				Glyph:    "🕐",
				Delta:    t.SlotHotDelta,
				Priority: 5,
				Data:     &models.SlotHistoryData{Slot: s.Slot, Opponent: s.Opponent, Average: s.Average, Games: s.Games},
			})
			out.reasons = append(out.reasons,
				fmt.Sprintf("hitting %.3f over %d games %s", s.Average, s.Games, label))
		case s.Average <= t.SlotColdAvg:
			out.badges = append(out.badges, models.Badge{
				Kind:     models.BadgeSlotEdge,
				Label:    "poor history",
				Glyph:    "🕐",
				Delta:    t.SlotColdDelta,
				Priority: 1,
				Data:     &models.SlotHistoryData{Slot: s.Slot, Opponent: s.Opponent, Average: s.Average, Games: s.Games},
			})
			out.risks = append(out.risks,
				fmt.Sprintf("hitting %.3f over %d games %s", s.Average, s.Games, label))
		}

	case *models.PowerSurgeSignal:
		switch {
		case s.HomeRunsLast7 >= t.SurgeHot:
			out.badges = append(out.badges, models.Badge{
				Kind:     models.BadgePowerSurge,
				Label:    "power surge",
				Glyph:    "⚡",
				Delta:    t.SurgeHotDelta,
				Priority: 3,
				Data:     &models.PowerSurgeData{HomeRunsLast7: s.HomeRunsLast7, SluggingDelta: s.SluggingDelta},
			})
			out.reasons = append(out.reasons, fmt.Sprintf("%d home runs in the last 7 days", s.HomeRunsLast7))
		case s.HomeRunsLast7 >= t.SurgeWarm:
			out.badges = append(out.badges, models.Badge{
				Kind:     models.BadgePowerSurge,
				Label:    "power uptick",
				Glyph:    "⚡",
				Delta:    t.SurgeWarmDelta,
				Priority: 4,
				Data:     &models.PowerSurgeData{HomeRunsLast7: s.HomeRunsLast7, SluggingDelta: s.SluggingDelta},
			})
		}

	case *models.PatternSignal:
		r := s.Result
		if !r.IsReliablePattern {
			return out
		}
		switch r.Classification {
		case models.StrongCandidate:
			out.badges = append(out.badges, bounceBadge(r, "bounce-back watch", t.PatternStrongDelta, 3))
			out.reasons = append(out.reasons, fmt.Sprintf("bounce-back score %.0f", r.Score))
		case models.ModerateCandidate:
			out.badges = append(out.badges, bounceBadge(r, "bounce-back lean", t.PatternModerateDelta, 4))
			out.reasons = append(out.reasons, fmt.Sprintf("bounce-back score %.0f", r.Score))
		case models.Avoid:
			out.badges = append(out.badges, models.Badge{
				Kind:     models.BadgeRisk,
				Label:    "cold pattern",
				Glyph:    "⚠️",
				Delta:    t.PatternAvoidDelta,
				Priority: 1,
				Data:     &models.RiskData{Flags: r.Warnings},
			})
			out.risks = append(out.risks, "pattern analysis advises avoiding")
		}
	}
	return out
}

func bounceBadge(r models.PatternResult, label string, delta, priority int) models.Badge {
	return models.Badge{
		Kind:     models.BadgeBounceBack,
		Label:    label,
		Glyph:    "📈",
		Delta:    delta,
		Priority: priority,
		Data:     &models.BounceBackData{Score: r.Score, Classification: r.Classification},
	}
}
