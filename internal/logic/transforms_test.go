package logic

import (
	"testing"

	"github.com/lineupiq/context-api/internal/models"
)

func singleBadge(t *testing.T, tr transformResult) models.Badge {
	t.Helper()
	if len(tr.badges) != 1 {
		t.Fatalf("badges = %d, want 1", len(tr.badges))
	}
	return tr.badges[0]
}

func TestStreakThresholds(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		length    int
		wantDelta int
		wantBadge bool
		wantLabel string
	}{
		{9, 15, true, "elite streak"},
		{8, 15, true, "elite streak"},
		{7, 10, true, "active streak"},
		{5, 10, true, "active streak"},
		{4, 0, false, ""},
		{0, 0, false, ""},
	}
	for _, tt := range tests {
		tr := th.transform(&models.StreakSignal{Length: tt.length})
		if !tt.wantBadge {
			if len(tr.badges) != 0 {
				t.Errorf("length %d: got badge %+v, want none", tt.length, tr.badges)
			}
			continue
		}
		b := singleBadge(t, tr)
		if b.Delta != tt.wantDelta || b.Label != tt.wantLabel {
			t.Errorf("length %d: badge (%q, %+d), want (%q, %+d)",
				tt.length, b.Label, b.Delta, tt.wantLabel, tt.wantDelta)
		}
	}
}

func TestHRPredictionThresholds(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		rank      int
		wantDelta int
		wantBadge bool
	}{
		{1, 12, true},
		{5, 12, true},
		{6, 8, true},
		{15, 8, true},
		{16, 0, false},
		{0, 0, false}, // unranked
	}
	for _, tt := range tests {
		tr := th.transform(&models.HRPredictionSignal{Rank: tt.rank})
		if !tt.wantBadge {
			if len(tr.badges) != 0 {
				t.Errorf("rank %d: got badge, want none", tt.rank)
			}
			continue
		}
		if b := singleBadge(t, tr); b.Delta != tt.wantDelta {
			t.Errorf("rank %d: delta = %+d, want %+d", tt.rank, b.Delta, tt.wantDelta)
		}
	}
}

func TestMilestoneThresholds(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		distance  int
		wantDelta int
		wantBadge bool
	}{
		{-1, 0, false}, // already passed
		{0, 0, false},  // already reached
		{1, 15, true},
		{2, 10, true},
		{3, 5, true},
		{4, 0, false},
	}
	for _, tt := range tests {
		tr := th.transform(&models.MilestoneSignal{Stat: "hits", Distance: tt.distance})
		if !tt.wantBadge {
			if len(tr.badges) != 0 {
				t.Errorf("distance %d: got badge, want none", tt.distance)
			}
			continue
		}
		if b := singleBadge(t, tr); b.Delta != tt.wantDelta {
			t.Errorf("distance %d: delta = %+d, want %+d", tt.distance, b.Delta, tt.wantDelta)
		}
	}
}

func TestRiskFlagsScaleDelta(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		flags     []string
		wantDelta int
	}{
		{[]string{"day-after-night fade"}, -10},
		{[]string{"day-after-night fade", "tough matchup"}, -15},
		{[]string{"a", "b", "c"}, -20},
	}
	for _, tt := range tests {
		tr := th.transform(&models.RiskSignal{Flags: tt.flags})
		b := singleBadge(t, tr)
		if b.Delta != tt.wantDelta {
			t.Errorf("%d flags: delta = %+d, want %+d", len(tt.flags), b.Delta, tt.wantDelta)
		}
		if len(tr.risks) != len(tt.flags) {
			t.Errorf("%d flags: risks = %v", len(tt.flags), tr.risks)
		}
		if len(tr.reasons) != 0 {
			t.Errorf("risk feed produced standout reasons: %v", tr.reasons)
		}
	}

	if tr := th.transform(&models.RiskSignal{}); len(tr.badges) != 0 {
		t.Error("empty flag list produced a badge")
	}
}

func TestSlotMatchupThresholds(t *testing.T) {
	th := DefaultThresholds()

	// Hot slot history is an opportunity badge.
	tr := th.transform(&models.SlotMatchupSignal{Slot: "day games", Average: 0.305, Games: 7})
	if b := singleBadge(t, tr); b.Delta != 8 {
		t.Errorf("hot slot delta = %+d, want +8", b.Delta)
	}

	// Cold history is a risk badge: negative delta, risk factor only.
	tr = th.transform(&models.SlotMatchupSignal{Opponent: "SF", Average: 0.120, Games: 9})
	b := singleBadge(t, tr)
	if b.Delta != -6 {
		t.Errorf("cold slot delta = %+d, want -6", b.Delta)
	}
	if len(tr.risks) != 1 || len(tr.reasons) != 0 {
		t.Errorf("cold slot: risks=%v reasons=%v", tr.risks, tr.reasons)
	}

	// Small samples produce nothing either way.
	if tr := th.transform(&models.SlotMatchupSignal{Slot: "day games", Average: 0.450, Games: 4}); len(tr.badges) != 0 {
		t.Error("4-game sample produced a badge")
	}

	// Middling averages produce nothing.
	if tr := th.transform(&models.SlotMatchupSignal{Slot: "day games", Average: 0.250, Games: 12}); len(tr.badges) != 0 {
		t.Error("middling average produced a badge")
	}
}

func TestPowerSurgeThresholds(t *testing.T) {
	th := DefaultThresholds()

	if b := singleBadge(t, th.transform(&models.PowerSurgeSignal{HomeRunsLast7: 3})); b.Delta != 10 {
		t.Errorf("3 HR delta = %+d, want +10", b.Delta)
	}
	if b := singleBadge(t, th.transform(&models.PowerSurgeSignal{HomeRunsLast7: 2})); b.Delta != 6 {
		t.Errorf("2 HR delta = %+d, want +6", b.Delta)
	}
	if tr := th.transform(&models.PowerSurgeSignal{HomeRunsLast7: 1}); len(tr.badges) != 0 {
		t.Error("1 HR produced a badge")
	}
}

func TestPatternTransform(t *testing.T) {
	th := DefaultThresholds()

	// Unreliable analyses contribute nothing regardless of classification.
	tr := th.transform(&models.PatternSignal{Result: models.PatternResult{
		Classification: models.StrongCandidate, IsReliablePattern: false,
	}})
	if len(tr.badges) != 0 {
		t.Error("unreliable pattern produced a badge")
	}

	tr = th.transform(&models.PatternSignal{Result: models.PatternResult{
		Classification: models.ModerateCandidate, IsReliablePattern: true, Score: 42,
	}})
	if b := singleBadge(t, tr); b.Delta != 8 || b.Kind != models.BadgeBounceBack {
		t.Errorf("moderate pattern badge = %+v", b)
	}

	tr = th.transform(&models.PatternSignal{Result: models.PatternResult{
		Classification: models.Avoid, IsReliablePattern: true,
		Warnings: []string{"3 failed bounce-back attempt(s) in the last 10 games"},
	}})
	b := singleBadge(t, tr)
	if b.Delta != -5 || b.Kind != models.BadgeRisk {
		t.Errorf("avoid pattern badge = %+v", b)
	}
	if len(tr.risks) != 1 {
		t.Errorf("avoid pattern risks = %v", tr.risks)
	}
}
