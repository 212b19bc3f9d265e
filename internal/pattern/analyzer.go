// Package pattern scores how likely a slumping player is to revert to form.
// It calibrates a historical base rate with strictly additive penalties for
// repeated failed recoveries, extended streaks, and staleness, so a player
// who keeps failing to bounce back can never outscore one who hasn't.
package pattern

import (
	"fmt"
	"math"
	"sort"

	"github.com/lineupiq/context-api/internal/models"
)

// Options configures the analysis window and thresholds. The zero value is
// usable; unset fields take defaults.
type Options struct {
	// MinWindow is the fewest games required for a reliable analysis.
	MinWindow int
	// MaxWindow caps how far back the analogue search widens.
	MaxWindow int
	// PoorGameMultiplier scales season average into the poor-game threshold.
	PoorGameMultiplier float64
	// BounceBackMultiplier scales season average into the recovery threshold.
	BounceBackMultiplier float64
}

const (
	defaultMinWindow            = 5
	defaultMaxWindow            = 25
	defaultPoorGameMultiplier   = 0.7
	defaultBounceBackMultiplier = 1.2

	recentWindow      = 10 // games scanned for the current situation
	recencyExclusion  = 5  // newest games excluded from the analogue search
	followUpGames     = 5  // games examined after a historical streak
	lookAhead         = 3  // games a poor game has to produce a recovery in
	initialSearchSpan = 15 // analogue search span before widening
	maxAnalogues      = 5

	poorFloor       = 0.150
	potentialFloor  = 0.05
	confidenceFloor = 0.1
	strongPeak      = 0.400
)

func (o Options) withDefaults() Options {
	if o.MinWindow <= 0 {
		o.MinWindow = defaultMinWindow
	}
	if o.MaxWindow <= 0 {
		o.MaxWindow = defaultMaxWindow
	}
	if o.PoorGameMultiplier <= 0 {
		o.PoorGameMultiplier = defaultPoorGameMultiplier
	}
	if o.BounceBackMultiplier <= 0 {
		o.BounceBackMultiplier = defaultBounceBackMultiplier
	}
	return o
}

// Analyze produces a bounce-back assessment for one player's chronological
// game log. It never fails: short histories yield an unreliable "avoid"
// result instead of an error. Pure and reentrant.
func Analyze(history []models.GameRecord, opts Options) models.PatternResult {
	opts = opts.withDefaults()

	res := models.PatternResult{Classification: models.Avoid}
	if len(history) < opts.MinWindow {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("only %d games on record; %d needed for pattern analysis", len(history), opts.MinWindow))
		return res
	}

	var sum float64
	for _, g := range history {
		sum += g.Average()
	}
	seasonAvg := sum / float64(len(history))
	poorThreshold := math.Max(poorFloor, seasonAvg*opts.PoorGameMultiplier)
	bounceThreshold := seasonAvg * opts.BounceBackMultiplier

	res.Situation = currentSituation(history, poorThreshold, bounceThreshold)
	res.Analogues = findAnalogues(history, res.Situation.ConsecutivePoorGames, poorThreshold, bounceThreshold, opts)

	bounced := 0
	for _, a := range res.Analogues {
		if a.Outcome == models.BouncedBack {
			bounced++
		}
	}

	// Base rate from history, calibrated down by the penalties. Each penalty
	// floors immediately so a later step can't hide an earlier one; a value
	// already below its floor is never raised by it.
	potential := 0.5
	confidence := 0.3
	if len(res.Analogues) > 0 {
		potential = float64(bounced) / float64(len(res.Analogues))
		confidence += 0.3
		res.Reasons = append(res.Reasons,
			fmt.Sprintf("bounced back in %d of %d comparable streaks (%.0f%%)",
				bounced, len(res.Analogues), potential*100))
		if n := typicalRecovery(res.Analogues); n > 0 {
			res.Reasons = append(res.Reasons, fmt.Sprintf("typically recovers within %d game(s)", n))
		}
	} else {
		res.Warnings = append(res.Warnings, "no comparable historical streaks found; using base rate")
	}

	if n := res.Situation.FailedAttempts; n > 0 {
		potential = penalize(potential, 0.15*float64(n), potentialFloor)
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d failed bounce-back attempt(s) in the last %d games", n, recentWindow))
	}
	if run := res.Situation.ConsecutivePoorGames; run >= 5 {
		potential = penalize(potential, 0.08*float64(run-4), potentialFloor)
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("extended poor streak: %d consecutive poor games", run))
	}
	if days := res.Situation.DaysSinceGoodGame; days >= 7 {
		potential = penalize(potential, math.Min(0.2, 0.03*float64(days-6)), potentialFloor)
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("no game at recovery level in %d days", days))
	}
	if res.Situation.FailureRate > 0.6 {
		confidence = penalize(confidence, 0.3, confidenceFloor)
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("recent recovery attempts failed at a %.0f%% rate; confidence reduced",
				res.Situation.FailureRate*100))
	}

	res.Potential = potential
	res.Confidence = confidence
	switch {
	case potential >= 0.6 && confidence >= 0.7:
		res.Classification = models.StrongCandidate
	case potential >= 0.4 && confidence >= 0.5:
		res.Classification = models.ModerateCandidate
	case potential >= 0.25:
		res.Classification = models.WeakCandidate
	default:
		res.Classification = models.Avoid
	}
	res.IsReliablePattern = confidence >= 0.5 && len(res.Analogues) >= 2
	res.Score = potential * confidence * 100
	res.RecommendAction = res.Classification != models.Avoid
	return res
}

func poorGame(g models.GameRecord, poorThreshold float64) bool {
	return g.AtBats >= 2 && g.Average() <= poorThreshold
}

// penalize subtracts a penalty and floors the result. A value already at or
// below the floor stays where it is; a penalty step can only ever lower the
// score, so lengthening a slump never helps a player.
func penalize(value, penalty, floor float64) float64 {
	return math.Max(math.Min(value, floor), value-penalty)
}

// currentSituation extracts the player's active slump from the most recent
// games. Staleness is measured against the latest game's date, not wall
// clock, so a fixed history always analyzes the same way.
func currentSituation(history []models.GameRecord, poorThreshold, bounceThreshold float64) models.Situation {
	var sit models.Situation

	recent := history
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	for i := len(recent) - 1; i >= 0; i-- {
		if !poorGame(recent[i], poorThreshold) {
			break
		}
		sit.ConsecutivePoorGames++
	}

	// Every poor game with at least one following game is a bounce-back
	// chance; it fails when none of the next three games reach the
	// recovery threshold.
	for i, g := range recent {
		if !poorGame(g, poorThreshold) || i == len(recent)-1 {
			continue
		}
		sit.BounceBackChances++
		end := i + 1 + lookAhead
		if end > len(recent) {
			end = len(recent)
		}
		recovered := false
		for _, f := range recent[i+1 : end] {
			if f.Average() >= bounceThreshold {
				recovered = true
				break
			}
		}
		if !recovered {
			sit.FailedAttempts++
		}
	}
	if sit.BounceBackChances > 0 {
		sit.FailureRate = float64(sit.FailedAttempts) / float64(sit.BounceBackChances)
	}

	latest := history[len(history)-1].Date
	sit.DaysSinceGoodGame = int(latest.Sub(history[0].Date).Hours()/24) + 1
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Average() >= bounceThreshold {
			sit.DaysSinceGoodGame = int(latest.Sub(history[i].Date).Hours() / 24)
			break
		}
	}
	return sit
}

// findAnalogues slides a window the length of the current poor run over
// history outside the newest games, keeping the most similar qualifying
// streaks. When no window of the full run length qualifies, the search falls
// back to shorter windows before giving up: a base rate drawn from the same
// history at a shorter run keeps a lengthening slump from resetting to the
// more generous no-analogue default.
func findAnalogues(history []models.GameRecord, runLength int, poorThreshold, bounceThreshold float64, opts Options) []models.Analogue {
	for length := runLength; length >= 1; length-- {
		if found := analoguesOfLength(history, length, poorThreshold, bounceThreshold, opts); len(found) > 0 {
			return found
		}
	}
	return nil
}

// analoguesOfLength searches for all-poor windows of exactly one length. The
// search widens once if it turns up fewer than three.
func analoguesOfLength(history []models.GameRecord, runLength int, poorThreshold, bounceThreshold float64, opts Options) []models.Analogue {
	region := len(history) - recencyExclusion
	if region < runLength {
		return nil
	}
	current := history[len(history)-runLength:]

	spans := []int{initialSearchSpan, opts.MaxWindow}
	if opts.MaxWindow < initialSearchSpan {
		spans = []int{opts.MaxWindow}
	}

	var found []models.Analogue
	for _, span := range spans {
		found = found[:0]
		start := region - span
		if start < 0 {
			start = 0
		}
		for i := start; i+runLength <= region; i++ {
			window := history[i : i+runLength]
			qualifies := true
			for _, g := range window {
				if !poorGame(g, poorThreshold) {
					qualifies = false
					break
				}
			}
			if !qualifies {
				continue
			}
			a := classifyResolution(history, i, runLength, bounceThreshold)
			a.Similarity = similarity(window, current)
			found = append(found, a)
		}
		if len(found) >= 3 || span >= region {
			break
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Similarity > found[j].Similarity
	})
	if len(found) > maxAnalogues {
		found = found[:maxAnalogues]
	}
	return found
}

func classifyResolution(history []models.GameRecord, start, length int, bounceThreshold float64) models.Analogue {
	a := models.Analogue{
		StartIndex: start,
		Length:     length,
		Outcome:    models.ContinuedStruggle,
	}
	end := start + length + followUpGames
	if end > len(history) {
		end = len(history)
	}
	for j, g := range history[start+length : end] {
		avg := g.Average()
		if avg > a.PeakAverage {
			a.PeakAverage = avg
		}
		if a.Outcome != models.BouncedBack && avg >= bounceThreshold {
			a.Outcome = models.BouncedBack
			a.GamesToRecover = j + 1
		}
	}
	if a.Outcome == models.BouncedBack {
		switch {
		case a.PeakAverage >= strongPeak:
			a.Strength = models.StrengthStrong
		case a.PeakAverage >= bounceThreshold:
			a.Strength = models.StrengthModerate
		default:
			a.Strength = models.StrengthWeak
		}
	}
	return a
}

// similarity scores a historical window against the current streak:
// per game 1 - 2*|avg diff| - 0.1*|at-bat diff|, floored at 0, averaged.
func similarity(window, current []models.GameRecord) float64 {
	var total float64
	for i := range window {
		d := 1 -
			2*math.Abs(window[i].Average()-current[i].Average()) -
			0.1*math.Abs(float64(window[i].AtBats-current[i].AtBats))
		if d < 0 {
			d = 0
		}
		total += d
	}
	return total / float64(len(window))
}

func typicalRecovery(analogues []models.Analogue) int {
	count, total := 0, 0
	for _, a := range analogues {
		if a.Outcome == models.BouncedBack {
			count++
			total += a.GamesToRecover
		}
	}
	if count == 0 {
		return 0
	}
	return (total + count - 1) / count
}
