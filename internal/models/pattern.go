package models

// Classification buckets a pattern analysis into an actionable tier.
type Classification string

const (
	StrongCandidate   Classification = "strong_candidate"
	ModerateCandidate Classification = "moderate_candidate"
	WeakCandidate     Classification = "weak_candidate"
	Avoid             Classification = "avoid"
)

// AnalogueOutcome describes how a historical poor streak resolved.
type AnalogueOutcome string

const (
	BouncedBack       AnalogueOutcome = "bounced_back"
	ContinuedStruggle AnalogueOutcome = "continued_struggle"
)

// AnalogueStrength grades the peak of a recovery.
type AnalogueStrength string

const (
	StrengthStrong   AnalogueStrength = "strong"
	StrengthModerate AnalogueStrength = "moderate"
	StrengthWeak     AnalogueStrength = "weak"
)

// Situation is the snapshot of a player's current slump extracted from the
// most recent games.
type Situation struct {
	ConsecutivePoorGames int     `json:"consecutive_poor_games"`
	BounceBackChances    int     `json:"bounce_back_chances"`
	FailedAttempts       int     `json:"failed_attempts"`
	FailureRate          float64 `json:"failure_rate"`
	DaysSinceGoodGame    int     `json:"days_since_good_game"`
}

// Analogue is one historical streak comparable to the current one, with the
// outcome of the games that followed it.
type Analogue struct {
	StartIndex     int              `json:"start_index"`
	Length         int              `json:"length"`
	Similarity     float64          `json:"similarity"`
	Outcome        AnalogueOutcome  `json:"outcome"`
	GamesToRecover int              `json:"games_to_recover,omitempty"`
	PeakAverage    float64          `json:"peak_average"`
	Strength       AnalogueStrength `json:"strength,omitempty"`
}

// PatternResult is the full output of a bounce-back analysis for one player
// at one point in time. Recomputed fresh on every call; never cached by the
// analyzer itself.
type PatternResult struct {
	Potential         float64        `json:"potential"`
	Confidence        float64        `json:"confidence"`
	Classification    Classification `json:"classification"`
	Score             float64        `json:"score"`
	Situation         Situation      `json:"situation"`
	Analogues         []Analogue     `json:"analogues,omitempty"`
	Reasons           []string       `json:"reasons,omitempty"`
	Warnings          []string       `json:"warnings,omitempty"`
	IsReliablePattern bool           `json:"is_reliable_pattern"`
	RecommendAction   bool           `json:"recommend_action"`
}
