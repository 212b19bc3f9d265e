package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// The badge payload and feed payload fields are interfaces, so decoding
// (needed for the redis-backed context cache round-trip) resolves the
// concrete type from the kind tag.

func badgeDataFor(kind BadgeKind) BadgeData {
	switch kind {
	case BadgeHotStreak:
		return &StreakData{}
	case BadgeHRChance:
		return &HRPredictionData{}
	case BadgeMilestone:
		return &MilestoneData{}
	case BadgeRisk:
		return &RiskData{}
	case BadgeSlotEdge:
		return &SlotHistoryData{}
	case BadgePowerSurge:
		return &PowerSurgeData{}
	case BadgeBounceBack:
		return &BounceBackData{}
	}
	return nil
}

func signalFor(kind SignalKind) FeedSignal {
	switch kind {
	case SignalStreak:
		return &StreakSignal{}
	case SignalHRPrediction:
		return &HRPredictionSignal{}
	case SignalMilestone:
		return &MilestoneSignal{}
	case SignalRisk:
		return &RiskSignal{}
	case SignalSlotMatchup:
		return &SlotMatchupSignal{}
	case SignalPowerSurge:
		return &PowerSurgeSignal{}
	case SignalPattern:
		return &PatternSignal{}
	}
	return nil
}

func (b *Badge) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind     BadgeKind       `json:"kind"`
		Label    string          `json:"label"`
		Glyph    string          `json:"glyph"`
		Delta    int             `json:"delta"`
		Priority int             `json:"priority"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("badge: %w", err)
	}
	b.Kind = raw.Kind
	b.Label = raw.Label
	b.Glyph = raw.Glyph
	b.Delta = raw.Delta
	b.Priority = raw.Priority
	b.Data = nil
	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		payload := badgeDataFor(raw.Kind)
		if payload == nil {
			return fmt.Errorf("badge: unknown kind %q", raw.Kind)
		}
		if err := json.Unmarshal(raw.Data, payload); err != nil {
			return fmt.Errorf("badge %s data: %w", raw.Kind, err)
		}
		b.Data = payload
	}
	return nil
}

func (p *PlayerContext) UnmarshalJSON(data []byte) error {
	var raw struct {
		Player               string                         `json:"player"`
		Team                 string                         `json:"team"`
		Date                 string                         `json:"date"`
		Badges               []Badge                        `json:"badges"`
		ConfidenceAdjustment int                            `json:"confidence_adjustment"`
		StandoutReasons      []string                       `json:"standout_reasons"`
		RiskFactors          []string                       `json:"risk_factors"`
		Summary              string                         `json:"summary"`
		Payloads             map[SignalKind]json.RawMessage `json:"payloads"`
		GeneratedAt          time.Time                      `json:"generated_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("player context: %w", err)
	}
	p.Player = raw.Player
	p.Team = raw.Team
	p.Date = raw.Date
	p.Badges = raw.Badges
	p.ConfidenceAdjustment = raw.ConfidenceAdjustment
	p.StandoutReasons = raw.StandoutReasons
	p.RiskFactors = raw.RiskFactors
	p.Summary = raw.Summary
	p.GeneratedAt = raw.GeneratedAt
	p.Payloads = nil
	if len(raw.Payloads) > 0 {
		p.Payloads = make(map[SignalKind]FeedSignal, len(raw.Payloads))
		for kind, msg := range raw.Payloads {
			sig := signalFor(kind)
			if sig == nil {
				// Unknown feed kinds are dropped, not fatal.
				continue
			}
			if err := json.Unmarshal(msg, sig); err != nil {
				return fmt.Errorf("payload %s: %w", kind, err)
			}
			p.Payloads[kind] = sig
		}
	}
	return nil
}
