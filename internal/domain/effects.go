package domain

// EffectType is the closed set of modifier kinds an active skill effect can
// carry. Scoring paths switch on the tag, never on skill id strings.
type EffectType string

const (
	EffectScoreMultiplier EffectType = "score_multiplier"
	EffectDrawBonus       EffectType = "draw_bonus"
	EffectDiscount        EffectType = "discount"
	EffectWildCardBonus   EffectType = "wild_card_bonus"
	EffectLuckyDraw       EffectType = "lucky_draw"
	EffectShield          EffectType = "shield"
	EffectDoublePoints    EffectType = "double_points"
	EffectInstantPlace    EffectType = "instant_place"
)

// ActiveEffect is a timed or permanent modifier influencing scoring and rules.
// RemainingTurns < 0 means the effect never expires. Effects are replaced by
// copy-with-decrement, never mutated in place.
type ActiveEffect struct {
	SkillID        string     `json:"skillId"`
	PlayerID       int        `json:"playerId"`
	Type           EffectType `json:"type"`
	Magnitude      float64    `json:"magnitude"`
	Duration       int        `json:"duration"`
	RemainingTurns int        `json:"remainingTurns"`
}

// Expired reports whether the effect has run out of turns.
func (e ActiveEffect) Expired() bool {
	return e.RemainingTurns == 0
}

// Permanent reports whether the effect never decays.
func (e ActiveEffect) Permanent() bool {
	return e.RemainingTurns < 0
}

// TickEffects applies one turn-boundary decay step: each timed effect loses a
// turn, expired effects are dropped, permanent effects pass through unchanged.
func TickEffects(effects []ActiveEffect) []ActiveEffect {
	out := make([]ActiveEffect, 0, len(effects))
	for _, e := range effects {
		if e.Permanent() {
			out = append(out, e)
			continue
		}
		e.RemainingTurns--
		if e.RemainingTurns > 0 {
			out = append(out, e)
		}
	}
	return out
}

// HasEffect reports whether the player has a live effect of the given type.
func HasEffect(effects []ActiveEffect, playerID int, t EffectType) bool {
	for _, e := range effects {
		if e.PlayerID == playerID && e.Type == t && !e.Expired() {
			return true
		}
	}
	return false
}

// EffectValue returns the magnitude of the player's first live effect of the
// given type, or 1.0 when none is active.
func EffectValue(effects []ActiveEffect, playerID int, t EffectType) float64 {
	for _, e := range effects {
		if e.PlayerID == playerID && e.Type == t && !e.Expired() {
			return e.Magnitude
		}
	}
	return 1.0
}
