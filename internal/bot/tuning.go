package bot

import botinternal "trashpiles/internal/bot/internal"

// PhasePolicy controls ability spending for one strategic stage.
type PhasePolicy struct {
	SpendAbilities bool
	// AbilityReserve is the AP balance to hold back after an activation.
	AbilityReserve int
}

// BotTuning balances ability spending and wild placement by phase.
type BotTuning struct {
	Opening PhasePolicy
	Mid     PhasePolicy
	End     PhasePolicy
	// ThreatThreshold is the number of open slots at which an opponent
	// counts as close to finishing.
	ThreatThreshold int
}

// ForPhase returns the policy for the detected phase.
func (t BotTuning) ForPhase(phase botinternal.GamePhase) PhasePolicy {
	switch phase {
	case botinternal.PhaseOpening:
		return t.Opening
	case botinternal.PhaseEnd:
		return t.End
	default:
		return t.Mid
	}
}

// DefaultTuning hoards ability points early and spends freely once a hand
// nears completion.
var DefaultTuning = BotTuning{
	Opening:         PhasePolicy{SpendAbilities: false, AbilityReserve: 3},
	Mid:             PhasePolicy{SpendAbilities: true, AbilityReserve: 2},
	End:             PhasePolicy{SpendAbilities: true, AbilityReserve: 0},
	ThreatThreshold: 3,
}
