package skills

import "trashpiles/internal/domain"

// Target carries optional targeting data for an ability use.
type Target struct {
	CardID    string `json:"cardId,omitempty"`
	SlotIndex int    `json:"slotIndex,omitempty"`
}

// UseAbility activates an unlocked ability for the player. It checks the
// activation cost against the player's AP (or the next-ability-free flag),
// applies the effect to a clone of the state and returns it together with a
// human-readable effect description. A non-empty reason means the use was
// rejected and the input state must be kept.
func UseAbility(state *domain.GameState, playerID int, abilityID string, target Target) (*domain.GameState, string, string) {
	node, ok := NodeByID(abilityID)
	if !ok {
		return state, "", ReasonUnknownNode
	}
	prog := state.Progression.ProgressFor(playerID)
	if !prog.Unlocked(abilityID, node.Kind) {
		return state, "", ReasonNotUnlocked
	}
	if node.Activation == nil {
		return state, "", ReasonNotActive
	}

	cost := node.Activation.Cost
	free := state.Flags.NextAbilityFree
	if free {
		cost = 0
	}
	if prog.AP < cost {
		return state, "", ReasonInsufficientPoints
	}

	out := state.Clone()
	if free {
		out.Flags.NextAbilityFree = false
	}
	prog.AP -= cost
	out.Progression = out.Progression.WithProgress(prog)

	if reason := applyActivation(out, playerID, node, target); reason != "" {
		return state, "", reason
	}
	return out, node.Activation.Description, ""
}

// applyActivation mutates the clone according to the node's activation.
// Nodes with a timed effect append an ActiveEffect; the rest toggle flags or
// mark cards.
func applyActivation(state *domain.GameState, playerID int, node Node, target Target) string {
	act := node.Activation
	if act.Effect != "" {
		state.Effects = append(state.Effects, domain.ActiveEffect{
			SkillID:        node.ID,
			PlayerID:       playerID,
			Type:           act.Effect,
			Magnitude:      act.Magnitude,
			Duration:       act.Duration,
			RemainingTurns: act.Duration,
		})
		return ""
	}

	switch node.ID {
	case "royal_pardon":
		state.Flags.ImmuneToPenalties = true
	case "free_spirit":
		state.Flags.NextAbilityFree = true
	case "heavy_strike":
		if target.CardID == "" {
			return ReasonMissingTarget
		}
		state.Flags.BonusCards = markCard(state.Flags.BonusCards, target.CardID)
	case "enchantment":
		if target.CardID == "" {
			return ReasonMissingTarget
		}
		state.Flags.DoubledCards = markCard(state.Flags.DoubledCards, target.CardID)
	default:
		return ReasonNotActive
	}
	return ""
}

func markCard(set map[string]bool, cardID string) map[string]bool {
	if set == nil {
		set = make(map[string]bool, 1)
	}
	set[cardID] = true
	return set
}
