package skills

import "trashpiles/internal/domain"

// Rejection reasons returned by UnlockNode and UseAbility. These are player
// facing: handlers surface them on InvalidMove events, never as Go errors.
const (
	ReasonUnknownNode         = "unknown node"
	ReasonAlreadyUnlocked     = "already unlocked"
	ReasonLevelTooLow         = "level too low"
	ReasonPrerequisiteMissing = "prerequisite missing"
	ReasonInsufficientPoints  = "insufficient points"
	ReasonNotUnlocked         = "ability not unlocked"
	ReasonNotActive           = "ability has no active use"
	ReasonMissingTarget       = "ability requires a target card"
)

// UnlockNode attempts to purchase a tree node for the player. On success it
// returns the new progress with points deducted, the node recorded and its XP
// reward granted. On failure the returned reason is non-empty and the
// progress is unchanged.
//
// A live discount effect for the player reduces the point cost.
func UnlockNode(prog domain.Progress, nodeID string, kind domain.PointKind, effects []domain.ActiveEffect) (domain.Progress, string) {
	node, ok := NodeByID(nodeID)
	if !ok || node.Kind != kind {
		return prog, ReasonUnknownNode
	}
	if prog.Unlocked(nodeID, kind) {
		return prog, ReasonAlreadyUnlocked
	}
	if prog.Level < node.MinLevel {
		return prog, ReasonLevelTooLow
	}
	if !prerequisitesMet(prog, node) {
		return prog, ReasonPrerequisiteMissing
	}

	cost := node.Cost
	if domain.HasEffect(effects, prog.PlayerID, domain.EffectDiscount) {
		cost = int(float64(cost) * domain.EffectValue(effects, prog.PlayerID, domain.EffectDiscount))
	}
	if prog.Points(kind) < cost {
		return prog, ReasonInsufficientPoints
	}

	out := spend(prog, cost, kind)
	if kind == domain.PointSkill {
		out.UnlockedSkills = withMember(out.UnlockedSkills, nodeID)
	} else {
		out.UnlockedAbilities = withMember(out.UnlockedAbilities, nodeID)
	}
	// The first purchase switches XP accumulation on.
	out.HasPurchased = true
	return AddXP(out, node.XPReward), ""
}

func spend(p domain.Progress, cost int, kind domain.PointKind) domain.Progress {
	if kind == domain.PointSkill {
		p.SP -= cost
	} else {
		p.AP -= cost
	}
	return p
}

// withMember returns a copy of the set with the id added; the input map is
// never mutated so stale snapshots stay valid.
func withMember(set map[string]bool, id string) map[string]bool {
	out := make(map[string]bool, len(set)+1)
	for k, v := range set {
		out[k] = v
	}
	out[id] = true
	return out
}
