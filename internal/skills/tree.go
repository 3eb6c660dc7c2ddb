// Package skills owns the unlock trees and player progression math: skill and
// ability nodes, SP/AP spending, XP and level thresholds, ability activation
// and match rewards. All functions are pure; callers thread returned values
// back into the game state snapshot.
package skills

import "trashpiles/internal/domain"

// Activation describes what an active node does when used. Nodes with a nil
// Activation are passive and are consulted directly by the rule engine.
type Activation struct {
	// Cost is the AP price of each use.
	Cost int
	// Effect, Magnitude and Duration describe the timed effect the use
	// creates. Effect is empty for nodes that toggle flags or mark cards
	// instead.
	Effect    domain.EffectType
	Magnitude float64
	Duration  int
	// Description is the human-readable effect text carried on the event.
	Description string
}

// Node is one entry in a skill or ability tree.
type Node struct {
	ID            string
	Name          string
	Description   string
	Kind          domain.PointKind
	Cost          int
	MinLevel      int
	Prerequisites []string
	XPReward      int
	Activation    *Activation
}

// SkillNodes is the skill tree, purchased with SP.
var SkillNodes = []Node{
	{
		ID: domain.SkillCardMastery, Name: "Card Mastery",
		Description: "+1 point for every face-up numbered card",
		Kind:        domain.PointSkill, Cost: 4, MinLevel: 1, XPReward: 10,
	},
	{
		ID: "quick_draw", Name: "Quick Draw",
		Description: "Draw cards 20% faster",
		Kind:        domain.PointSkill, Cost: 5, MinLevel: 2, XPReward: 15,
	},
	{
		ID: "card_memory", Name: "Card Memory",
		Description: "See the last 2 discarded cards",
		Kind:        domain.PointSkill, Cost: 5, MinLevel: 2, XPReward: 20,
	},
	{
		ID: domain.SkillLoadedDice, Name: "Loaded Dice",
		Description: "+1 to all dice rolls",
		Kind:        domain.PointSkill, Cost: 6, MinLevel: 2, XPReward: 20,
	},
	{
		ID: "slot_vision", Name: "Slot Vision",
		Description: "See which slots are most valuable",
		Kind:        domain.PointSkill, Cost: 7, MinLevel: 3, XPReward: 25,
		Prerequisites: []string{"card_memory"},
	},
	{
		ID: domain.SkillChainCombo, Name: "Chain Combo",
		Description: "+3 to dice rolls after flipping 3 cards in a round",
		Kind:        domain.PointSkill, Cost: 8, MinLevel: 3, XPReward: 30,
		Prerequisites: []string{domain.SkillLoadedDice},
	},
	{
		ID: "fortune_teller", Name: "Fortune Teller",
		Description: "See the top 3 cards of the deck",
		Kind:        domain.PointSkill, Cost: 20, MinLevel: 7, XPReward: 65,
		Prerequisites: []string{"slot_vision"},
	},
	{
		ID: domain.SkillWildCardMaster, Name: "Wild Card Master",
		Description: "+2 points for every face-up wild card",
		Kind:        domain.PointSkill, Cost: 25, MinLevel: 8, XPReward: 75,
		Prerequisites: []string{domain.SkillCardMastery},
	},
}

// AbilityNodes is the ability tree, purchased with AP.
var AbilityNodes = []Node{
	{
		ID: domain.AbilityJacksFavor, Name: "Jack's Favor",
		Description: "Reduce the Jack penalty by 1",
		Kind:        domain.PointAbility, Cost: 3, MinLevel: 1, XPReward: 15,
	},
	{
		ID: domain.AbilityQueensGrace, Name: "Queen's Grace",
		Description: "Reduce the Queen penalty by 1",
		Kind:        domain.PointAbility, Cost: 4, MinLevel: 2, XPReward: 20,
	},
	{
		ID: domain.AbilityKingsMercy, Name: "King's Mercy",
		Description: "Reduce the King penalty by 1",
		Kind:        domain.PointAbility, Cost: 5, MinLevel: 2, XPReward: 20,
	},
	{
		ID: "lucky_break", Name: "Lucky Break",
		Description: "Your next draw reveals the pile's best card",
		Kind:        domain.PointAbility, Cost: 5, MinLevel: 2, XPReward: 20,
		Activation: &Activation{
			Cost: 1, Effect: domain.EffectLuckyDraw, Magnitude: 1, Duration: 1,
			Description: "next draw is a lucky draw",
		},
	},
	{
		ID: "extra_draw", Name: "Extra Draw",
		Description: "Draw an additional card this turn",
		Kind:        domain.PointAbility, Cost: 5, MinLevel: 2, XPReward: 20,
		Activation: &Activation{
			Cost: 1, Effect: domain.EffectDrawBonus, Magnitude: 1, Duration: 1,
			Description: "one extra draw this turn",
		},
	},
	{
		ID: "focus_surge", Name: "Focus Surge",
		Description: "Scores count 1.5x for 3 turns",
		Kind:        domain.PointAbility, Cost: 6, MinLevel: 2, XPReward: 25,
		Activation: &Activation{
			Cost: 2, Effect: domain.EffectScoreMultiplier, Magnitude: 1.5, Duration: 3,
			Description: "score multiplied by 1.5 for 3 turns",
		},
	},
	{
		ID: "heavy_strike", Name: "Heavy Strike",
		Description: "Mark a card to score +5 bonus points",
		Kind:        domain.PointAbility, Cost: 6, MinLevel: 2, XPReward: 25,
		Activation: &Activation{
			Cost:        2,
			Description: "marked card scores +5",
		},
	},
	{
		ID: "arcane_shield", Name: "Arcane Shield",
		Description: "Absorb 1 penalty point for 2 turns",
		Kind:        domain.PointAbility, Cost: 7, MinLevel: 3, XPReward: 30,
		Activation: &Activation{
			Cost: 1, Effect: domain.EffectShield, Magnitude: 1, Duration: 2,
			Description: "shield absorbs 1 penalty for 2 turns",
		},
	},
	{
		ID: "enchantment", Name: "Enchantment",
		Description: "Choose a card in hand, it scores double points",
		Kind:        domain.PointAbility, Cost: 8, MinLevel: 3, XPReward: 30,
		Activation: &Activation{
			Cost:        2,
			Description: "enchanted card scores double",
		},
	},
	{
		ID: "royal_pardon", Name: "Royal Pardon",
		Description: "Ignore all face card penalties for the rest of the match",
		Kind:        domain.PointAbility, Cost: 8, MinLevel: 3, XPReward: 30,
		Prerequisites: []string{domain.AbilityJacksFavor, domain.AbilityQueensGrace, domain.AbilityKingsMercy},
		Activation: &Activation{
			Cost:        2,
			Description: "penalties forgiven this match",
		},
	},
	{
		ID: "bargain", Name: "Bargain",
		Description: "Your next node unlocks cost half for 2 turns",
		Kind:        domain.PointAbility, Cost: 9, MinLevel: 4, XPReward: 35,
		Activation: &Activation{
			Cost: 1, Effect: domain.EffectDiscount, Magnitude: 0.5, Duration: 2,
			Description: "unlock costs halved for 2 turns",
		},
	},
	{
		ID: "free_spirit", Name: "Free Spirit",
		Description: "Your next ability costs nothing",
		Kind:        domain.PointAbility, Cost: 9, MinLevel: 4, XPReward: 35,
		Activation: &Activation{
			Cost:        2,
			Description: "next ability is free",
		},
	},
	{
		ID: domain.AbilityRoyalShield, Name: "Royal Shield",
		Description: "Reduce all face card penalties by 1",
		Kind:        domain.PointAbility, Cost: 10, MinLevel: 4, XPReward: 40,
		Prerequisites: []string{"royal_pardon"},
	},
	{
		ID: "wild_surge", Name: "Wild Surge",
		Description: "Your next placement may target any face-down slot",
		Kind:        domain.PointAbility, Cost: 10, MinLevel: 4, XPReward: 40,
		Activation: &Activation{
			Cost: 2, Effect: domain.EffectWildCardBonus, Magnitude: 1, Duration: 1,
			Description: "next placement ignores slot matching",
		},
	},
	{
		ID: "double_down", Name: "Double Down",
		Description: "Double your score for 1 turn",
		Kind:        domain.PointAbility, Cost: 12, MinLevel: 5, XPReward: 45,
		Activation: &Activation{
			Cost: 3, Effect: domain.EffectDoublePoints, Magnitude: 2, Duration: 1,
			Description: "score doubled this turn",
		},
	},
	{
		ID: "instant_place", Name: "Instant Place",
		Description: "Resolve your next placement immediately",
		Kind:        domain.PointAbility, Cost: 15, MinLevel: 6, XPReward: 55,
		Activation: &Activation{
			Cost: 3, Effect: domain.EffectInstantPlace, Magnitude: 1, Duration: 1,
			Description: "next placement resolves instantly",
		},
	},
	{
		ID: domain.AbilityFaceCardImmunity, Name: "Face Card Immunity",
		Description: "No penalties from Kings, Queens or Jacks",
		Kind:        domain.PointAbility, Cost: 25, MinLevel: 7, XPReward: 80,
		Prerequisites: []string{domain.AbilityRoyalShield},
	},
}

var nodesByID = buildIndex()

func buildIndex() map[string]Node {
	idx := make(map[string]Node, len(SkillNodes)+len(AbilityNodes))
	for _, n := range SkillNodes {
		idx[n.ID] = n
	}
	for _, n := range AbilityNodes {
		idx[n.ID] = n
	}
	return idx
}

// NodeByID looks up a tree node across both trees.
func NodeByID(id string) (Node, bool) {
	n, ok := nodesByID[id]
	return n, ok
}

// AvailableNodes lists the nodes of the given kind the player could unlock
// right now: not yet owned, affordable, level and prerequisites satisfied.
func AvailableNodes(prog domain.Progress, kind domain.PointKind) []Node {
	pool := SkillNodes
	if kind == domain.PointAbility {
		pool = AbilityNodes
	}
	out := make([]Node, 0, len(pool))
	for _, n := range pool {
		if prog.Unlocked(n.ID, kind) || prog.Points(kind) < n.Cost || prog.Level < n.MinLevel {
			continue
		}
		if !prerequisitesMet(prog, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func prerequisitesMet(prog domain.Progress, n Node) bool {
	for _, pre := range n.Prerequisites {
		if !prog.Unlocked(pre, n.Kind) {
			return false
		}
	}
	return true
}
