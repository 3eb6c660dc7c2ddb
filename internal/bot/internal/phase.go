package internal

import "trashpiles/internal/domain"

// GamePhase describes the current strategic stage of a match.
type GamePhase int

const (
	// PhaseOpening indicates nobody has resolved more than a few slots.
	PhaseOpening GamePhase = iota
	// PhaseMid indicates steady progress with no one close to finishing.
	PhaseMid
	// PhaseEnd indicates at least one player is within reach of a full hand.
	PhaseEnd
)

const (
	openingThreshold = 3
	endThreshold     = 7
)

// DetectPhase infers the phase from how many slots players have resolved.
func DetectPhase(state *domain.GameState) GamePhase {
	if state == nil || len(state.Players) == 0 {
		return PhaseMid
	}

	most := 0
	for _, p := range state.Players {
		shown := 0
		for _, c := range p.Hand {
			if c.FaceUp {
				shown++
			}
		}
		if shown > most {
			most = shown
		}
	}

	switch {
	case most <= openingThreshold:
		return PhaseOpening
	case most >= endThreshold:
		return PhaseEnd
	default:
		return PhaseMid
	}
}

// DetectThreat reports whether any opponent is within threshold slots of a
// complete hand.
func DetectThreat(state *domain.GameState, playerID, threshold int) bool {
	if state == nil || threshold <= 0 {
		return false
	}
	for _, p := range state.Players {
		if p.ID == playerID || p.Finished {
			continue
		}
		open := 0
		for _, c := range p.Hand {
			if !c.FaceUp {
				open++
			}
		}
		if len(p.Hand) > 0 && open <= threshold {
			return true
		}
	}
	return false
}
