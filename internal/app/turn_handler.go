package app

import (
	"math/rand"

	"trashpiles/internal/domain"
)

// TurnHandler owns the end-turn / skip-turn family. The turn boundary is
// where timed effects decay, the dice are rolled for the incoming player and
// a thin deck is reshuffled.
type TurnHandler struct {
	rng *rand.Rand
}

func NewTurnHandler(rng *rand.Rand) *TurnHandler {
	return &TurnHandler{rng: rng}
}

func (h *TurnHandler) Family() Family { return FamilyTurn }

func (h *TurnHandler) Handle(state *domain.GameState, cmd Command) (*domain.GameState, []Event, error) {
	if state.Phase != domain.PhasePlaying {
		return reject(state, cmd, "game not in progress")
	}
	if state.InputLocked {
		return reject(state, cmd, "game is paused")
	}
	if reason := checkTurn(state, cmd.Actor()); reason != "" {
		return reject(state, cmd, reason)
	}

	switch cmd.(type) {
	case EndTurnCommand:
		return h.advance(state, cmd, true)
	case SkipTurnCommand:
		return h.advance(state, cmd, false)
	default:
		return nil, nil, ErrWrongFamily
	}
}

func (h *TurnHandler) advance(state *domain.GameState, cmd Command, endedByPlayer bool) (*domain.GameState, []Event, error) {
	out := state.Clone()

	var events []Event
	if endedByPlayer {
		events = append(events, NewEvent(EventTurnEnded, TurnEndedPayload{PlayerID: cmd.Actor()}))
	}

	next := domain.NextPlayerIndex(out)
	// The round counter advances when play wraps back to the first seat.
	if next <= out.CurrentPlayerIndex {
		out.Round++
		out.FlippedThisRound = 0
	}
	out.CurrentPlayerIndex = next

	out.Effects = domain.TickEffects(out.Effects)

	out.DiceRoll = h.rng.Intn(domain.DiceSides) + 1
	events = append(events, NewEvent(EventDiceRolled, DiceRolledPayload{
		PlayerID:   out.Players[next].ID,
		Roll:       out.DiceRoll,
		Multiplier: out.DiceMultiplier,
	}))

	if domain.NeedsReshuffle(out) {
		out = domain.ReshuffleDiscardIntoDeck(out, h.rng)
	}

	turnNumber := out.Round*len(out.Players) + next
	events = append(events, NewEvent(EventTurnStarted, TurnStartedPayload{
		PlayerID:   out.Players[next].ID,
		TurnNumber: turnNumber,
	}))

	return out, events, nil
}
