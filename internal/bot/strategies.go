package bot

import (
	"trashpiles/internal/app"
	botinternal "trashpiles/internal/bot/internal"
	"trashpiles/internal/domain"
)

// wildChooser picks the open slot a wild card should fill, or -1 to hold it.
type wildChooser func(hand []domain.Card) int

// planTurn builds the command sequence for one turn: pick a source, walk the
// pickup chain while cards keep fitting, then close out. The hand slice is
// simulated locally so the plan reflects every placement in the chain.
func planTurn(state *domain.GameState, playerID int, chooseWild wildChooser, preferDeck bool) []app.Command {
	player := state.PlayerByID(playerID)
	if player == nil || player.Finished || state.Phase != domain.PhasePlaying {
		return nil
	}

	hand := append([]domain.Card(nil), player.Hand...)
	var cmds []app.Command
	var card domain.Card
	fromDeck := false

	top, hasTop := discardTop(state)
	takeDiscard := hasTop && botinternal.Fits(hand, top) && !(preferDeck && len(state.Deck) > 0)
	switch {
	case takeDiscard:
		card = top
		cmds = append(cmds, app.DrawCommand{PlayerID: playerID, Source: app.SourceDiscard})
	case len(state.Deck) > 0:
		card = state.Deck[0]
		fromDeck = true
		cmds = append(cmds, app.DrawCommand{PlayerID: playerID, Source: app.SourceDeck})
	default:
		return []app.Command{app.EndTurnCommand{PlayerID: playerID}}
	}

	for {
		slot := botinternal.NaturalSlot(hand, card)
		if slot < 0 && card.IsWild() {
			slot = chooseWild(hand)
		}
		if slot < 0 {
			// Dead card. A deck draw must be discarded by hand; a card
			// lifted from the discard pile is already back on top.
			if fromDeck {
				cmds = append(cmds, app.DiscardCommand{PlayerID: playerID, CardID: card.ID()})
			}
			break
		}
		cmds = append(cmds, app.PlaceCommand{PlayerID: playerID, CardID: card.ID(), SlotIndex: slot})
		vacated := hand[slot]
		hand[slot] = card.WithFaceUp(true)
		if botinternal.HandComplete(hand) {
			// The winning placement closes the game; no end-turn follows.
			return cmds
		}
		card = vacated
		fromDeck = false
	}
	return append(cmds, app.EndTurnCommand{PlayerID: playerID})
}

// chainLength simulates the pickup chain for a starting card and returns how
// many placements it yields.
func chainLength(hand []domain.Card, card domain.Card, chooseWild wildChooser) int {
	sim := append([]domain.Card(nil), hand...)
	placed := 0
	for {
		slot := botinternal.NaturalSlot(sim, card)
		if slot < 0 && card.IsWild() {
			slot = chooseWild(sim)
		}
		if slot < 0 {
			return placed
		}
		placed++
		next := sim[slot]
		sim[slot] = card.WithFaceUp(true)
		if botinternal.HandComplete(sim) {
			return placed
		}
		card = next
	}
}

func discardTop(state *domain.GameState) (domain.Card, bool) {
	if len(state.Discard) == 0 {
		return domain.Card{}, false
	}
	return state.Discard[len(state.Discard)-1], true
}

// firstOpenSlot is the naive wild placement: fill from the bottom up.
func firstOpenSlot(hand []domain.Card) int {
	slots := botinternal.FaceDownSlots(hand)
	if len(slots) == 0 {
		return -1
	}
	return slots[0]
}

// GoodBot plays the straightforward game: take the discard when it fits,
// place whatever chains, park wilds on the lowest open slot.
type GoodBot struct{}

func (b *GoodBot) PlanTurn(state *domain.GameState, playerID int) ([]app.Command, error) {
	return planTurn(state, playerID, firstOpenSlot, false), nil
}

func (b *GoodBot) OnEvent(event app.Event) {}
