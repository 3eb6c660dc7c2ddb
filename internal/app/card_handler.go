package app

import (
	"trashpiles/internal/challenge"
	"trashpiles/internal/domain"
)

// CardHandler owns the draw / place / discard / flip family.
type CardHandler struct{}

func NewCardHandler() *CardHandler { return &CardHandler{} }

func (h *CardHandler) Family() Family { return FamilyCard }

func (h *CardHandler) Handle(state *domain.GameState, cmd Command) (*domain.GameState, []Event, error) {
	if state.Phase != domain.PhasePlaying {
		return reject(state, cmd, "game not in progress")
	}
	if state.InputLocked {
		return reject(state, cmd, "game is paused")
	}
	if reason := checkTurn(state, cmd.Actor()); reason != "" {
		return reject(state, cmd, reason)
	}

	switch c := cmd.(type) {
	case DrawCommand:
		return h.draw(state, c)
	case PlaceCommand:
		return h.place(state, c)
	case DiscardCommand:
		return h.discard(state, c)
	case FlipCommand:
		return h.flip(state, c)
	default:
		return nil, nil, ErrWrongFamily
	}
}

func checkTurn(state *domain.GameState, playerID int) string {
	if state.PlayerByID(playerID) == nil {
		return "player not found"
	}
	if state.Players[state.CurrentPlayerIndex].ID != playerID {
		return "not your turn"
	}
	return ""
}

// draw reveals the next card of the chosen pile face-up without removing it;
// a subsequent place or discard performs the structural move. This keeps the
// card-conservation invariant trivially intact between the two commands.
func (h *CardHandler) draw(state *domain.GameState, cmd DrawCommand) (*domain.GameState, []Event, error) {
	switch cmd.Source {
	case SourceDeck:
		if len(state.Deck) == 0 {
			return reject(state, cmd, "deck is empty")
		}
		out := state.Clone()
		out.Deck[0] = out.Deck[0].WithFaceUp(true)
		return out, []Event{NewEvent(EventCardDrawn, CardDrawnPayload{
			PlayerID: cmd.PlayerID,
			Card:     out.Deck[0],
			Source:   SourceDeck,
		})}, nil
	case SourceDiscard:
		if len(state.Discard) == 0 {
			return reject(state, cmd, "discard pile is empty")
		}
		out := state.Clone()
		top := len(out.Discard) - 1
		out.Discard[top] = out.Discard[top].WithFaceUp(true)
		return out, []Event{NewEvent(EventCardDrawn, CardDrawnPayload{
			PlayerID: cmd.PlayerID,
			Card:     out.Discard[top],
			Source:   SourceDiscard,
		})}, nil
	default:
		return reject(state, cmd, "unknown draw source")
	}
}

func (h *CardHandler) place(state *domain.GameState, cmd PlaceCommand) (*domain.GameState, []Event, error) {
	card, found := domain.FindCard(state.Deck, cmd.CardID)
	if !found {
		card, found = domain.FindCard(state.Discard, cmd.CardID)
	}
	if !found {
		return reject(state, cmd, "card not found in deck or discard")
	}

	if ok, reason := h.legal(state, cmd.PlayerID, card, cmd.SlotIndex); !ok {
		return reject(state, cmd, reason)
	}

	out := state.Clone()
	out.Deck = domain.RemoveCard(out.Deck, cmd.CardID)
	out.Discard = domain.RemoveCard(out.Discard, cmd.CardID)

	player := out.PlayerByID(cmd.PlayerID)
	replaced := player.Hand[cmd.SlotIndex]
	player.Hand[cmd.SlotIndex] = card.WithFaceUp(true)
	player.LastFlippedSlot = cmd.SlotIndex
	out.FlippedThisRound++

	// The vacated occupant always goes to the discard pile face-up, whether
	// it was hidden or already revealed.
	vacated := replaced.WithFaceUp(true)
	out.Discard = append(out.Discard, vacated)

	events := []Event{NewEvent(EventCardPlaced, CardPlacedPayload{
		PlayerID:  cmd.PlayerID,
		Card:      player.Hand[cmd.SlotIndex],
		SlotIndex: cmd.SlotIndex,
		Replaced:  &vacated,
	})}

	events = append(events, observe(out, challenge.Observation{
		Kind:     challenge.ObservedCardPlaced,
		PlayerID: cmd.PlayerID,
	})...)

	if domain.HasPlayerWon(*player) {
		player.Finished = true
		out.Phase = domain.PhaseGameOver
		scores := make(map[int]int, len(out.Players))
		for _, p := range out.Players {
			scores[p.ID] = p.Score
		}
		events = append(events, NewEvent(EventGameOver, GameOverPayload{
			WinnerID: cmd.PlayerID,
			Scores:   scores,
			Reason:   EndCompleted,
		}))
	}

	return out, events, nil
}

// legal wraps the rule engine's placement check with the effect-driven
// loosenings: a live wild-card-bonus effect lets any card target any
// face-down slot.
func (h *CardHandler) legal(state *domain.GameState, playerID int, card domain.Card, slot int) (bool, string) {
	ok, reason := domain.ValidateMove(state, playerID, card, slot)
	if ok {
		return true, ""
	}
	if reason == "card does not match slot" && domain.HasEffect(state.Effects, playerID, domain.EffectWildCardBonus) {
		return true, ""
	}
	return false, reason
}

// discard moves the card to the top of the discard pile face-up. Cards
// already in the discard pile are lifted to the top rather than duplicated.
func (h *CardHandler) discard(state *domain.GameState, cmd DiscardCommand) (*domain.GameState, []Event, error) {
	_, inDeck := domain.FindCard(state.Deck, cmd.CardID)
	card, inDiscard := domain.FindCard(state.Discard, cmd.CardID)
	if !inDeck && !inDiscard {
		return reject(state, cmd, "card not found in deck or discard")
	}

	out := state.Clone()
	if inDeck {
		card, _ = domain.FindCard(out.Deck, cmd.CardID)
		out.Deck = domain.RemoveCard(out.Deck, cmd.CardID)
	} else {
		out.Discard = domain.RemoveCard(out.Discard, cmd.CardID)
	}
	card = card.WithFaceUp(true)
	out.Discard = append(out.Discard, card)

	return out, []Event{NewEvent(EventCardDiscarded, CardDiscardedPayload{
		PlayerID: cmd.PlayerID,
		Card:     card,
	})}, nil
}

func (h *CardHandler) flip(state *domain.GameState, cmd FlipCommand) (*domain.GameState, []Event, error) {
	player := state.PlayerByID(cmd.PlayerID)
	if cmd.SlotIndex < 0 || cmd.SlotIndex >= len(player.Hand) {
		return reject(state, cmd, "invalid slot")
	}

	out := state.Clone()
	p := out.PlayerByID(cmd.PlayerID)
	flipped := !p.Hand[cmd.SlotIndex].FaceUp
	p.Hand[cmd.SlotIndex] = p.Hand[cmd.SlotIndex].WithFaceUp(flipped)
	if flipped {
		p.LastFlippedSlot = cmd.SlotIndex
		out.FlippedThisRound++
	}

	return out, []Event{NewEvent(EventCardFlipped, CardFlippedPayload{
		PlayerID:  cmd.PlayerID,
		SlotIndex: cmd.SlotIndex,
		FaceUp:    flipped,
	})}, nil
}
