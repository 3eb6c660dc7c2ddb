package domain

import (
	"fmt"
	"math/rand"
)

// DeckSize is the number of cards in a full deck.
const DeckSize = 52

// NewDeck returns an ordered 52-card deck, all cards face down.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Rank: rank, Suit: suit, Value: rankValues[rank]})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealResult carries the outcome of dealing hands from a deck.
type DealResult struct {
	Hands   [][]Card
	Deck    []Card
	Discard []Card
}

// Deal deals cardsPerPlayer face-down cards to each of playerCount players in
// player order, then slot order, from the head of the deck. One card is turned
// face up to seed the discard pile.
func Deal(deck []Card, playerCount, cardsPerPlayer int) (DealResult, error) {
	needed := playerCount*cardsPerPlayer + 1
	if len(deck) < needed {
		return DealResult{}, fmt.Errorf("not enough cards to deal: have %d, need %d", len(deck), needed)
	}

	remaining := make([]Card, len(deck))
	copy(remaining, deck)

	hands := make([][]Card, 0, playerCount)
	for p := 0; p < playerCount; p++ {
		hand := make([]Card, 0, cardsPerPlayer)
		for c := 0; c < cardsPerPlayer; c++ {
			hand = append(hand, remaining[0].WithFaceUp(false))
			remaining = remaining[1:]
		}
		hands = append(hands, hand)
	}

	discard := []Card{remaining[0].WithFaceUp(true)}
	remaining = remaining[1:]

	return DealResult{Hands: hands, Deck: remaining, Discard: discard}, nil
}

// FindCard returns the first card with the given id, if present.
func FindCard(cards []Card, cardID string) (Card, bool) {
	for _, c := range cards {
		if c.ID() == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveCard returns a copy of cards with the first card matching cardID removed.
func RemoveCard(cards []Card, cardID string) []Card {
	out := make([]Card, 0, len(cards))
	removed := false
	for _, c := range cards {
		if !removed && c.ID() == cardID {
			removed = true
			continue
		}
		out = append(out, c)
	}
	return out
}

// VerifyDeck reports whether cards form a complete deck: 52 unique ids
// covering every rank/suit combination.
func VerifyDeck(cards []Card) bool {
	if len(cards) != DeckSize {
		return false
	}
	seen := make(map[string]bool, DeckSize)
	for _, c := range cards {
		seen[c.ID()] = true
	}
	if len(seen) != DeckSize {
		return false
	}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			if !seen[string(rank)+"_of_"+string(suit)] {
				return false
			}
		}
	}
	return true
}
