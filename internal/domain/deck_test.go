package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeckIsComplete(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(deck))
	}
	if !VerifyDeck(deck) {
		t.Fatalf("fresh deck failed integrity check")
	}
}

func TestShuffleDeckIsPermutation(t *testing.T) {
	deck := NewDeck()
	shuffled := ShuffleDeck(deck, rand.New(rand.NewSource(7)))

	if len(shuffled) != len(deck) {
		t.Fatalf("shuffle changed deck size: %d -> %d", len(deck), len(shuffled))
	}
	if !VerifyDeck(shuffled) {
		t.Fatalf("shuffled deck lost cards")
	}
	// Input must be left intact.
	if !VerifyDeck(deck) {
		t.Fatalf("shuffle mutated its input")
	}
}

func TestDeal(t *testing.T) {
	deck := ShuffleDeck(NewDeck(), rand.New(rand.NewSource(1)))

	res, err := Deal(deck, 2, HandSize)
	if err != nil {
		t.Fatalf("deal failed: %v", err)
	}
	if len(res.Hands) != 2 {
		t.Fatalf("expected 2 hands, got %d", len(res.Hands))
	}
	for i, hand := range res.Hands {
		if len(hand) != HandSize {
			t.Fatalf("hand %d has %d cards, want %d", i, len(hand), HandSize)
		}
		for _, c := range hand {
			if c.FaceUp {
				t.Fatalf("dealt card %s is face up", c.ID())
			}
		}
	}
	if len(res.Discard) != 1 || !res.Discard[0].FaceUp {
		t.Fatalf("discard seed missing or face down: %+v", res.Discard)
	}
	if want := DeckSize - 2*HandSize - 1; len(res.Deck) != want {
		t.Fatalf("expected %d cards left in deck, got %d", want, len(res.Deck))
	}
}

func TestDealNotEnoughCards(t *testing.T) {
	deck := NewDeck()[:15]
	if _, err := Deal(deck, 2, HandSize); err == nil {
		t.Fatalf("expected error dealing from short deck")
	}
}

func TestRemoveCard(t *testing.T) {
	cards := []Card{
		MustCard(RankAce, SuitSpades),
		MustCard(RankTwo, SuitHearts),
		MustCard(RankThree, SuitClubs),
	}
	out := RemoveCard(cards, "two_of_hearts")
	if len(out) != 2 {
		t.Fatalf("expected 2 cards after removal, got %d", len(out))
	}
	if _, found := FindCard(out, "two_of_hearts"); found {
		t.Fatalf("removed card still present")
	}
	// Unknown id removes nothing.
	if got := RemoveCard(cards, "nine_of_diamonds"); len(got) != 3 {
		t.Fatalf("removal of absent card changed the slice")
	}
}
