package domain

import (
	"math/rand"
	"sort"
	"testing"
)

func TestCloneIsIndependent(t *testing.T) {
	state := twoPlayerState()
	state.Flags.BonusCards = map[string]bool{"ace_of_spades": true}
	state.Effects = []ActiveEffect{
		{SkillID: "boost", PlayerID: 0, Type: EffectDoublePoints, Magnitude: 2, Duration: 2, RemainingTurns: 2},
	}

	clone := state.Clone()
	clone.Players[0].Hand[0] = clone.Players[0].Hand[0].WithFaceUp(true)
	clone.Players[0].Score = 99
	clone.Flags.BonusCards["two_of_spades"] = true
	clone.Effects[0].RemainingTurns = 0
	clone.Deck = append(clone.Deck, MustCard(RankKing, SuitDiamonds))

	if state.Players[0].Hand[0].FaceUp {
		t.Fatalf("clone hand mutation leaked into original")
	}
	if state.Players[0].Score != 0 {
		t.Fatalf("clone score mutation leaked into original")
	}
	if state.Flags.BonusCards["two_of_spades"] {
		t.Fatalf("clone flag mutation leaked into original")
	}
	if state.Effects[0].RemainingTurns != 2 {
		t.Fatalf("clone effect mutation leaked into original")
	}
}

func TestAllCardIDsConservation(t *testing.T) {
	deck := ShuffleDeck(NewDeck(), rand.New(rand.NewSource(42)))
	res, err := Deal(deck, 2, HandSize)
	if err != nil {
		t.Fatalf("deal failed: %v", err)
	}

	state := &GameState{
		Players: []Player{
			{ID: 0, Hand: res.Hands[0]},
			{ID: 1, Hand: res.Hands[1]},
		},
		Deck:    res.Deck,
		Discard: res.Discard,
	}

	ids := state.AllCardIDs()
	if len(ids) != DeckSize {
		t.Fatalf("expected %d card ids, got %d", DeckSize, len(ids))
	}

	want := make([]string, 0, DeckSize)
	for _, c := range NewDeck() {
		want = append(want, c.ID())
	}
	sort.Strings(ids)
	sort.Strings(want)
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("card multiset mismatch at %d: %s != %s", i, ids[i], want[i])
		}
	}
}
