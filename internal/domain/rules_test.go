package domain

import (
	"math/rand"
	"testing"
)

// handOfTen builds a ten-slot hand where slot i holds the card with value
// i+1 of the given suit, all face down.
func handOfTen(suit Suit) []Card {
	hand := make([]Card, 0, HandSize)
	for _, rank := range Ranks[:HandSize] {
		hand = append(hand, MustCard(rank, suit))
	}
	return hand
}

func twoPlayerState() *GameState {
	return &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: 0, Name: "one", Hand: handOfTen(SuitSpades), LastFlippedSlot: -1},
			{ID: 1, Name: "two", Hand: handOfTen(SuitHearts), LastFlippedSlot: -1},
		},
		DiceMultiplier: 1,
		Progression:    NewSkillAbilityState(),
	}
}

func TestCanPlaceCard(t *testing.T) {
	tests := []struct {
		name string
		card Card
		slot int
		want bool
	}{
		{"ace in slot 0", MustCard(RankAce, SuitSpades), 0, true},
		{"seven in slot 6", MustCard(RankSeven, SuitClubs), 6, true},
		{"seven in slot 0", MustCard(RankSeven, SuitClubs), 0, false},
		{"ten in slot 9", MustCard(RankTen, SuitHearts), 9, true},
		{"negative slot", MustCard(RankAce, SuitSpades), -1, false},
		{"slot out of range", MustCard(RankAce, SuitSpades), 10, false},
		{"jack never matches by value", MustCard(RankJack, SuitSpades), 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanPlaceCard(tt.card, tt.slot); got != tt.want {
				t.Errorf("CanPlaceCard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateMove(t *testing.T) {
	state := twoPlayerState()

	tests := []struct {
		name     string
		playerID int
		card     Card
		slot     int
		ok       bool
		reason   string
	}{
		{"legal placement", 0, MustCard(RankFive, SuitClubs), 4, true, ""},
		{"wild into any face-down slot", 0, MustCard(RankKing, SuitClubs), 8, true, ""},
		{"not your turn", 1, MustCard(RankFive, SuitClubs), 4, false, "not your turn"},
		{"unknown player", 9, MustCard(RankFive, SuitClubs), 4, false, "player not found"},
		{"slot out of range", 0, MustCard(RankFive, SuitClubs), 12, false, "invalid slot"},
		{"value mismatch", 0, MustCard(RankFive, SuitClubs), 0, false, "card does not match slot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := ValidateMove(state, tt.playerID, tt.card, tt.slot)
			if ok != tt.ok || reason != tt.reason {
				t.Errorf("ValidateMove() = (%v, %q), want (%v, %q)", ok, reason, tt.ok, tt.reason)
			}
		})
	}
}

func TestValidateMoveRejectsFilledSlot(t *testing.T) {
	state := twoPlayerState()
	state.Players[0].Hand[4] = state.Players[0].Hand[4].WithFaceUp(true)

	ok, reason := ValidateMove(state, 0, MustCard(RankFive, SuitClubs), 4)
	if ok || reason != "slot already filled" {
		t.Fatalf("expected filled-slot rejection, got (%v, %q)", ok, reason)
	}
}

func TestHasPlayerWon(t *testing.T) {
	player := Player{ID: 0, Hand: handOfTen(SuitSpades)}
	if HasPlayerWon(player) {
		t.Fatalf("face-down hand reported as won")
	}

	for i := range player.Hand {
		player.Hand[i] = player.Hand[i].WithFaceUp(true)
	}
	if !HasPlayerWon(player) {
		t.Fatalf("resolved hand not reported as won")
	}

	// A wild stands in for its slot.
	player.Hand[3] = MustCard(RankQueen, SuitClubs).WithFaceUp(true)
	if !HasPlayerWon(player) {
		t.Fatalf("wild in slot broke win detection")
	}

	// A mismatched numbered card does not.
	player.Hand[3] = MustCard(RankNine, SuitClubs).WithFaceUp(true)
	if HasPlayerWon(player) {
		t.Fatalf("mismatched card reported as won")
	}
}

func TestCalculateScoreBase(t *testing.T) {
	state := twoPlayerState()
	// Flip ace (1) and three (3) face up; dice roll 4, multiplier 1.
	state.Players[0].Hand[0] = state.Players[0].Hand[0].WithFaceUp(true)
	state.Players[0].Hand[2] = state.Players[0].Hand[2].WithFaceUp(true)
	state.DiceRoll = 4

	if got := CalculateScore(state, 0); got != 1+3+4 {
		t.Fatalf("CalculateScore() = %d, want %d", got, 8)
	}
}

func TestCalculateScoreCardMastery(t *testing.T) {
	state := twoPlayerState()
	state.Players[0].Hand[0] = state.Players[0].Hand[0].WithFaceUp(true)
	state.Players[0].Hand[2] = state.Players[0].Hand[2].WithFaceUp(true)

	prog := NewProgress(0)
	prog.UnlockedSkills = map[string]bool{SkillCardMastery: true}
	state.Progression = state.Progression.WithProgress(prog)

	// Two face-up numbered cards earn +1 each.
	if got := CalculateScore(state, 0); got != 1+3+2 {
		t.Fatalf("CalculateScore() = %d, want %d", got, 6)
	}
}

func TestCalculateScoreWildCardMaster(t *testing.T) {
	state := twoPlayerState()
	// A wild queen stands in slot 2 next to a face-up ace.
	state.Players[0].Hand[0] = state.Players[0].Hand[0].WithFaceUp(true)
	state.Players[0].Hand[2] = MustCard(RankQueen, SuitClubs).WithFaceUp(true)

	base := CalculateScore(state, 0)

	prog := NewProgress(0)
	prog.UnlockedSkills = map[string]bool{SkillWildCardMaster: true}
	state.Progression = state.Progression.WithProgress(prog)

	if got := CalculateScore(state, 0); got != base+2 {
		t.Fatalf("CalculateScore() = %d, want %d (+2 for the face-up wild)", got, base+2)
	}
}

func TestCalculateScoreEffects(t *testing.T) {
	state := twoPlayerState()
	state.Players[0].Hand[4] = state.Players[0].Hand[4].WithFaceUp(true) // value 5

	state.Effects = []ActiveEffect{
		{SkillID: "boost", PlayerID: 0, Type: EffectDoublePoints, Magnitude: 2, Duration: 2, RemainingTurns: 2},
	}
	if got := CalculateScore(state, 0); got != 10 {
		t.Fatalf("double points score = %d, want 10", got)
	}

	// Effects only apply to their owner.
	state.Players[1].Hand[4] = state.Players[1].Hand[4].WithFaceUp(true)
	state.CurrentPlayerIndex = 1
	if got := CalculateScore(state, 1); got != 5 {
		t.Fatalf("opponent score = %d, want 5", got)
	}
}

func TestCalculateScorePurity(t *testing.T) {
	state := twoPlayerState()
	state.Players[0].Hand[1] = state.Players[0].Hand[1].WithFaceUp(true)
	state.DiceRoll = 3

	first := CalculateScore(state, 0)
	for i := 0; i < 5; i++ {
		if got := CalculateScore(state, 0); got != first {
			t.Fatalf("score drifted: %d then %d", first, got)
		}
	}
}

func TestRoundMultiplier(t *testing.T) {
	faceUp := func(hand []Card, n int) []Card {
		out := append([]Card(nil), hand...)
		for i := 0; i < n; i++ {
			out[i] = out[i].WithFaceUp(true)
		}
		return out
	}

	tests := []struct {
		name   string
		player Player
		winner bool
		want   int
	}{
		{"winner uses final reveal slot", Player{Hand: handOfTen(SuitSpades), LastFlippedSlot: 4}, true, 5},
		{"winner without a recorded reveal", Player{Hand: handOfTen(SuitSpades), LastFlippedSlot: -1}, true, HandSize},
		{"loser counts face-up cards", Player{Hand: faceUp(handOfTen(SuitHearts), 3), LastFlippedSlot: 2}, false, 3},
		{"loser with nothing showing", Player{Hand: handOfTen(SuitHearts), LastFlippedSlot: -1}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundMultiplier(tt.player, tt.winner); got != tt.want {
				t.Errorf("RoundMultiplier() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculatePenalties(t *testing.T) {
	state := twoPlayerState()
	hand := state.Players[0].Hand
	// Face-down king, queen, jack in the top slots.
	hand[7] = MustCard(RankJack, SuitClubs)
	hand[8] = MustCard(RankQueen, SuitClubs)
	hand[9] = MustCard(RankKing, SuitClubs)

	if got := CalculatePenalties(state, 0); got != 1+2+3 {
		t.Fatalf("CalculatePenalties() = %d, want 6", got)
	}

	// Penalty-reducing abilities each shave one point off their rank.
	prog := NewProgress(0)
	prog.UnlockedAbilities = map[string]bool{AbilityKingsMercy: true, AbilityJacksFavor: true}
	state.Progression = state.Progression.WithProgress(prog)
	if got := CalculatePenalties(state, 0); got != 0+2+2 {
		t.Fatalf("reduced penalties = %d, want 4", got)
	}

	// Immunity zeroes penalties outright.
	state.Flags.ImmuneToPenalties = true
	if got := CalculatePenalties(state, 0); got != 0 {
		t.Fatalf("immune penalties = %d, want 0", got)
	}
}

func TestCalculatePenaltiesFloor(t *testing.T) {
	state := twoPlayerState()
	// Only numbered face-down cards, plus a shield effect pushing below zero.
	state.Effects = []ActiveEffect{
		{SkillID: "shield", PlayerID: 0, Type: EffectShield, Magnitude: 1, Duration: 1, RemainingTurns: 1},
	}
	if got := CalculatePenalties(state, 0); got != 0 {
		t.Fatalf("penalties went negative: %d", got)
	}
}

func TestNextPlayerIndexSkipsFinished(t *testing.T) {
	state := &GameState{
		Players: []Player{
			{ID: 0}, {ID: 1, Finished: true}, {ID: 2},
		},
		CurrentPlayerIndex: 0,
	}
	if got := NextPlayerIndex(state); got != 2 {
		t.Fatalf("NextPlayerIndex() = %d, want 2", got)
	}
}

func TestReshuffleDiscardIntoDeck(t *testing.T) {
	deck := NewDeck()
	state := &GameState{
		Deck:    deck[:5],
		Discard: deck[5:12],
	}
	if !NeedsReshuffle(state) {
		t.Fatalf("short deck not flagged for reshuffle")
	}

	top := state.Discard[len(state.Discard)-1]
	out := ReshuffleDiscardIntoDeck(state, rand.New(rand.NewSource(3)))

	if len(out.Discard) != 1 || out.Discard[0].ID() != top.ID() {
		t.Fatalf("top discard not preserved: %+v", out.Discard)
	}
	if len(out.Deck) != 11 {
		t.Fatalf("expected 11 cards in deck, got %d", len(out.Deck))
	}
	// Original state untouched.
	if len(state.Deck) != 5 || len(state.Discard) != 7 {
		t.Fatalf("reshuffle mutated its input")
	}
}
