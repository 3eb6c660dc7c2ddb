package domain

import "fmt"

// Suit identifies one of the four card suits.
type Suit string

const (
	SuitSpades   Suit = "spades"
	SuitHearts   Suit = "hearts"
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
)

// Suits lists all suits in deck-construction order.
var Suits = []Suit{SuitSpades, SuitHearts, SuitClubs, SuitDiamonds}

// Rank identifies a card rank by name.
type Rank string

const (
	RankAce   Rank = "ace"
	RankTwo   Rank = "two"
	RankThree Rank = "three"
	RankFour  Rank = "four"
	RankFive  Rank = "five"
	RankSix   Rank = "six"
	RankSeven Rank = "seven"
	RankEight Rank = "eight"
	RankNine  Rank = "nine"
	RankTen   Rank = "ten"
	RankJack  Rank = "jack"
	RankQueen Rank = "queen"
	RankKing  Rank = "king"
)

// Ranks lists all ranks in ascending value order.
var Ranks = []Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix,
	RankSeven, RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
}

// rankValues maps each rank to its numeric value (Ace=1 .. King=13).
var rankValues = map[Rank]int{
	RankAce: 1, RankTwo: 2, RankThree: 3, RankFour: 4, RankFive: 5,
	RankSix: 6, RankSeven: 7, RankEight: 8, RankNine: 9, RankTen: 10,
	RankJack: 11, RankQueen: 12, RankKing: 13,
}

// Card is a single playing card. Card values are immutable: state transitions
// produce a new Card via WithFaceUp rather than mutating in place.
type Card struct {
	Rank   Rank `json:"rank"`
	Suit   Suit `json:"suit"`
	Value  int  `json:"value"`
	FaceUp bool `json:"faceUp"`
}

// NewCard builds a card of the given rank and suit, face down.
func NewCard(rank Rank, suit Suit) (Card, error) {
	value, ok := rankValues[rank]
	if !ok {
		return Card{}, fmt.Errorf("unknown rank: %s", rank)
	}
	return Card{Rank: rank, Suit: suit, Value: value}, nil
}

// MustCard builds a card and panics on an unknown rank. Intended for tests
// and static tree definitions only.
func MustCard(rank Rank, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

// ID returns the stable card identity, e.g. "ace_of_spades".
func (c Card) ID() string {
	return string(c.Rank) + "_of_" + string(c.Suit)
}

// WithFaceUp returns a copy of the card with the given orientation.
func (c Card) WithFaceUp(faceUp bool) Card {
	c.FaceUp = faceUp
	return c
}

// IsNumbered reports whether the card is Ace through Ten.
func (c Card) IsNumbered() bool {
	return c.Value >= 1 && c.Value <= 10
}

// IsWild reports whether the card is a face card (Jack, Queen, King).
// Wild cards may be placed into any face-down slot.
func (c Card) IsWild() bool {
	return c.Value >= 11 && c.Value <= 13
}
