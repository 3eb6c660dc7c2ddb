package brain

import (
	"trashpiles/internal/domain"
)

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown   CardStatus = iota // nothing observed yet
	StatusMine                        // dealt to the bot's own hand
	StatusDiscarded                   // seen on the discard pile
	StatusPlaced                      // locked face-up in someone's layout
)

// SeenCards stores the bot's private view of where cards have surfaced. Keys
// are card ids; cards never observed are absent.
type SeenCards struct {
	status map[string]CardStatus
}

// NewSeenCards initializes a fresh memory state.
func NewSeenCards() *SeenCards {
	return &SeenCards{status: make(map[string]CardStatus)}
}

// Reset clears the memory for a new game.
func (m *SeenCards) Reset() {
	m.status = make(map[string]CardStatus)
}

// MarkMine records a card dealt into the bot's hand.
func (m *SeenCards) MarkMine(card domain.Card) {
	m.status[card.ID()] = StatusMine
}

// MarkDiscarded records a card seen on the discard pile.
func (m *SeenCards) MarkDiscarded(card domain.Card) {
	m.status[card.ID()] = StatusDiscarded
}

// MarkPlaced records a card locked face-up into a layout. Placed beats any
// earlier sighting: a card lifted from the discard pile into a layout is
// gone for good.
func (m *SeenCards) MarkPlaced(card domain.Card) {
	m.status[card.ID()] = StatusPlaced
}

// Status returns what is known about the card.
func (m *SeenCards) Status(cardID string) CardStatus {
	return m.status[cardID]
}

// PlacedCopies counts how many of the four copies of a value are locked into
// layouts. A slot whose value has all copies placed can only ever be filled
// by a wild.
func (m *SeenCards) PlacedCopies(value int) int {
	count := 0
	for _, suit := range domain.Suits {
		rank := domain.Ranks[value-1]
		if m.status[domain.MustCard(rank, suit).ID()] == StatusPlaced {
			count++
		}
	}
	return count
}
