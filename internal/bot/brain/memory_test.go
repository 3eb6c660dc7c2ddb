package brain

import (
	"testing"

	"trashpiles/internal/domain"
)

func TestSeenCardsStatusTransitions(t *testing.T) {
	m := NewSeenCards()
	card := domain.MustCard(domain.RankFour, domain.SuitHearts)

	if m.Status(card.ID()) != StatusUnknown {
		t.Fatalf("fresh memory knows %s", card.ID())
	}
	m.MarkDiscarded(card)
	if m.Status(card.ID()) != StatusDiscarded {
		t.Errorf("status after discard = %v", m.Status(card.ID()))
	}
	// A card lifted off the discard pile into a layout is placed for good.
	m.MarkPlaced(card)
	if m.Status(card.ID()) != StatusPlaced {
		t.Errorf("status after placement = %v", m.Status(card.ID()))
	}

	m.Reset()
	if m.Status(card.ID()) != StatusUnknown {
		t.Errorf("reset did not clear memory")
	}
}

func TestPlacedCopies(t *testing.T) {
	m := NewSeenCards()
	m.MarkPlaced(domain.MustCard(domain.RankSeven, domain.SuitSpades))
	m.MarkPlaced(domain.MustCard(domain.RankSeven, domain.SuitClubs))
	m.MarkDiscarded(domain.MustCard(domain.RankSeven, domain.SuitHearts))

	if got := m.PlacedCopies(7); got != 2 {
		t.Errorf("PlacedCopies(7) = %d, want 2 (discarded copies can return)", got)
	}
	if got := m.PlacedCopies(3); got != 0 {
		t.Errorf("PlacedCopies(3) = %d, want 0", got)
	}
}
