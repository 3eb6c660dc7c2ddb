package internal

import "trashpiles/internal/domain"

// NaturalSlot returns the face-down slot a numbered card fills, or -1 when
// the card is wild, the slot is out of range, or the slot is already shown.
func NaturalSlot(hand []domain.Card, card domain.Card) int {
	if card.IsWild() {
		return -1
	}
	slot := card.Value - 1
	if slot < 0 || slot >= len(hand) {
		return -1
	}
	if hand[slot].FaceUp {
		return -1
	}
	return slot
}

// FaceDownSlots returns the open slot indices in ascending order.
func FaceDownSlots(hand []domain.Card) []int {
	slots := make([]int, 0, len(hand))
	for i, c := range hand {
		if !c.FaceUp {
			slots = append(slots, i)
		}
	}
	return slots
}

// Fits reports whether the card can be placed anywhere in the hand.
func Fits(hand []domain.Card, card domain.Card) bool {
	if card.IsWild() {
		return len(FaceDownSlots(hand)) > 0
	}
	return NaturalSlot(hand, card) >= 0
}

// HandComplete reports whether every slot is shown.
func HandComplete(hand []domain.Card) bool {
	for _, c := range hand {
		if !c.FaceUp {
			return false
		}
	}
	return len(hand) > 0
}
