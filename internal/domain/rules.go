package domain

import "math/rand"

// Trash rules: each player races to fill slots 0..9 with Ace through 10 in
// order. Draw from deck or discard, place the drawn card in its matching slot
// (Ace = slot 0, 2 = slot 1, ...), discard what doesn't fit. Jack, Queen and
// King are wild and fill any face-down slot.

const (
	// HandSize is the number of slots per player in a standard round.
	HandSize = 10
	// DiceSides is the maximum face value of the score die.
	DiceSides = 6
	// ReshuffleThreshold is the deck size below which the discard pile is
	// folded back into the deck.
	ReshuffleThreshold = 10
)

// Tree node ids consulted by the scoring and penalty paths.
const (
	SkillCardMastery    = "card_mastery"
	SkillLoadedDice     = "loaded_dice"
	SkillChainCombo     = "chain_combo"
	SkillWildCardMaster = "wild_card_master"

	AbilityJacksFavor       = "jacks_favor"
	AbilityQueensGrace      = "queens_grace"
	AbilityKingsMercy       = "kings_mercy"
	AbilityRoyalShield      = "royal_shield"
	AbilityFaceCardImmunity = "face_card_immunity"
)

// BasePenalty returns the per-card penalty for a face-down card of the given
// rank at scoring time. Numbered cards and aces carry no penalty.
func BasePenalty(rank Rank) int {
	switch rank {
	case RankKing:
		return 3
	case RankQueen:
		return 2
	case RankJack:
		return 1
	default:
		return 0
	}
}

// CanPlaceCard reports whether the card's value matches the slot position
// (Ace fits slot 0, 2 fits slot 1, and so on).
func CanPlaceCard(card Card, slotIndex int) bool {
	if slotIndex < 0 || slotIndex >= HandSize {
		return false
	}
	return card.Value == slotIndex+1
}

// ValidSlotsForWild returns the face-down slot indices a wild card may fill.
func ValidSlotsForWild(player Player) []int {
	slots := make([]int, 0, len(player.Hand))
	for i, c := range player.Hand {
		if !c.FaceUp {
			slots = append(slots, i)
		}
	}
	return slots
}

// ValidateMove checks placement legality for the acting player. The returned
// reason is empty when the move is legal.
func ValidateMove(state *GameState, playerID int, card Card, targetSlot int) (bool, string) {
	player := state.PlayerByID(playerID)
	if player == nil {
		return false, "player not found"
	}
	if state.Players[state.CurrentPlayerIndex].ID != playerID {
		return false, "not your turn"
	}
	if targetSlot < 0 || targetSlot >= len(player.Hand) {
		return false, "invalid slot"
	}
	if player.Hand[targetSlot].FaceUp {
		return false, "slot already filled"
	}
	if !card.IsWild() && !CanPlaceCard(card, targetSlot) {
		return false, "card does not match slot"
	}
	return true, ""
}

// HasPlayerWon reports whether every slot holds a face-up card matching its
// position. Wilds stand in for the slot they occupy.
func HasPlayerWon(player Player) bool {
	if len(player.Hand) == 0 {
		return false
	}
	for i, c := range player.Hand {
		if !c.FaceUp {
			return false
		}
		if !c.IsWild() && c.Value != i+1 {
			return false
		}
	}
	return true
}

// RoundWinner returns the first player whose hand is fully resolved.
func RoundWinner(state *GameState) (int, bool) {
	for _, p := range state.Players {
		if HasPlayerWon(p) {
			return p.ID, true
		}
	}
	return 0, false
}

// HighestScorer returns the player id with the highest cumulative score.
// Ties go to the earlier seat.
func HighestScorer(state *GameState) (int, bool) {
	if len(state.Players) == 0 {
		return 0, false
	}
	best := state.Players[0]
	for _, p := range state.Players[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best.ID, true
}

// NextPlayerIndex advances modulo player count, skipping finished players.
func NextPlayerIndex(state *GameState) int {
	n := len(state.Players)
	if n == 0 {
		return 0
	}
	next := (state.CurrentPlayerIndex + 1) % n
	for attempts := 0; state.Players[next].Finished && attempts < n; attempts++ {
		next = (next + 1) % n
	}
	return next
}

// CalculateScore sums the player's face-up card values, layers skill bonuses
// and active score effects, then adds the dice term. Pure: identical inputs
// always yield identical outputs.
func CalculateScore(state *GameState, playerID int) int {
	player := state.PlayerByID(playerID)
	if player == nil {
		return 0
	}
	prog := state.Progression.ProgressFor(playerID)

	score := 0
	for _, c := range player.Hand {
		if c.FaceUp {
			score += c.Value
		}
	}

	// Card Mastery: +1 per face-up numbered card.
	if prog.HasSkill(SkillCardMastery) {
		for _, c := range player.Hand {
			if c.FaceUp && c.IsNumbered() {
				score++
			}
		}
	}
	// Wild Card Master: +2 per face-up wild.
	if prog.HasSkill(SkillWildCardMaster) {
		for _, c := range player.Hand {
			if c.FaceUp && c.IsWild() {
				score += 2
			}
		}
	}
	// Marked cards: +5 per bonus card, doubled cards add their value again.
	for _, c := range player.Hand {
		if !c.FaceUp {
			continue
		}
		if state.Flags.BonusCards[c.ID()] {
			score += 5
		}
		if state.Flags.DoubledCards[c.ID()] {
			score += c.Value
		}
	}

	if HasEffect(state.Effects, playerID, EffectScoreMultiplier) {
		score = int(float64(score) * EffectValue(state.Effects, playerID, EffectScoreMultiplier))
	}
	if HasEffect(state.Effects, playerID, EffectDoublePoints) {
		score *= 2
	}

	return score + diceTerm(state, prog)
}

func diceTerm(state *GameState, prog Progress) int {
	roll := state.DiceRoll
	if prog.HasSkill(SkillLoadedDice) {
		roll++
	}
	if prog.HasSkill(SkillChainCombo) && state.FlippedThisRound >= 3 {
		roll += 3
	}
	if roll > DiceSides {
		roll = DiceSides
	}
	return roll * state.DiceMultiplier
}

// RoundMultiplier returns the dice multiplier a player carries into
// settlement. The winner multiplies by the slot number of their final reveal,
// a full hand when none was recorded; everyone else multiplies by their
// face-up count.
func RoundMultiplier(player Player, isWinner bool) int {
	if isWinner {
		if player.LastFlippedSlot < 0 {
			return HandSize
		}
		return player.LastFlippedSlot + 1
	}
	faceUp := 0
	for _, c := range player.Hand {
		if c.FaceUp {
			faceUp++
		}
	}
	return faceUp
}

// CalculatePenalties sums per-rank penalties for the player's face-down cards,
// applies unlocked penalty reductions and the shield effect, and floors the
// result at zero. A penalty-immunity flag zeroes it outright. Pure.
func CalculatePenalties(state *GameState, playerID int) int {
	player := state.PlayerByID(playerID)
	if player == nil {
		return 0
	}
	prog := state.Progression.ProgressFor(playerID)

	penalties := 0
	for _, c := range player.Hand {
		if c.FaceUp || state.Flags.ProtectedCards[c.ID()] {
			continue
		}
		penalties += rankPenalty(c.Rank, prog)
	}

	if HasEffect(state.Effects, playerID, EffectShield) {
		penalties--
	}
	if state.Flags.ImmuneToPenalties || prog.HasAbility(AbilityFaceCardImmunity) {
		penalties = 0
	}
	if penalties < 0 {
		penalties = 0
	}
	return penalties
}

func rankPenalty(rank Rank, prog Progress) int {
	p := BasePenalty(rank)
	if p == 0 {
		return 0
	}
	switch rank {
	case RankKing:
		if prog.HasAbility(AbilityKingsMercy) {
			p--
		}
	case RankQueen:
		if prog.HasAbility(AbilityQueensGrace) {
			p--
		}
	case RankJack:
		if prog.HasAbility(AbilityJacksFavor) {
			p--
		}
	}
	if prog.HasAbility(AbilityRoyalShield) {
		p--
	}
	if p < 0 {
		p = 0
	}
	return p
}

// NeedsReshuffle reports whether the deck has run low enough to fold the
// discard pile back in.
func NeedsReshuffle(state *GameState) bool {
	return len(state.Deck) < ReshuffleThreshold
}

// ReshuffleDiscardIntoDeck shuffles every discard except the top card back
// into the deck. Returns the state unchanged when there is nothing to fold.
func ReshuffleDiscardIntoDeck(state *GameState, rng *rand.Rand) *GameState {
	if len(state.Discard) <= 1 {
		return state
	}
	out := state.Clone()
	top := out.Discard[len(out.Discard)-1]
	rest := out.Discard[:len(out.Discard)-1]
	out.Deck = ShuffleDeck(append(out.Deck, rest...), rng)
	out.Discard = []Card{top}
	return out
}
