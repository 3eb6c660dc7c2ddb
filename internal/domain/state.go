package domain

// Phase represents the lifecycle stage of a Trash match.
type Phase string

const (
	// PhaseSetup is the pre-game state after initialization, before dealing.
	PhaseSetup Phase = "setup"
	// PhasePlaying is the active game state where cards are drawn and placed.
	PhasePlaying Phase = "playing"
	// PhaseGameOver is the state after a game concludes. Reset returns to setup.
	PhaseGameOver Phase = "game_over"
)

// Player holds match state for one participant. Hand is a fixed slot array;
// slot indices are stable addresses used by place/flip commands.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Hand     []Card `json:"hand"`
	Score    int    `json:"score"`
	IsAI     bool   `json:"isAi"`
	Finished bool   `json:"finished"`
	// LastFlippedSlot is the slot index of this player's most recent reveal,
	// -1 before the first one. It feeds the winner's settlement multiplier.
	LastFlippedSlot int `json:"lastFlippedSlot"`
}

// Flags are short-lived modifiers set by abilities and cleared by the engine.
// Card sets are keyed by card id.
type Flags struct {
	SkipDrawPhase     bool            `json:"skipDrawPhase"`
	ImmuneToPenalties bool            `json:"immuneToPenalties"`
	NextAbilityFree   bool            `json:"nextAbilityFree"`
	BonusCards        map[string]bool `json:"bonusCards,omitempty"`
	DoubledCards      map[string]bool `json:"doubledCards,omitempty"`
	ProtectedCards    map[string]bool `json:"protectedCards,omitempty"`
}

// GameState is the single authoritative snapshot of a match. Handlers never
// mutate it in place; they clone, modify the clone, and return it.
//
// A card id appears in exactly one of deck, discard, or one player's hand.
type GameState struct {
	Phase              Phase    `json:"phase"`
	Players            []Player `json:"players"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`

	// Deck head (index 0) is the next draw; discard tail is the most recent.
	Deck    []Card `json:"deck"`
	Discard []Card `json:"discard"`

	Round    int `json:"round"`
	DiceRoll int `json:"diceRoll"`
	// DiceMultiplier scales the dice term in CalculateScore. It stays at 1
	// during play; settlement sets it per player via RoundMultiplier.
	DiceMultiplier   int `json:"diceMultiplier"`
	FlippedThisRound int `json:"flippedThisRound"`

	InputLocked bool  `json:"inputLocked"`
	Flags       Flags `json:"flags"`

	Effects     []ActiveEffect    `json:"effects,omitempty"`
	Progression SkillAbilityState `json:"progression"`
	Challenges  ChallengeState    `json:"challenges"`
}

// PlayerByID returns a pointer into the state's player slice, or nil.
// Callers must only use it on a clone they own.
func (s *GameState) PlayerByID(id int) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state. Every handler works on a clone so
// the published snapshot stays immutable.
func (s *GameState) Clone() *GameState {
	out := *s

	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		cp := p
		cp.Hand = append([]Card(nil), p.Hand...)
		out.Players[i] = cp
	}
	out.Deck = append([]Card(nil), s.Deck...)
	out.Discard = append([]Card(nil), s.Discard...)
	out.Effects = append([]ActiveEffect(nil), s.Effects...)

	out.Flags.BonusCards = cloneSet(s.Flags.BonusCards)
	out.Flags.DoubledCards = cloneSet(s.Flags.DoubledCards)
	out.Flags.ProtectedCards = cloneSet(s.Flags.ProtectedCards)

	out.Progression = s.Progression.Clone()
	out.Challenges = s.Challenges.Clone()
	return &out
}

// AllCardIDs returns the multiset of card ids across deck, discard and all
// hands. Conservation tests compare it against a full deck.
func (s *GameState) AllCardIDs() []string {
	ids := make([]string, 0, DeckSize)
	for _, c := range s.Deck {
		ids = append(ids, c.ID())
	}
	for _, c := range s.Discard {
		ids = append(ids, c.ID())
	}
	for _, p := range s.Players {
		for _, c := range p.Hand {
			ids = append(ids, c.ID())
		}
	}
	return ids
}

func cloneSet(in map[string]bool) map[string]bool {
	if in == nil {
		return nil
	}
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
