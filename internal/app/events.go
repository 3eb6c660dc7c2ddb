package app

import (
	"github.com/google/uuid"

	"trashpiles/internal/domain"
)

// EventKind identifies emitted engine events.
type EventKind string

const (
	EventCardDrawn     EventKind = "card_drawn"
	EventCardPlaced    EventKind = "card_placed"
	EventCardDiscarded EventKind = "card_discarded"
	EventCardFlipped   EventKind = "card_flipped"
	EventCardDealt     EventKind = "card_dealt"

	EventGameInitialized EventKind = "game_initialized"
	EventGameStarted     EventKind = "game_started"
	EventGameOver        EventKind = "game_over"
	EventGameReset       EventKind = "game_reset"
	EventGamePaused      EventKind = "game_paused"
	EventGameResumed     EventKind = "game_resumed"
	EventMatchCompleted  EventKind = "match_completed"

	EventTurnStarted EventKind = "turn_started"
	EventTurnEnded   EventKind = "turn_ended"
	EventDiceRolled  EventKind = "dice_rolled"

	EventInvalidMove EventKind = "invalid_move"

	EventNodeUnlocked EventKind = "node_unlocked"
	EventAbilityUsed  EventKind = "ability_used"
	EventPointsEarned EventKind = "points_earned"
	EventLevelUp      EventKind = "level_up"

	EventChallengesViewed         EventKind = "challenges_viewed"
	EventChallengeProgressUpdated EventKind = "challenge_progress_updated"
	EventChallengeCompleted       EventKind = "challenge_completed"
	EventAllChallengesCompleted   EventKind = "all_challenges_completed"
	EventLevelUnlocked            EventKind = "level_unlocked"
)

// Event is an ordered, typed notification describing what actually happened,
// including rejections. Events are the only channel through which external
// collaborators observe the engine.
type Event struct {
	ID         string    `json:"id"`
	Kind       EventKind `json:"kind"`
	Payload    any       `json:"payload"`
	Recipients []int     `json:"recipients,omitempty"` // player ids; empty means broadcast
}

// NewEvent builds a broadcast event with a generated id.
func NewEvent(kind EventKind, payload any) Event {
	return Event{ID: uuid.NewString(), Kind: kind, Payload: payload}
}

// NewEventFor builds an event targeted at specific players.
func NewEventFor(kind EventKind, payload any, recipients ...int) Event {
	e := NewEvent(kind, payload)
	e.Recipients = recipients
	return e
}

type CardDrawnPayload struct {
	PlayerID int         `json:"playerId"`
	Card     domain.Card `json:"card"`
	Source   DrawSource  `json:"source"`
}

type CardPlacedPayload struct {
	PlayerID  int          `json:"playerId"`
	Card      domain.Card  `json:"card"`
	SlotIndex int          `json:"slotIndex"`
	Replaced  *domain.Card `json:"replaced,omitempty"`
}

type CardDiscardedPayload struct {
	PlayerID int         `json:"playerId"`
	Card     domain.Card `json:"card"`
}

type CardFlippedPayload struct {
	PlayerID  int  `json:"playerId"`
	SlotIndex int  `json:"slotIndex"`
	FaceUp    bool `json:"faceUp"`
}

type CardDealtPayload struct {
	PlayerID  int         `json:"playerId"`
	SlotIndex int         `json:"slotIndex"`
	Card      domain.Card `json:"card"`
}

type GameInitializedPayload struct {
	Players []domain.Player `json:"players"`
}

type GameStartedPayload struct {
	Phase    domain.Phase `json:"phase"`
	HandSize int          `json:"handSize"`
}

type GameOverPayload struct {
	WinnerID int         `json:"winnerId"`
	Scores   map[int]int `json:"scores"`
	Reason   EndReason   `json:"reason"`
}

type MatchCompletedPayload struct {
	WinnerID  int `json:"winnerId"`
	Round     int `json:"round"`
	Match     int `json:"match"`
	Score     int `json:"score"`
	Penalties int `json:"penalties"`
}

type TurnStartedPayload struct {
	PlayerID   int `json:"playerId"`
	TurnNumber int `json:"turnNumber"`
}

type TurnEndedPayload struct {
	PlayerID int `json:"playerId"`
}

type DiceRolledPayload struct {
	PlayerID   int `json:"playerId"`
	Roll       int `json:"roll"`
	Multiplier int `json:"multiplier"`
}

// InvalidMovePayload is the universal rejection channel: handlers never raise
// a Go error for an expected validation failure.
type InvalidMovePayload struct {
	PlayerID        int    `json:"playerId"`
	Reason          string `json:"reason"`
	AttemptedAction string `json:"attemptedAction"`
}

type NodeUnlockedPayload struct {
	PlayerID int              `json:"playerId"`
	NodeID   string           `json:"nodeId"`
	Kind     domain.PointKind `json:"kind"`
	SP       int              `json:"sp"`
	AP       int              `json:"ap"`
}

type AbilityUsedPayload struct {
	PlayerID    int    `json:"playerId"`
	AbilityID   string `json:"abilityId"`
	Description string `json:"description"`
}

type PointsEarnedPayload struct {
	PlayerID int    `json:"playerId"`
	SP       int    `json:"sp"`
	AP       int    `json:"ap"`
	XP       int    `json:"xp"`
	Source   string `json:"source"`
}

type LevelUpPayload struct {
	PlayerID int `json:"playerId"`
	Level    int `json:"level"`
}

type ChallengesViewedPayload struct {
	PlayerID int                      `json:"playerId"`
	Set      domain.LevelChallengeSet `json:"set"`
}

type ChallengeProgressUpdatedPayload struct {
	PlayerID    int                      `json:"playerId"`
	ChallengeID string                   `json:"challengeId"`
	Progress    domain.ChallengeProgress `json:"progress"`
}

type ChallengeCompletedPayload struct {
	PlayerID    int    `json:"playerId"`
	ChallengeID string `json:"challengeId"`
	Name        string `json:"name"`
}

type AllChallengesCompletedPayload struct {
	PlayerID int `json:"playerId"`
	Level    int `json:"level"`
}

type LevelUnlockedPayload struct {
	PlayerID     int      `json:"playerId"`
	Level        int      `json:"level"`
	Achievements []string `json:"achievements"`
}
