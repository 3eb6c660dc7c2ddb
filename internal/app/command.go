package app

import (
	"trashpiles/internal/domain"
	"trashpiles/internal/skills"
)

// Family groups commands by the handler that owns them.
type Family string

const (
	FamilyCard      Family = "card"
	FamilyMatch     Family = "match"
	FamilyTurn      Family = "turn"
	FamilySkill     Family = "skill"
	FamilyChallenge Family = "challenge"
)

// Command is a requested state change submitted by a player, bot or system
// actor. The set of commands is closed: every variant lives in this file and
// the dispatcher routes on Family.
type Command interface {
	Family() Family
	// Actor is the acting player id. System commands report -1.
	Actor() int
	// Name labels the command on InvalidMove events.
	Name() string
}

// DrawSource selects which pile a draw reveals from.
type DrawSource string

const (
	SourceDeck    DrawSource = "deck"
	SourceDiscard DrawSource = "discard"
)

// Card family.

type DrawCommand struct {
	PlayerID int        `json:"playerId"`
	Source   DrawSource `json:"source"`
}

func (DrawCommand) Family() Family { return FamilyCard }
func (c DrawCommand) Actor() int   { return c.PlayerID }
func (DrawCommand) Name() string   { return "draw" }

type PlaceCommand struct {
	PlayerID  int    `json:"playerId"`
	CardID    string `json:"cardId"`
	SlotIndex int    `json:"slotIndex"`
}

func (PlaceCommand) Family() Family { return FamilyCard }
func (c PlaceCommand) Actor() int   { return c.PlayerID }
func (PlaceCommand) Name() string   { return "place" }

type DiscardCommand struct {
	PlayerID int    `json:"playerId"`
	CardID   string `json:"cardId"`
}

func (DiscardCommand) Family() Family { return FamilyCard }
func (c DiscardCommand) Actor() int   { return c.PlayerID }
func (DiscardCommand) Name() string   { return "discard" }

type FlipCommand struct {
	PlayerID  int `json:"playerId"`
	SlotIndex int `json:"slotIndex"`
}

func (FlipCommand) Family() Family { return FamilyCard }
func (c FlipCommand) Actor() int   { return c.PlayerID }
func (FlipCommand) Name() string   { return "flip" }

// Match family.

// PlayerSpec describes one participant at initialization time. Progress and
// Challenges, when present, restore persisted progression for the seat instead
// of the fresh-player defaults.
type PlayerSpec struct {
	Name       string                   `json:"name"`
	IsAI       bool                     `json:"isAi"`
	Progress   *domain.Progress         `json:"progress,omitempty"`
	Challenges *domain.PlayerChallenges `json:"challenges,omitempty"`
}

type InitializeCommand struct {
	Players []PlayerSpec `json:"players"`
}

func (InitializeCommand) Family() Family { return FamilyMatch }
func (InitializeCommand) Actor() int     { return -1 }
func (InitializeCommand) Name() string   { return "initialize" }

type StartCommand struct{}

func (StartCommand) Family() Family { return FamilyMatch }
func (StartCommand) Actor() int     { return -1 }
func (StartCommand) Name() string   { return "start" }

// EndReason explains why a match ended.
type EndReason string

const (
	EndCompleted EndReason = "completed"
	EndAbandoned EndReason = "abandoned"
)

type EndCommand struct {
	Reason EndReason `json:"reason"`
}

func (EndCommand) Family() Family { return FamilyMatch }
func (EndCommand) Actor() int     { return -1 }
func (EndCommand) Name() string   { return "end" }

type ResetCommand struct{}

func (ResetCommand) Family() Family { return FamilyMatch }
func (ResetCommand) Actor() int     { return -1 }
func (ResetCommand) Name() string   { return "reset" }

type PauseCommand struct {
	PlayerID int `json:"playerId"`
}

func (PauseCommand) Family() Family { return FamilyMatch }
func (c PauseCommand) Actor() int   { return c.PlayerID }
func (PauseCommand) Name() string   { return "pause" }

type ResumeCommand struct {
	PlayerID int `json:"playerId"`
}

func (ResumeCommand) Family() Family { return FamilyMatch }
func (c ResumeCommand) Actor() int   { return c.PlayerID }
func (ResumeCommand) Name() string   { return "resume" }

// SaveCommand and LoadCommand are boundary stubs: persistence is owned by an
// external collaborator, the engine only defines the seam.
type SaveCommand struct{}

func (SaveCommand) Family() Family { return FamilyMatch }
func (SaveCommand) Actor() int     { return -1 }
func (SaveCommand) Name() string   { return "save" }

type LoadCommand struct{}

func (LoadCommand) Family() Family { return FamilyMatch }
func (LoadCommand) Actor() int     { return -1 }
func (LoadCommand) Name() string   { return "load" }

// RequestAIActionCommand asks the AI collaborator for the given player's next
// move. The engine itself treats it as a no-op.
type RequestAIActionCommand struct {
	PlayerID int `json:"playerId"`
}

func (RequestAIActionCommand) Family() Family { return FamilyMatch }
func (c RequestAIActionCommand) Actor() int   { return c.PlayerID }
func (RequestAIActionCommand) Name() string   { return "request_ai_action" }

// Turn family.

type EndTurnCommand struct {
	PlayerID int `json:"playerId"`
}

func (EndTurnCommand) Family() Family { return FamilyTurn }
func (c EndTurnCommand) Actor() int   { return c.PlayerID }
func (EndTurnCommand) Name() string   { return "end_turn" }

type SkipTurnCommand struct {
	PlayerID int `json:"playerId"`
}

func (SkipTurnCommand) Family() Family { return FamilyTurn }
func (c SkipTurnCommand) Actor() int   { return c.PlayerID }
func (SkipTurnCommand) Name() string   { return "skip_turn" }

// Skill family.

type UnlockNodeCommand struct {
	PlayerID int              `json:"playerId"`
	NodeID   string           `json:"nodeId"`
	Kind     domain.PointKind `json:"kind"`
}

func (UnlockNodeCommand) Family() Family { return FamilySkill }
func (c UnlockNodeCommand) Actor() int   { return c.PlayerID }
func (UnlockNodeCommand) Name() string   { return "unlock_node" }

type UseAbilityCommand struct {
	PlayerID  int           `json:"playerId"`
	AbilityID string        `json:"abilityId"`
	Target    skills.Target `json:"target"`
}

func (UseAbilityCommand) Family() Family { return FamilySkill }
func (c UseAbilityCommand) Actor() int   { return c.PlayerID }
func (UseAbilityCommand) Name() string   { return "use_ability" }

// Challenge family.

type ViewChallengesCommand struct {
	PlayerID int `json:"playerId"`
}

func (ViewChallengesCommand) Family() Family { return FamilyChallenge }
func (c ViewChallengesCommand) Actor() int   { return c.PlayerID }
func (ViewChallengesCommand) Name() string   { return "view_challenges" }

type CheckLevelUpCommand struct {
	PlayerID int `json:"playerId"`
}

func (CheckLevelUpCommand) Family() Family { return FamilyChallenge }
func (c CheckLevelUpCommand) Actor() int   { return c.PlayerID }
func (CheckLevelUpCommand) Name() string   { return "check_level_up" }

type ClaimChallengeRewardsCommand struct {
	PlayerID    int    `json:"playerId"`
	ChallengeID string `json:"challengeId"`
}

func (ClaimChallengeRewardsCommand) Family() Family { return FamilyChallenge }
func (c ClaimChallengeRewardsCommand) Actor() int   { return c.PlayerID }
func (ClaimChallengeRewardsCommand) Name() string   { return "claim_challenge_rewards" }
