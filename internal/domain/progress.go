package domain

// PointKind selects which point pool an unlock spends.
type PointKind string

const (
	PointSkill   PointKind = "skill"
	PointAbility PointKind = "ability"
)

// Progress tracks one player's progression: skill points (SP, never
// penalized), ability points (AP, reduced by face-down penalties), XP and the
// level derived from it, plus unlocked tree nodes. It is a value type; all
// updates go through pure functions in the skills package that return a new
// Progress.
//
// XP stays at zero until the player's first node purchase.
type Progress struct {
	PlayerID          int             `json:"playerId"`
	SP                int             `json:"sp"`
	AP                int             `json:"ap"`
	XP                int             `json:"xp"`
	Level             int             `json:"level"`
	UnlockedSkills    map[string]bool `json:"unlockedSkills,omitempty"`
	UnlockedAbilities map[string]bool `json:"unlockedAbilities,omitempty"`
	HasPurchased      bool            `json:"hasPurchased"`
}

// NewProgress returns the starting progression for a player.
func NewProgress(playerID int) Progress {
	return Progress{PlayerID: playerID, Level: 1}
}

// HasSkill reports whether the skill node is unlocked.
func (p Progress) HasSkill(nodeID string) bool { return p.UnlockedSkills[nodeID] }

// HasAbility reports whether the ability node is unlocked.
func (p Progress) HasAbility(nodeID string) bool { return p.UnlockedAbilities[nodeID] }

// Unlocked reports whether the node is unlocked in the pool for kind.
func (p Progress) Unlocked(nodeID string, kind PointKind) bool {
	if kind == PointSkill {
		return p.HasSkill(nodeID)
	}
	return p.HasAbility(nodeID)
}

// Points returns the balance of the pool for kind.
func (p Progress) Points(kind PointKind) int {
	if kind == PointSkill {
		return p.SP
	}
	return p.AP
}

func (p Progress) clone() Progress {
	p.UnlockedSkills = cloneSet(p.UnlockedSkills)
	p.UnlockedAbilities = cloneSet(p.UnlockedAbilities)
	return p
}

// SkillAbilityState is the progression sub-state embedded in GameState.
// Round/match counters drive the hybrid reward tables; player progress
// persists across match resets.
type SkillAbilityState struct {
	CurrentRound int              `json:"currentRound"`
	MatchInRound int              `json:"matchInRound"`
	Players      map[int]Progress `json:"players,omitempty"`
}

// NewSkillAbilityState returns the progression state for a fresh match series.
func NewSkillAbilityState() SkillAbilityState {
	return SkillAbilityState{CurrentRound: 1, MatchInRound: 1}
}

// ProgressFor returns the player's progress, or a fresh level-1 progress when
// the player has none recorded yet.
func (s SkillAbilityState) ProgressFor(playerID int) Progress {
	if p, ok := s.Players[playerID]; ok {
		return p
	}
	return NewProgress(playerID)
}

// WithProgress returns a copy of the state with the player's progress replaced.
func (s SkillAbilityState) WithProgress(p Progress) SkillAbilityState {
	out := s.Clone()
	if out.Players == nil {
		out.Players = make(map[int]Progress, 1)
	}
	out.Players[p.PlayerID] = p
	return out
}

// AdvanceMatch moves the round/match counters forward after a completed match.
// Rounds are ten matches long.
func (s SkillAbilityState) AdvanceMatch() SkillAbilityState {
	out := s.Clone()
	out.MatchInRound++
	if out.MatchInRound > 10 {
		out.CurrentRound++
		out.MatchInRound = 1
	}
	return out
}

// Clone returns a deep copy.
func (s SkillAbilityState) Clone() SkillAbilityState {
	out := s
	if s.Players != nil {
		out.Players = make(map[int]Progress, len(s.Players))
		for id, p := range s.Players {
			out.Players[id] = p.clone()
		}
	}
	return out
}
