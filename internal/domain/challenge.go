package domain

// ChallengeType classifies what a challenge tracks.
type ChallengeType string

const (
	ChallengeScore             ChallengeType = "score"
	ChallengeAbilityUsage      ChallengeType = "ability_usage"
	ChallengeSkillUnlock       ChallengeType = "skill_unlock"
	ChallengePointAccumulation ChallengeType = "point_accumulation"
	ChallengeCombo             ChallengeType = "combo"
	ChallengeWinStreak         ChallengeType = "win_streak"
	ChallengeCardPlacement     ChallengeType = "card_placement"
	ChallengePerfectionist     ChallengeType = "perfectionist"
)

// ChallengeRequirements are the targets a challenge's progress must reach.
// Zero-valued fields are not part of the requirement.
type ChallengeRequirements struct {
	Score          int            `json:"score,omitempty"`
	AbilitiesUsed  map[string]int `json:"abilitiesUsed,omitempty"`
	SkillsUnlocked []string       `json:"skillsUnlocked,omitempty"`
	PointsEarned   int            `json:"pointsEarned,omitempty"`
	ComboCount     int            `json:"comboCount,omitempty"`
	WinStreak      int            `json:"winStreak,omitempty"`
	CardsPlaced    int            `json:"cardsPlaced,omitempty"`
	PerfectRounds  int            `json:"perfectRounds,omitempty"`
}

// ChallengeProgress mirrors the requirement fields with running counters.
type ChallengeProgress struct {
	Score          int             `json:"score,omitempty"`
	AbilitiesUsed  map[string]int  `json:"abilitiesUsed,omitempty"`
	SkillsUnlocked map[string]bool `json:"skillsUnlocked,omitempty"`
	PointsEarned   int             `json:"pointsEarned,omitempty"`
	ComboCount     int             `json:"comboCount,omitempty"`
	WinStreak      int             `json:"winStreak,omitempty"`
	CardsPlaced    int             `json:"cardsPlaced,omitempty"`
	PerfectRounds  int             `json:"perfectRounds,omitempty"`
}

// Satisfies reports whether the progress meets every requirement target.
func (p ChallengeProgress) Satisfies(req ChallengeRequirements) bool {
	if p.Score < req.Score {
		return false
	}
	for id, need := range req.AbilitiesUsed {
		if p.AbilitiesUsed[id] < need {
			return false
		}
	}
	for _, id := range req.SkillsUnlocked {
		if !p.SkillsUnlocked[id] {
			return false
		}
	}
	return p.PointsEarned >= req.PointsEarned &&
		p.ComboCount >= req.ComboCount &&
		p.WinStreak >= req.WinStreak &&
		p.CardsPlaced >= req.CardsPlaced &&
		p.PerfectRounds >= req.PerfectRounds
}

func (p ChallengeProgress) clone() ChallengeProgress {
	if p.AbilitiesUsed != nil {
		m := make(map[string]int, len(p.AbilitiesUsed))
		for k, v := range p.AbilitiesUsed {
			m[k] = v
		}
		p.AbilitiesUsed = m
	}
	p.SkillsUnlocked = cloneSet(p.SkillsUnlocked)
	return p
}

// ChallengeReward describes what a completed challenge pays out on claim.
type ChallengeReward struct {
	Achievement string `json:"achievement"`
	Points      int    `json:"points"`
	XP          int    `json:"xp"`
}

// Challenge is one level-scoped objective with trackable progress.
type Challenge struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Type         ChallengeType         `json:"type"`
	TargetLevel  int                   `json:"targetLevel"`
	Requirements ChallengeRequirements `json:"requirements"`
	Reward       ChallengeReward       `json:"reward"`
	Completed    bool                  `json:"completed"`
	Progress     ChallengeProgress     `json:"progress"`
}

// LevelChallengeSet is the fixed challenge set assigned on level entry.
// RequiredToComplete of -1 means all challenges are required.
type LevelChallengeSet struct {
	Level              int         `json:"level"`
	Challenges         []Challenge `json:"challenges"`
	RequiredToComplete int         `json:"requiredToComplete"`
}

// Required returns the effective completion threshold.
func (s LevelChallengeSet) Required() int {
	if s.RequiredToComplete < 0 {
		return len(s.Challenges)
	}
	return s.RequiredToComplete
}

// CompletedCount returns how many challenges in the set are complete.
func (s LevelChallengeSet) CompletedCount() int {
	n := 0
	for _, c := range s.Challenges {
		if c.Completed {
			n++
		}
	}
	return n
}

// Complete reports whether enough challenges are done to clear the set.
func (s LevelChallengeSet) Complete() bool {
	return len(s.Challenges) > 0 && s.CompletedCount() >= s.Required()
}

func (s LevelChallengeSet) clone() LevelChallengeSet {
	out := s
	out.Challenges = make([]Challenge, len(s.Challenges))
	for i, c := range s.Challenges {
		c.Progress = c.Progress.clone()
		out.Challenges[i] = c
	}
	return out
}

// PlayerChallenges is one player's challenge tracking: the current level's
// set, claimed challenge ids and the append-only achievement set that makes
// reward claims idempotent.
type PlayerChallenges struct {
	Level          int               `json:"level"`
	Current        LevelChallengeSet `json:"current"`
	Claimed        map[string]bool   `json:"claimed,omitempty"`
	Achievements   map[string]bool   `json:"achievements,omitempty"`
	TotalCompleted int               `json:"totalCompleted"`
	WinStreak      int               `json:"winStreak"`
}

func (p PlayerChallenges) clone() PlayerChallenges {
	p.Current = p.Current.clone()
	p.Claimed = cloneSet(p.Claimed)
	p.Achievements = cloneSet(p.Achievements)
	return p
}

// ChallengeState is the challenge sub-state embedded in GameState.
type ChallengeState struct {
	Players map[int]PlayerChallenges `json:"players,omitempty"`
}

// For returns the player's challenge data, or a zero value when none exists.
func (s ChallengeState) For(playerID int) PlayerChallenges {
	return s.Players[playerID]
}

// With returns a copy of the state with the player's challenge data replaced.
func (s ChallengeState) With(playerID int, pc PlayerChallenges) ChallengeState {
	out := s.Clone()
	if out.Players == nil {
		out.Players = make(map[int]PlayerChallenges, 1)
	}
	out.Players[playerID] = pc
	return out
}

// Clone returns a deep copy.
func (s ChallengeState) Clone() ChallengeState {
	out := s
	if s.Players != nil {
		out.Players = make(map[int]PlayerChallenges, len(s.Players))
		for id, pc := range s.Players {
			out.Players[id] = pc.clone()
		}
	}
	return out
}
