package challenge

import (
	"fmt"

	"trashpiles/internal/domain"
	"trashpiles/internal/skills"
)

// ObservationKind classifies an already-applied game event the challenge
// engine can learn from.
type ObservationKind string

const (
	ObservedScore         ObservationKind = "score_earned"
	ObservedAbilityUsed   ObservationKind = "ability_used"
	ObservedSkillUnlocked ObservationKind = "skill_unlocked"
	ObservedPointsEarned  ObservationKind = "points_earned"
	ObservedCombo         ObservationKind = "combo_achieved"
	ObservedGameWon       ObservationKind = "game_won"
	ObservedCardPlaced    ObservationKind = "card_placed"
	ObservedPerfectRound  ObservationKind = "perfect_round"
)

// Observation is a fact about something that already happened in the match.
// The engine only reads it; it never feeds back into match state.
type Observation struct {
	Kind     ObservationKind
	PlayerID int
	NodeID   string // ability or skill id, per kind
	Amount   int    // score, points, combo size, streak length
}

// Outcome reports what an observation changed for the player.
type Outcome struct {
	State          domain.ChallengeState
	Updated        []domain.Challenge
	NewlyCompleted []domain.Challenge
	AllComplete    bool
}

// Apply advances progress on every challenge in the player's current set
// whose trigger matches the observation. Completed challenges are marked but
// their rewards stay unclaimed until an explicit claim.
func Apply(state domain.ChallengeState, obs Observation) Outcome {
	pc := state.For(obs.PlayerID)
	if len(pc.Current.Challenges) == 0 {
		return Outcome{State: state}
	}

	out := state.Clone()
	pc = out.Players[obs.PlayerID]

	var updated, completed []domain.Challenge
	for i := range pc.Current.Challenges {
		c := &pc.Current.Challenges[i]
		if c.Completed {
			continue
		}
		next := advance(c.Progress, obs)
		if next == nil {
			continue
		}
		c.Progress = *next
		updated = append(updated, *c)
		if c.Progress.Satisfies(c.Requirements) {
			c.Completed = true
			completed = append(completed, *c)
		}
	}
	out.Players[obs.PlayerID] = pc

	return Outcome{
		State:          out,
		Updated:        updated,
		NewlyCompleted: completed,
		AllComplete:    pc.Current.Complete(),
	}
}

// advance returns the progress with the observation folded in, or nil when
// the observation does not apply to this progress at all.
func advance(p domain.ChallengeProgress, obs Observation) *domain.ChallengeProgress {
	switch obs.Kind {
	case ObservedScore:
		if obs.Amount > p.Score {
			p.Score = obs.Amount
		}
	case ObservedAbilityUsed:
		if obs.NodeID == "" {
			return nil
		}
		m := make(map[string]int, len(p.AbilitiesUsed)+1)
		for k, v := range p.AbilitiesUsed {
			m[k] = v
		}
		m[obs.NodeID]++
		p.AbilitiesUsed = m
	case ObservedSkillUnlocked:
		if obs.NodeID == "" {
			return nil
		}
		m := make(map[string]bool, len(p.SkillsUnlocked)+1)
		for k, v := range p.SkillsUnlocked {
			m[k] = v
		}
		m[obs.NodeID] = true
		p.SkillsUnlocked = m
	case ObservedPointsEarned:
		p.PointsEarned += obs.Amount
	case ObservedCombo:
		if obs.Amount > p.ComboCount {
			p.ComboCount = obs.Amount
		}
	case ObservedGameWon:
		if obs.Amount > p.WinStreak {
			p.WinStreak = obs.Amount
		}
	case ObservedCardPlaced:
		p.CardsPlaced++
	case ObservedPerfectRound:
		p.PerfectRounds++
	default:
		return nil
	}
	return &p
}

// LevelUnlockResult is the outcome of a level-gate check.
type LevelUnlockResult struct {
	Success         bool
	Level           int
	Completed       []string
	NewAchievements []string
	Message         string
}

// CheckLevelUnlock gates a level-up on the current set's completion threshold
// plus the XP minimum for the next level. It does not mutate anything; on
// success the caller assigns the next level's set with AssignLevel.
func CheckLevelUnlock(pc domain.PlayerChallenges, prog domain.Progress) LevelUnlockResult {
	next := pc.Level + 1

	if !pc.Current.Complete() {
		return LevelUnlockResult{
			Level: pc.Level,
			Message: fmt.Sprintf("complete %d/%d challenges to unlock level %d",
				pc.Current.Required(), len(pc.Current.Challenges), next),
		}
	}
	if prog.XP < skills.XPForLevel(next) {
		return LevelUnlockResult{
			Level:   pc.Level,
			Message: fmt.Sprintf("need %d XP to unlock level %d", skills.XPForLevel(next), next),
		}
	}

	var completed, achievements []string
	for _, c := range pc.Current.Challenges {
		if c.Completed {
			completed = append(completed, c.ID)
			achievements = append(achievements, c.Reward.Achievement)
		}
	}
	return LevelUnlockResult{
		Success:         true,
		Level:           next,
		Completed:       completed,
		NewAchievements: achievements,
		Message:         fmt.Sprintf("level %d unlocked", next),
	}
}
