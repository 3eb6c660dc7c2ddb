// Package challenge implements level-scoped objective sets: deterministic
// per-level generation, progress tracking driven by game observations,
// idempotent reward claiming and the challenge gate on level-ups.
package challenge

import (
	"fmt"
	"math/rand"

	"trashpiles/internal/domain"
	"trashpiles/internal/skills"
)

// CountForLevel returns how many challenges a level carries, by tier.
func CountForLevel(level int) int {
	switch {
	case level <= 5:
		return 2
	case level <= 20:
		return 3
	case level <= 50:
		return 4
	case level <= 80:
		return 5
	case level <= 140:
		return 6
	default:
		return 7
	}
}

// RequiredForLevel returns how many of the level's challenges must be
// completed. Early levels require all of them; the threshold loosens as
// levels climb.
func RequiredForLevel(level, total int) int {
	var required int
	switch {
	case level <= 20:
		required = total
	case level <= 50:
		required = total - 1
	case level <= 80:
		required = total - 2
	default:
		required = total - 3
	}
	if required < 1 {
		required = 1
	}
	return required
}

// typesForLevel lists the challenge types available at a level. Low tiers
// stick to objectives a new player can read at a glance.
func typesForLevel(level int) []domain.ChallengeType {
	switch {
	case level <= 5:
		return []domain.ChallengeType{
			domain.ChallengeScore,
			domain.ChallengeWinStreak,
			domain.ChallengeCardPlacement,
		}
	case level <= 20:
		return []domain.ChallengeType{
			domain.ChallengeScore,
			domain.ChallengeAbilityUsage,
			domain.ChallengeWinStreak,
			domain.ChallengeCardPlacement,
			domain.ChallengePointAccumulation,
		}
	default:
		return []domain.ChallengeType{
			domain.ChallengeScore,
			domain.ChallengeAbilityUsage,
			domain.ChallengeSkillUnlock,
			domain.ChallengePointAccumulation,
			domain.ChallengeCombo,
			domain.ChallengeWinStreak,
			domain.ChallengeCardPlacement,
			domain.ChallengePerfectionist,
		}
	}
}

// GenerateForLevel builds the level's challenge set. Generation is seeded by
// the level number, so every player sees the same set for a given level.
func GenerateForLevel(level int) domain.LevelChallengeSet {
	rng := rand.New(rand.NewSource(int64(level)))
	count := CountForLevel(level)
	types := typesForLevel(level)

	challenges := make([]domain.Challenge, 0, count)
	for i := 0; i < count; i++ {
		typ := types[i%len(types)]
		challenges = append(challenges, domain.Challenge{
			ID:           fmt.Sprintf("L%d_C%d_%s", level, i, typ),
			Name:         challengeName(typ, level),
			Description:  "",
			Type:         typ,
			TargetLevel:  level,
			Requirements: requirementsFor(level, typ, rng),
			Reward: domain.ChallengeReward{
				Achievement: fmt.Sprintf("%s L%d", achievementName(typ), level),
				Points:      10 + level*2,
				XP:          20 + level*3,
			},
		})
	}
	for i := range challenges {
		challenges[i].Description = describe(challenges[i].Type, challenges[i].Requirements)
	}

	return domain.LevelChallengeSet{
		Level:              level,
		Challenges:         challenges,
		RequiredToComplete: RequiredForLevel(level, count),
	}
}

func requirementsFor(level int, typ domain.ChallengeType, rng *rand.Rand) domain.ChallengeRequirements {
	difficulty := float64(level) * 0.5

	switch typ {
	case domain.ChallengeScore:
		return domain.ChallengeRequirements{Score: 100 + int(difficulty*20)}
	case domain.ChallengeAbilityUsage:
		ability := skills.AbilityNodes[rng.Intn(len(skills.AbilityNodes))]
		uses := 1 + int(difficulty*0.1)
		return domain.ChallengeRequirements{AbilitiesUsed: map[string]int{ability.ID: uses}}
	case domain.ChallengeSkillUnlock:
		skill := skills.SkillNodes[rng.Intn(len(skills.SkillNodes))]
		return domain.ChallengeRequirements{SkillsUnlocked: []string{skill.ID}}
	case domain.ChallengePointAccumulation:
		return domain.ChallengeRequirements{PointsEarned: 50 + int(difficulty*10)}
	case domain.ChallengeCombo:
		n := 3 + int(difficulty*0.05)
		return domain.ChallengeRequirements{ComboCount: n}
	case domain.ChallengeWinStreak:
		n := 2 + int(difficulty*0.03)
		return domain.ChallengeRequirements{WinStreak: n}
	case domain.ChallengeCardPlacement:
		return domain.ChallengeRequirements{CardsPlaced: 20 + int(difficulty*5)}
	default: // perfectionist
		n := 1 + int(difficulty*0.02)
		return domain.ChallengeRequirements{PerfectRounds: n}
	}
}

func challengeName(typ domain.ChallengeType, level int) string {
	var adjective string
	switch {
	case level <= 20:
		adjective = "Novice"
	case level <= 50:
		adjective = "Skilled"
	case level <= 80:
		adjective = "Expert"
	case level <= 140:
		adjective = "Master"
	default:
		adjective = "Legendary"
	}
	return adjective + " " + nounFor(typ)
}

func nounFor(typ domain.ChallengeType) string {
	switch typ {
	case domain.ChallengeScore:
		return "Scorer"
	case domain.ChallengeAbilityUsage:
		return "Ability User"
	case domain.ChallengeSkillUnlock:
		return "Skill Seeker"
	case domain.ChallengePointAccumulation:
		return "Point Gatherer"
	case domain.ChallengeCombo:
		return "Combo Master"
	case domain.ChallengeWinStreak:
		return "Victor"
	case domain.ChallengeCardPlacement:
		return "Strategist"
	default:
		return "Perfectionist"
	}
}

func achievementName(typ domain.ChallengeType) string {
	switch typ {
	case domain.ChallengeScore:
		return "Score Master"
	case domain.ChallengeAbilityUsage:
		return "Ability Wielder"
	case domain.ChallengeSkillUnlock:
		return "Skill Scholar"
	case domain.ChallengePointAccumulation:
		return "Point Collector"
	case domain.ChallengeCombo:
		return "Combo King"
	case domain.ChallengeWinStreak:
		return "Victory Streak"
	case domain.ChallengeCardPlacement:
		return "Card Strategist"
	default:
		return "Perfect Player"
	}
}

func describe(typ domain.ChallengeType, req domain.ChallengeRequirements) string {
	switch typ {
	case domain.ChallengeScore:
		return fmt.Sprintf("Score %d points in a single game", req.Score)
	case domain.ChallengeAbilityUsage:
		total := 0
		for _, n := range req.AbilitiesUsed {
			total += n
		}
		return fmt.Sprintf("Use abilities %d times", total)
	case domain.ChallengeSkillUnlock:
		return fmt.Sprintf("Unlock %d skills", len(req.SkillsUnlocked))
	case domain.ChallengePointAccumulation:
		return fmt.Sprintf("Earn %d total points", req.PointsEarned)
	case domain.ChallengeCombo:
		return fmt.Sprintf("Achieve a %d-card combo", req.ComboCount)
	case domain.ChallengeWinStreak:
		return fmt.Sprintf("Win %d games in a row", req.WinStreak)
	case domain.ChallengeCardPlacement:
		return fmt.Sprintf("Place %d cards correctly", req.CardsPlaced)
	default:
		return fmt.Sprintf("Complete %d rounds without mistakes", req.PerfectRounds)
	}
}

// AssignLevel replaces the player's current challenge set with the given
// level's set, keeping claim history and achievements.
func AssignLevel(state domain.ChallengeState, playerID, level int) domain.ChallengeState {
	pc := state.For(playerID)
	pc.Level = level
	pc.Current = GenerateForLevel(level)
	return state.With(playerID, pc)
}
