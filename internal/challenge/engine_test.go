package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trashpiles/internal/domain"
)

// placementSet builds a one-challenge set requiring n correct placements.
func placementSet(n int) domain.LevelChallengeSet {
	return domain.LevelChallengeSet{
		Level: 1,
		Challenges: []domain.Challenge{{
			ID:           "L1_C0_card_placement",
			Name:         "Novice Strategist",
			Type:         domain.ChallengeCardPlacement,
			TargetLevel:  1,
			Requirements: domain.ChallengeRequirements{CardsPlaced: n},
			Reward:       domain.ChallengeReward{Achievement: "Card Strategist L1", Points: 12, XP: 23},
		}},
		RequiredToComplete: 1,
	}
}

func stateWithSet(playerID int, set domain.LevelChallengeSet) domain.ChallengeState {
	return domain.ChallengeState{}.With(playerID, domain.PlayerChallenges{Level: set.Level, Current: set})
}

func TestApplyAdvancesMatchingChallenges(t *testing.T) {
	state := stateWithSet(1, placementSet(2))

	out := Apply(state, Observation{Kind: ObservedCardPlaced, PlayerID: 1})
	assert.Empty(t, out.NewlyCompleted)
	assert.False(t, out.AllComplete)

	out = Apply(out.State, Observation{Kind: ObservedCardPlaced, PlayerID: 1})
	require.Len(t, out.NewlyCompleted, 1)
	assert.True(t, out.AllComplete)
	assert.True(t, out.State.For(1).Current.Challenges[0].Completed)

	// Input state untouched.
	assert.Zero(t, state.For(1).Current.Challenges[0].Progress.CardsPlaced)
}

func TestApplyIgnoresOtherPlayers(t *testing.T) {
	state := stateWithSet(1, placementSet(1))

	out := Apply(state, Observation{Kind: ObservedCardPlaced, PlayerID: 2})
	assert.Empty(t, out.NewlyCompleted)
	assert.Zero(t, out.State.For(1).Current.Challenges[0].Progress.CardsPlaced)
}

func TestApplyHighWaterMarks(t *testing.T) {
	set := domain.LevelChallengeSet{
		Level: 1,
		Challenges: []domain.Challenge{{
			ID:           "L1_C0_win_streak",
			Type:         domain.ChallengeWinStreak,
			Requirements: domain.ChallengeRequirements{WinStreak: 3},
		}},
		RequiredToComplete: 1,
	}
	state := stateWithSet(1, set)

	out := Apply(state, Observation{Kind: ObservedGameWon, PlayerID: 1, Amount: 2})
	assert.Equal(t, 2, out.State.For(1).Current.Challenges[0].Progress.WinStreak)

	// A shorter streak never regresses the recorded best.
	out = Apply(out.State, Observation{Kind: ObservedGameWon, PlayerID: 1, Amount: 1})
	assert.Equal(t, 2, out.State.For(1).Current.Challenges[0].Progress.WinStreak)

	out = Apply(out.State, Observation{Kind: ObservedGameWon, PlayerID: 1, Amount: 3})
	assert.Len(t, out.NewlyCompleted, 1)
}

func TestApplyAbilityUsage(t *testing.T) {
	set := domain.LevelChallengeSet{
		Level: 6,
		Challenges: []domain.Challenge{{
			ID:           "L6_C0_ability_usage",
			Type:         domain.ChallengeAbilityUsage,
			Requirements: domain.ChallengeRequirements{AbilitiesUsed: map[string]int{"focus_surge": 2}},
		}},
		RequiredToComplete: 1,
	}
	state := stateWithSet(1, set)

	out := Apply(state, Observation{Kind: ObservedAbilityUsed, PlayerID: 1, NodeID: "arcane_shield"})
	assert.Empty(t, out.NewlyCompleted, "wrong ability must not satisfy the requirement")

	out = Apply(out.State, Observation{Kind: ObservedAbilityUsed, PlayerID: 1, NodeID: "focus_surge"})
	out = Apply(out.State, Observation{Kind: ObservedAbilityUsed, PlayerID: 1, NodeID: "focus_surge"})
	assert.Len(t, out.NewlyCompleted, 1)
}

func TestCheckLevelUnlock(t *testing.T) {
	pc := domain.PlayerChallenges{Level: 1, Current: placementSet(1)}
	prog := domain.NewProgress(1)
	prog.HasPurchased = true

	// Challenges incomplete: gate closed.
	res := CheckLevelUnlock(pc, prog)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.Level)

	pc.Current.Challenges[0].Completed = true

	// Complete but short on XP for level 2.
	res = CheckLevelUnlock(pc, prog)
	assert.False(t, res.Success)

	prog.XP = 100
	res = CheckLevelUnlock(pc, prog)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.Level)
	assert.Equal(t, []string{"L1_C0_card_placement"}, res.Completed)
	assert.Equal(t, []string{"Card Strategist L1"}, res.NewAchievements)
}
