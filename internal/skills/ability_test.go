package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trashpiles/internal/domain"
)

func abilityState(playerID int, unlocked ...string) *domain.GameState {
	prog := domain.NewProgress(playerID)
	prog.AP = 10
	prog.HasPurchased = true
	prog.UnlockedAbilities = make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		prog.UnlockedAbilities[id] = true
	}
	return &domain.GameState{
		Phase:       domain.PhasePlaying,
		Players:     []domain.Player{{ID: playerID, Name: "p"}},
		Progression: domain.NewSkillAbilityState().WithProgress(prog),
	}
}

func TestUseAbilityCreatesEffect(t *testing.T) {
	state := abilityState(1, "focus_surge")

	out, desc, reason := UseAbility(state, 1, "focus_surge", Target{})
	require.Empty(t, reason)
	assert.NotEmpty(t, desc)

	require.Len(t, out.Effects, 1)
	e := out.Effects[0]
	assert.Equal(t, domain.EffectScoreMultiplier, e.Type)
	assert.Equal(t, 1.5, e.Magnitude)
	assert.Equal(t, 3, e.RemainingTurns)

	// Activation cost 2 came off the player's AP.
	assert.Equal(t, 8, out.Progression.ProgressFor(1).AP)
	// Input state untouched.
	assert.Empty(t, state.Effects)
	assert.Equal(t, 10, state.Progression.ProgressFor(1).AP)
}

func TestUseAbilityNextAbilityFree(t *testing.T) {
	state := abilityState(1, "free_spirit", "double_down")

	out, _, reason := UseAbility(state, 1, "free_spirit", Target{})
	require.Empty(t, reason)
	assert.True(t, out.Flags.NextAbilityFree)
	assert.Equal(t, 8, out.Progression.ProgressFor(1).AP)

	// The next use costs nothing and consumes the flag.
	out2, _, reason := UseAbility(out, 1, "double_down", Target{})
	require.Empty(t, reason)
	assert.False(t, out2.Flags.NextAbilityFree)
	assert.Equal(t, 8, out2.Progression.ProgressFor(1).AP)
}

func TestUseAbilityTargeted(t *testing.T) {
	state := abilityState(1, "enchantment")

	_, _, reason := UseAbility(state, 1, "enchantment", Target{})
	assert.Equal(t, ReasonMissingTarget, reason)

	out, _, reason := UseAbility(state, 1, "enchantment", Target{CardID: "five_of_spades"})
	require.Empty(t, reason)
	assert.True(t, out.Flags.DoubledCards["five_of_spades"])
}

func TestUseAbilityRejections(t *testing.T) {
	state := abilityState(1, "focus_surge", domain.AbilityJacksFavor)

	_, _, reason := UseAbility(state, 1, "no_such_ability", Target{})
	assert.Equal(t, ReasonUnknownNode, reason)

	// Owned but passive.
	_, _, reason = UseAbility(state, 1, domain.AbilityJacksFavor, Target{})
	assert.Equal(t, ReasonNotActive, reason)

	// Not owned.
	_, _, reason = UseAbility(state, 1, "double_down", Target{})
	assert.Equal(t, ReasonNotUnlocked, reason)

	// Too expensive.
	broke := abilityState(2, "double_down")
	prog := broke.Progression.ProgressFor(2)
	prog.AP = 1
	broke.Progression = broke.Progression.WithProgress(prog)
	_, _, reason = UseAbility(broke, 2, "double_down", Target{})
	assert.Equal(t, ReasonInsufficientPoints, reason)
}
