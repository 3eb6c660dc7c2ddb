package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trashpiles/internal/domain"
)

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, 0, XPForLevel(1))
	assert.Equal(t, 100, XPForLevel(2))
	assert.Equal(t, 120, XPForLevel(3))
	assert.Equal(t, 144, XPForLevel(4))

	// Thresholds grow strictly.
	for l := 2; l < 30; l++ {
		assert.Greater(t, XPForLevel(l+1), XPForLevel(l), "level %d", l)
	}
}

func TestLevelForXPAgreesWithThresholds(t *testing.T) {
	for l := 1; l <= 20; l++ {
		threshold := XPForLevel(l)
		assert.Equal(t, l, LevelForXP(threshold), "at threshold for level %d", l)
		if l > 1 {
			assert.Equal(t, l-1, LevelForXP(threshold-1), "just below threshold for level %d", l)
		}
	}
}

func TestAddXPRequiresFirstPurchase(t *testing.T) {
	prog := domain.NewProgress(1)

	// No purchase yet: XP stays at zero.
	prog = AddXP(prog, 500)
	assert.Zero(t, prog.XP)
	assert.Equal(t, 1, prog.Level)

	prog.HasPurchased = true
	prog = AddXP(prog, 130)
	require.Equal(t, 130, prog.XP)
	assert.Equal(t, 3, prog.Level)
}

func TestAddXPFloorsAtZero(t *testing.T) {
	prog := domain.NewProgress(1)
	prog.HasPurchased = true
	prog.XP = 50

	prog = AddXP(prog, -200)
	assert.Zero(t, prog.XP)
	assert.Equal(t, 1, prog.Level)
}
