package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trashpiles/internal/domain"
)

func TestBaseRewardsHybrid(t *testing.T) {
	// Low levels read the fixed match table.
	sp, ap := BaseRewards(1, 1, 1)
	assert.Equal(t, 1, sp)
	assert.Equal(t, 0, ap)

	sp, ap = BaseRewards(3, 2, 10)
	assert.Equal(t, 5, sp)
	assert.Equal(t, 5, ap)

	// Level 4+ scales with the round number.
	sp, ap = BaseRewards(4, 3, 1)
	assert.Equal(t, 30, sp)
	assert.Equal(t, 30, ap)
}

func TestAwardMatchPenaltiesReduceAPOnly(t *testing.T) {
	prog := domain.NewProgress(1)
	prog.Level = 4

	out, award := AwardMatch(prog, 2, 1, 5)
	assert.Equal(t, 20, award.SP)
	assert.Equal(t, 15, award.AP)
	assert.Equal(t, 20, out.SP)
	assert.Equal(t, 15, out.AP)
}

func TestAwardMatchAPFloor(t *testing.T) {
	prog := domain.NewProgress(1) // level 1, match 1 pays 1 SP / 0 AP

	out, award := AwardMatch(prog, 1, 1, 7)
	assert.Equal(t, 1, award.SP)
	assert.Zero(t, award.AP, "penalties never drive AP negative")
	assert.Equal(t, 1, out.SP)
	assert.Zero(t, out.AP)
}
