package skills

import "trashpiles/internal/domain"

// matchRewardTable is the fixed SP/AP payout per match number within a round,
// used for players at level 3 and below.
var matchRewardTable = map[int][2]int{
	1:  {1, 0},
	2:  {1, 1},
	3:  {2, 2},
	4:  {2, 2},
	5:  {3, 3},
	6:  {3, 3},
	7:  {4, 4},
	8:  {4, 4},
	9:  {5, 5},
	10: {5, 5},
}

// BaseRewards returns the SP and AP a match win pays before penalties.
// Levels 1-3 read the fixed table; level 4 and above scale with the round.
func BaseRewards(playerLevel, roundNumber, matchInRound int) (sp, ap int) {
	if playerLevel <= 3 {
		r := matchRewardTable[matchInRound]
		return r[0], r[1]
	}
	v := 10 * roundNumber
	return v, v
}

// MatchAward summarizes what a completed match paid out.
type MatchAward struct {
	SP        int
	AP        int
	Penalties int
	NewLevel  int
	LeveledUp bool
}

// AwardMatch grants a match winner their SP/AP. Penalties from face-down
// cards reduce AP only, floored at zero; SP is never penalized. XP is not
// granted here: in the dynamic progression system it comes from node unlocks
// and challenge claims.
func AwardMatch(prog domain.Progress, roundNumber, matchInRound, penalties int) (domain.Progress, MatchAward) {
	sp, ap := BaseRewards(prog.Level, roundNumber, matchInRound)
	ap -= penalties
	if ap < 0 {
		ap = 0
	}

	oldLevel := prog.Level
	prog.SP += sp
	prog.AP += ap
	prog = Recalculate(prog)

	return prog, MatchAward{
		SP:        sp,
		AP:        ap,
		Penalties: penalties,
		NewLevel:  prog.Level,
		LeveledUp: prog.Level > oldLevel,
	}
}
