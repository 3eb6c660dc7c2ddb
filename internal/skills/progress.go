package skills

import "trashpiles/internal/domain"

// Level thresholds grow exponentially: level 2 opens at 100 XP and each level
// after that costs 1.2x the previous one.
const (
	baseXP   = 100
	xpGrowth = 1.2
)

// XPForLevel returns the minimum XP required to hold the given level.
// Level 1 is free.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	xp := float64(baseXP)
	for l := 3; l <= level; l++ {
		xp *= xpGrowth
	}
	return int(xp)
}

// LevelForXP returns the largest level whose threshold is at or below xp.
func LevelForXP(xp int) int {
	level := 1
	for XPForLevel(level+1) <= xp {
		level++
	}
	return level
}

// XPToNextLevel returns how much XP is still missing for the next level.
func XPToNextLevel(xp int) int {
	need := XPForLevel(LevelForXP(xp) + 1)
	if need <= xp {
		return 0
	}
	return need - xp
}

// AddXP returns a progress with the XP delta applied and the level
// recomputed. XP does not accumulate until the player's first node purchase,
// and never drops below zero.
func AddXP(p domain.Progress, amount int) domain.Progress {
	if !p.HasPurchased {
		return p
	}
	p.XP += amount
	if p.XP < 0 {
		p.XP = 0
	}
	return Recalculate(p)
}

// Recalculate returns a progress whose level matches its XP. The level is
// derived, never stored drift: callers must thread the result back into the
// owning state.
func Recalculate(p domain.Progress) domain.Progress {
	if !p.HasPurchased {
		p.Level = 1
		return p
	}
	p.Level = LevelForXP(p.XP)
	return p
}
