package bot

import (
	"trashpiles/internal/bot/brain"
	"trashpiles/internal/domain"
)

// SelectionContext holds the state for the wild-slot decision pipeline.
type SelectionContext struct {
	Hand          []domain.Card
	Candidates    []int
	Memory        *brain.SeenCards
	SelectedIndex int
}

// SelectionRule represents a logic unit that can influence which open slot a
// wild card should fill.
type SelectionRule interface {
	Name() string
	Apply(ctx *SelectionContext)
}

// FavorDeadSlotsRule prefers slots whose natural value is mostly locked into
// layouts already. Those slots may never see their own card again, so a wild
// is best spent there.
type FavorDeadSlotsRule struct{}

func (r *FavorDeadSlotsRule) Name() string { return "FavorDeadSlots" }

func (r *FavorDeadSlotsRule) Apply(ctx *SelectionContext) {
	if ctx.Memory == nil {
		return
	}
	bestIdx := ctx.SelectedIndex
	mostDead := ctx.Memory.PlacedCopies(ctx.Candidates[bestIdx] + 1)

	for i, slot := range ctx.Candidates {
		dead := ctx.Memory.PlacedCopies(slot + 1)
		if dead > mostDead {
			mostDead = dead
			bestIdx = i
		}
	}
	ctx.SelectedIndex = bestIdx
}

// FavorHighSlotsRule prefers the highest open slot. High slots have fewer
// live cards behind them as the deck thins.
type FavorHighSlotsRule struct{}

func (r *FavorHighSlotsRule) Name() string { return "FavorHighSlots" }

func (r *FavorHighSlotsRule) Apply(ctx *SelectionContext) {
	bestIdx := ctx.SelectedIndex
	for i, slot := range ctx.Candidates {
		if slot > ctx.Candidates[bestIdx] {
			bestIdx = i
		}
	}
	ctx.SelectedIndex = bestIdx
}

// ChooseWildSlot runs the rules in order and returns the winning slot, or -1
// when no slot is open.
func ChooseWildSlot(hand []domain.Card, candidates []int, memory *brain.SeenCards, rules ...SelectionRule) int {
	if len(candidates) == 0 {
		return -1
	}
	ctx := &SelectionContext{Hand: hand, Candidates: candidates, Memory: memory}
	for _, rule := range rules {
		rule.Apply(ctx)
	}
	return ctx.Candidates[ctx.SelectedIndex]
}
