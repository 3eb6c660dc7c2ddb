package bot

import (
	"trashpiles/internal/app"
	"trashpiles/internal/bot/brain"
	botinternal "trashpiles/internal/bot/internal"
	"trashpiles/internal/domain"
	"trashpiles/internal/skills"
)

// SmartBot tracks which cards have surfaced and spends wilds on slots whose
// natural card is already locked away. It also activates purchased abilities
// once the phase policy allows spending.
type SmartBot struct {
	Memory *brain.SeenCards
	Tuning BotTuning
}

func NewSmartBot() *SmartBot {
	return &SmartBot{Memory: brain.NewSeenCards(), Tuning: DefaultTuning}
}

func (b *SmartBot) PlanTurn(state *domain.GameState, playerID int) ([]app.Command, error) {
	cmds := planTurn(state, playerID, b.chooseWild, false)
	if cmds == nil {
		return nil, nil
	}
	if ability, ok := b.pickAbility(state, playerID); ok {
		cmds = append([]app.Command{app.UseAbilityCommand{PlayerID: playerID, AbilityID: ability}}, cmds...)
	}
	return cmds, nil
}

func (b *SmartBot) chooseWild(hand []domain.Card) int {
	return ChooseWildSlot(hand, botinternal.FaceDownSlots(hand), b.Memory,
		&FavorHighSlotsRule{}, &FavorDeadSlotsRule{})
}

// pickAbility selects at most one activation per turn. Shields go up when an
// opponent is close to finishing; score boosts fire in the endgame when the
// final tally is near.
func (b *SmartBot) pickAbility(state *domain.GameState, playerID int) (string, bool) {
	phase := botinternal.DetectPhase(state)
	policy := b.Tuning.ForPhase(phase)
	if !policy.SpendAbilities {
		return "", false
	}
	prog := state.Progression.ProgressFor(playerID)

	threat := botinternal.DetectThreat(state, playerID, b.Tuning.ThreatThreshold)
	candidates := []string{}
	if threat {
		candidates = append(candidates, "arcane_shield")
	}
	if phase == botinternal.PhaseEnd {
		candidates = append(candidates, "double_down", "focus_surge")
	}

	for _, id := range candidates {
		if !prog.HasAbility(id) {
			continue
		}
		node, ok := skills.NodeByID(id)
		if !ok || node.Activation == nil {
			continue
		}
		if domain.HasEffect(state.Effects, playerID, node.Activation.Effect) {
			continue
		}
		if prog.AP-node.Activation.Cost < policy.AbilityReserve {
			continue
		}
		return id, true
	}
	return "", false
}

// OnEvent feeds the card memory. Dealt cards are the bot's own; placements
// and discards are public.
func (b *SmartBot) OnEvent(event app.Event) {
	switch p := event.Payload.(type) {
	case app.CardDealtPayload:
		b.Memory.MarkMine(p.Card)
	case app.CardPlacedPayload:
		b.Memory.MarkPlaced(p.Card)
		if p.Replaced != nil {
			b.Memory.MarkDiscarded(*p.Replaced)
		}
	case app.CardDiscardedPayload:
		b.Memory.MarkDiscarded(p.Card)
	case app.GameStartedPayload:
		b.Memory.Reset()
	}
}
