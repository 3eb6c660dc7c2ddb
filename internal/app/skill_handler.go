package app

import (
	"trashpiles/internal/challenge"
	"trashpiles/internal/domain"
	"trashpiles/internal/skills"
)

// SkillHandler owns node unlocks and ability activation. Progression
// commands are legal in any phase: players spend points between matches too.
type SkillHandler struct{}

func NewSkillHandler() *SkillHandler { return &SkillHandler{} }

func (h *SkillHandler) Family() Family { return FamilySkill }

func (h *SkillHandler) Handle(state *domain.GameState, cmd Command) (*domain.GameState, []Event, error) {
	if state.PlayerByID(cmd.Actor()) == nil {
		return reject(state, cmd, "player not found")
	}

	switch c := cmd.(type) {
	case UnlockNodeCommand:
		return h.unlock(state, c)
	case UseAbilityCommand:
		return h.useAbility(state, c)
	default:
		return nil, nil, ErrWrongFamily
	}
}

func (h *SkillHandler) unlock(state *domain.GameState, cmd UnlockNodeCommand) (*domain.GameState, []Event, error) {
	prog := state.Progression.ProgressFor(cmd.PlayerID)
	oldLevel := prog.Level

	next, reason := skills.UnlockNode(prog, cmd.NodeID, cmd.Kind, state.Effects)
	if reason != "" {
		return reject(state, cmd, reason)
	}

	out := state.Clone()
	out.Progression = out.Progression.WithProgress(next)

	events := []Event{NewEventFor(EventNodeUnlocked, NodeUnlockedPayload{
		PlayerID: cmd.PlayerID,
		NodeID:   cmd.NodeID,
		Kind:     cmd.Kind,
		SP:       next.SP,
		AP:       next.AP,
	}, cmd.PlayerID)}

	if cmd.Kind == domain.PointSkill {
		events = append(events, observe(out, challenge.Observation{
			Kind:     challenge.ObservedSkillUnlocked,
			PlayerID: cmd.PlayerID,
			NodeID:   cmd.NodeID,
		})...)
	}
	if next.Level > oldLevel {
		events = append(events, NewEvent(EventLevelUp, LevelUpPayload{
			PlayerID: cmd.PlayerID,
			Level:    next.Level,
		}))
	}
	return out, events, nil
}

func (h *SkillHandler) useAbility(state *domain.GameState, cmd UseAbilityCommand) (*domain.GameState, []Event, error) {
	out, desc, reason := skills.UseAbility(state, cmd.PlayerID, cmd.AbilityID, cmd.Target)
	if reason != "" {
		return reject(state, cmd, reason)
	}

	events := []Event{NewEvent(EventAbilityUsed, AbilityUsedPayload{
		PlayerID:    cmd.PlayerID,
		AbilityID:   cmd.AbilityID,
		Description: desc,
	})}
	events = append(events, observe(out, challenge.Observation{
		Kind:     challenge.ObservedAbilityUsed,
		PlayerID: cmd.PlayerID,
		NodeID:   cmd.AbilityID,
	})...)

	return out, events, nil
}
