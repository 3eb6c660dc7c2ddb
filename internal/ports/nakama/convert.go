package nakama

import (
	"encoding/json"
	"fmt"

	"trashpiles/internal/app"
	"trashpiles/internal/domain"
	"trashpiles/internal/skills"
)

// Client request payloads. All messages are JSON; the opcode selects the
// shape. Seat assignment is server-authoritative, so requests never carry a
// player id.
type drawRequest struct {
	Source string `json:"source"`
}

type placeRequest struct {
	CardID    string `json:"cardId"`
	SlotIndex int    `json:"slotIndex"`
}

type discardRequest struct {
	CardID string `json:"cardId"`
}

type flipRequest struct {
	SlotIndex int `json:"slotIndex"`
}

type unlockRequest struct {
	NodeID string `json:"nodeId"`
	Kind   string `json:"kind"`
}

type useAbilityRequest struct {
	AbilityID string `json:"abilityId"`
	CardID    string `json:"cardId,omitempty"`
	SlotIndex int    `json:"slotIndex,omitempty"`
}

type claimRequest struct {
	ChallengeID string `json:"challengeId"`
}

// commandFromMessage decodes a client message into the command for the given
// seat. OpStartGame is handled separately because it needs lobby context.
func commandFromMessage(opCode int64, data []byte, seat int) (app.Command, error) {
	switch opCode {
	case OpDrawCard:
		var req drawRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("invalid draw request: %w", err)
		}
		return app.DrawCommand{PlayerID: seat, Source: app.DrawSource(req.Source)}, nil
	case OpPlaceCard:
		var req placeRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("invalid place request: %w", err)
		}
		return app.PlaceCommand{PlayerID: seat, CardID: req.CardID, SlotIndex: req.SlotIndex}, nil
	case OpDiscardCard:
		var req discardRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("invalid discard request: %w", err)
		}
		return app.DiscardCommand{PlayerID: seat, CardID: req.CardID}, nil
	case OpFlipCard:
		var req flipRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("invalid flip request: %w", err)
		}
		return app.FlipCommand{PlayerID: seat, SlotIndex: req.SlotIndex}, nil
	case OpEndTurn:
		return app.EndTurnCommand{PlayerID: seat}, nil
	case OpUnlockNode:
		var req unlockRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("invalid unlock request: %w", err)
		}
		kind := domain.PointKind(req.Kind)
		if kind != domain.PointSkill && kind != domain.PointAbility {
			return nil, fmt.Errorf("invalid point kind %q", req.Kind)
		}
		return app.UnlockNodeCommand{PlayerID: seat, NodeID: req.NodeID, Kind: kind}, nil
	case OpUseAbility:
		var req useAbilityRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("invalid ability request: %w", err)
		}
		return app.UseAbilityCommand{
			PlayerID:  seat,
			AbilityID: req.AbilityID,
			Target:    skills.Target{CardID: req.CardID, SlotIndex: req.SlotIndex},
		}, nil
	case OpPauseGame:
		return app.PauseCommand{PlayerID: seat}, nil
	case OpResumeGame:
		return app.ResumeCommand{PlayerID: seat}, nil
	case OpViewChallenges:
		return app.ViewChallengesCommand{PlayerID: seat}, nil
	case OpCheckLevelUp:
		return app.CheckLevelUpCommand{PlayerID: seat}, nil
	case OpClaimChallenge:
		var req claimRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("invalid claim request: %w", err)
		}
		return app.ClaimChallengeRewardsCommand{PlayerID: seat, ChallengeID: req.ChallengeID}, nil
	default:
		return nil, fmt.Errorf("unknown opcode %d", opCode)
	}
}

// eventEnvelope is the wire shape for server events. The kind discriminates
// the payload on the client side.
type eventEnvelope struct {
	ID      string        `json:"id"`
	Kind    app.EventKind `json:"kind"`
	Payload interface{}   `json:"payload,omitempty"`
}

// marshalEvent encodes an app event for broadcast.
func marshalEvent(ev app.Event) ([]byte, error) {
	return json.Marshal(eventEnvelope{ID: ev.ID, Kind: ev.Kind, Payload: ev.Payload})
}

// errorEnvelope is the wire shape for per-user error messages.
type errorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
