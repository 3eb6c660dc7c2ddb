package app

import (
	"errors"

	"trashpiles/internal/challenge"
	"trashpiles/internal/domain"
)

var (
	// ErrUnroutable means no handler is registered for the command's family.
	// This is a wiring fault, not a player mistake.
	ErrUnroutable = errors.New("no handler registered for command family")
	// ErrWrongFamily means a command reached a handler that does not own it.
	ErrWrongFamily = errors.New("command dispatched to handler that does not own it")
)

// Handler owns validation and transition logic for one command family. It
// receives the current authoritative snapshot and returns the replacement
// snapshot plus the events describing what happened. A returned error is a
// wiring fault; player-facing rejections come back as InvalidMove events with
// the state unchanged.
type Handler interface {
	Family() Family
	Handle(state *domain.GameState, cmd Command) (*domain.GameState, []Event, error)
}

// reject returns the unchanged state plus a single InvalidMove event.
func reject(state *domain.GameState, cmd Command, reason string) (*domain.GameState, []Event, error) {
	return state, []Event{NewEvent(EventInvalidMove, InvalidMovePayload{
		PlayerID:        cmd.Actor(),
		Reason:          reason,
		AttemptedAction: cmd.Name(),
	})}, nil
}

// observe routes an observation through the challenge engine inside the same
// transaction and returns the events it produced. The state is mutated in
// place; callers pass the clone they are already building.
func observe(state *domain.GameState, obs challenge.Observation) []Event {
	out := challenge.Apply(state.Challenges, obs)
	state.Challenges = out.State

	var events []Event
	pc := out.State.For(obs.PlayerID)
	for _, c := range out.Updated {
		events = append(events, NewEventFor(EventChallengeProgressUpdated, ChallengeProgressUpdatedPayload{
			PlayerID:    obs.PlayerID,
			ChallengeID: c.ID,
			Progress:    c.Progress,
		}, obs.PlayerID))
	}
	for _, c := range out.NewlyCompleted {
		events = append(events, NewEventFor(EventChallengeCompleted, ChallengeCompletedPayload{
			PlayerID:    obs.PlayerID,
			ChallengeID: c.ID,
			Name:        c.Name,
		}, obs.PlayerID))
	}
	if out.AllComplete && len(out.NewlyCompleted) > 0 {
		events = append(events, NewEventFor(EventAllChallengesCompleted, AllChallengesCompletedPayload{
			PlayerID: obs.PlayerID,
			Level:    pc.Level,
		}, obs.PlayerID))
	}
	return events
}
