package bot

import (
	"trashpiles/internal/app"
	"trashpiles/internal/domain"
)

// Agent represents an autonomous bot player bound to one seat.
type Agent struct {
	PlayerID int
	Name     string
	Strategy Brain
}

// Play asks the agent to plan its turn from the current snapshot.
func (a *Agent) Play(state *domain.GameState) ([]app.Command, error) {
	if state.PlayerByID(a.PlayerID) == nil {
		// Agent is not part of this game.
		return nil, nil
	}
	return a.Strategy.PlanTurn(state, a.PlayerID)
}

// OnGameEvent notifies the agent of a game event.
func (a *Agent) OnGameEvent(event app.Event) {
	a.Strategy.OnEvent(event)
}
