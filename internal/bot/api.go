package bot

import (
	"trashpiles/internal/app"
	"trashpiles/internal/domain"
)

// Brain is the interface that all bot strategies must implement. PlanTurn
// returns the full command sequence for one turn: the draw, any placement
// chain, the closing discard when the drawn card is dead, and the end-turn
// marker. The caller dispatches the commands in order.
type Brain interface {
	PlanTurn(state *domain.GameState, playerID int) ([]app.Command, error)
	OnEvent(event app.Event)
}
