package bot

import (
	"trashpiles/internal/app"
	botinternal "trashpiles/internal/bot/internal"
	"trashpiles/internal/domain"
)

// GodBot plays with full table knowledge: it simulates the pickup chain from
// both piles before choosing a source, so a deck card that chains further
// beats a discard that fits once.
type GodBot struct {
	SmartBot
}

func NewGodBot() *GodBot {
	return &GodBot{SmartBot: *NewSmartBot()}
}

func (b *GodBot) PlanTurn(state *domain.GameState, playerID int) ([]app.Command, error) {
	player := state.PlayerByID(playerID)
	if player == nil || player.Finished || state.Phase != domain.PhasePlaying {
		return nil, nil
	}

	preferDeck := false
	if top, ok := discardTop(state); ok && botinternal.Fits(player.Hand, top) && len(state.Deck) > 0 {
		fromDiscard := chainLength(player.Hand, top, b.chooseWild)
		fromDeck := chainLength(player.Hand, state.Deck[0], b.chooseWild)
		preferDeck = fromDeck > fromDiscard
	}

	cmds := planTurn(state, playerID, b.chooseWild, preferDeck)
	if ability, ok := b.pickAbility(state, playerID); ok {
		cmds = append([]app.Command{app.UseAbilityCommand{PlayerID: playerID, AbilityID: ability}}, cmds...)
	}
	return cmds, nil
}
