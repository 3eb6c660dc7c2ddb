package app

import (
	"math/rand"

	"trashpiles/internal/challenge"
	"trashpiles/internal/domain"
	"trashpiles/internal/skills"
)

// MatchHandler owns the lifecycle family: initialize, start, end, reset,
// pause/resume, and the save/load/AI boundary stubs.
type MatchHandler struct {
	rng *rand.Rand
}

func NewMatchHandler(rng *rand.Rand) *MatchHandler {
	return &MatchHandler{rng: rng}
}

func (h *MatchHandler) Family() Family { return FamilyMatch }

func (h *MatchHandler) Handle(state *domain.GameState, cmd Command) (*domain.GameState, []Event, error) {
	switch c := cmd.(type) {
	case InitializeCommand:
		return h.initialize(state, c)
	case StartCommand:
		return h.start(state, c)
	case EndCommand:
		return h.end(state, c)
	case ResetCommand:
		return h.reset(state, c)
	case PauseCommand:
		return h.pause(state, c)
	case ResumeCommand:
		return h.resume(state, c)
	case SaveCommand, LoadCommand, RequestAIActionCommand:
		// Boundary stubs: persistence and AI strategy are external
		// collaborators. The contract is state unchanged, no events.
		return state, nil, nil
	default:
		return nil, nil, ErrWrongFamily
	}
}

// initialize builds the players and a fresh shuffled deck. Progression and
// challenge state persist when the same snapshot is re-initialized; new
// players get level-1 challenge sets.
func (h *MatchHandler) initialize(state *domain.GameState, cmd InitializeCommand) (*domain.GameState, []Event, error) {
	if len(cmd.Players) < MinPlayersToStartGame {
		return reject(state, cmd, "not enough players")
	}

	out := state.Clone()
	out.Phase = domain.PhaseSetup
	out.Players = make([]domain.Player, 0, len(cmd.Players))
	for i, spec := range cmd.Players {
		out.Players = append(out.Players, domain.Player{
			ID:              i,
			Name:            spec.Name,
			IsAI:            spec.IsAI,
			LastFlippedSlot: -1,
		})
	}
	out.CurrentPlayerIndex = 0
	out.Deck = domain.ShuffleDeck(domain.NewDeck(), h.rng)
	out.Discard = nil
	out.Round = 0
	out.DiceRoll = 0
	out.DiceMultiplier = 1
	out.FlippedThisRound = 0
	out.InputLocked = false
	out.Flags = domain.Flags{}
	out.Effects = nil

	if out.Progression.Players == nil {
		out.Progression = domain.NewSkillAbilityState()
	}
	for i, spec := range cmd.Players {
		if spec.Progress != nil {
			prog := *spec.Progress
			prog.PlayerID = i
			out.Progression = out.Progression.WithProgress(prog)
		}
		if spec.Challenges != nil {
			out.Challenges = out.Challenges.With(i, *spec.Challenges)
		}
	}
	for _, p := range out.Players {
		prog := out.Progression.ProgressFor(p.ID)
		out.Progression = out.Progression.WithProgress(prog)
		if len(out.Challenges.For(p.ID).Current.Challenges) == 0 {
			out.Challenges = challenge.AssignLevel(out.Challenges, p.ID, prog.Level)
		}
	}

	return out, []Event{NewEvent(EventGameInitialized, GameInitializedPayload{
		Players: out.Players,
	})}, nil
}

// start deals a full hand to every player face-down, player order then slot
// order, seeds the discard pile and opens play.
func (h *MatchHandler) start(state *domain.GameState, cmd StartCommand) (*domain.GameState, []Event, error) {
	if state.Phase != domain.PhaseSetup {
		return reject(state, cmd, "game already started")
	}
	if len(state.Players) < MinPlayersToStartGame {
		return reject(state, cmd, "not enough players")
	}

	out := state.Clone()
	res, err := domain.Deal(out.Deck, len(out.Players), domain.HandSize)
	if err != nil {
		return reject(state, cmd, err.Error())
	}

	var events []Event
	for i := range out.Players {
		out.Players[i].Hand = res.Hands[i]
		out.Players[i].Finished = false
		out.Players[i].LastFlippedSlot = -1
		for slot, card := range res.Hands[i] {
			events = append(events, NewEventFor(EventCardDealt, CardDealtPayload{
				PlayerID:  out.Players[i].ID,
				SlotIndex: slot,
				Card:      card,
			}, out.Players[i].ID))
		}
	}
	out.Deck = res.Deck
	out.Discard = res.Discard
	out.Phase = domain.PhasePlaying
	out.CurrentPlayerIndex = 0
	out.DiceRoll = h.rng.Intn(domain.DiceSides) + 1

	events = append(events,
		NewEvent(EventGameStarted, GameStartedPayload{
			Phase:    out.Phase,
			HandSize: domain.HandSize,
		}),
		NewEvent(EventTurnStarted, TurnStartedPayload{
			PlayerID:   out.Players[0].ID,
			TurnNumber: 0,
		}),
	)
	return out, events, nil
}

// end closes the match. A completed match routes rewards through the
// skill/ability path: the winner's score is the stake, face-down penalties
// reduce the AP payout, and the challenge engine observes the result.
func (h *MatchHandler) end(state *domain.GameState, cmd EndCommand) (*domain.GameState, []Event, error) {
	if state.Phase == domain.PhaseSetup {
		return reject(state, cmd, "game not started")
	}

	out := state.Clone()
	winnerID, ok := domain.HighestScorer(out)
	if byWin, won := domain.RoundWinner(out); won {
		winnerID, ok = byWin, true
	}
	if !ok {
		return reject(state, cmd, "no players in match")
	}

	out.Phase = domain.PhaseGameOver
	scores := make(map[int]int, len(out.Players))
	for i := range out.Players {
		// The winner's dice term scales with the slot of their final reveal,
		// everyone else's with how far their hand got.
		out.DiceMultiplier = domain.RoundMultiplier(out.Players[i], out.Players[i].ID == winnerID)
		out.Players[i].Score += domain.CalculateScore(out, out.Players[i].ID)
		scores[out.Players[i].ID] = out.Players[i].Score
	}
	out.DiceMultiplier = 1

	events := []Event{NewEvent(EventGameOver, GameOverPayload{
		WinnerID: winnerID,
		Scores:   scores,
		Reason:   cmd.Reason,
	})}

	if cmd.Reason != EndCompleted {
		return out, events, nil
	}

	round := out.Progression.CurrentRound
	match := out.Progression.MatchInRound
	penalties := domain.CalculatePenalties(out, winnerID)

	prog := out.Progression.ProgressFor(winnerID)
	prog, award := skills.AwardMatch(prog, round, match, penalties)
	out.Progression = out.Progression.WithProgress(prog).AdvanceMatch()

	events = append(events,
		NewEvent(EventMatchCompleted, MatchCompletedPayload{
			WinnerID:  winnerID,
			Round:     round,
			Match:     match,
			Score:     scores[winnerID],
			Penalties: penalties,
		}),
		NewEventFor(EventPointsEarned, PointsEarnedPayload{
			PlayerID: winnerID,
			SP:       award.SP,
			AP:       award.AP,
			Source:   "match_completed",
		}, winnerID),
	)
	if award.LeveledUp {
		events = append(events, NewEvent(EventLevelUp, LevelUpPayload{
			PlayerID: winnerID,
			Level:    award.NewLevel,
		}))
	}

	// Win streaks feed the challenge engine; losers' streaks reset.
	for i := range out.Players {
		id := out.Players[i].ID
		pc := out.Challenges.For(id)
		if id == winnerID {
			pc.WinStreak++
		} else {
			pc.WinStreak = 0
		}
		out.Challenges = out.Challenges.With(id, pc)
	}
	streak := out.Challenges.For(winnerID).WinStreak
	events = append(events, observe(out, challenge.Observation{
		Kind: challenge.ObservedGameWon, PlayerID: winnerID, Amount: streak,
	})...)
	events = append(events, observe(out, challenge.Observation{
		Kind: challenge.ObservedScore, PlayerID: winnerID, Amount: scores[winnerID],
	})...)
	events = append(events, observe(out, challenge.Observation{
		Kind: challenge.ObservedPointsEarned, PlayerID: winnerID, Amount: award.SP + award.AP,
	})...)

	return out, events, nil
}

// reset returns the table to setup with a fresh deck. Progression (XP,
// levels, unlocks) and challenge history survive resets.
func (h *MatchHandler) reset(state *domain.GameState, cmd ResetCommand) (*domain.GameState, []Event, error) {
	out := state.Clone()
	for i := range out.Players {
		out.Players[i].Hand = nil
		out.Players[i].Score = 0
		out.Players[i].Finished = false
		out.Players[i].LastFlippedSlot = -1
	}
	out.Phase = domain.PhaseSetup
	out.CurrentPlayerIndex = 0
	out.Deck = domain.ShuffleDeck(domain.NewDeck(), h.rng)
	out.Discard = nil
	out.Round = 0
	out.DiceRoll = 0
	out.DiceMultiplier = 1
	out.FlippedThisRound = 0
	out.InputLocked = false
	out.Flags = domain.Flags{}
	out.Effects = nil

	return out, []Event{NewEvent(EventGameReset, nil)}, nil
}

func (h *MatchHandler) pause(state *domain.GameState, cmd PauseCommand) (*domain.GameState, []Event, error) {
	if state.InputLocked {
		return reject(state, cmd, "game already paused")
	}
	out := state.Clone()
	out.InputLocked = true
	return out, []Event{NewEvent(EventGamePaused, nil)}, nil
}

func (h *MatchHandler) resume(state *domain.GameState, cmd ResumeCommand) (*domain.GameState, []Event, error) {
	if !state.InputLocked {
		return reject(state, cmd, "game is not paused")
	}
	out := state.Clone()
	out.InputLocked = false
	return out, []Event{NewEvent(EventGameResumed, nil)}, nil
}
