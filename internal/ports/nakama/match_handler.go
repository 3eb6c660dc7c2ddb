package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"trashpiles/internal/app"
	"trashpiles/internal/bot"
	"trashpiles/internal/config"
	"trashpiles/internal/domain"
	"trashpiles/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [app.MaxPlayersPerMatch]string `json:"seats"`      // Array of user IDs, empty string means seat is empty
	OwnerSeat int                            `json:"owner_seat"` // Seat index of the match owner
	Tick      int64                          `json:"tick"`       // Current tick of the match for turn-based logic

	Presences  map[string]runtime.Presence   `json:"-"` // Map UserId -> Presence for targeted messaging
	Dispatcher *app.Dispatcher               `json:"-"` // Command dispatcher owning the game state
	Bots       map[string]*bot.Agent         `json:"-"` // Active bot agents keyed by user ID
	Records    map[string]ports.PlayerRecord `json:"-"` // Persisted progression loaded on join, saved on settle
	Progress   ports.ProgressPort            `json:"-"` // Interface to Nakama storage

	// SeatToPlayer maps a seat index to the in-game player id once a game has
	// been initialized; -1 means the seat is not part of the current game.
	SeatToPlayer [app.MaxPlayersPerMatch]int `json:"seat_to_player"`
	// PlayerToSeat is the reverse mapping, indexed by player id.
	PlayerToSeat []int `json:"player_to_seat"`

	Settled bool `json:"settled"` // Whether the current game's rewards have been persisted

	BotsEnabled          bool  `json:"bots_enabled"`            // Whether AI players are allowed
	BotMinDelay          int   `json:"bot_min_delay"`           // Min seconds a bot waits
	BotMaxDelay          int   `json:"bot_max_delay"`           // Max seconds a bot waits
	BotAutoFillDelay     int   `json:"bot_auto_fill_delay"`     // Seconds to wait before auto-filling with bots
	BotWaitUntil         int64 `json:"bot_wait_until"`          // Tick when the bot should act
	LastSinglePlayerTick int64 `json:"last_single_player_tick"` // Tick when a single player started waiting
}

// matchLabel is indexed by Nakama for matchmaking queries.
type matchLabel struct {
	Open  int    `json:"open"`
	Phase string `json:"phase"`
	Game  string `json:"game"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// InLobby reports whether the table is waiting for a game to start.
func (ms *MatchState) InLobby() bool {
	return ms.Dispatcher.State().Phase == domain.PhaseSetup
}

// seatOf returns the seat index occupied by the user, or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserId := range ms.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	// Load bot identities from data folder
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	// Load table configuration
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	dispatcher := app.NewDispatcher(
		&domain.GameState{Phase: domain.PhaseSetup},
		app.NewCardHandler(),
		app.NewMatchHandler(rng),
		app.NewTurnHandler(rng),
		app.NewSkillHandler(),
		app.NewChallengeHandler(),
	)

	state := &MatchState{
		Tick:             time.Now().Unix(),
		Presences:        make(map[string]runtime.Presence),
		Dispatcher:       dispatcher,
		OwnerSeat:        -1,
		Bots:             make(map[string]*bot.Agent),
		Records:          make(map[string]ports.PlayerRecord),
		Progress:         NewNakamaProgressAdapter(nk),
		BotAutoFillDelay: config.GetBotAutoFillDelaySeconds(),
	}
	for i := range state.SeatToPlayer {
		state.SeatToPlayer[i] = -1
	}

	// Read environment variables for bot configuration
	env := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["trash_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["trash_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["trash_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["trash_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	// Defaults if not set
	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}

	labelBytes, err := json.Marshal(matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Phase: "lobby",
		Game:  "trash",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnecting players keep their seat.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}

	// Allow join if there is an empty seat OR a bot to replace (if game hasn't started)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.InLobby() {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		// Store presence
		matchState.Presences[p.GetUserId()] = p

		if matchState.seatOf(p.GetUserId()) >= 0 {
			logger.Debug("MatchJoin: User %s reconnected.", p.GetUserId())
			continue
		}

		// Assign seat: Try empty seats first, then bots (if lobby)
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.InLobby() {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}

		// Load persisted progression so the next game starts from it.
		if matchState.Progress != nil {
			record, found, err := matchState.Progress.Load(ctx, p.GetUserId())
			if err != nil {
				logger.Warn("MatchJoin: Could not load progression for %s: %v", p.GetUserId(), err)
			} else if found {
				matchState.Records[p.GetUserId()] = record
			}
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchSnapshot(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				matchState.SeatToPlayer[i] = -1
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)

				if matchState.OwnerSeat == i {
					ownerLeft = true
				}
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	// Handle incoming messages
	for _, msg := range messages {
		if msg.GetOpCode() == OpStartGame {
			mh.handleStartGame(matchState, dispatcher, logger, msg)
			continue
		}
		mh.handleGameplayMessage(matchState, dispatcher, logger, msg)
	}

	// AI Logic
	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	// Persist rewards and return to the lobby once a game concludes.
	mh.settleIfNeeded(ctx, matchState, dispatcher, logger)

	return matchState
}

// handleGameplayMessage routes a client message through the command dispatcher.
func (mh *matchHandler) handleGameplayMessage(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)
	if senderSeat < 0 {
		logger.Warn("MatchLoop: Message from %s who holds no seat.", senderID)
		return
	}

	playerID := state.SeatToPlayer[senderSeat]
	if playerID < 0 {
		mh.sendError(state, dispatcher, logger, senderID, 409, "game not started")
		return
	}

	cmd, err := commandFromMessage(msg.GetOpCode(), msg.GetData(), playerID)
	if err != nil {
		logger.Warn("MatchLoop: Bad message from %s (opcode %d): %v", senderID, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	events, err := state.Dispatcher.Dispatch(cmd)
	if err != nil {
		logger.Error("MatchLoop: Dispatch failed for %s command %s: %v", senderID, cmd.Name(), err)
		mh.sendError(state, dispatcher, logger, senderID, 500, err.Error())
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	mh.startGameFromSeats(state, dispatcher, logger, msg.GetUserId())
}

// startGameFromSeats initializes and deals a game for the current seating.
// Only the owner may start, and only from the lobby.
func (mh *matchHandler) startGameFromSeats(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	if !state.InLobby() {
		logger.Warn("StartGame: Game already in progress.")
		return
	}

	activeCount := state.GetOccupiedSeatCount()
	if activeCount < app.MinPlayersToStartGame {
		logger.Warn("StartGame: Cannot start with %d players. Need at least %d.", activeCount, app.MinPlayersToStartGame)
		return
	}

	// Build the player list in seat order. Player ids are assigned to
	// occupied seats sequentially, so the seat maps must be rebuilt together.
	specs := make([]app.PlayerSpec, 0, activeCount)
	state.PlayerToSeat = state.PlayerToSeat[:0]
	for i, userID := range state.Seats {
		if userID == "" {
			state.SeatToPlayer[i] = -1
			continue
		}

		playerID := len(specs)
		state.SeatToPlayer[i] = playerID
		state.PlayerToSeat = append(state.PlayerToSeat, i)

		spec := app.PlayerSpec{
			Name: mh.displayName(state, userID),
			IsAI: isBotUserId(userID),
		}
		if record, ok := state.Records[userID]; ok {
			progress := record.Progress
			challenges := record.Challenges
			spec.Progress = &progress
			spec.Challenges = &challenges
		}
		specs = append(specs, spec)

		if agent, ok := state.Bots[userID]; ok {
			agent.PlayerID = playerID
		}
	}

	initEvents, err := state.Dispatcher.Dispatch(app.InitializeCommand{Players: specs})
	if err != nil {
		logger.Error("StartGame: Failed to initialize game: %v", err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, initEvents)

	startEvents, err := state.Dispatcher.Dispatch(app.StartCommand{})
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, startEvents)

	state.Settled = false
	mh.updateLabel(state, dispatcher, logger)

	logger.Info("StartGame: Game started with %d players.", activeCount)
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.InLobby() {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID

						difficulty := identity.Difficulty
						if difficulty == "" {
							difficulty = config.GetDefaultBotLevel()
						}
						brain, err := bot.NewBrain(bot.LevelFromDifficulty(difficulty))
						if err != nil {
							logger.Error("Failed to create bot brain for %s: %v", botID, err)
						} else {
							state.Bots[botID] = &bot.Agent{Name: identity.DisplayName, Strategy: brain}
						}

						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchSnapshot(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			// Reset timer if 0 or >1 humans
			state.LastSinglePlayerTick = 0
		}
	}

	// 2. Handle bot turns in-game
	gameState := state.Dispatcher.State()
	if gameState.Phase == domain.PhasePlaying && !gameState.InputLocked && len(gameState.Players) > 0 {
		currentPlayerID := gameState.Players[gameState.CurrentPlayerIndex].ID
		if currentPlayerID < 0 || currentPlayerID >= len(state.PlayerToSeat) {
			return
		}
		currentSeat := state.PlayerToSeat[currentPlayerID]
		currentUserID := state.Seats[currentSeat]

		if isBotUserId(currentUserID) {
			if state.BotWaitUntil == 0 {
				delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
				state.BotWaitUntil = state.Tick + int64(delay)
				logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", currentUserID, currentSeat, state.BotWaitUntil, state.Tick)
			}

			if state.Tick >= state.BotWaitUntil {
				state.BotWaitUntil = 0

				agent, exists := state.Bots[currentUserID]
				if !exists {
					logger.Error("processBots: No agent for bot %s, skipping its turn.", currentUserID)
					events, err := state.Dispatcher.Dispatch(app.SkipTurnCommand{PlayerID: currentPlayerID})
					if err == nil {
						mh.broadcastEvents(state, dispatcher, logger, events)
					}
					return
				}

				commands, err := agent.Play(gameState)
				if err != nil {
					logger.Error("processBots: Bot %s failed to plan its turn: %v", currentUserID, err)
					return
				}

				for _, cmd := range commands {
					events, err := state.Dispatcher.Dispatch(cmd)
					if err != nil {
						logger.Error("processBots: Bot %s command %s failed: %v", currentUserID, cmd.Name(), err)
						return
					}
					mh.broadcastEvents(state, dispatcher, logger, events)
				}
			}
		} else {
			// Not a bot turn, reset wait if it was set
			state.BotWaitUntil = 0
		}
	}
}

// settleIfNeeded awards and persists progression exactly once per finished
// game, then resets the table to the lobby.
func (mh *matchHandler) settleIfNeeded(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Settled || state.Dispatcher.State().Phase != domain.PhaseGameOver {
		return
	}
	state.Settled = true

	endEvents, err := state.Dispatcher.Dispatch(app.EndCommand{Reason: app.EndCompleted})
	if err != nil {
		logger.Error("settle: Failed to finalize game: %v", err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, endEvents)

	settled := state.Dispatcher.State()
	for seat, userID := range state.Seats {
		if userID == "" || isBotUserId(userID) {
			continue
		}
		playerID := state.SeatToPlayer[seat]
		if playerID < 0 {
			continue
		}
		record := ports.PlayerRecord{
			Progress:   settled.Progression.ProgressFor(playerID),
			Challenges: settled.Challenges.For(playerID),
		}
		state.Records[userID] = record
		if state.Progress != nil {
			if err := state.Progress.Save(ctx, userID, record); err != nil {
				logger.Error("settle: Failed to save progression for %s: %v", userID, err)
			}
		}
	}

	resetEvents, err := state.Dispatcher.Dispatch(app.ResetCommand{})
	if err != nil {
		logger.Error("settle: Failed to reset table: %v", err)
	} else {
		mh.broadcastEvents(state, dispatcher, logger, resetEvents)
	}

	mh.updateLabel(state, dispatcher, logger)
}

// broadcastEvents delivers dispatcher events to bots and connected clients.
// Targeted events go only to their recipients; if every intended recipient is
// disconnected (or a bot) nothing is sent at all.
func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		// Bots observe the same event stream clients do.
		for _, agent := range state.Bots {
			if len(ev.Recipients) == 0 || containsInt(ev.Recipients, agent.PlayerID) {
				agent.OnGameEvent(ev)
			}
		}

		payload, err := marshalEvent(ev)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, playerID := range ev.Recipients {
				if playerID < 0 || playerID >= len(state.PlayerToSeat) {
					continue
				}
				userID := state.Seats[state.PlayerToSeat[playerID]]
				if p, ok := state.Presences[userID]; ok {
					recipients = append(recipients, p)
				}
			}

			// If we had intended recipients but none are connected (e.g. they
			// are bots), we MUST NOT broadcast to everyone else.
			if len(recipients) == 0 {
				continue
			}
		}

		if err := dispatcher.BroadcastMessage(OpGameEvent, payload, recipients, nil, true); err != nil {
			logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
		}
	}
}

// seatSnapshot is one seat's entry in the lobby snapshot sent on joins.
type seatSnapshot struct {
	UserID      string `json:"userId"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"isOwner"`
	DisplayName string `json:"displayName"`
	IsBot       bool   `json:"isBot"`
	FaceUp      int    `json:"faceUp"`
}

type matchSnapshot struct {
	Seats     []string       `json:"seats"`
	OwnerSeat int            `json:"ownerSeat"`
	Tick      int64          `json:"tick"`
	Phase     string         `json:"phase"`
	Players   []seatSnapshot `json:"players"`
}

func (mh *matchHandler) broadcastMatchSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	gameState := state.Dispatcher.State()

	var players []seatSnapshot
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}

		faceUp := 0
		if playerID := state.SeatToPlayer[i]; playerID >= 0 {
			if p := gameState.PlayerByID(playerID); p != nil {
				for _, slot := range p.Hand {
					if slot.FaceUp {
						faceUp++
					}
				}
			}
		}

		players = append(players, seatSnapshot{
			UserID:      userID,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			DisplayName: mh.displayName(state, userID),
			IsBot:       isBotUserId(userID),
			FaceUp:      faceUp,
		})
	}

	snapshot := matchSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Phase:     string(gameState.Phase),
		Players:   players,
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("Failed to marshal match snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchSnapshot, payload, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast match snapshot: %v", err)
	}
}

// sendError sends an error envelope to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	payload, err := json.Marshal(errorEnvelope{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error envelope: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	if err := dispatcher.BroadcastMessage(OpGameError, payload, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) displayName(state *MatchState, userID string) string {
	if p, exists := state.Presences[userID]; exists {
		if name := p.GetUsername(); name != "" {
			return name
		}
	}
	if name := bot.GetBotDisplayName(userID); name != "" {
		return name
	}
	return userID
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if !state.InLobby() {
		phase = string(state.Dispatcher.State().Phase)
	}

	labelBytes, err := json.Marshal(matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Phase: phase,
		Game:  "trash",
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func containsInt(values []int, want int) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
