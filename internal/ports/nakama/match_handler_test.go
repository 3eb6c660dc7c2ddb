package nakama

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"trashpiles/internal/app"
	"trashpiles/internal/bot"
	"trashpiles/internal/domain"
	"trashpiles/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
	lastPresences  []runtime.Presence
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	md.lastPresences = presences
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

// stubPresence is a minimal presence for recipient filtering tests.
type stubPresence struct {
	userID   string
	username string
}

func (p stubPresence) GetUserId() string                 { return p.userID }
func (p stubPresence) GetSessionId() string              { return "session-" + p.userID }
func (p stubPresence) GetNodeId() string                 { return "node" }
func (p stubPresence) GetHidden() bool                   { return false }
func (p stubPresence) GetPersistence() bool              { return true }
func (p stubPresence) GetUsername() string               { return p.username }
func (p stubPresence) GetStatus() string                 { return "" }
func (p stubPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonJoin }

// mockProgress records progression saves keyed by user id.
type mockProgress struct {
	records map[string]ports.PlayerRecord
	saves   int
}

func (mp *mockProgress) Load(ctx context.Context, userID string) (ports.PlayerRecord, bool, error) {
	rec, ok := mp.records[userID]
	return rec, ok, nil
}

func (mp *mockProgress) Save(ctx context.Context, userID string, record ports.PlayerRecord) error {
	if mp.records == nil {
		mp.records = make(map[string]ports.PlayerRecord)
	}
	mp.records[userID] = record
	mp.saves++
	return nil
}

func newTestDispatcher(initial *domain.GameState) *app.Dispatcher {
	rng := rand.New(rand.NewSource(7))
	return app.NewDispatcher(initial,
		app.NewCardHandler(),
		app.NewMatchHandler(rng),
		app.NewTurnHandler(rng),
		app.NewSkillHandler(),
		app.NewChallengeHandler(),
	)
}

func newTestMatchState(seats [app.MaxPlayersPerMatch]string) *MatchState {
	ms := &MatchState{
		Seats:      seats,
		OwnerSeat:  -1,
		Presences:  make(map[string]runtime.Presence),
		Dispatcher: newTestDispatcher(&domain.GameState{Phase: domain.PhaseSetup}),
		Bots:       make(map[string]*bot.Agent),
		Records:    make(map[string]ports.PlayerRecord),
	}
	for i := range ms.SeatToPlayer {
		ms.SeatToPlayer[i] = -1
	}
	return ms
}

func TestFindFirstHumanSeat(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{
			name:  "FirstHumanAfterBot",
			seats: []string{bot1, "user-1", "", ""},
			want:  1,
		},
		{
			name:  "AllBots",
			seats: []string{bot1, bot2, "", ""},
			want:  -1,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  -1,
		},
		{
			name:  "FirstHumanIsSeatZero",
			seats: []string{"user-1", bot1, "user-2", ""},
			want:  0,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := findFirstHumanSeat(test.seats); got != test.want {
				t.Fatalf("findFirstHumanSeat() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestShouldTerminateNoHumans(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  bool
	}{
		{
			name:  "BotsOnly",
			seats: []string{bot1, bot2, "", ""},
			want:  true,
		},
		{
			name:  "HumansPresent",
			seats: []string{bot1, "user-1", "", ""},
			want:  false,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := shouldTerminateNoHumans(test.seats); got != test.want {
				t.Fatalf("shouldTerminateNoHumans() = %t, want %t", got, test.want)
			}
		})
	}
}

func TestMatchLabelMarshal(t *testing.T) {
	payload, err := json.Marshal(matchLabel{Open: 3, Phase: "lobby", Game: "trash"})
	if err != nil {
		t.Fatalf("marshal label: %v", err)
	}
	want := `{"open":3,"phase":"lobby","game":"trash"}`
	if string(payload) != want {
		t.Fatalf("label = %s, want %s", payload, want)
	}
}

func TestCommandFromMessage(t *testing.T) {
	tests := []struct {
		name    string
		opCode  int64
		data    string
		want    app.Command
		wantErr bool
	}{
		{
			name:   "Draw",
			opCode: OpDrawCard,
			data:   `{"source":"deck"}`,
			want:   app.DrawCommand{PlayerID: 1, Source: app.SourceDeck},
		},
		{
			name:   "Place",
			opCode: OpPlaceCard,
			data:   `{"cardId":"seven_of_clubs","slotIndex":6}`,
			want:   app.PlaceCommand{PlayerID: 1, CardID: "seven_of_clubs", SlotIndex: 6},
		},
		{
			name:   "EndTurnIgnoresBody",
			opCode: OpEndTurn,
			data:   ``,
			want:   app.EndTurnCommand{PlayerID: 1},
		},
		{
			name:   "Pause",
			opCode: OpPauseGame,
			data:   ``,
			want:   app.PauseCommand{PlayerID: 1},
		},
		{
			name:   "ClaimChallenge",
			opCode: OpClaimChallenge,
			data:   `{"challengeId":"place_3_cards"}`,
			want:   app.ClaimChallengeRewardsCommand{PlayerID: 1, ChallengeID: "place_3_cards"},
		},
		{
			name:    "UnlockBadKind",
			opCode:  OpUnlockNode,
			data:    `{"nodeId":"card_mastery","kind":"gold"}`,
			wantErr: true,
		},
		{
			name:    "MalformedBody",
			opCode:  OpPlaceCard,
			data:    `{"cardId":`,
			wantErr: true,
		},
		{
			name:    "UnknownOpCode",
			opCode:  99,
			data:    `{}`,
			wantErr: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got, err := commandFromMessage(test.opCode, []byte(test.data), 1)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("commandFromMessage: %v", err)
			}
			if got != test.want {
				t.Fatalf("command = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestProcessBotsAddsBotsForSoloHuman(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestMatchState([app.MaxPlayersPerMatch]string{"user-1", "", "", ""})
	state.BotAutoFillDelay = 2
	state.LastSinglePlayerTick = 8
	state.Tick = 10

	handler.processBots(state, dispatcher, noopLogger{})

	botCount := 0
	for _, seat := range state.Seats {
		if isBotUserId(seat) {
			botCount++
		}
	}

	if botCount != 3 {
		t.Fatalf("Expected 3 bots, got %d", botCount)
	}
	if state.GetOpenSeatsCount() != 0 {
		t.Fatalf("Expected 0 open seats after auto-fill, got %d", state.GetOpenSeatsCount())
	}
	if state.LastSinglePlayerTick != 0 {
		t.Fatalf("Expected auto-fill timer reset, got %d", state.LastSinglePlayerTick)
	}
	if len(state.Bots) != 3 {
		t.Fatalf("Expected 3 bot agents, got %d", len(state.Bots))
	}
	if dispatcher.broadcastCount == 0 || dispatcher.labelUpdates == 0 {
		t.Fatalf("Expected match snapshot broadcast and label update after auto-fill")
	}
}

func TestProcessBotsWaitsBeforeAutoFill(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestMatchState([app.MaxPlayersPerMatch]string{"user-1", "", "", ""})
	state.BotAutoFillDelay = 5
	state.Tick = 10

	handler.processBots(state, dispatcher, noopLogger{})

	if state.LastSinglePlayerTick != 10 {
		t.Fatalf("Expected auto-fill timer to start at tick 10, got %d", state.LastSinglePlayerTick)
	}
	for _, seat := range state.Seats[1:] {
		if seat != "" {
			t.Fatalf("Expected no bots before the delay elapses, seat holds %q", seat)
		}
	}
}

func TestHandleStartGameBuildsSeatMapping(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	botID := bot.GetBotIdentity(0).UserID
	state := newTestMatchState([app.MaxPlayersPerMatch]string{"user-1", "", botID, ""})
	state.OwnerSeat = 0
	state.Bots[botID] = &bot.Agent{Strategy: mustBrain(t, bot.BotLevelGood)}

	// Persisted progression should flow into the new game.
	progress := domain.NewProgress(0)
	progress.SP = 7
	state.Records["user-1"] = ports.PlayerRecord{Progress: progress}

	handler.startGameFromSeats(state, dispatcher, noopLogger{}, "user-1")

	gameState := state.Dispatcher.State()
	if gameState.Phase != domain.PhasePlaying {
		t.Fatalf("Phase = %s, want %s", gameState.Phase, domain.PhasePlaying)
	}
	if len(gameState.Players) != 2 {
		t.Fatalf("Expected 2 players, got %d", len(gameState.Players))
	}
	if got := state.SeatToPlayer[0]; got != 0 {
		t.Fatalf("SeatToPlayer[0] = %d, want 0", got)
	}
	if got := state.SeatToPlayer[2]; got != 1 {
		t.Fatalf("SeatToPlayer[2] = %d, want 1", got)
	}
	if got := state.SeatToPlayer[1]; got != -1 {
		t.Fatalf("SeatToPlayer[1] = %d, want -1", got)
	}
	if want := []int{0, 2}; len(state.PlayerToSeat) != 2 || state.PlayerToSeat[0] != want[0] || state.PlayerToSeat[1] != want[1] {
		t.Fatalf("PlayerToSeat = %v, want %v", state.PlayerToSeat, want)
	}
	if !gameState.Players[1].IsAI {
		t.Fatalf("Expected seat 2 occupant to be flagged as AI")
	}
	if got := gameState.Progression.ProgressFor(0).SP; got != 7 {
		t.Fatalf("Restored SP = %d, want 7", got)
	}
	if got := state.Bots[botID].PlayerID; got != 1 {
		t.Fatalf("Bot agent player id = %d, want 1", got)
	}
}

func TestHandleStartGameRejectsNonOwner(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestMatchState([app.MaxPlayersPerMatch]string{"user-1", "user-2", "", ""})
	state.OwnerSeat = 0

	handler.startGameFromSeats(state, dispatcher, noopLogger{}, "user-2")

	if !state.InLobby() {
		t.Fatalf("Expected match to stay in the lobby when a non-owner starts")
	}
}

func TestBroadcastEventsFiltersDisconnectedRecipients(t *testing.T) {
	handler := &matchHandler{}
	botID := bot.GetBotIdentity(0).UserID
	state := newTestMatchState([app.MaxPlayersPerMatch]string{"user-1", botID, "", ""})
	state.OwnerSeat = 0
	state.SeatToPlayer[0] = 0
	state.SeatToPlayer[1] = 1
	state.PlayerToSeat = []int{0, 1}
	state.Presences["user-1"] = stubPresence{userID: "user-1", username: "Ada"}

	// Targeted at the connected human: delivered to exactly that presence.
	dispatcher := &mockDispatcher{}
	ev := app.NewEventFor(app.EventCardDealt, app.CardDealtPayload{}, 0)
	handler.broadcastEvents(state, dispatcher, noopLogger{}, []app.Event{ev})
	if dispatcher.broadcastCount != 1 {
		t.Fatalf("Expected 1 broadcast, got %d", dispatcher.broadcastCount)
	}
	if len(dispatcher.lastPresences) != 1 || dispatcher.lastPresences[0].GetUserId() != "user-1" {
		t.Fatalf("Expected delivery to user-1 only, got %v", dispatcher.lastPresences)
	}

	// Targeted at the bot: no connected recipients, nothing may be sent.
	dispatcher = &mockDispatcher{}
	ev = app.NewEventFor(app.EventCardDealt, app.CardDealtPayload{}, 1)
	handler.broadcastEvents(state, dispatcher, noopLogger{}, []app.Event{ev})
	if dispatcher.broadcastCount != 0 {
		t.Fatalf("Expected no broadcast for a bot-only event, got %d", dispatcher.broadcastCount)
	}

	// Broadcast events go to everyone.
	dispatcher = &mockDispatcher{}
	ev = app.NewEvent(app.EventTurnEnded, app.TurnEndedPayload{})
	handler.broadcastEvents(state, dispatcher, noopLogger{}, []app.Event{ev})
	if dispatcher.broadcastCount != 1 {
		t.Fatalf("Expected 1 broadcast, got %d", dispatcher.broadcastCount)
	}
	if dispatcher.lastPresences != nil {
		t.Fatalf("Expected nil presence filter for broadcast events, got %v", dispatcher.lastPresences)
	}
}

func TestSettlePersistsHumanProgressOnce(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}

	// A finished game: player 0 resolved every slot.
	winning := make([]domain.Card, 0, domain.HandSize)
	for _, rank := range domain.Ranks[:domain.HandSize] {
		winning = append(winning, domain.MustCard(rank, domain.SuitSpades).WithFaceUp(true))
	}
	losing := make([]domain.Card, 0, domain.HandSize)
	for _, rank := range domain.Ranks[:domain.HandSize] {
		losing = append(losing, domain.MustCard(rank, domain.SuitHearts))
	}
	gameState := &domain.GameState{
		Phase: domain.PhaseGameOver,
		Players: []domain.Player{
			{ID: 0, Name: "Ada", Hand: winning, Finished: true, LastFlippedSlot: 9},
			{ID: 1, Name: "Rex", Hand: losing, IsAI: true, LastFlippedSlot: -1},
		},
		DiceMultiplier: 1,
		Progression:    domain.NewSkillAbilityState(),
	}

	botID := bot.GetBotIdentity(0).UserID
	state := newTestMatchState([app.MaxPlayersPerMatch]string{"user-1", botID, "", ""})
	state.Dispatcher = newTestDispatcher(gameState)
	state.OwnerSeat = 0
	state.SeatToPlayer[0] = 0
	state.SeatToPlayer[1] = 1
	state.PlayerToSeat = []int{0, 1}
	progress := &mockProgress{}
	state.Progress = progress

	handler.settleIfNeeded(context.Background(), state, dispatcher, noopLogger{})

	if !state.Settled {
		t.Fatalf("Expected match to be marked settled")
	}
	if progress.saves != 1 {
		t.Fatalf("Expected exactly 1 progression save, got %d", progress.saves)
	}
	record, ok := progress.records["user-1"]
	if !ok {
		t.Fatalf("Expected a saved record for user-1")
	}
	if record.Progress.SP == 0 {
		t.Fatalf("Expected the winner's record to carry awarded skill points")
	}
	if !state.InLobby() {
		t.Fatalf("Expected table reset to the lobby after settling")
	}

	// A second pass must not settle again.
	handler.settleIfNeeded(context.Background(), state, dispatcher, noopLogger{})
	if progress.saves != 1 {
		t.Fatalf("Expected no further saves, got %d", progress.saves)
	}
}

func mustBrain(t *testing.T, level bot.BotLevel) bot.Brain {
	t.Helper()
	brain, err := bot.NewBrain(level)
	if err != nil {
		t.Fatalf("NewBrain: %v", err)
	}
	return brain
}
