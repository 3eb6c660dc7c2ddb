package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type GameConfig struct {
	MinPlayers          int `json:"min_players"`
	MaxPlayers          int `json:"max_players"`
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding a bot to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// BotTurnDelayMillis paces bot actions so turns stay readable for humans.
	BotTurnDelayMillis int    `json:"bot_turn_delay_millis"`
	DefaultBotLevel    string `json:"default_bot_level"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetMinPlayers returns the configured table minimum, or a safe default.
func GetMinPlayers() int {
	if cfg == nil || cfg.MinPlayers < 2 {
		return 2
	}
	return cfg.MinPlayers
}

// GetMaxPlayers returns the configured table cap, or a safe default.
func GetMaxPlayers() int {
	if cfg == nil || cfg.MaxPlayers < GetMinPlayers() {
		return 4
	}
	return cfg.MaxPlayers
}

// GetTurnDurationSeconds returns the turn clock, or a safe default.
func GetTurnDurationSeconds() int {
	if cfg == nil || cfg.TurnDurationSeconds <= 0 {
		return 30
	}
	return cfg.TurnDurationSeconds
}

// GetBotTurnDelayMillis returns the bot pacing delay, or a safe default.
func GetBotTurnDelayMillis() int {
	if cfg == nil || cfg.BotTurnDelayMillis <= 0 {
		return 800
	}
	return cfg.BotTurnDelayMillis
}

// GetBotAutoFillDelaySeconds returns how long a solo human waits before bots
// fill the table, or a safe default.
func GetBotAutoFillDelaySeconds() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 5
	}
	return cfg.BotAutoFillDelaySeconds
}

// GetDefaultBotLevel returns the difficulty label used when a lobby does not
// ask for one.
func GetDefaultBotLevel() string {
	if cfg == nil || cfg.DefaultBotLevel == "" {
		return "medium"
	}
	return cfg.DefaultBotLevel
}
