package bot

import (
	"fmt"
)

// BotLevel selects a strategy tier.
type BotLevel int

const (
	BotLevelGood BotLevel = iota
	BotLevelSmart
	BotLevelGod
)

// LevelFromDifficulty maps the identity-pool difficulty labels to levels.
func LevelFromDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "hard":
		return BotLevelGod
	case "medium":
		return BotLevelSmart
	default:
		return BotLevelGood
	}
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelGood:
		return &GoodBot{}, nil
	case BotLevelSmart:
		return NewSmartBot(), nil
	case BotLevelGod:
		return NewGodBot(), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
