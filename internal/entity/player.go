package entity

import (
	"errors"
	"fmt"
)

type Mode string

const (
	ModeHuman Mode = "human"
	ModeBot   Mode = "bot"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var (
	ErrUnknownMode       = errors.New("unknown game mode")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

func ParseMode(value string) (Mode, error) {
	switch mode := Mode(value); mode {
	case ModeHuman, ModeBot:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, value)
	}
}

func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(value); difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownDifficulty, value)
	}
}

// Settings - who plays which side. The human always plays X.
type Settings struct {
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	HumanMark  Mark       `json:"human_mark"`
	BotMark    Mark       `json:"bot_mark"`
}

func NewSettings(mode Mode, difficulty Difficulty) Settings {
	return Settings{
		Mode:       mode,
		Difficulty: difficulty,
		HumanMark:  PlayerX,
		BotMark:    PlayerO,
	}
}

func (that Settings) IsWithBot() bool {
	return that.Mode == ModeBot
}
