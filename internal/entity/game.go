package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// ParseDifficulty accepts "easy", "e", "hard" and "h" in any case.
func ParseDifficulty(input string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "easy", "e":
		return DifficultyEasy, nil
	case "hard", "h":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: difficulty %q", apperror.ErrInvalidInput, input)
	}
}

// Game is the record of one game between the human and the computer.
type Game struct {
	ID           string     `json:"id"`
	SessionID    string     `json:"session_id"`
	Board        Board      `json:"board"`
	Difficulty   Difficulty `json:"difficulty"`
	HumanMark    Mark       `json:"human_mark"`
	ComputerMark Mark       `json:"computer_mark"`
	Turn         Mark       `json:"player_turn"`
	Winner       Mark       `json:"winner"`
	Status       string     `json:"status"`
	Rounds       int        `json:"rounds"`
	StartedAt    time.Time  `json:"started_at"`
}

// NewGame returns an ongoing game with an empty board and X to move.
func NewGame(id, sessionID string, difficulty Difficulty, humanMark Mark) *Game {
	return &Game{
		ID:           id,
		SessionID:    sessionID,
		Difficulty:   difficulty,
		HumanMark:    humanMark,
		ComputerMark: humanMark.Opponent(),
		Turn:         PlayerX,
		Status:       StatusOngoing,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsHumanTurn() bool {
	return that.Turn == that.HumanMark
}

func (that *Game) HumanWon() bool {
	return that.IsFinished() && that.Winner == that.HumanMark
}

func (that *Game) ComputerWon() bool {
	return that.IsFinished() && that.Winner == that.ComputerMark
}

func (that *Game) IsTie() bool {
	return that.IsFinished() && that.Winner == PlayerTie
}
