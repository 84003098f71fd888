package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
	Printf(format string, args ...any)
}

// HumanPlayer asks the console for a cell until it gets an empty one.
type HumanPlayer struct {
	logger *slog.Logger
	input  prompter
}

func NewHumanPlayer(logger *slog.Logger, input prompter) *HumanPlayer {
	return &HumanPlayer{
		logger: logger.With("component", "human"),
		input:  input,
	}
}

func (that *HumanPlayer) ChooseMove(ctx context.Context, board entity.Board) (int, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	choices := FormatCells(availableCells)

	for {
		line, err := that.input.Prompt(ctx, fmt.Sprintf("\nChoose a spot %s: ", choices))
		if err != nil {
			return 0, fmt.Errorf("failed to read move: %w", err)
		}

		cell, err := ParseCell(line, availableCells)
		if err != nil {
			that.logger.Debug("rejected move", "input", line, "error", err)
			that.input.Printf("Invalid input, please choose from %s.\n", choices)
			continue
		}

		return cell, nil
	}
}

// ParseCell accepts an integer that is one of availableCells.
func ParseCell(input string, availableCells []int) (int, error) {
	cell, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", apperror.ErrInvalidInput, input)
	}

	if !slices.Contains(availableCells, cell) {
		return 0, fmt.Errorf("%w: cell %d is not available", apperror.ErrInvalidInput, cell)
	}

	return cell, nil
}

// FormatCells renders cells as "[1, 2, 3]".
func FormatCells(cells []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = strconv.Itoa(cell)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
