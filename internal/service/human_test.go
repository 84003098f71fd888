package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/console"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errTerminalGone = errors.New("terminal gone")

type mockPrompter struct {
	mock.Mock
}

func (m *mockPrompter) Prompt(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *mockPrompter) Printf(format string, args ...any) {
	m.Called(format, args)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHumanPlayer_ChooseMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Re-prompts until a valid cell is entered", func(t *testing.T) {
		// Given: a board where cell 5 is empty and input "abc", "10", "5"
		board := entity.Board{entity.PlayerX, entity.PlayerO}
		var out bytes.Buffer
		player := NewHumanPlayer(discardLogger(), console.New(strings.NewReader("abc\n10\n5\n"), &out))

		// When: the human picks a move
		cell, err := player.ChooseMove(ctx, board)

		// Then: two inputs are rejected and 5 is accepted
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
		assert.Equal(t, 2, strings.Count(out.String(), "Invalid input, please choose from [3, 4, 5, 6, 7, 8, 9]."))
		assert.Equal(t, 3, strings.Count(out.String(), "Choose a spot [3, 4, 5, 6, 7, 8, 9]: "))
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		board := entity.Board{entity.PlayerX}
		var out bytes.Buffer
		player := NewHumanPlayer(discardLogger(), console.New(strings.NewReader("1\n 2 \n"), &out))

		cell, err := player.ChooseMove(ctx, board)

		require.NoError(t, err)
		assert.Equal(t, 2, cell)
		assert.Equal(t, 1, strings.Count(out.String(), "Invalid input"))
	})

	t.Run("Returns input errors", func(t *testing.T) {
		// Given: a prompter whose terminal is gone
		prompter := &mockPrompter{}
		prompter.On("Prompt", ctx, mock.AnythingOfType("string")).Return("", errTerminalGone).Once()
		player := NewHumanPlayer(discardLogger(), prompter)

		// When: the human is asked for a move
		_, err := player.ChooseMove(ctx, entity.Board{})

		// Then: the error is passed up and nothing else is printed
		require.ErrorIs(t, err, errTerminalGone)
		prompter.AssertExpectations(t)
		prompter.AssertNotCalled(t, "Printf", mock.Anything, mock.Anything)
	})

	t.Run("Errors on a full board without prompting", func(t *testing.T) {
		prompter := &mockPrompter{}
		player := NewHumanPlayer(discardLogger(), prompter)
		board := entity.Board{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerX, entity.PlayerO, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
		}

		_, err := player.ChooseMove(ctx, board)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
		prompter.AssertNotCalled(t, "Prompt", mock.Anything, mock.Anything)
	})
}

func TestParseCell(t *testing.T) {
	available := []int{2, 5, 9}

	cell, err := ParseCell("9", available)
	require.NoError(t, err)
	assert.Equal(t, 9, cell)

	for _, input := range []string{"", "abc", "1", "10", "-5", "5.0"} {
		_, err = ParseCell(input, available)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, "input %q", input)
	}
}

func TestFormatCells(t *testing.T) {
	assert.Equal(t, "[1, 2, 3]", FormatCells([]int{1, 2, 3}))
	assert.Equal(t, "[]", FormatCells(nil))
}
