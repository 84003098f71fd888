package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// minMarksToWin is the fewest marks a side needs before a line can be complete.
const minMarksToWin = 3

// Line is a triple of 0-based board indices.
type Line [3]int

// defaultLines lists rows, then columns, then the two diagonals.
var defaultLines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Rules holds the winning lines and applies turns to a game.
type Rules struct {
	lines [8]Line
}

func NewRules() *Rules {
	return &Rules{lines: defaultLines}
}

// WinningLine returns the first line fully held by mark.
func (that *Rules) WinningLine(board entity.Board, mark entity.Mark) (Line, bool) {
	if !mark.IsPlaying() {
		return Line{}, false
	}

	for _, line := range that.lines {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return line, true
		}
	}

	return Line{}, false
}

func (that *Rules) IsWinner(board entity.Board, mark entity.Mark) bool {
	_, ok := that.WinningLine(board, mark)
	return ok
}

// Result returns the winning mark, PlayerTie for a full board without a winner,
// or EmptyCell while the game can go on.
func (that *Rules) Result(board entity.Board) entity.Mark {
	for _, mark := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
		if that.IsWinner(board, mark) {
			return mark
		}
	}

	if board.IsFull() {
		return entity.PlayerTie
	}

	return entity.EmptyCell
}

// MakeTurn applies a 1-based cell for mark and moves the game to its next state.
func (that *Rules) MakeTurn(game *entity.Game, mark entity.Mark, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := game.Board.ApplyMove(cell, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	// a round is complete once the second mover has played
	if mark == entity.PlayerO {
		game.Rounds++
	}

	that.updateGameStatus(game, mark)

	return nil
}

// updateGameStatus - checks the game status after a move by mark.
func (that *Rules) updateGameStatus(game *entity.Game, mark entity.Mark) {
	if game.Board.Count(mark) >= minMarksToWin && that.IsWinner(game.Board, mark) {
		game.Winner = mark
		game.Status = entity.StatusFinished
		game.Turn = entity.EmptyCell
		return
	}

	if game.Board.IsFull() {
		game.Winner = entity.PlayerTie
		game.Status = entity.StatusFinished
		game.Turn = entity.EmptyCell
		return
	}

	game.Turn = mark.Opponent()
}
