package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

// Opponent returns the other playing mark. Anything that is not X maps to X.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlaying() bool {
	return that == PlayerX || that == PlayerO
}

// Board is the 3x3 grid stored row-major. Cells are addressed 1..9 from the outside.
type Board [BoardSize]Mark

// EmptyCells returns the 1-based indices of the empty cells in ascending order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, mark := range that {
		if mark == EmptyCell {
			cells = append(cells, i+1)
		}
	}
	return cells
}

// ApplyMove places mark on the 1-based cell. An occupied cell is never overwritten.
func (that *Board) ApplyMove(cell int, mark Mark) error {
	if cell < 1 || cell > BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !mark.IsPlaying() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that[cell-1] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that[cell-1] = mark

	return nil
}

// Count returns how many cells hold mark.
func (that *Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}
	return n
}

func (that *Board) IsFull() bool {
	return that.Count(EmptyCell) == 0
}

// String renders the board the way it is shown after every move.
func (that *Board) String() string {
	cell := func(i int) string {
		if that[i] == EmptyCell {
			return " "
		}
		return string(that[i])
	}

	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("                ---+---+---\n")
		}
		fmt.Fprintf(&sb, "                 %s | %s | %s \n", cell(row*3), cell(row*3+1), cell(row*3+2))
	}

	return sb.String()
}

// ReferenceBoard is the numbered board printed once at startup.
const ReferenceBoard = `                 1 | 2 | 3 
                ---+---+---
                 4 | 5 | 6 
                ---+---+---
                 7 | 8 | 9 
`
