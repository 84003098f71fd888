package service

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// MoveSource picks the next 1-based cell for its side. Implementations must only
// return cells that are empty on the given board.
type MoveSource interface {
	ChooseMove(ctx context.Context, board entity.Board) (int, error)
}
