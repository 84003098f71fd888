package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
)

const winScore = 100

// Bot is the computer side. Easy picks a random empty cell, hard searches the full tree.
type Bot struct {
	mark       entity.Mark
	difficulty entity.Difficulty
	rules      *tictactoe.Rules
	rng        *rand.Rand
}

func NewBot(difficulty entity.Difficulty, mark entity.Mark, rules *tictactoe.Rules, rng *rand.Rand) *Bot {
	return &Bot{
		mark:       mark,
		difficulty: difficulty,
		rules:      rules,
		rng:        rng,
	}
}

func (that *Bot) ChooseMove(ctx context.Context, board entity.Board) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	switch that.difficulty {
	case entity.DifficultyEasy:
		return availableCells[that.rng.Intn(len(availableCells))], nil
	case entity.DifficultyHard:
		return that.bestMove(board, availableCells), nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", that.difficulty)
	}
}

// bestMove takes a winning cell, then a blocking cell, then the best minimax score.
// Equal scores resolve to the lowest cell.
func (that *Bot) bestMove(board entity.Board, availableCells []int) int {
	opponent := that.mark.Opponent()

	for _, mark := range []entity.Mark{that.mark, opponent} {
		for _, cell := range availableCells {
			next := board
			next[cell-1] = mark
			if that.rules.IsWinner(next, mark) {
				return cell
			}
		}
	}

	bestCell := availableCells[0]
	bestScore := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt

	for _, cell := range availableCells {
		next := board
		next[cell-1] = that.mark

		score := that.minimax(next, opponent, alpha, beta)
		if score > bestScore {
			bestScore = score
			bestCell = cell
		}

		alpha = max(alpha, bestScore)
	}

	return bestCell
}

// minimax scores board from the bot's side with toMove about to play.
// Quicker wins and slower losses score higher.
func (that *Bot) minimax(board entity.Board, toMove entity.Mark, alpha, beta int) int {
	switch result := that.rules.Result(board); result {
	case that.mark:
		return winScore + board.Count(entity.EmptyCell)
	case that.mark.Opponent():
		return -winScore - board.Count(entity.EmptyCell)
	case entity.PlayerTie:
		return 0
	}

	if toMove == that.mark {
		maxEval := math.MinInt
		for _, cell := range board.EmptyCells() {
			next := board
			next[cell-1] = toMove

			maxEval = max(maxEval, that.minimax(next, toMove.Opponent(), alpha, beta))
			alpha = max(alpha, maxEval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt
	for _, cell := range board.EmptyCells() {
		next := board
		next[cell-1] = toMove

		minEval = min(minEval, that.minimax(next, toMove.Opponent(), alpha, beta))
		beta = min(beta, minEval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}
