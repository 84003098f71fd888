package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-console/internal/service"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
)

const instructions = `
TicTacToe! You'll be randomly assigned X's or O's.
You'll be asked for a location you'd like to play.
To do so, type the number that corresponds to the
     spot you'd like to play on. Have fun!`

type consoleIO interface {
	Prompt(ctx context.Context, message string) (string, error)
	Printf(format string, args ...any)
	Println(args ...any)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
}

type tallyRepo interface {
	Save(ctx context.Context, sessionID string, tally entity.Tally) error
}

// ComputerFactory builds the computer side for a new game.
type ComputerFactory func(difficulty entity.Difficulty, mark entity.Mark) service.MoveSource

type Option func(*GameManager)

// WithRand seeds symbol assignment and the default computer.
func WithRand(rng *rand.Rand) Option {
	return func(that *GameManager) {
		that.rng = rng
	}
}

func WithComputer(factory ComputerFactory) Option {
	return func(that *GameManager) {
		that.newComputer = factory
	}
}

func WithHuman(human service.MoveSource) Option {
	return func(that *GameManager) {
		that.human = human
	}
}

// WithHumanMark replaces the coin flip that decides the human's symbol.
func WithHumanMark(pick func() entity.Mark) Option {
	return func(that *GameManager) {
		that.pickHumanMark = pick
	}
}

func WithSessionID(sessionID string) Option {
	return func(that *GameManager) {
		that.sessionID = sessionID
	}
}

// WithComputerPause waits for ENTER before every computer move.
func WithComputerPause(pause bool) Option {
	return func(that *GameManager) {
		that.computerPause = pause
	}
}

// GameManager runs games between the console player and the computer and keeps
// the session tally.
type GameManager struct {
	logger  *slog.Logger
	console consoleIO
	rules   *tictactoe.Rules

	gameRepo  gameRepo
	tallyRepo tallyRepo

	rng           *rand.Rand
	human         service.MoveSource
	newComputer   ComputerFactory
	pickHumanMark func() entity.Mark
	newGameID     func() string

	sessionID     string
	computerPause bool

	mu         sync.Mutex
	tally      entity.Tally
	finalScore sync.Once
}

func NewGameManager(logger *slog.Logger, console consoleIO, gameRepo gameRepo, tallyRepo tallyRepo, opts ...Option) *GameManager {
	that := &GameManager{
		logger:    logger.With("component", "game_manager"),
		console:   console,
		rules:     tictactoe.NewRules(),
		gameRepo:  gameRepo,
		tallyRepo: tallyRepo,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())), //nolint: gosec // it's ok
		newGameID: pkg.GenerateGameID,
		sessionID: pkg.GenerateNewSessionID(),
	}

	for _, opt := range opts {
		opt(that)
	}

	if that.human == nil {
		that.human = service.NewHumanPlayer(logger, console)
	}

	if that.newComputer == nil {
		that.newComputer = func(difficulty entity.Difficulty, mark entity.Mark) service.MoveSource {
			return service.NewBot(difficulty, mark, that.rules, that.rng)
		}
	}

	if that.pickHumanMark == nil {
		that.pickHumanMark = func() entity.Mark {
			if that.rng.Intn(2) == 0 {
				return entity.PlayerX
			}
			return entity.PlayerO
		}
	}

	return that
}

func (that *GameManager) SessionID() string {
	return that.sessionID
}

func (that *GameManager) Tally() entity.Tally {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.tally
}

// Interrupt prints the final score for a session stopped from outside, while
// Run may still be blocked on input. The score is printed once per session.
func (that *GameManager) Interrupt() entity.Tally {
	tally := that.Tally()

	that.logger.Info("session interrupted", "session", that.sessionID, "games", tally.Games())
	that.printFinalScore("\nSession interrupted. Final score:")

	return tally
}

// Run plays games until the player declines another one or the input closes,
// and returns the final tally.
func (that *GameManager) Run(ctx context.Context) (entity.Tally, error) {
	log := that.logger.With("method", "Run", "session", that.sessionID)
	log.Info("session started")

	that.console.Println(instructions)
	that.console.Println(entity.ReferenceBoard)

	err := that.playSession(ctx)
	if errors.Is(err, apperror.ErrInputClosed) {
		log.Info("input closed, ending session")
		that.console.Println()
		err = nil
	}

	if errors.Is(err, context.Canceled) {
		that.Interrupt()
		return that.Tally(), err
	}

	if err != nil {
		log.Error("session failed", "error", err)
		return that.Tally(), err
	}

	tally := that.Tally()
	that.printFinalScore("\nThanks for playing! Final score:")

	log.Info("session finished", "games", tally.Games(), "wins", tally.Wins, "losses", tally.Losses, "ties", tally.Ties)

	return tally, nil
}

func (that *GameManager) playSession(ctx context.Context) error {
	for {
		difficulty, err := that.askDifficulty(ctx)
		if err != nil {
			return err
		}

		game := that.NewGame(difficulty)
		that.console.Printf("You will be playing as %s's\n", game.HumanMark)

		computer := that.newComputer(difficulty, game.ComputerMark)
		if err = that.PlayGame(ctx, game, computer); err != nil {
			return err
		}

		that.printTally(that.Tally())

		again, err := that.askPlayAgain(ctx)
		if err != nil {
			return err
		}

		if !again {
			return nil
		}
	}
}

// NewGame starts a game record with a fresh board and randomly assigned symbols.
func (that *GameManager) NewGame(difficulty entity.Difficulty) *entity.Game {
	game := entity.NewGame(that.newGameID(), that.sessionID, difficulty, that.pickHumanMark())
	game.StartedAt = time.Now().UTC()

	that.logger.Info("game started",
		"game", game.ID,
		"difficulty", game.Difficulty,
		"human", game.HumanMark,
		"computer", game.ComputerMark,
	)

	return game
}

// PlayGame alternates moves until the game is won or tied, then records the result.
func (that *GameManager) PlayGame(ctx context.Context, game *entity.Game, computer service.MoveSource) error {
	log := that.logger.With("method", "PlayGame", "game", game.ID)

	for game.IsOngoing() {
		if err := ctx.Err(); err != nil {
			return err
		}

		source := that.human
		if !game.IsHumanTurn() {
			source = computer

			if err := that.announceComputerTurn(ctx); err != nil {
				return err
			}
		}

		cell, err := source.ChooseMove(ctx, game.Board)
		if err != nil {
			return fmt.Errorf("failed to choose move: %w", err)
		}

		mark := game.Turn
		if err = that.rules.MakeTurn(game, mark, cell); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		log.Debug("move applied", "mark", mark, "cell", cell, "rounds", game.Rounds)
		that.console.Printf("\n%s", game.Board.String())
	}

	// an interrupted session no longer owns the storage
	if err := ctx.Err(); err != nil {
		return err
	}

	that.finishGame(ctx, game)

	return nil
}

func (that *GameManager) announceComputerTurn(ctx context.Context) error {
	that.console.Println("\nComputer's turn...")

	if !that.computerPause {
		return nil
	}

	if _, err := that.console.Prompt(ctx, "Press ENTER to continue"); err != nil {
		return fmt.Errorf("failed to wait for ENTER: %w", err)
	}

	return nil
}

func (that *GameManager) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "game", game.ID)

	that.mu.Lock()
	that.tally.Record(game)
	tally := that.tally
	that.mu.Unlock()

	switch {
	case game.HumanWon():
		that.console.Println("\nYou win!")
	case game.ComputerWon():
		that.console.Println("\nThe computer wins.")
	default:
		that.console.Println("\nIt's a tie.")
	}

	log.Info("game finished", "winner", game.Winner, "rounds", game.Rounds)

	// the session goes on even when the records cannot be stored
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		log.Error("failed to save game", "error", err)
	}

	if err := that.tallyRepo.Save(ctx, that.sessionID, tally); err != nil {
		log.Error("failed to save tally", "error", err)
	}
}

func (that *GameManager) askDifficulty(ctx context.Context) (entity.Difficulty, error) {
	for {
		answer, err := that.console.Prompt(ctx, "\nSelect the difficulty (Easy/Hard): ")
		if err != nil {
			return "", fmt.Errorf("failed to read difficulty: %w", err)
		}

		difficulty, err := entity.ParseDifficulty(answer)
		if err == nil {
			return difficulty, nil
		}

		that.logger.Debug("rejected difficulty", "input", answer)
		that.console.Println("Invalid input. Please type 'easy' or 'hard'.")
	}
}

func (that *GameManager) askPlayAgain(ctx context.Context) (bool, error) {
	for {
		answer, err := that.console.Prompt(ctx, "Play again? (y/n) ")
		if err != nil {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}

		that.logger.Debug("rejected play again answer", "input", answer)
		that.console.Println("Please type either y or n.")
	}
}

func (that *GameManager) printFinalScore(header string) {
	that.finalScore.Do(func() {
		that.console.Println(header)
		that.printTally(that.Tally())
	})
}

func (that *GameManager) printTally(tally entity.Tally) {
	that.console.Printf("Wins: %d\nLosses: %d\nTies: %d\n", tally.Wins, tally.Losses, tally.Ties)
}
