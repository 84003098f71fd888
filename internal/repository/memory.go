package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// memoryGame keeps copies of the games so callers can keep mutating their own.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Game
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.Game),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = *game

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}

	return &game, nil
}

func (that *memoryGame) ListBySession(_ context.Context, sessionID string) ([]*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	games := make([]*entity.Game, 0)
	for _, game := range that.games {
		if game.SessionID == sessionID {
			games = append(games, &game)
		}
	}

	sortByStart(games)

	return games, nil
}

type memoryTally struct {
	mu      sync.RWMutex
	tallies map[string]entity.Tally
}

func NewMemoryTallyRepository() TallyRepository {
	return &memoryTally{
		tallies: make(map[string]entity.Tally),
	}
}

func (that *memoryTally) Save(_ context.Context, sessionID string, tally entity.Tally) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.tallies[sessionID] = tally

	return nil
}

func (that *memoryTally) GetBySessionID(_ context.Context, sessionID string) (entity.Tally, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	tally, ok := that.tallies[sessionID]
	if !ok {
		return entity.Tally{}, ErrTallyNotFound
	}

	return tally, nil
}
