package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameRepoFactory func(t *testing.T) (context.Context, GameRepository)

func redisGameRepo(t *testing.T) (context.Context, GameRepository) {
	ctx, st := suite.New(t)
	return ctx, NewGameRepository(st.Storage)
}

func memoryGameRepo(_ *testing.T) (context.Context, GameRepository) {
	return context.Background(), NewMemoryGameRepository()
}

func finishedGame(id, sessionID string, startedAt time.Time) *entity.Game {
	game := entity.NewGame(id, sessionID, entity.DifficultyEasy, entity.PlayerX)
	game.Board = entity.Board{entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerO, entity.PlayerO}
	game.Winner = entity.PlayerX
	game.Status = entity.StatusFinished
	game.Turn = entity.EmptyCell
	game.Rounds = 2
	game.StartedAt = startedAt.UTC()
	return game
}

func TestGameRepository(t *testing.T) {
	for name, factory := range map[string]gameRepoFactory{
		"redis":  redisGameRepo,
		"memory": memoryGameRepo,
	} {
		t.Run(name, func(t *testing.T) {
			testGameRepository(t, factory)
		})
	}
}

func testGameRepository(t *testing.T, newRepo gameRepoFactory) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a stored finished game
		game := finishedGame("123", "s1", time.Now())
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with its ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game matches the saved one
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// When: GetByID is called with an unknown ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, retrievedGame)
	})

	t.Run("CreateOrUpdate overwrites and keeps a copy", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: an ongoing game that is saved and then finished
		game := entity.NewGame("g1", "s1", entity.DifficultyHard, entity.PlayerO)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))
		game.Status = entity.StatusFinished

		stored, err := gameRepo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusOngoing, stored.Status)

		// When: the finished game is saved again
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// Then: the stored record is updated
		stored, err = gameRepo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFinished, stored.Status)
	})

	t.Run("ListBySession", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: two games in s1 stored out of order and one game in s2
		start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		second := finishedGame("b", "s1", start.Add(time.Minute))
		first := finishedGame("a", "s1", start)
		other := finishedGame("c", "s2", start)
		for _, game := range []*entity.Game{second, first, other} {
			require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))
		}

		// When: listing s1
		games, err := gameRepo.ListBySession(ctx, "s1")

		// Then: only s1 games come back, oldest first
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "a", games[0].ID)
		assert.Equal(t, "b", games[1].ID)

		empty, err := gameRepo.ListBySession(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}
