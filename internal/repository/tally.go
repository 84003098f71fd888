package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

var ErrTallyNotFound = fmt.Errorf("tally %w", apperror.ErrNotFound)

type TallyRepository interface {
	Save(ctx context.Context, sessionID string, tally entity.Tally) error
	GetBySessionID(ctx context.Context, sessionID string) (entity.Tally, error)
}

type dbTally struct {
	client *redis.Client
}

func NewTallyRepository(client *redis.Client) TallyRepository {
	return &dbTally{
		client: client,
	}
}

func tallyKey(sessionID string) string {
	return "tally:" + sessionID
}

func (that *dbTally) Save(ctx context.Context, sessionID string, tally entity.Tally) error {
	tallyJSON, err := json.Marshal(tally)
	if err != nil {
		return fmt.Errorf("could not marshal tally: %w", err)
	}

	if err = that.client.Set(ctx, tallyKey(sessionID), tallyJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set tally: %w", err)
	}

	return nil
}

func (that *dbTally) GetBySessionID(ctx context.Context, sessionID string) (entity.Tally, error) {
	response, err := that.client.Get(ctx, tallyKey(sessionID)).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Tally{}, ErrTallyNotFound
	}

	if err != nil {
		return entity.Tally{}, fmt.Errorf("failed to get tally: %w", err)
	}

	var tally entity.Tally
	if err = json.Unmarshal([]byte(response), &tally); err != nil {
		return entity.Tally{}, fmt.Errorf("failed to unmarshal tally: %w", err)
	}

	return tally, nil
}
