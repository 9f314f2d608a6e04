package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
)

const (
	winFieldPrefix = "win:"
	drawsField     = "draws"
)

// ScoreRepository keeps the win/draw tally of the running server.
type ScoreRepository interface {
	RecordWin(ctx context.Context, name string) error
	RecordDraw(ctx context.Context) error
	Scores(ctx context.Context) (*entity.Scores, error)
}

type dbScore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewScoreRepository - the tally lives in one hash per server run, so a restarted
// server starts from zero.
func NewScoreRepository(client *redis.Client, runID string, ttl time.Duration) ScoreRepository {
	return &dbScore{
		client: client,
		key:    "score:" + runID,
		ttl:    ttl,
	}
}

func (that *dbScore) RecordWin(ctx context.Context, name string) error {
	return that.increment(ctx, winFieldPrefix+name)
}

func (that *dbScore) RecordDraw(ctx context.Context) error {
	return that.increment(ctx, drawsField)
}

func (that *dbScore) increment(ctx context.Context, field string) error {
	pipe := that.client.TxPipeline()
	pipe.HIncrBy(ctx, that.key, field, 1)
	if that.ttl > 0 {
		pipe.Expire(ctx, that.key, that.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment %s: %w", field, err)
	}

	return nil
}

func (that *dbScore) Scores(ctx context.Context) (*entity.Scores, error) {
	fields, err := that.client.HGetAll(ctx, that.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	scores := entity.NewScores()
	for field, raw := range fields {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse score %s: %w", field, err)
		}

		if field == drawsField {
			scores.Draws = value
			continue
		}

		if name, ok := strings.CutPrefix(field, winFieldPrefix); ok {
			scores.Wins[name] = value
		}
	}

	return scores, nil
}
