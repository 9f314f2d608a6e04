package repository

import (
	"context"
	"maps"
	"sync"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
)

type memScore struct {
	mu     sync.Mutex
	scores *entity.Scores
}

// NewMemoryScoreRepository - used when Redis is disabled.
func NewMemoryScoreRepository() ScoreRepository {
	return &memScore{scores: entity.NewScores()}
}

func (that *memScore) RecordWin(_ context.Context, name string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores.Wins[name]++

	return nil
}

func (that *memScore) RecordDraw(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores.Draws++

	return nil
}

func (that *memScore) Scores(_ context.Context) (*entity.Scores, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return &entity.Scores{Wins: maps.Clone(that.scores.Wins), Draws: that.scores.Draws}, nil
}
