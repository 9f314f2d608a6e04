package tcp

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
)

func (that *Server) handleConnect(_ context.Context, c *client, payload string) error {
	if err := that.uGame.Connect(c.mark, payload); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	return nil
}

func (that *Server) handleMove(ctx context.Context, c *client, payload string) error {
	coord, err := entity.ParseCoord(payload)
	if err != nil {
		return err
	}

	if err = that.uGame.Move(ctx, c.mark, coord); err != nil {
		return fmt.Errorf("failed to move: %w", err)
	}

	return nil
}

func (that *Server) handleNewGame(_ context.Context, c *client, _ string) error {
	if err := that.uGame.RequestRematch(c.mark); err != nil {
		return fmt.Errorf("failed to start new game: %w", err)
	}

	return nil
}

func (that *Server) handleChat(_ context.Context, c *client, payload string) error {
	if err := that.uGame.Chat(c.mark, payload); err != nil {
		return fmt.Errorf("failed to chat: %w", err)
	}

	return nil
}
