package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type sessionStatus interface {
	Status() usecase.SessionStatus
}

type scoreBoard interface {
	Scores(ctx context.Context) (*entity.Scores, error)
}

type Server struct {
	logger  *slog.Logger
	session sessionStatus
	scores  scoreBoard
}

func New(logger *slog.Logger, session sessionStatus, scores scoreBoard) *Server {
	return &Server{
		logger:  logger.With("component", "http"),
		session: session,
		scores:  scores,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/status", that.statusHandler)
	mux.HandleFunc("/scores", that.scoresHandler)

	return mux
}

// Start - serves the status endpoints until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
