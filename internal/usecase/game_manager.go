package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/protocol"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/tictactoe"
)

const (
	StateWaitingForPlayers = "waiting_for_players"
	StateReadyNotStarted   = "ready_not_started"
	StateInProgress        = "in_progress"
	StateEnded             = "ended"
)

const abortedMessage = "game aborted: opponent disconnected"

// Notifier delivers events to one connection. Send must not block.
type Notifier interface {
	Send(event protocol.Event)
}

type scoreRepo interface {
	RecordWin(ctx context.Context, name string) error
	RecordDraw(ctx context.Context) error
}

type slot struct {
	player   *entity.Player
	notifier Notifier
}

// GameManager is the single authoritative session. Every operation runs under one mutex,
// and events are handed to the notifiers while it is held, so all connections observe
// broadcasts in mutation order.
type GameManager struct {
	logger    *slog.Logger
	scoreRepo scoreRepo
	rules     entity.Rules

	mu    sync.Mutex
	slots [entity.MarksCount]*slot
	game  *entity.Game
}

func NewGameManager(logger *slog.Logger, scoreRepo scoreRepo, rules entity.Rules) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "session"),
		scoreRepo: scoreRepo,
		rules:     rules,

		game: entity.NewGame(),
	}
}

// Join - reserves the first free mark slot for a new connection and greets it.
func (that *GameManager) Join(id string, notifier Notifier) (entity.Mark, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, mark := range entity.Marks {
		if that.slots[mark] != nil {
			continue
		}

		that.slots[mark] = &slot{
			player:   &entity.Player{ID: id, Mark: mark},
			notifier: notifier,
		}

		notifier.Send(protocol.Welcome(mark))
		if that.occupied() == 1 {
			notifier.Send(protocol.WaitingForOpponent())
		}

		that.logger.Info("player joined", "playerID", id, "mark", mark.String())

		return mark, nil
	}

	return entity.MarkX, apperror.ErrServerFull
}

// Connect - names the slot; once both players are named a game starts unless one is running.
func (that *GameManager) Connect(mark entity.Mark, name string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	current := that.slots[mark]
	if current == nil {
		return apperror.ErrSlotFree
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = entity.DefaultName(mark)
	}
	current.player.Name = name

	that.logger.Info("player named", "mark", mark.String(), "name", name)

	other := that.slots[mark.Opposite()]
	if other == nil || !other.player.IsNamed() {
		return nil
	}

	other.notifier.Send(protocol.OpponentConnected(current.player.Name))
	current.notifier.Send(protocol.OpponentConnected(other.player.Name))

	if !that.game.IsOngoing() {
		that.startGame()
	}

	return nil
}

// Move - places mark at coord for the requesting slot.
func (that *GameManager) Move(ctx context.Context, mark entity.Mark, coord entity.Coord) error {
	that.mu.Lock()

	if that.slots[mark] == nil {
		that.mu.Unlock()
		return apperror.ErrSlotFree
	}

	outcome, err := tictactoe.MakeTurn(that.game, that.rules, mark, coord)
	if err != nil {
		that.mu.Unlock()
		return fmt.Errorf("failed make turn: %w", err)
	}

	that.broadcast(protocol.BoardUpdate(that.game.Board))

	var winnerName string
	switch outcome {
	case tictactoe.OutcomeWin:
		winnerName = that.slots[mark].player.DisplayName()
		that.broadcast(protocol.GameOver(&mark))
		that.logger.Info("game won", "mark", mark.String(), "name", winnerName, "moves", that.game.Board.Len())
	case tictactoe.OutcomeDraw:
		that.broadcast(protocol.GameOver(nil))
		that.logger.Info("game drawn", "moves", that.game.Board.Len())
	default:
		that.broadcast(protocol.Turn(that.game.Turn))
	}

	that.mu.Unlock()

	that.recordOutcome(ctx, outcome, winnerName)

	return nil
}

// RequestRematch - restarts the game when both slots are occupied.
func (that *GameManager) RequestRematch(mark entity.Mark) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.occupied() < entity.MarksCount {
		return apperror.ErrNotEnoughPlayers
	}

	that.logger.Info("rematch requested", "mark", mark.String())
	that.startGame()

	return nil
}

// Chat - relays text from mark to every connection.
func (that *GameManager) Chat(mark entity.Mark, text string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	sender := that.slots[mark]
	if sender == nil {
		return apperror.ErrSlotFree
	}

	that.broadcast(protocol.ChatMsg(sender.player.DisplayName(), mark, text))

	return nil
}

// Disconnect - frees the slot held by connection id. A running game is aborted.
func (that *GameManager) Disconnect(mark entity.Mark, id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Disconnect")

	current := that.slots[mark]
	if current == nil || current.player.ID != id {
		log.Warn("disconnect for a slot the connection does not hold", "mark", mark.String(), "playerID", id)
		return
	}

	that.slots[mark] = nil
	log.Info("player left", "mark", mark.String(), "name", current.player.DisplayName())

	if that.game.IsOngoing() {
		that.game.Stop()
		that.broadcast(protocol.OpponentDisconnected())
		that.broadcast(protocol.Error(abortedMessage))
		log.Info("game aborted")
	}

	if that.occupied() == 1 {
		that.broadcast(protocol.WaitingForOpponent())
	}
}

// Status - returns a copy of the session state.
func (that *GameManager) Status() SessionStatus {
	that.mu.Lock()
	defer that.mu.Unlock()

	status := SessionStatus{
		State:   that.state(),
		Running: that.game.IsOngoing(),
		Moves:   that.game.Board.Len(),
	}

	if that.game.IsOngoing() {
		status.Turn = that.game.Turn.String()
	}

	if that.game.LastWinner != nil {
		status.LastWinner = that.game.LastWinner.String()
	}

	for _, mark := range entity.Marks {
		if that.slots[mark] == nil {
			continue
		}
		status.Players = append(status.Players, PlayerStatus{
			Mark: mark.String(),
			Name: that.slots[mark].player.Name,
		})
	}

	return status
}

func (that *GameManager) startGame() {
	that.game.Start()

	that.logger.Info("game started", "turn", that.game.Turn.String())

	that.broadcast(protocol.NewGameConfirmed())
	that.broadcast(protocol.BoardUpdate(that.game.Board))
	that.broadcast(protocol.Turn(that.game.Turn))
}

func (that *GameManager) recordOutcome(ctx context.Context, outcome tictactoe.Outcome, winnerName string) {
	if that.scoreRepo == nil {
		return
	}

	var err error
	switch outcome {
	case tictactoe.OutcomeWin:
		err = that.scoreRepo.RecordWin(ctx, winnerName)
	case tictactoe.OutcomeDraw:
		err = that.scoreRepo.RecordDraw(ctx)
	default:
		return
	}

	if err != nil {
		that.logger.Error("failed to record score", "outcome", outcome.String(), "error", err)
	}
}

func (that *GameManager) broadcast(event protocol.Event) {
	for _, current := range that.slots {
		if current != nil {
			current.notifier.Send(event)
		}
	}
}

func (that *GameManager) occupied() int {
	count := 0
	for _, current := range that.slots {
		if current != nil {
			count++
		}
	}
	return count
}

func (that *GameManager) state() string {
	switch {
	case that.occupied() < entity.MarksCount:
		return StateWaitingForPlayers
	case that.game.IsOngoing():
		return StateInProgress
	case that.game.IsFinished():
		return StateEnded
	default:
		return StateReadyNotStarted
	}
}
