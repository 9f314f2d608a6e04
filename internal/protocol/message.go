// Package protocol implements the line-oriented text protocol spoken between the server and
// its clients: one command or event per newline-terminated UTF-8 line, a verb followed by an
// optional payload separated by a single space.
package protocol

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
)

// Inbound verbs.
const (
	CmdConnect        = "CONNECT"
	CmdMove           = "MOVE"
	CmdNewGameRequest = "NEW_GAME_REQUEST"
	CmdChat           = "CHAT"
	CmdDisconnect     = "DISCONNECT"
)

// Outbound verbs.
const (
	EvtWelcome              = "WELCOME"
	EvtWaitingForOpponent   = "WAITING_FOR_OPPONENT"
	EvtOpponentConnected    = "OPPONENT_CONNECTED"
	EvtOpponentDisconnected = "OPPONENT_DISCONNECTED"
	EvtBoardUpdate          = "BOARD_UPDATE"
	EvtTurn                 = "TURN"
	EvtGameOver             = "GAME_OVER"
	EvtNewGameConfirmed     = "NEW_GAME_CONFIRMED"
	EvtChatMsg              = "CHAT_MSG"
	EvtError                = "ERROR"
)

const Draw = "DRAW"

// Command is a parsed inbound line.
type Command struct {
	Verb    string
	Payload string
}

// ParseCommand - splits a line into an upper-cased verb and the raw payload.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Command{}, fmt.Errorf("%w: empty line", apperror.ErrInvalidCommand)
	}

	if !utf8.ValidString(line) {
		return Command{}, fmt.Errorf("%w: not valid UTF-8", apperror.ErrInvalidCommand)
	}

	verb, payload, _ := strings.Cut(line, " ")

	return Command{Verb: strings.ToUpper(strings.TrimSpace(verb)), Payload: payload}, nil
}

// Event is an outbound line.
type Event struct {
	Verb    string
	Payload string
}

// String - renders the event without the trailing newline.
func (that Event) String() string {
	// A board update always carries its payload separator, even for an empty board.
	if that.Payload == "" && that.Verb != EvtBoardUpdate {
		return that.Verb
	}
	return that.Verb + " " + that.Payload
}

func Welcome(mark entity.Mark) Event {
	return Event{Verb: EvtWelcome, Payload: mark.String()}
}

func WaitingForOpponent() Event {
	return Event{Verb: EvtWaitingForOpponent}
}

func OpponentConnected(name string) Event {
	return Event{Verb: EvtOpponentConnected, Payload: name}
}

func OpponentDisconnected() Event {
	return Event{Verb: EvtOpponentDisconnected}
}

func BoardUpdate(board *entity.Board) Event {
	return Event{Verb: EvtBoardUpdate, Payload: board.Encode()}
}

func Turn(mark entity.Mark) Event {
	return Event{Verb: EvtTurn, Payload: mark.String()}
}

// GameOver - announces the winner, or a draw when winner is nil.
func GameOver(winner *entity.Mark) Event {
	if winner == nil {
		return Event{Verb: EvtGameOver, Payload: Draw}
	}
	return Event{Verb: EvtGameOver, Payload: winner.String()}
}

func NewGameConfirmed() Event {
	return Event{Verb: EvtNewGameConfirmed}
}

func ChatMsg(name string, mark entity.Mark, text string) Event {
	return Event{Verb: EvtChatMsg, Payload: fmt.Sprintf("%s (%s): %s", name, mark, text)}
}

func Error(msg string) Event {
	return Event{Verb: EvtError, Payload: msg}
}
