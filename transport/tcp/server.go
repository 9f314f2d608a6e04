package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/protocol"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/usecase"
)

const (
	DefaultOutboundBuffer = 64

	maxLineLength = 64 * 1024
)

var errLineTooLong = fmt.Errorf("%w: line exceeds %d bytes", apperror.ErrInvalidCommand, maxLineLength)

type uGame interface {
	Join(id string, notifier usecase.Notifier) (entity.Mark, error)
	Connect(mark entity.Mark, name string) error
	Move(ctx context.Context, mark entity.Mark, coord entity.Coord) error
	RequestRematch(mark entity.Mark) error
	Chat(mark entity.Mark, text string) error
	Disconnect(mark entity.Mark, id string)
}

type handlerFunc func(ctx context.Context, c *client, payload string) error

// Server accepts game connections and adapts the line protocol to session calls.
type Server struct {
	logger         *slog.Logger
	uGame          uGame
	outboundBuffer int

	handlers map[string]handlerFunc

	mu      sync.Mutex
	clients map[*client]struct{}
	closing bool
	wg      sync.WaitGroup
}

func New(logger *slog.Logger, uGame uGame, outboundBuffer int) *Server {
	if outboundBuffer <= 0 {
		outboundBuffer = DefaultOutboundBuffer
	}

	server := &Server{
		logger:         logger.With("component", "tcp"),
		uGame:          uGame,
		outboundBuffer: outboundBuffer,

		handlers: make(map[string]handlerFunc),
		clients:  make(map[*client]struct{}),
	}

	server.handlers[protocol.CmdConnect] = server.handleConnect
	server.handlers[protocol.CmdMove] = server.handleMove
	server.handlers[protocol.CmdNewGameRequest] = server.handleNewGame
	server.handlers[protocol.CmdChat] = server.handleChat

	return server
}

// Start - listens on port and serves until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return that.Serve(ctx, listener)
}

// Serve - runs the accept loop on listener. Canceling ctx closes the listener and every
// live connection; Serve returns once all connection goroutines are done.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve")

	defer that.wg.Wait()

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		if err := listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Error("failed to close listener", "error", err)
		}
		that.closeAll()
	}()

	log.Info("accepting connections", "addr", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Info("listener closed")
				return nil
			}

			log.Error("failed to accept connection", "error", err)
			continue
		}

		that.accept(ctx, conn)
	}
}

// accept - seats the connection in a free slot or rejects it when both are taken.
func (that *Server) accept(ctx context.Context, conn net.Conn) {
	c := newClient(that.logger, uuid.NewString(), conn, that.outboundBuffer)

	mark, err := that.uGame.Join(c.id, c)
	if err != nil {
		c.logger.Info("connection rejected", "error", err)
		go c.reject(protocol.ErrorFor(err))
		return
	}

	c.mark = mark
	c.logger.Info("client connected", "mark", mark.String())

	if !that.track(c) {
		that.uGame.Disconnect(mark, c.id)
		c.Close()
		return
	}

	that.wg.Add(2)
	go c.writeLoop(&that.wg)
	go that.serveClient(ctx, c)
}

// serveClient - reads commands until end of stream, a read error or DISCONNECT.
func (that *Server) serveClient(ctx context.Context, c *client) {
	defer that.wg.Done()
	defer that.forget(c)

	reader := bufio.NewReaderSize(c.conn, maxLineLength)

	for {
		line, err := readLine(reader)
		if errors.Is(err, errLineTooLong) {
			c.logger.Debug("line dropped", "error", err)
			c.Send(protocol.ErrorFor(err))
			continue
		}

		// a final line may arrive without its newline
		if line != "" && !that.handleLine(ctx, c, line) {
			break
		}

		if err != nil {
			if !errors.Is(err, io.EOF) && !c.closed() {
				c.logger.Info("connection lost", "error", err)
			}
			break
		}
	}

	that.uGame.Disconnect(c.mark, c.id)
	c.shutdown()

	c.logger.Info("client disconnected")
}

// handleLine - runs one inbound line; false once the client asked to disconnect.
func (that *Server) handleLine(ctx context.Context, c *client, line string) bool {
	cmd, err := protocol.ParseCommand(line)
	if err != nil {
		c.Send(protocol.ErrorFor(err))
		return true
	}

	if cmd.Verb == protocol.CmdDisconnect {
		c.logger.Info("client requested disconnect")
		return false
	}

	if err = that.dispatch(ctx, c, cmd); err != nil {
		c.logger.Debug("request rejected", "verb", cmd.Verb, "error", err)
		c.Send(protocol.ErrorFor(err))
	}

	return true
}

// readLine - returns the next line with its newline. A line longer than the reader's
// buffer is consumed up to its newline and reported as errLineTooLong.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadSlice('\n')
	if !errors.Is(err, bufio.ErrBufferFull) {
		return string(line), err
	}

	for errors.Is(err, bufio.ErrBufferFull) {
		_, err = reader.ReadSlice('\n')
	}
	if err != nil {
		return "", err
	}

	return "", errLineTooLong
}

func (that *Server) dispatch(ctx context.Context, c *client, cmd protocol.Command) error {
	handler, ok := that.handlers[cmd.Verb]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrUnknownCommand, cmd.Verb)
	}

	return handler(ctx, c, cmd.Payload)
}

// track - registers a live client; false once the server is shutting down.
func (that *Server) track(c *client) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closing {
		return false
	}

	that.clients[c] = struct{}{}

	return true
}

func (that *Server) forget(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, c)
}

func (that *Server) closeAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closing = true
	for c := range that.clients {
		c.Close()
	}
}
