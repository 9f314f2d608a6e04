package tcp

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/protocol"
)

// client owns one accepted connection: a reader loop in the server and a writer
// goroutine draining the outbound queue in order.
type client struct {
	id     string
	mark   entity.Mark
	conn   net.Conn
	logger *slog.Logger

	out  chan string
	quit chan struct{}
	done chan struct{}

	quitOnce  sync.Once
	closeOnce sync.Once
}

func newClient(logger *slog.Logger, id string, conn net.Conn, buffer int) *client {
	return &client{
		id:     id,
		conn:   conn,
		logger: logger.With("connID", id, "remote", conn.RemoteAddr().String()),

		out:  make(chan string, buffer),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Send - queues an event without blocking. A connection that cannot keep up is dropped.
func (that *client) Send(event protocol.Event) {
	select {
	case <-that.done:
		return
	default:
	}

	select {
	case that.out <- event.String():
	default:
		that.logger.Warn("outbound queue is full, dropping connection")
		that.Close()
	}
}

// writeLoop - writes queued lines until the connection is closed. After shutdown it
// flushes whatever is still queued and closes the socket.
func (that *client) writeLoop(wg *sync.WaitGroup) {
	defer wg.Done()

	writer := bufio.NewWriter(that.conn)

	for {
		select {
		case <-that.done:
			return
		case line := <-that.out:
			if err := that.write(writer, line); err != nil {
				that.logger.Info("write failed, closing connection", "error", err)
				that.Close()
				return
			}
		case <-that.quit:
			that.drain(writer)
			that.Close()
			return
		}
	}
}

func (that *client) drain(writer *bufio.Writer) {
	for {
		select {
		case line := <-that.out:
			if err := that.write(writer, line); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (that *client) write(writer *bufio.Writer, line string) error {
	if _, err := writer.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}

	// batch lines that are already queued into one flush
	if len(that.out) > 0 {
		return nil
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

// reject - tells a connection that could not be seated why, then closes it.
func (that *client) reject(event protocol.Event) {
	defer that.Close()

	if _, err := that.conn.Write([]byte(event.String() + "\n")); err != nil {
		that.logger.Info("failed to send rejection", "error", err)
	}
}

// shutdown - lets the writer flush pending events before the socket closes.
func (that *client) shutdown() {
	that.quitOnce.Do(func() {
		close(that.quit)
	})
}

// Close - closes the socket immediately. Safe to call more than once.
func (that *client) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
		if err := that.conn.Close(); err != nil {
			that.logger.Debug("failed to close connection", "error", err)
		}
	})
}

func (that *client) closed() bool {
	select {
	case <-that.done:
		return true
	default:
		return false
	}
}
