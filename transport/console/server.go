package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

var errQuit = errors.New("quit requested")

type uMatch interface {
	SubmitMove(row, col int) (entity.Snapshot, error)
	ResetRound() (entity.Snapshot, error)
	ResetMatch() entity.Snapshot
	Snapshot() entity.Snapshot
	Subscribe(fn func(entity.Snapshot)) func()
}

// Server is a line-oriented hot-seat front end. Board redraws come from match
// notifications, so automatic round resets show up without any input.
type Server struct {
	logger *slog.Logger
	uMatch uMatch

	outMu sync.Mutex
	out   io.Writer

	handlers map[string]func(ctx context.Context, args []string) error
}

func New(logger *slog.Logger, uMatch uMatch, out io.Writer) *Server {
	server := &Server{
		logger: logger.With("component", "console"),
		uMatch: uMatch,
		out:    out,

		handlers: make(map[string]func(context.Context, []string) error),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["reset"] = server.handleResetRound
	server.handlers["reset-match"] = server.handleResetMatch
	server.handlers["show"] = server.handleShow
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit

	return server
}

// Start - reads commands from in until EOF, "quit" or ctx cancellation.
func (that *Server) Start(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Start")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := that.uMatch.Subscribe(func(snapshot entity.Snapshot) {
		that.print(render(snapshot))
	})
	defer unsubscribe()

	that.print(helpText)
	that.print(render(that.uMatch.Snapshot()))

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("console stopped", "reason", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}

			err := that.handleLine(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				that.print(fmt.Sprintf("! %s\n", describe(err)))
				log.Debug("command rejected", "line", line, "error", err)
			}
		}
	}
}

// handleLine - dispatches one input line. A bare "row col" pair is a move.
func (that *Server) handleLine(ctx context.Context, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	if len(fields) == 2 {
		if _, err := strconv.Atoi(fields[0]); err == nil {
			return that.handleMove(ctx, fields)
		}
	}

	handler, ok := that.handlers[fields[0]]
	if !ok {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, fields[0])
	}

	return handler(ctx, fields[1:])
}

func (that *Server) print(text string) {
	that.outMu.Lock()
	defer that.outMu.Unlock()

	_, _ = io.WriteString(that.out, text)
}
