package match

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/tictactoe"
)

// DefaultAutoResetDelay is how long a finished round stays on screen before the
// next one starts.
const DefaultAutoResetDelay = time.Second

type Option func(*Controller)

// WithAutoResetDelay sets the delay before a concluded round is replaced.
// A delay <= 0 turns automatic resets off.
func WithAutoResetDelay(delay time.Duration) Option {
	return func(that *Controller) {
		that.delay = delay
	}
}

func WithSymbols(symbols entity.Symbols) Option {
	return func(that *Controller) {
		that.symbols = symbols
	}
}

func WithScheduler(scheduler Scheduler) Option {
	return func(that *Controller) {
		if scheduler != nil {
			that.scheduler = scheduler
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(that *Controller) {
		if logger != nil {
			that.logger = logger
		}
	}
}

// Controller owns one match and its active round. Every transition runs under
// a single mutex; listeners are notified after the mutex is released, one
// snapshot at a time and in commit order. Listeners must not call back into
// SubmitMove, ResetRound or ResetMatch.
type Controller struct {
	logger    *slog.Logger
	symbols   entity.Symbols
	delay     time.Duration
	scheduler Scheduler

	mu         sync.Mutex
	round      *entity.RoundState
	match      *entity.MatchState
	generation uint64
	version    uint64
	pending    Timer
	closed     bool

	listeners    map[int]func(entity.Snapshot)
	nextListener int

	notifyMu  sync.Mutex
	delivered uint64
}

// NewController - creates a match on a rows x columns board with P1 to move.
func NewController(rows, columns int, opts ...Option) (*Controller, error) {
	round, err := entity.NewRound(rows, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}

	controller := &Controller{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		symbols:   entity.DefaultSymbols(),
		delay:     DefaultAutoResetDelay,
		scheduler: clockScheduler{},

		round:     round,
		match:     entity.NewMatch(),
		listeners: make(map[int]func(entity.Snapshot)),
	}

	for _, opt := range opts {
		opt(controller)
	}

	controller.logger = controller.logger.With("component", "match")

	return controller, nil
}

// SubmitMove plays the current player's mark at (row, col). It reports false
// with no error when the round or match is already decided. Out-of-bounds and
// occupied cells are returned as errors and leave the state unchanged.
func (that *Controller) SubmitMove(row, col int) (bool, error) {
	log := that.logger.With("method", "SubmitMove")

	that.mu.Lock()

	if that.round.IsTerminal() || that.match.IsOver() {
		that.mu.Unlock()
		return false, nil
	}

	move, err := tictactoe.MakeMove(that.round, row, col)
	if err != nil {
		that.mu.Unlock()
		return false, fmt.Errorf("move rejected: %w", err)
	}

	switch that.round.Outcome {
	case entity.OutcomeWin:
		decided := that.match.RecordWin(that.round.Winner)
		log.Debug("round won", "winner", that.round.Winner, "match_decided", decided)

		if !decided {
			that.scheduleResetLocked()
		}
	case entity.OutcomeTie:
		log.Debug("round tied")
		that.scheduleResetLocked()
	case entity.OutcomeNone:
		log.Debug("move applied", "mark", move.Mark, "row", move.Row, "col", move.Col)
	}

	snapshot, listeners := that.commitLocked()
	that.mu.Unlock()

	that.notify(listeners, snapshot)

	return true, nil
}

// ResetRound starts a fresh round, keeping the scores. It is refused with
// ErrMatchOver once the match has a winner.
func (that *Controller) ResetRound() error {
	that.mu.Lock()

	if that.match.IsOver() {
		that.mu.Unlock()
		return apperror.ErrMatchOver
	}

	that.startRoundLocked()
	snapshot, listeners := that.commitLocked()
	that.mu.Unlock()

	that.notify(listeners, snapshot)

	return nil
}

// ResetMatch clears both scores and the match winner and starts a fresh round.
func (that *Controller) ResetMatch() {
	that.mu.Lock()

	that.match = entity.NewMatch()
	that.startRoundLocked()
	snapshot, listeners := that.commitLocked()
	that.mu.Unlock()

	that.notify(listeners, snapshot)
}

// Round returns a copy of the active round.
func (that *Controller) Round() *entity.RoundState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.round.Clone()
}

// Match returns a copy of the match scores and winner.
func (that *Controller) Match() *entity.MatchState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.match.Clone()
}

func (that *Controller) Snapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return entity.NewSnapshot(that.round, that.match, that.symbols, that.version)
}

// Subscribe registers fn for a snapshot after every transition, automatic
// round resets included. The returned func removes it.
func (that *Controller) Subscribe(fn func(entity.Snapshot)) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.nextListener
	that.nextListener++
	that.listeners[id] = fn

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		delete(that.listeners, id)
	}
}

// Close cancels a pending automatic reset. Later timer firings are ignored.
func (that *Controller) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	that.cancelPendingLocked()
}

func (that *Controller) scheduleResetLocked() {
	if that.delay <= 0 || that.closed {
		return
	}

	that.cancelPendingLocked()

	generation := that.generation
	that.pending = that.scheduler.AfterFunc(that.delay, func() {
		that.autoReset(generation)
	})
}

// autoReset runs on the timer goroutine. A firing that belongs to an older
// round, or arrives after the match was decided, does nothing.
func (that *Controller) autoReset(generation uint64) {
	log := that.logger.With("method", "autoReset")

	that.mu.Lock()

	if that.closed || generation != that.generation || !that.round.IsTerminal() || that.match.IsOver() {
		that.mu.Unlock()
		log.Debug("stale auto reset ignored", "generation", generation)
		return
	}

	that.pending = nil
	that.startRoundLocked()
	snapshot, listeners := that.commitLocked()
	that.mu.Unlock()

	log.Debug("round reset automatically")
	that.notify(listeners, snapshot)
}

func (that *Controller) startRoundLocked() {
	that.cancelPendingLocked()
	that.round = that.round.Next()
	that.generation++
}

func (that *Controller) cancelPendingLocked() {
	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}
}

func (that *Controller) commitLocked() (entity.Snapshot, []func(entity.Snapshot)) {
	that.version++

	listeners := make([]func(entity.Snapshot), 0, len(that.listeners))
	for _, fn := range that.listeners {
		listeners = append(listeners, fn)
	}

	return entity.NewSnapshot(that.round, that.match, that.symbols, that.version), listeners
}

// notify delivers one committed snapshot. A snapshot older than one already
// delivered is dropped, so listeners never step back to a superseded state.
func (that *Controller) notify(listeners []func(entity.Snapshot), snapshot entity.Snapshot) {
	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	if snapshot.Version <= that.delivered {
		that.logger.Debug("superseded snapshot dropped", "version", snapshot.Version, "delivered", that.delivered)
		return
	}
	that.delivered = snapshot.Version

	for _, fn := range listeners {
		fn(snapshot)
	}
}
