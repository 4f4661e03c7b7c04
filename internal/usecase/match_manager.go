package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

const defaultSaveTimeout = 2 * time.Second

type snapshotRepo interface {
	Save(ctx context.Context, snapshot entity.Snapshot) error
	DeleteByID(ctx context.Context, matchID string) error
}

type matchController interface {
	SubmitMove(row, col int) (bool, error)
	ResetRound() error
	ResetMatch()
	Snapshot() entity.Snapshot
	Subscribe(fn func(entity.Snapshot)) func()
	Close()
}

// MatchManager hosts one match for a presentation layer. It logs round and
// match results and mirrors every snapshot to the snapshot repository.
type MatchManager struct {
	logger       *slog.Logger
	id           string
	controller   matchController
	snapshotRepo snapshotRepo

	mu          sync.Mutex
	ctx         context.Context
	lastPhase   entity.Phase
	unsubscribe func()
}

// NewMatchManager - snapshotRepo may be nil, then snapshots are not mirrored.
func NewMatchManager(logger *slog.Logger, controller matchController, snapshotRepo snapshotRepo) *MatchManager {
	id := uuid.NewString()

	return &MatchManager{
		logger:       logger.With("component", "match_manager", "match_id", id),
		id:           id,
		controller:   controller,
		snapshotRepo: snapshotRepo,
		ctx:          context.Background(),
		lastPhase:    entity.PhaseInRound,
	}
}

func (that *MatchManager) ID() string {
	return that.id
}

// Start - subscribes to match transitions and mirrors the initial state.
// ctx bounds every later mirror write.
func (that *MatchManager) Start(ctx context.Context) error {
	unsubscribe := that.controller.Subscribe(that.onTransition)

	that.mu.Lock()
	that.ctx = ctx
	that.unsubscribe = unsubscribe
	that.mu.Unlock()

	if err := that.mirror(that.Snapshot()); err != nil {
		return fmt.Errorf("failed to mirror initial snapshot: %w", err)
	}

	that.logger.Info("match started")

	return nil
}

// SubmitMove returns the snapshot after the move. A move on a decided round is
// ignored and returns the unchanged snapshot without error.
func (that *MatchManager) SubmitMove(row, col int) (entity.Snapshot, error) {
	applied, err := that.controller.SubmitMove(row, col)
	if err != nil {
		return that.Snapshot(), fmt.Errorf("failed make move: %w", err)
	}

	if !applied {
		that.logger.Debug("move ignored, round is decided", "row", row, "col", col)
	}

	return that.Snapshot(), nil
}

func (that *MatchManager) ResetRound() (entity.Snapshot, error) {
	if err := that.controller.ResetRound(); err != nil {
		return that.Snapshot(), fmt.Errorf("failed reset round: %w", err)
	}

	return that.Snapshot(), nil
}

func (that *MatchManager) ResetMatch() entity.Snapshot {
	that.controller.ResetMatch()

	return that.Snapshot()
}

func (that *MatchManager) Snapshot() entity.Snapshot {
	snapshot := that.controller.Snapshot()
	snapshot.MatchID = that.id

	return snapshot
}

// Subscribe forwards match transitions, stamped with the match id.
func (that *MatchManager) Subscribe(fn func(entity.Snapshot)) func() {
	return that.controller.Subscribe(func(snapshot entity.Snapshot) {
		snapshot.MatchID = that.id
		fn(snapshot)
	})
}

// Close stops the match and removes its mirrored snapshot.
func (that *MatchManager) Close(ctx context.Context) {
	log := that.logger.With("method", "Close")

	that.mu.Lock()
	unsubscribe := that.unsubscribe
	that.unsubscribe = nil
	that.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	that.controller.Close()

	if that.snapshotRepo == nil {
		return
	}

	if err := that.snapshotRepo.DeleteByID(ctx, that.id); err != nil && !errors.Is(err, apperror.ErrSnapshotNotFound) {
		log.Error("failed to delete snapshot", "error", err)
	}

	log.Info("match closed")
}

func (that *MatchManager) onTransition(snapshot entity.Snapshot) {
	snapshot.MatchID = that.id
	that.logTransition(snapshot)

	if err := that.mirror(snapshot); err != nil {
		that.logger.Error("failed to mirror snapshot", "version", snapshot.Version, "error", err)
	}
}

func (that *MatchManager) logTransition(snapshot entity.Snapshot) {
	that.mu.Lock()
	previous := that.lastPhase
	that.lastPhase = snapshot.Phase
	that.mu.Unlock()

	if previous == snapshot.Phase {
		return
	}

	log := that.logger.With("scores", snapshot.Scores)

	switch snapshot.Phase {
	case entity.PhaseRoundWon:
		log.Info("round won", "winner", snapshot.RoundWinner)
	case entity.PhaseRoundTied:
		log.Info("round tied")
	case entity.PhaseMatchOver:
		log.Info("match won", "winner", snapshot.MatchWinner)
	case entity.PhaseInRound:
		log.Info("new round started")
	}
}

func (that *MatchManager) mirror(snapshot entity.Snapshot) error {
	if that.snapshotRepo == nil {
		return nil
	}

	that.mu.Lock()
	base := that.ctx
	that.mu.Unlock()

	ctx, cancel := context.WithTimeout(base, defaultSaveTimeout)
	defer cancel()

	if err := that.snapshotRepo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}
