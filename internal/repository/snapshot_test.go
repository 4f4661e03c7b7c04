package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(matchID string, version uint64, phase entity.Phase) entity.Snapshot {
	return entity.Snapshot{
		MatchID:       matchID,
		Version:       version,
		Rows:          1,
		Columns:       3,
		Cells:         [][]string{{"X", "", "O"}},
		Phase:         phase,
		CurrentPlayer: "X",
		Scores:        entity.Scores{P1: 1, P2: 0},
	}
}

func TestSnapshotRepository_Save(t *testing.T) {
	t.Run("Save_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		snapshotRepo := NewSnapshotRepository(st.Storage, 0)

		// Given: a snapshot of a running match
		snapshot := newSnapshot("123", 1, entity.PhaseInRound)

		// When: Save is called
		err := snapshotRepo.Save(ctx, snapshot)

		// Then: no error should be returned, and the snapshot is stored
		require.NoError(t, err)

		stored, err := snapshotRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, snapshot, *stored)
	})

	t.Run("Save_FirstVersionZero", func(t *testing.T) {
		ctx, st := suite.New(t)

		snapshotRepo := NewSnapshotRepository(st.Storage, 0)

		// Given: the initial board of a new match carries version 0
		snapshot := newSnapshot("123", 0, entity.PhaseInRound)

		// When: Save is called with nothing stored yet
		err := snapshotRepo.Save(ctx, snapshot)

		// Then: the snapshot is stored and readable
		require.NoError(t, err)

		stored, err := snapshotRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, snapshot, *stored)

		// Then: a repeated version 0 does not overwrite it
		require.NoError(t, snapshotRepo.Save(ctx, newSnapshot("123", 0, entity.PhaseRoundTied)))
		stored, err = snapshotRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.PhaseInRound, stored.Phase)
	})

	t.Run("Save_IgnoresOlderVersion", func(t *testing.T) {
		ctx, st := suite.New(t)

		snapshotRepo := NewSnapshotRepository(st.Storage, 0)

		// Given: version 5 is stored
		newer := newSnapshot("123", 5, entity.PhaseRoundWon)
		require.NoError(t, snapshotRepo.Save(ctx, newer))

		// When: a late version 4 arrives
		err := snapshotRepo.Save(ctx, newSnapshot("123", 4, entity.PhaseInRound))

		// Then: it is dropped silently
		require.NoError(t, err)
		stored, err := snapshotRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, uint64(5), stored.Version)
		assert.Equal(t, entity.PhaseRoundWon, stored.Phase)
	})

	t.Run("Save_WithTTL", func(t *testing.T) {
		ctx, st := suite.New(t)

		snapshotRepo := NewSnapshotRepository(st.Storage, time.Minute)

		require.NoError(t, snapshotRepo.Save(ctx, newSnapshot("123", 1, entity.PhaseInRound)))

		ttl, err := st.Storage.PTTL(ctx, "match:123").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("Save_EmptyMatchID", func(t *testing.T) {
		ctx, st := suite.New(t)

		snapshotRepo := NewSnapshotRepository(st.Storage, 0)

		err := snapshotRepo.Save(ctx, newSnapshot("", 1, entity.PhaseInRound))

		require.Error(t, err)
	})
}

func TestSnapshotRepository_GetByID(t *testing.T) {
	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		snapshotRepo := NewSnapshotRepository(st.Storage, 0)

		// When: GetByID is called with non-existent ID
		snapshot, err := snapshotRepo.GetByID(ctx, "9999999")

		// Then: an ErrSnapshotNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSnapshotNotFound)
		assert.Nil(t, snapshot)
	})
}

func TestSnapshotRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		snapshotRepo := NewSnapshotRepository(st.Storage, 0)

		// Given: a stored snapshot
		require.NoError(t, snapshotRepo.Save(ctx, newSnapshot("123", 3, entity.PhaseInRound)))

		// When: DeleteByID is called with existing ID
		err := snapshotRepo.DeleteByID(ctx, "123")

		// Then: no error should be returned, and the snapshot is gone
		require.NoError(t, err)

		_, err = snapshotRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSnapshotNotFound)

		// Then: a new match under the same id starts from version 1 again
		require.NoError(t, snapshotRepo.Save(ctx, newSnapshot("123", 1, entity.PhaseInRound)))
		stored, err := snapshotRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), stored.Version)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		snapshotRepo := NewSnapshotRepository(st.Storage, 0)

		// When: DeleteByID is called with non-existent ID
		err := snapshotRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSnapshotNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSnapshotNotFound)
	})
}
