package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

// saveIfNewer writes the snapshot only when its version is above the stored one,
// so a late notification can never overwrite a newer board.
var saveIfNewer = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if current and tonumber(ARGV[2]) <= tonumber(current) then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ttl)
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ttl)
else
	redis.call('SET', KEYS[1], ARGV[1])
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// SnapshotRepository mirrors the latest render view of a running match for
// external renderers. Nothing is ever loaded back into a match.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot entity.Snapshot) error
	GetByID(ctx context.Context, matchID string) (*entity.Snapshot, error)
	DeleteByID(ctx context.Context, matchID string) error
}

type dbSnapshot struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotRepository - ttl <= 0 keeps snapshots until they are deleted.
func NewSnapshotRepository(client *redis.Client, ttl time.Duration) SnapshotRepository {
	return &dbSnapshot{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbSnapshot) Save(ctx context.Context, snapshot entity.Snapshot) error {
	if snapshot.MatchID == "" {
		return fmt.Errorf("could not save snapshot: %w", errEmptyMatchID)
	}

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	keys := []string{snapshotKey(snapshot.MatchID), versionKey(snapshot.MatchID)}
	err = saveIfNewer.Run(ctx, that.client, keys, snapshotJSON, snapshot.Version, that.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *dbSnapshot) GetByID(ctx context.Context, matchID string) (*entity.Snapshot, error) {
	response, err := that.client.Get(ctx, snapshotKey(matchID)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot by id: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

func (that *dbSnapshot) DeleteByID(ctx context.Context, matchID string) error {
	deleted, err := that.client.Del(ctx, snapshotKey(matchID), versionKey(matchID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSnapshotNotFound
	}

	return nil
}

var errEmptyMatchID = errors.New("empty match id")

func snapshotKey(matchID string) string {
	return "match:" + matchID
}

func versionKey(matchID string) string {
	return "match:" + matchID + ":version"
}
