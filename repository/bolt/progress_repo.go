package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/stridelog/backend/domain"
	boltstore "github.com/stridelog/backend/internal/infrastructure/bolt"
	"github.com/stridelog/backend/repository"
)

type progressRepository struct {
	store *boltstore.Store
}

// NewProgressRepository returns a Bolt-backed implementation of ProgressRepository.
// Records are keyed challengeID/date, so the per-day upsert falls out of the
// key scheme and ListByChallenge is a prefix scan.
func NewProgressRepository(store *boltstore.Store) repository.ProgressRepository {
	return &progressRepository{store: store}
}

func progressKey(challengeID, date string) string {
	return challengeID + "/" + date
}

func (r *progressRepository) GetByDay(ctx context.Context, challengeID, date string) (*domain.DailyProgress, error) {
	var progress domain.DailyProgress
	if err := r.store.Get(boltstore.BucketProgress, progressKey(challengeID, date), &progress); err != nil {
		if errors.Is(err, boltstore.ErrKeyNotFound) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, domain.StorageError("get progress", err)
	}
	return &progress, nil
}

func (r *progressRepository) ListByChallenge(ctx context.Context, challengeID string) ([]domain.DailyProgress, error) {
	return r.scan(challengeID + "/")
}

func (r *progressRepository) List(ctx context.Context) ([]domain.DailyProgress, error) {
	return r.scan("")
}

func (r *progressRepository) scan(prefix string) ([]domain.DailyProgress, error) {
	var records []domain.DailyProgress
	err := r.store.Scan(boltstore.BucketProgress, prefix, func(key string, raw []byte) error {
		var progress domain.DailyProgress
		if err := json.Unmarshal(raw, &progress); err != nil {
			return err
		}
		records = append(records, progress)
		return nil
	})
	if err != nil {
		return nil, domain.StorageError("list progress", err)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records, nil
}

func (r *progressRepository) Put(ctx context.Context, progress *domain.DailyProgress) error {
	if progress == nil || progress.ChallengeID == "" || progress.Date == "" {
		return domain.ErrInvalidPayload
	}
	key := progressKey(progress.ChallengeID, progress.Date)
	if err := r.store.Put(boltstore.BucketProgress, key, progress); err != nil {
		return domain.StorageError("put progress", err)
	}
	return nil
}

func (r *progressRepository) DeleteByChallenge(ctx context.Context, challengeID string) error {
	if err := r.store.DeletePrefix(boltstore.BucketProgress, challengeID+"/"); err != nil {
		return domain.StorageError("delete progress", err)
	}
	return nil
}

func (r *progressRepository) DeleteAll(ctx context.Context) error {
	if err := r.store.Clear(boltstore.BucketProgress); err != nil {
		return domain.StorageError("clear progress", err)
	}
	return nil
}
