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

type challengeRepository struct {
	store *boltstore.Store
}

// NewChallengeRepository returns a Bolt-backed implementation of ChallengeRepository.
func NewChallengeRepository(store *boltstore.Store) repository.ChallengeRepository {
	return &challengeRepository{store: store}
}

func (r *challengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	var challenge domain.Challenge
	if err := r.store.Get(boltstore.BucketChallenges, id, &challenge); err != nil {
		if errors.Is(err, boltstore.ErrKeyNotFound) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, domain.StorageError("get challenge", err)
	}
	return &challenge, nil
}

func (r *challengeRepository) List(ctx context.Context) ([]domain.Challenge, error) {
	var challenges []domain.Challenge
	err := r.store.Scan(boltstore.BucketChallenges, "", func(key string, raw []byte) error {
		var challenge domain.Challenge
		if err := json.Unmarshal(raw, &challenge); err != nil {
			return err
		}
		challenges = append(challenges, challenge)
		return nil
	})
	if err != nil {
		return nil, domain.StorageError("list challenges", err)
	}
	sort.Slice(challenges, func(i, j int) bool {
		return challenges[i].CreatedAt.After(challenges[j].CreatedAt)
	})
	return challenges, nil
}

func (r *challengeRepository) Put(ctx context.Context, challenge *domain.Challenge) error {
	if challenge == nil || challenge.ID == "" {
		return domain.ErrInvalidPayload
	}
	if err := r.store.Put(boltstore.BucketChallenges, challenge.ID, challenge); err != nil {
		return domain.StorageError("put challenge", err)
	}
	return nil
}

func (r *challengeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if err := r.store.Delete(boltstore.BucketChallenges, id); err != nil {
		return domain.StorageError("delete challenge", err)
	}
	return nil
}

func (r *challengeRepository) DeleteAll(ctx context.Context) error {
	if err := r.store.Clear(boltstore.BucketChallenges); err != nil {
		return domain.StorageError("clear challenges", err)
	}
	return nil
}
