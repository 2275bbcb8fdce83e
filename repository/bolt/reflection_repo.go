package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/stridelog/backend/domain"
	boltstore "github.com/stridelog/backend/internal/infrastructure/bolt"
	"github.com/stridelog/backend/repository"
)

type reflectionRepository struct {
	store *boltstore.Store
}

// NewReflectionRepository returns a Bolt-backed implementation of ReflectionRepository.
// Keys are challengeID/day (day zero-padded so cursor order matches day order);
// recording a reflection for the same day overwrites the previous one.
func NewReflectionRepository(store *boltstore.Store) repository.ReflectionRepository {
	return &reflectionRepository{store: store}
}

func reflectionKey(challengeID string, day int) string {
	return fmt.Sprintf("%s/%04d", challengeID, day)
}

func (r *reflectionRepository) ListByChallenge(ctx context.Context, challengeID string) ([]domain.VideoReflection, error) {
	return r.scan(challengeID + "/")
}

func (r *reflectionRepository) List(ctx context.Context) ([]domain.VideoReflection, error) {
	return r.scan("")
}

func (r *reflectionRepository) scan(prefix string) ([]domain.VideoReflection, error) {
	var reflections []domain.VideoReflection
	err := r.store.Scan(boltstore.BucketReflections, prefix, func(key string, raw []byte) error {
		var reflection domain.VideoReflection
		if err := json.Unmarshal(raw, &reflection); err != nil {
			return err
		}
		reflections = append(reflections, reflection)
		return nil
	})
	if err != nil {
		return nil, domain.StorageError("list reflections", err)
	}
	sort.Slice(reflections, func(i, j int) bool {
		if reflections[i].ChallengeID != reflections[j].ChallengeID {
			return reflections[i].ChallengeID < reflections[j].ChallengeID
		}
		return reflections[i].Day < reflections[j].Day
	})
	return reflections, nil
}

func (r *reflectionRepository) Put(ctx context.Context, reflection *domain.VideoReflection) error {
	if reflection == nil || reflection.ChallengeID == "" || reflection.Day < 1 {
		return domain.ErrInvalidPayload
	}
	key := reflectionKey(reflection.ChallengeID, reflection.Day)
	if err := r.store.Put(boltstore.BucketReflections, key, reflection); err != nil {
		return domain.StorageError("put reflection", err)
	}
	return nil
}

func (r *reflectionRepository) DeleteByChallenge(ctx context.Context, challengeID string) error {
	if err := r.store.DeletePrefix(boltstore.BucketReflections, challengeID+"/"); err != nil {
		return domain.StorageError("delete reflections", err)
	}
	return nil
}

func (r *reflectionRepository) DeleteAll(ctx context.Context) error {
	if err := r.store.Clear(boltstore.BucketReflections); err != nil {
		return domain.StorageError("clear reflections", err)
	}
	return nil
}
