package repository

import (
	"context"

	"github.com/stridelog/backend/domain"
)

// ChallengeRepository persists challenges with their embedded tasks.
// Each write replaces the whole record; there is no partial update at this
// layer, which keeps operations all-or-nothing per entity.
type ChallengeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Challenge, error)
	List(ctx context.Context) ([]domain.Challenge, error)
	Put(ctx context.Context, challenge *domain.Challenge) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
