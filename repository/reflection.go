package repository

import (
	"context"

	"github.com/stridelog/backend/domain"
)

// ReflectionRepository persists video reflections, one per (challengeId, day).
type ReflectionRepository interface {
	ListByChallenge(ctx context.Context, challengeID string) ([]domain.VideoReflection, error)
	List(ctx context.Context) ([]domain.VideoReflection, error)
	Put(ctx context.Context, reflection *domain.VideoReflection) error
	DeleteByChallenge(ctx context.Context, challengeID string) error
	DeleteAll(ctx context.Context) error
}
