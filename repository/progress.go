package repository

import (
	"context"

	"github.com/stridelog/backend/domain"
)

// ProgressRepository persists daily progress records. Keys are derived from
// (challengeId, date), so putting a record for an existing day is an upsert.
type ProgressRepository interface {
	GetByDay(ctx context.Context, challengeID, date string) (*domain.DailyProgress, error)
	ListByChallenge(ctx context.Context, challengeID string) ([]domain.DailyProgress, error)
	List(ctx context.Context) ([]domain.DailyProgress, error)
	Put(ctx context.Context, progress *domain.DailyProgress) error
	DeleteByChallenge(ctx context.Context, challengeID string) error
	DeleteAll(ctx context.Context) error
}
