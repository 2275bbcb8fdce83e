package progress

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/stridelog/backend/domain"
)

// Stats aggregates a challenge's progress history.
type Stats struct {
	ChallengeID       string  `json:"challengeId"`
	DaysRecorded      int     `json:"daysRecorded"`
	CurrentStreak     int     `json:"currentStreak"`
	LongestStreak     int     `json:"longestStreak"`
	AverageCompletion int     `json:"averageCompletion"`
	AverageMood       float64 `json:"averageMood"`
}

// Stats computes streaks and averages for one challenge.
func (uc *UseCase) Stats(ctx context.Context, challengeID string) (*Stats, error) {
	records, err := uc.History(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ChallengeID:   challengeID,
		DaysRecorded:  len(records),
		CurrentStreak: currentStreak(records, uc.threshold),
		LongestStreak: longestStreak(records, uc.threshold),
	}
	if len(records) > 0 {
		var completion, mood int
		for _, r := range records {
			completion += r.CompletionPercentage
			mood += r.Mood
		}
		stats.AverageCompletion = int(math.Round(float64(completion) / float64(len(records))))
		stats.AverageMood = math.Round(float64(mood)/float64(len(records))*10) / 10
	}
	return stats, nil
}

// A day qualifies when its completion percentage meets the threshold. Streaks
// run over consecutive calendar dates: a date with no record is a miss, so a
// gap breaks the run just like a low-completion day does.

func currentStreak(records []domain.DailyProgress, threshold int) int {
	if len(records) == 0 {
		return 0
	}
	sorted := sortedByDate(records)

	streak := 0
	var prev time.Time
	for i := len(sorted) - 1; i >= 0; i-- {
		day := sorted[i]
		date, err := time.Parse(domain.DateLayout, day.Date)
		if err != nil || day.CompletionPercentage < threshold {
			break
		}
		if streak > 0 && domain.DaysBetween(date, prev) != 1 {
			break
		}
		streak++
		prev = date
	}
	return streak
}

func longestStreak(records []domain.DailyProgress, threshold int) int {
	if len(records) == 0 {
		return 0
	}
	sorted := sortedByDate(records)

	longest, run := 0, 0
	var prev time.Time
	for _, day := range sorted {
		date, err := time.Parse(domain.DateLayout, day.Date)
		if err != nil || day.CompletionPercentage < threshold {
			run = 0
			continue
		}
		if run > 0 && domain.DaysBetween(prev, date) != 1 {
			run = 0
		}
		run++
		prev = date
		if run > longest {
			longest = run
		}
	}
	return longest
}

func sortedByDate(records []domain.DailyProgress) []domain.DailyProgress {
	sorted := make([]domain.DailyProgress, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}
