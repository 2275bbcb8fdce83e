package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stridelog/backend/domain"
)

func records(completions map[string]int) []domain.DailyProgress {
	var out []domain.DailyProgress
	for date, pct := range completions {
		out = append(out, domain.DailyProgress{Date: date, CompletionPercentage: pct, Mood: 3})
	}
	return out
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name        string
		completions map[string]int
		want        int
	}{
		{"empty history", nil, 0},
		{
			"run broken by a low day",
			map[string]int{
				"2025-03-10": 80,
				"2025-03-11": 90,
				"2025-03-12": 40,
				"2025-03-13": 75,
				"2025-03-14": 85,
			},
			2,
		},
		{
			"gap between qualifying days breaks the streak",
			map[string]int{
				"2025-03-10": 80,
				"2025-03-11": 90,
				"2025-03-13": 75,
				"2025-03-14": 85,
			},
			2,
		},
		{
			"all qualifying consecutive",
			map[string]int{
				"2025-03-11": 70,
				"2025-03-12": 100,
				"2025-03-13": 75,
			},
			3,
		},
		{
			"latest day below threshold",
			map[string]int{
				"2025-03-12": 100,
				"2025-03-13": 69,
			},
			0,
		},
		{"single qualifying day", map[string]int{"2025-03-13": 70}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, currentStreak(records(tt.completions), DefaultStreakThreshold))
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name        string
		completions map[string]int
		want        int
	}{
		{"empty history", nil, 0},
		{
			"two runs split by a miss",
			map[string]int{
				"2025-03-10": 80,
				"2025-03-11": 90,
				"2025-03-12": 40,
				"2025-03-13": 75,
				"2025-03-14": 85,
			},
			2,
		},
		{
			"gap resets the run",
			map[string]int{
				"2025-03-01": 80,
				"2025-03-02": 90,
				"2025-03-03": 95,
				"2025-03-05": 75,
				"2025-03-06": 85,
			},
			3,
		},
		{
			"longest run is in the past",
			map[string]int{
				"2025-03-01": 80,
				"2025-03-02": 90,
				"2025-03-03": 95,
				"2025-03-04": 20,
				"2025-03-05": 75,
			},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, longestStreak(records(tt.completions), DefaultStreakThreshold))
		})
	}
}

func TestStreakThresholdIsConfigurable(t *testing.T) {
	history := records(map[string]int{
		"2025-03-12": 55,
		"2025-03-13": 60,
	})
	assert.Equal(t, 0, currentStreak(history, 70))
	assert.Equal(t, 2, currentStreak(history, 50))
}
