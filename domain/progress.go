package domain

// DailyProgress records which tasks were completed on one calendar day of a
// challenge. Exactly one record exists per (challengeId, date); re-recording
// the same date overwrites the prior entry.
type DailyProgress struct {
	ID                   string   `json:"id"`
	ChallengeID          string   `json:"challengeId"`
	Date                 string   `json:"date"`
	Day                  int      `json:"day"`
	CompletedTasks       []string `json:"completedTasks"`
	TotalTasks           int      `json:"totalTasks"`
	CompletionPercentage int      `json:"completionPercentage"`
	Notes                string   `json:"notes,omitempty"`
	Mood                 int      `json:"mood"`
}

// QuestionType classifies reflection answers.
type QuestionType string

const (
	QuestionText    QuestionType = "text"
	QuestionBoolean QuestionType = "boolean"
	QuestionRating  QuestionType = "rating"
)

// ReflectionQuestion is a single prompt/answer pair inside a reflection.
type ReflectionQuestion struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Type     QuestionType `json:"type"`
}

// VideoReflection captures the end-of-day recorded reflection for a challenge
// day. Independent of DailyProgress; both may exist for the same day.
type VideoReflection struct {
	ID          string               `json:"id"`
	ChallengeID string               `json:"challengeId"`
	Day         int                  `json:"day"`
	Date        string               `json:"date"`
	Duration    int                  `json:"duration"`
	Questions   []ReflectionQuestion `json:"questions"`
	Notes       string               `json:"notes,omitempty"`
	Mood        int                  `json:"mood"`
}

// ValidMood reports whether a mood value fits the 1..5 scale.
func ValidMood(mood int) bool {
	return mood >= 1 && mood <= 5
}
