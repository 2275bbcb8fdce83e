package transport

// TaskRequest carries one task inside a challenge payload.
type TaskRequest struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	Time              string `json:"time,omitempty"`
	Description       string `json:"description,omitempty"`
	Priority          string `json:"priority"`
	EstimatedDuration int    `json:"estimatedDuration"`
}

// ChallengeRequest is the create payload for a challenge.
type ChallengeRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	StartDate   string        `json:"startDate"`
	TotalDays   int           `json:"totalDays"`
	Status      string        `json:"status,omitempty"`
	Rules       []string      `json:"rules,omitempty"`
	Tasks       []TaskRequest `json:"tasks,omitempty"`
	Color       string        `json:"color,omitempty"`
	Icon        string        `json:"icon,omitempty"`
}

// ChallengeUpdateRequest is a partial update; absent fields are left alone.
type ChallengeUpdateRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	StartDate   *string   `json:"startDate,omitempty"`
	TotalDays   *int      `json:"totalDays,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Rules       *[]string `json:"rules,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
}

// TaskUpdateRequest is a partial update of one task.
type TaskUpdateRequest struct {
	Name              *string `json:"name,omitempty"`
	Category          *string `json:"category,omitempty"`
	Time              *string `json:"time,omitempty"`
	Description       *string `json:"description,omitempty"`
	Priority          *string `json:"priority,omitempty"`
	EstimatedDuration *int    `json:"estimatedDuration,omitempty"`
	Completed         *bool   `json:"completed,omitempty"`
}

// ProgressRequest records today's progress for a challenge.
type ProgressRequest struct {
	CompletedTasks []string `json:"completedTasks"`
	Notes          string   `json:"notes,omitempty"`
	Mood           int      `json:"mood,omitempty"`
}

// QuestionRequest is one prompt/answer pair inside a reflection payload.
type QuestionRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Type     string `json:"type"`
}

// ReflectionRequest records an end-of-day reflection.
type ReflectionRequest struct {
	Duration  int               `json:"duration"`
	Questions []QuestionRequest `json:"questions,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	Mood      int               `json:"mood"`
}

// SettingsRequest is the full settings payload; saving overwrites the record.
type SettingsRequest struct {
	Theme         string   `json:"theme"`
	Notifications bool     `json:"notifications"`
	ReminderTimes []string `json:"reminderTimes"`
	Timezone      string   `json:"timezone"`
	Language      string   `json:"language"`
}

// ProfileRequest is the editable profile payload.
type ProfileRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Signature string `json:"signature,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// CommitmentRequest asks for a commitment letter, optionally witnessed.
type CommitmentRequest struct {
	WitnessName string `json:"witnessName,omitempty"`
}
