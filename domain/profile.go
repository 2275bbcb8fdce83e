package domain

import "time"

// UserSettings is the application-wide preference record. Exactly one exists;
// it is created lazily on first save and overwritten thereafter.
type UserSettings struct {
	Theme         string   `json:"theme"`
	Notifications bool     `json:"notifications"`
	ReminderTimes []string `json:"reminderTimes"`
	Timezone      string   `json:"timezone"`
	Language      string   `json:"language"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() UserSettings {
	return UserSettings{
		Theme:         "light",
		Notifications: true,
		ReminderTimes: []string{"09:00", "18:00"},
		Timezone:      "UTC",
		Language:      "en",
	}
}

// Validate checks reminder times and theme.
func (s *UserSettings) Validate() error {
	if s == nil {
		return ErrInvalidPayload
	}
	if s.Theme != "light" && s.Theme != "dark" {
		return NewError(ErrCodeInvalid, "theme must be light or dark")
	}
	for _, rt := range s.ReminderTimes {
		if _, err := time.Parse("15:04", rt); err != nil {
			return WrapError(ErrCodeInvalid, "reminder time must be formatted as HH:MM", err)
		}
	}
	return nil
}

// UserProfile identifies the single local user. At most one record exists;
// the signature text feeds generated commitment letters.
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Signature string    `json:"signature,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
