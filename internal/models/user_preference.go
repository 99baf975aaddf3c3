package models

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference holds per-user settings for reminders and the weekly digest.
type UserPreference struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DigestOptIn  bool      `gorm:"default:false" json:"digest_opt_in"`
	ReminderHour int       `gorm:"default:9" json:"reminder_hour"`
	Timezone     string    `gorm:"size:64;default:'UTC'" json:"timezone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
}
