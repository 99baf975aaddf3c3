package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnergyLog is a point-in-time energy reading with an optional mood label.
type EnergyLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	Level      int            `gorm:"not null" json:"level"`
	Mood       string         `gorm:"size:50" json:"mood"`
	Note       string         `gorm:"type:varchar(500)" json:"note"`
	OccurredAt time.Time      `gorm:"index" json:"occurred_at"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

type FocusSession struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	DurationMinutes int            `gorm:"not null" json:"duration_minutes"`
	Task            string         `gorm:"size:200" json:"task"`
	OccurredAt      time.Time      `gorm:"index" json:"occurred_at"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

type Workout struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	Type            string         `gorm:"size:50" json:"type"`
	DurationMinutes int            `gorm:"not null" json:"duration_minutes"`
	Intensity       string         `gorm:"size:20" json:"intensity"`
	OccurredAt      time.Time      `gorm:"index" json:"occurred_at"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

type SleepLog struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	DurationHours float64        `gorm:"not null" json:"duration_hours"`
	Quality       int            `json:"quality"`
	OccurredAt    time.Time      `gorm:"index" json:"occurred_at"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

var WorkoutIntensities = []string{"low", "moderate", "high"}

// --- DTOs ---

type CreateEnergyLogRequest struct {
	Level      int        `json:"level" validate:"required,min=1,max=100"`
	Mood       string     `json:"mood" validate:"max=50"`
	Note       string     `json:"note" validate:"max=500"`
	OccurredAt *time.Time `json:"occurred_at"`
}

type CreateFocusSessionRequest struct {
	DurationMinutes int        `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Task            string     `json:"task" validate:"max=200"`
	OccurredAt      *time.Time `json:"occurred_at"`
}

type CreateWorkoutRequest struct {
	Type            string     `json:"type" validate:"required,max=50"`
	DurationMinutes int        `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Intensity       string     `json:"intensity"`
	OccurredAt      *time.Time `json:"occurred_at"`
}

type CreateSleepLogRequest struct {
	DurationHours float64    `json:"duration_hours" validate:"required,gt=0,lte=24"`
	Quality       int        `json:"quality" validate:"min=0,max=10"`
	OccurredAt    *time.Time `json:"occurred_at"`
}

type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
