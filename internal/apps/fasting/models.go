package fasting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FastingSession is one fast. EndedAt is null while the fast is running;
// at most one running session exists per user.
type FastingSession struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	Protocol      string         `gorm:"size:20;default:'16:8'" json:"protocol"`
	TargetHours   float64        `gorm:"not null" json:"target_hours"`
	StartedAt     time.Time      `gorm:"not null" json:"started_at"`
	EndedAt       *time.Time     `json:"ended_at"`
	DurationHours float64        `json:"duration_hours"`
	Completed     bool           `json:"completed"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

var Protocols = map[string]float64{
	"16:8":  16,
	"18:6":  18,
	"20:4":  20,
	"24:0":  24,
	"water": 72,
}

// --- DTOs ---

type StartFastRequest struct {
	Protocol    string  `json:"protocol" validate:"omitempty,oneof=16:8 18:6 20:4 24:0 water custom"`
	TargetHours float64 `json:"target_hours" validate:"omitempty,gt=0,lte=168"`
}

type StatusResponse struct {
	Active       *FastingSession `json:"active"`
	ElapsedHours float64         `json:"elapsed_hours"`
	Progress     float64         `json:"progress"`
}

type EndFastResponse struct {
	Session       FastingSession `json:"session"`
	PointsAwarded int            `json:"points_awarded"`
}
