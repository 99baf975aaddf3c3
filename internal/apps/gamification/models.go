package gamification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GamificationState is the single per-user progression record: streak
// counters, XP, level and total points. Mutated at most once per UTC day.
type GamificationState struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	TotalPoints      int            `gorm:"default:0" json:"total_points"`
	CurrentLevel     int            `gorm:"default:1" json:"current_level"`
	CurrentXP        int            `gorm:"default:0" json:"current_xp"`
	XPToNextLevel    int            `gorm:"default:100" json:"xp_to_next_level"`
	CurrentStreak    int            `gorm:"default:0" json:"current_streak"`
	LongestStreak    int            `gorm:"default:0" json:"longest_streak"`
	LastActivityDate *time.Time     `gorm:"type:date" json:"last_activity_date"`
	Achievements     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"achievements"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type EventKind string

const (
	EventLevelUp   EventKind = "level_up"
	EventMilestone EventKind = "milestone"
)

// Event is a celebratory signal produced by a streak update. Events are not
// persisted; the handler layer turns them into notifications.
type Event struct {
	Kind   EventKind `json:"kind"`
	Level  int       `json:"level,omitempty"`
	Streak int       `json:"streak,omitempty"`
}

// StreakUpdate is the result of one UpdateStreak call.
type StreakUpdate struct {
	State    GamificationState `json:"state"`
	XPEarned int               `json:"xp_earned"`
	Events   []Event           `json:"events"`
}

// --- DTOs ---

type StateResponse struct {
	TotalPoints      int        `json:"total_points"`
	CurrentLevel     int        `json:"current_level"`
	CurrentXP        int        `json:"current_xp"`
	XPToNextLevel    int        `json:"xp_to_next_level"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`
}

type CheckinResponse struct {
	State    StateResponse `json:"state"`
	XPEarned int           `json:"xp_earned"`
	Events   []Event       `json:"events"`
}

type AchievementResponse struct {
	Name        string `json:"name"`
	Streak      int    `json:"streak"`
	Unlocked    bool   `json:"unlocked"`
	DaysToReach int    `json:"days_to_reach,omitempty"`
}
