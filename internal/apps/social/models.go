package social

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusInvited  = "invited"
	StatusAccepted = "accepted"
)

// Partnership links the inviting user to a partner. Status moves from
// invited to accepted; a declined invite is deleted, not kept.
type Partnership struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_partnership_pair" json:"user_id"`
	PartnerID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_partnership_pair" json:"partner_id"`
	Status    string    `gorm:"size:20;default:'invited'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- DTOs ---

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PartnerView struct {
	PartnershipID uuid.UUID `json:"partnership_id"`
	UserID        uuid.UUID `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	Incoming      bool      `json:"incoming"`
}

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	TotalPoints   int       `json:"total_points"`
	Level         int       `json:"level"`
	CurrentStreak int       `json:"current_streak"`
	IsSelf        bool      `json:"is_self"`
}
