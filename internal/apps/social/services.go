package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/humanos-app/humanos-backend/internal/apps/gamification"
	"github.com/humanos-app/humanos-backend/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("no user with that email")
	ErrSelfInvite         = errors.New("cannot invite yourself")
	ErrAlreadyPartnered   = errors.New("partnership already exists")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrNotInviteRecipient = errors.New("invite addressed to another user")
)

const leaderboardTTL = 60 * time.Second

type Service struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewService(db *gorm.DB, redisClient *redis.Client) *Service {
	return &Service{db: db, redis: redisClient}
}

// Invite creates a pending partnership addressed to the user behind the
// given email. Duplicate invites in either direction are rejected.
func (s *Service) Invite(userID uuid.UUID, email string) (*Partnership, error) {
	var invitee models.User
	err := s.db.Where("email = ?", email).First(&invitee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if invitee.ID == userID {
		return nil, ErrSelfInvite
	}

	var existing int64
	err = s.db.Model(&Partnership{}).
		Where("(user_id = ? AND partner_id = ?) OR (user_id = ? AND partner_id = ?)",
			userID, invitee.ID, invitee.ID, userID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check partnerships: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyPartnered
	}

	partnership := Partnership{
		ID:        uuid.New(),
		UserID:    userID,
		PartnerID: invitee.ID,
		Status:    StatusInvited,
	}
	if err := s.db.Create(&partnership).Error; err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return &partnership, nil
}

// Accept flips an invite addressed to the caller to accepted and drops both
// parties' cached leaderboards.
func (s *Service) Accept(userID, partnershipID uuid.UUID) (*Partnership, error) {
	partnership, err := s.pendingInviteFor(userID, partnershipID)
	if err != nil {
		return nil, err
	}

	err = s.db.Model(partnership).Update("status", StatusAccepted).Error
	if err != nil {
		return nil, fmt.Errorf("failed to accept invite: %w", err)
	}
	partnership.Status = StatusAccepted

	s.invalidateLeaderboard(partnership.UserID, partnership.PartnerID)
	return partnership, nil
}

// Decline deletes an invite addressed to the caller.
func (s *Service) Decline(userID, partnershipID uuid.UUID) error {
	partnership, err := s.pendingInviteFor(userID, partnershipID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(partnership).Error; err != nil {
		return fmt.Errorf("failed to decline invite: %w", err)
	}
	return nil
}

// Partners lists partnerships in both directions with the counterpart's
// profile attached.
func (s *Service) Partners(userID uuid.UUID) ([]PartnerView, error) {
	var partnerships []Partnership
	err := s.db.
		Where("user_id = ? OR partner_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&partnerships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list partnerships: %w", err)
	}

	views := make([]PartnerView, 0, len(partnerships))
	for _, p := range partnerships {
		counterpartID := p.PartnerID
		incoming := false
		if p.PartnerID == userID {
			counterpartID = p.UserID
			incoming = true
		}

		var counterpart models.User
		if err := s.db.First(&counterpart, "id = ?", counterpartID).Error; err != nil {
			continue
		}
		views = append(views, PartnerView{
			PartnershipID: p.ID,
			UserID:        counterpart.ID,
			DisplayName:   counterpart.DisplayName,
			Email:         counterpart.Email,
			Status:        p.Status,
			Incoming:      incoming,
		})
	}
	return views, nil
}

// Leaderboard ranks the caller and their accepted partners by total points.
// Results are cached per user for a short TTL; staleness inside the TTL is
// tolerated.
func (s *Service) Leaderboard(ctx context.Context, userID uuid.UUID) ([]LeaderboardEntry, error) {
	key := leaderboardKey(userID)

	if cached, err := s.redis.Get(ctx, key).Bytes(); err == nil {
		var entries []LeaderboardEntry
		if json.Unmarshal(cached, &entries) == nil {
			return entries, nil
		}
	}

	entries, err := s.buildLeaderboard(userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(entries); err == nil {
		if err := s.redis.Set(ctx, key, payload, leaderboardTTL).Err(); err != nil {
			slog.Warn("failed to cache leaderboard", "user_id", userID.String(), "error", err)
		}
	}
	return entries, nil
}

func (s *Service) buildLeaderboard(userID uuid.UUID) ([]LeaderboardEntry, error) {
	var partnerships []Partnership
	err := s.db.
		Where("(user_id = ? OR partner_id = ?) AND status = ?", userID, userID, StatusAccepted).
		Find(&partnerships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load partnerships: %w", err)
	}

	memberIDs := []uuid.UUID{userID}
	for _, p := range partnerships {
		if p.UserID == userID {
			memberIDs = append(memberIDs, p.PartnerID)
		} else {
			memberIDs = append(memberIDs, p.UserID)
		}
	}

	var states []gamification.GamificationState
	err = s.db.Where("user_id IN ?", memberIDs).Find(&states).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load gamification states: %w", err)
	}
	stateByUser := make(map[uuid.UUID]gamification.GamificationState, len(states))
	for _, st := range states {
		stateByUser[st.UserID] = st
	}

	var users []models.User
	err = s.db.Where("id IN ?", memberIDs).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		st := stateByUser[u.ID]
		entries = append(entries, LeaderboardEntry{
			UserID:        u.ID,
			DisplayName:   u.DisplayName,
			TotalPoints:   st.TotalPoints,
			Level:         max(st.CurrentLevel, 1),
			CurrentStreak: st.CurrentStreak,
			IsSelf:        u.ID == userID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *Service) pendingInviteFor(userID, partnershipID uuid.UUID) (*Partnership, error) {
	var partnership Partnership
	err := s.db.First(&partnership, "id = ?", partnershipID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load invite: %w", err)
	}
	if partnership.PartnerID != userID {
		return nil, ErrNotInviteRecipient
	}
	if partnership.Status != StatusInvited {
		return nil, ErrInviteNotFound
	}
	return &partnership, nil
}

func (s *Service) invalidateLeaderboard(userIDs ...uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, id := range userIDs {
		if err := s.redis.Del(ctx, leaderboardKey(id)).Err(); err != nil {
			slog.Warn("failed to drop cached leaderboard", "user_id", id.String(), "error", err)
		}
	}
}

func leaderboardKey(userID uuid.UUID) string {
	return "leaderboard:" + userID.String()
}
