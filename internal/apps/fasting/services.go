package fasting

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanos-app/humanos-backend/internal/apps/gamification"
	"github.com/humanos-app/humanos-backend/internal/scope"
	"gorm.io/gorm"
)

var (
	ErrActiveFastExists = errors.New("a fast is already running")
	ErrNoActiveFast     = errors.New("no running fast")
)

// Points granted when a fast ends.
const (
	pointsCompletedFast = 50
	pointsEndedEarly    = 10
)

const defaultProtocol = "16:8"

// PointsAwarder grants XP outside the daily streak path.
type PointsAwarder interface {
	AwardPoints(userID uuid.UUID, points int) (*gamification.StreakUpdate, error)
}

type Service struct {
	db     *gorm.DB
	points PointsAwarder
}

func NewService(db *gorm.DB, points PointsAwarder) *Service {
	return &Service{db: db, points: points}
}

// Start opens a new fast. Target hours default to the protocol's window
// when not supplied.
func (s *Service) Start(userID uuid.UUID, req StartFastRequest) (*FastingSession, error) {
	active, err := s.activeSession(userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrActiveFastExists
	}

	protocol := req.Protocol
	if protocol == "" {
		protocol = defaultProtocol
	}
	target := req.TargetHours
	if target == 0 {
		if hours, ok := Protocols[protocol]; ok {
			target = hours
		} else {
			target = Protocols[defaultProtocol]
		}
	}

	session := FastingSession{
		ID:          uuid.New(),
		UserID:      userID,
		Protocol:    protocol,
		TargetHours: target,
		StartedAt:   time.Now().UTC(),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to start fast: %w", err)
	}
	return &session, nil
}

// End closes the running fast, computes its duration and completion against
// the target, and awards points. A completed fast earns more than one ended
// early. Point-award failures are logged, not propagated; the fast is
// already closed at that point.
func (s *Service) End(userID uuid.UUID) (*EndFastResponse, error) {
	active, err := s.activeSession(userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActiveFast
	}

	now := time.Now().UTC()
	duration := now.Sub(active.StartedAt).Hours()
	completed := duration >= active.TargetHours

	err = s.db.Model(&FastingSession{}).
		Where("id = ?", active.ID).
		Updates(map[string]interface{}{
			"ended_at":       now,
			"duration_hours": duration,
			"completed":      completed,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to end fast: %w", err)
	}

	active.EndedAt = &now
	active.DurationHours = duration
	active.Completed = completed

	points := pointsEndedEarly
	if completed {
		points = pointsCompletedFast
	}
	if _, err := s.points.AwardPoints(userID, points); err != nil {
		slog.Warn("failed to award fasting points", "user_id", userID.String(), "error", err)
	}

	return &EndFastResponse{Session: *active, PointsAwarded: points}, nil
}

// Status reports the running fast, if any, with elapsed time and progress
// toward the target clamped to 1.
func (s *Service) Status(userID uuid.UUID) (*StatusResponse, error) {
	active, err := s.activeSession(userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return &StatusResponse{}, nil
	}

	elapsed := time.Since(active.StartedAt).Hours()
	progress := elapsed / active.TargetHours
	if progress > 1 {
		progress = 1
	}
	return &StatusResponse{Active: active, ElapsedHours: elapsed, Progress: progress}, nil
}

// History lists finished fasts, newest first.
func (s *Service) History(userID uuid.UUID, limit int) ([]FastingSession, error) {
	var sessions []FastingSession
	err := s.db.Scopes(scope.OwnedBy(userID)).
		Where("ended_at IS NOT NULL").
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list fasting history: %w", err)
	}
	return sessions, nil
}

func (s *Service) activeSession(userID uuid.UUID) (*FastingSession, error) {
	var session FastingSession
	err := s.db.Scopes(scope.OwnedBy(userID)).
		Where("ended_at IS NULL").
		Order("started_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active fast: %w", err)
	}
	return &session, nil
}
