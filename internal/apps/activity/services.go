package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/humanos-app/humanos-backend/internal/scope"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrInvalidIntensity = errors.New("invalid workout intensity")
)

// StreakRecorder receives a signal whenever a qualifying activity record is
// created. Implemented by the gamification service.
type StreakRecorder interface {
	RecordActivity(userID uuid.UUID)
}

type Service struct {
	db      *gorm.DB
	streaks StreakRecorder
}

func NewService(db *gorm.DB, streaks StreakRecorder) *Service {
	return &Service{db: db, streaks: streaks}
}

func (s *Service) CreateEnergyLog(userID uuid.UUID, req CreateEnergyLogRequest) (*EnergyLog, error) {
	log := EnergyLog{
		ID:         uuid.New(),
		UserID:     userID,
		Level:      req.Level,
		Mood:       req.Mood,
		Note:       req.Note,
		OccurredAt: occurredOrNow(req.OccurredAt),
	}

	if err := s.db.Create(&log).Error; err != nil {
		return nil, fmt.Errorf("failed to create energy log: %w", err)
	}

	s.notifyStreak(userID)
	return &log, nil
}

func (s *Service) CreateFocusSession(userID uuid.UUID, req CreateFocusSessionRequest) (*FocusSession, error) {
	session := FocusSession{
		ID:              uuid.New(),
		UserID:          userID,
		DurationMinutes: req.DurationMinutes,
		Task:            req.Task,
		OccurredAt:      occurredOrNow(req.OccurredAt),
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create focus session: %w", err)
	}

	s.notifyStreak(userID)
	return &session, nil
}

func (s *Service) CreateWorkout(userID uuid.UUID, req CreateWorkoutRequest) (*Workout, error) {
	if req.Intensity == "" {
		req.Intensity = "moderate"
	}
	valid := false
	for _, i := range WorkoutIntensities {
		if i == req.Intensity {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidIntensity
	}

	workout := Workout{
		ID:              uuid.New(),
		UserID:          userID,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		OccurredAt:      occurredOrNow(req.OccurredAt),
	}

	if err := s.db.Create(&workout).Error; err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}

	s.notifyStreak(userID)
	return &workout, nil
}

func (s *Service) CreateSleepLog(userID uuid.UUID, req CreateSleepLogRequest) (*SleepLog, error) {
	log := SleepLog{
		ID:            uuid.New(),
		UserID:        userID,
		DurationHours: req.DurationHours,
		Quality:       req.Quality,
		OccurredAt:    occurredOrNow(req.OccurredAt),
	}

	if err := s.db.Create(&log).Error; err != nil {
		return nil, fmt.Errorf("failed to create sleep log: %w", err)
	}

	// Sleep is tracked for predictions but is not a qualifying streak
	// activity, so no streak notification here.
	return &log, nil
}

func (s *Service) ListEnergyLogs(userID uuid.UUID, from, to time.Time, limit, offset int) ([]EnergyLog, int64, error) {
	var logs []EnergyLog
	var total int64

	q := s.db.Model(&EnergyLog{}).Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ? AND occurred_at < ?", from, to)
	q.Count(&total)

	err := q.Order("occurred_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

func (s *Service) ListFocusSessions(userID uuid.UUID, from, to time.Time, limit, offset int) ([]FocusSession, int64, error) {
	var sessions []FocusSession
	var total int64

	q := s.db.Model(&FocusSession{}).Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ? AND occurred_at < ?", from, to)
	q.Count(&total)

	err := q.Order("occurred_at DESC").Limit(limit).Offset(offset).Find(&sessions).Error
	return sessions, total, err
}

func (s *Service) ListWorkouts(userID uuid.UUID, from, to time.Time, limit, offset int) ([]Workout, int64, error) {
	var workouts []Workout
	var total int64

	q := s.db.Model(&Workout{}).Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ? AND occurred_at < ?", from, to)
	q.Count(&total)

	err := q.Order("occurred_at DESC").Limit(limit).Offset(offset).Find(&workouts).Error
	return workouts, total, err
}

func (s *Service) ListSleepLogs(userID uuid.UUID, from, to time.Time, limit, offset int) ([]SleepLog, int64, error) {
	var logs []SleepLog
	var total int64

	q := s.db.Model(&SleepLog{}).Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ? AND occurred_at < ?", from, to)
	q.Count(&total)

	err := q.Order("occurred_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

// DeleteEnergyLog soft-deletes a log only if owned by the user.
func (s *Service) DeleteEnergyLog(userID, id uuid.UUID) error {
	return s.deleteOwned(userID, id, &EnergyLog{})
}

func (s *Service) DeleteFocusSession(userID, id uuid.UUID) error {
	return s.deleteOwned(userID, id, &FocusSession{})
}

func (s *Service) DeleteWorkout(userID, id uuid.UUID) error {
	return s.deleteOwned(userID, id, &Workout{})
}

func (s *Service) DeleteSleepLog(userID, id uuid.UUID) error {
	return s.deleteOwned(userID, id, &SleepLog{})
}

func (s *Service) deleteOwned(userID, id uuid.UUID, model interface{}) error {
	result := s.db.Scopes(scope.OwnedBy(userID)).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Service) notifyStreak(userID uuid.UUID) {
	if s.streaks != nil {
		s.streaks.RecordActivity(userID)
	}
}

func occurredOrNow(t *time.Time) time.Time {
	if t != nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
