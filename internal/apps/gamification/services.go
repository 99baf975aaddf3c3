package gamification

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanos-app/humanos-backend/internal/scope"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tables holding records that count as qualifying activity for a day.
var activityTables = []string{"energy_logs", "meals", "workouts", "focus_sessions"}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetState returns the user's gamification state, creating it lazily with
// zero/level-1 defaults on first access.
func (s *Service) GetState(userID uuid.UUID) (*GamificationState, error) {
	var state GamificationState
	err := s.db.Scopes(scope.OwnedBy(userID)).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state = GamificationState{
			ID:            uuid.New(),
			UserID:        userID,
			CurrentLevel:  1,
			XPToNextLevel: 100,
			Achievements:  datatypes.JSON([]byte("[]")),
		}
		if createErr := s.db.Create(&state).Error; createErr != nil {
			return nil, createErr
		}
		return &state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load gamification state: %w", err)
	}
	return &state, nil
}

// UpdateStreak runs the daily streak transition for the given UTC day.
// Re-entry on the same day, or a day without any qualifying activity, is a
// no-op. A concurrent update that wins the write race also resolves to a
// no-op rather than an error.
func (s *Service) UpdateStreak(userID uuid.UUID, today time.Time) (*StreakUpdate, error) {
	today = DayUTC(today)

	state, err := s.GetState(userID)
	if err != nil {
		return nil, err
	}

	if state.LastActivityDate != nil && DayUTC(*state.LastActivityDate).Equal(today) {
		return &StreakUpdate{State: *state}, nil
	}

	hasActivity, err := s.hasActivityOn(userID, today)
	if err != nil {
		return nil, err
	}
	if !hasActivity {
		// Merely opening the app never breaks or advances a streak.
		return &StreakUpdate{State: *state}, nil
	}

	next, xpEarned, events := applyStreak(*state, today)
	next.Achievements = mergeAchievements(state.Achievements, events)

	// Conditional write guarded on last_activity_date: only one caller per
	// day can win, so concurrent check-ins cannot double-count XP.
	res := s.db.Model(&GamificationState{}).
		Where("id = ? AND (last_activity_date IS NULL OR last_activity_date < ?)", state.ID, today).
		Updates(map[string]interface{}{
			"total_points":       next.TotalPoints,
			"current_level":      next.CurrentLevel,
			"current_xp":         next.CurrentXP,
			"xp_to_next_level":   next.XPToNextLevel,
			"current_streak":     next.CurrentStreak,
			"longest_streak":     next.LongestStreak,
			"last_activity_date": today,
			"achievements":       next.Achievements,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to persist streak update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race; another request already counted today.
		current, err := s.GetState(userID)
		if err != nil {
			return nil, err
		}
		return &StreakUpdate{State: *current}, nil
	}

	return &StreakUpdate{State: next, XPEarned: xpEarned, Events: events}, nil
}

// RecordActivity is the fire-and-forget entry point used by activity-creating
// modules. Failures are logged, never propagated to the write that triggered
// them.
func (s *Service) RecordActivity(userID uuid.UUID) {
	if _, err := s.UpdateStreak(userID, time.Now()); err != nil {
		slog.Warn("streak update failed", "user_id", userID.String(), "error", err)
	}
}

func (s *Service) hasActivityOn(userID uuid.UUID, day time.Time) (bool, error) {
	next := day.AddDate(0, 0, 1)
	for _, table := range activityTables {
		var n int64
		err := s.db.Table(table).
			Where("user_id = ? AND occurred_at >= ? AND occurred_at < ?", userID, day, next).
			Count(&n).Error
		if err != nil {
			return false, fmt.Errorf("failed to check %s: %w", table, err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// AwardPoints grants XP outside the daily streak path (e.g. a completed
// fast). Level thresholds are re-applied with the same loop as streak XP.
func (s *Service) AwardPoints(userID uuid.UUID, points int) (*StreakUpdate, error) {
	if points <= 0 {
		return nil, errors.New("points must be positive")
	}

	state, err := s.GetState(userID)
	if err != nil {
		return nil, err
	}

	level := state.CurrentLevel
	threshold := state.XPToNextLevel
	xp := state.CurrentXP + points
	leveledUp := false
	for xp >= threshold {
		xp -= threshold
		level++
		threshold = level * 100
		leveledUp = true
	}

	var events []Event
	if leveledUp {
		events = append(events, Event{Kind: EventLevelUp, Level: level})
	}

	state.CurrentLevel = level
	state.CurrentXP = xp
	state.XPToNextLevel = threshold
	state.TotalPoints += points

	err = s.db.Model(&GamificationState{}).
		Where("id = ?", state.ID).
		Updates(map[string]interface{}{
			"total_points":     state.TotalPoints,
			"current_level":    state.CurrentLevel,
			"current_xp":       state.CurrentXP,
			"xp_to_next_level": state.XPToNextLevel,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to award points: %w", err)
	}

	return &StreakUpdate{State: *state, XPEarned: points, Events: events}, nil
}

// Achievements lists all milestone achievements with unlock status.
func (s *Service) Achievements(userID uuid.UUID) ([]AchievementResponse, error) {
	state, err := s.GetState(userID)
	if err != nil {
		return nil, err
	}

	unlocked := map[string]bool{}
	var names []string
	if err := json.Unmarshal(state.Achievements, &names); err == nil {
		for _, n := range names {
			unlocked[n] = true
		}
	}

	var out []AchievementResponse
	for _, streak := range sortedMilestones() {
		name := milestones[streak]
		resp := AchievementResponse{Name: name, Streak: streak, Unlocked: unlocked[name]}
		if !resp.Unlocked && streak > state.CurrentStreak {
			resp.DaysToReach = streak - state.CurrentStreak
		}
		out = append(out, resp)
	}
	return out, nil
}

func mergeAchievements(existing datatypes.JSON, events []Event) datatypes.JSON {
	var names []string
	_ = json.Unmarshal(existing, &names)

	for _, e := range events {
		if e.Kind != EventMilestone {
			continue
		}
		name, ok := milestones[e.Streak]
		if !ok {
			continue
		}
		found := false
		for _, n := range names {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			names = append(names, name)
		}
	}

	if names == nil {
		names = []string{}
	}
	b, err := json.Marshal(names)
	if err != nil {
		return existing
	}
	return datatypes.JSON(b)
}

func sortedMilestones() []int {
	return []int{3, 7, 14, 21, 30, 50, 100, 200, 365}
}
