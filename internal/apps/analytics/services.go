package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/humanos-app/humanos-backend/internal/apps/activity"
	"github.com/humanos-app/humanos-backend/internal/scope"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type Overview struct {
	Days          []DailyAggregate `json:"days"`
	HourlyProfile HourlyProfile    `json:"hourly_profile"`
}

// Aggregate recomputes the trailing window from the current record set.
// Nothing is cached; the result always reflects the store at query time.
func (s *Service) Aggregate(userID uuid.UUID, windowDays int, today time.Time) (*Overview, error) {
	today = today.UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -(windowDays - 1))

	var energyRows []activity.EnergyLog
	err := s.db.Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ?", windowStart).
		Order("occurred_at ASC").
		Find(&energyRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch energy logs: %w", err)
	}

	var focusRows []activity.FocusSession
	err = s.db.Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ?", windowStart).
		Order("occurred_at ASC").
		Find(&focusRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch focus sessions: %w", err)
	}

	energy := make([]EnergySample, len(energyRows))
	for i, row := range energyRows {
		energy[i] = EnergySample{OccurredAt: row.OccurredAt, Level: row.Level, Mood: row.Mood}
	}
	focus := make([]FocusSample, len(focusRows))
	for i, row := range focusRows {
		focus[i] = FocusSample{OccurredAt: row.OccurredAt, DurationMinutes: row.DurationMinutes}
	}

	// Hourly profile spans all-time logs, not just the window.
	var allEnergyRows []activity.EnergyLog
	err = s.db.Scopes(scope.OwnedBy(userID)).Find(&allEnergyRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch energy history: %w", err)
	}
	allEnergy := make([]EnergySample, len(allEnergyRows))
	for i, row := range allEnergyRows {
		allEnergy[i] = EnergySample{OccurredAt: row.OccurredAt, Level: row.Level, Mood: row.Mood}
	}

	return &Overview{
		Days:          BuildDailyAggregates(energy, focus, today, windowDays),
		HourlyProfile: BuildHourlyProfile(allEnergy),
	}, nil
}
