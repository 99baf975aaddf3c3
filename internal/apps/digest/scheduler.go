package digest

import (
	"log/slog"

	"github.com/humanos-app/humanos-backend/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler sends the weekly digest to every opted-in user on a cron
// schedule. Per-user failures are logged and skipped so one bad address
// cannot stall the run.
type Scheduler struct {
	cron    *cron.Cron
	db      *gorm.DB
	service *Service
}

func NewScheduler(db *gorm.DB, service *Service) *Scheduler {
	return &Scheduler{cron: cron.New(), db: db, service: service}
}

func (s *Scheduler) Start(schedule string) error {
	if !s.service.mailer.Enabled() {
		slog.Info("digest scheduler disabled, no SMTP configured")
		return nil
	}

	_, err := s.cron.AddFunc(schedule, s.run)
	if err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("digest scheduler started", "schedule", schedule)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) run() {
	var prefs []models.UserPreference
	err := s.db.Where("digest_opt_in = ?", true).Find(&prefs).Error
	if err != nil {
		slog.Error("digest run failed to list recipients", "error", err)
		return
	}

	sent := 0
	for _, pref := range prefs {
		if err := s.service.SendDigest(pref.UserID); err != nil {
			slog.Warn("digest send failed", "user_id", pref.UserID.String(), "error", err)
			continue
		}
		sent++
	}
	slog.Info("digest run finished", "recipients", len(prefs), "sent", sent)
}
