package activity

import (
	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/config"
	"gorm.io/gorm"
)

type Plugin struct {
	streaks StreakRecorder
}

func New(streaks StreakRecorder) *Plugin {
	return &Plugin{streaks: streaks}
}

func (p *Plugin) ID() string { return "activity" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&EnergyLog{},
		&FocusSession{},
		&Workout{},
		&SleepLog{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db, p.streaks)
	handler := NewHandler(svc)

	router.Post("/activity/energy", handler.CreateEnergyLog)
	router.Get("/activity/energy", handler.ListEnergyLogs)
	router.Post("/activity/focus", handler.CreateFocusSession)
	router.Get("/activity/focus", handler.ListFocusSessions)
	router.Post("/activity/workouts", handler.CreateWorkout)
	router.Get("/activity/workouts", handler.ListWorkouts)
	router.Post("/activity/sleep", handler.CreateSleepLog)
	router.Get("/activity/sleep", handler.ListSleepLogs)
	router.Delete("/activity/:kind/:id", handler.Delete)
}
