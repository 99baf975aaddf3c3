package digest

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/humanos-app/humanos-backend/internal/apps/analytics"
	"github.com/humanos-app/humanos-backend/internal/apps/gamification"
	"github.com/humanos-app/humanos-backend/internal/models"
	"gorm.io/gorm"
)

const digestWindowDays = 7

type Service struct {
	db        *gorm.DB
	analytics *analytics.Service
	gam       *gamification.Service
	mailer    *Mailer
}

func NewService(db *gorm.DB, analyticsSvc *analytics.Service, gamSvc *gamification.Service, mailer *Mailer) *Service {
	return &Service{db: db, analytics: analyticsSvc, gam: gamSvc, mailer: mailer}
}

// GetPreferences returns the user's settings, creating defaults on first
// access.
func (s *Service) GetPreferences(userID uuid.UUID) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := s.db.First(&pref, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.UserPreference{UserID: userID, ReminderHour: 9, Timezone: "UTC"}
		if createErr := s.db.Create(&pref).Error; createErr != nil {
			return nil, createErr
		}
		return &pref, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return &pref, nil
}

func (s *Service) UpdatePreferences(userID uuid.UUID, req UpdatePreferencesRequest) (*models.UserPreference, error) {
	pref, err := s.GetPreferences(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.DigestOptIn != nil {
		updates["digest_opt_in"] = *req.DigestOptIn
		pref.DigestOptIn = *req.DigestOptIn
	}
	if req.ReminderHour != nil {
		updates["reminder_hour"] = *req.ReminderHour
		pref.ReminderHour = *req.ReminderHour
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, fmt.Errorf("unknown timezone %q", *req.Timezone)
		}
		updates["timezone"] = *req.Timezone
		pref.Timezone = *req.Timezone
	}
	if len(updates) == 0 {
		return pref, nil
	}

	err = s.db.Model(&models.UserPreference{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return pref, nil
}

// SendDigest builds the weekly summary and mails it to the user's own
// address. There is no recipient parameter on purpose.
func (s *Service) SendDigest(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	overview, err := s.analytics.Aggregate(userID, digestWindowDays, time.Now())
	if err != nil {
		return err
	}
	state, err := s.gam.GetState(userID)
	if err != nil {
		return err
	}

	html, err := renderDigest(user.DisplayName, overview, state)
	if err != nil {
		return err
	}
	return s.mailer.Send(user.Email, "Your weekly HumanOS digest", html)
}

type UpdatePreferencesRequest struct {
	DigestOptIn  *bool   `json:"digest_opt_in"`
	ReminderHour *int    `json:"reminder_hour" validate:"omitempty,min=0,max=23"`
	Timezone     *string `json:"timezone" validate:"omitempty,max=64"`
}

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Hi {{.Name}}, here is your week</h2>
  <p>
    Streak: <strong>{{.Streak}} days</strong> (best {{.LongestStreak}}) ·
    Level {{.Level}} · {{.TotalPoints}} points
  </p>
  <h3>Last 7 days</h3>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr>
      <th align="left">Day</th>
      <th align="right">Energy</th>
      <th align="right">Mood</th>
      <th align="right">Focus (h)</th>
      <th align="right">Productivity</th>
    </tr>
    {{range .Days}}
    <tr>
      <td>{{.Date}}</td>
      <td align="right">{{.AvgEnergy}}</td>
      <td align="right">{{.AvgMoodScore}}</td>
      <td align="right">{{.FocusHours}}</td>
      <td align="right">{{.ProductivityIndex}}</td>
    </tr>
    {{end}}
  </table>
  <p style="color: #888; font-size: 12px;">
    You receive this because weekly digests are enabled in your HumanOS settings.
  </p>
</body>
</html>`))

type digestData struct {
	Name          string
	Streak        int
	LongestStreak int
	Level         int
	TotalPoints   int
	Days          []analytics.DailyAggregate
}

func renderDigest(name string, overview *analytics.Overview, state *gamification.GamificationState) (string, error) {
	if name == "" {
		name = "there"
	}
	data := digestData{
		Name:          name,
		Streak:        state.CurrentStreak,
		LongestStreak: state.LongestStreak,
		Level:         state.CurrentLevel,
		TotalPoints:   state.TotalPoints,
		Days:          overview.Days,
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}
