package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/humanos-app/humanos-backend/internal/ai"
	"github.com/humanos-app/humanos-backend/internal/apps/activity"
	"github.com/humanos-app/humanos-backend/internal/scope"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrPredictionGeneration covers both a failed external call and a
	// response without the required tool call. No fallback exists for
	// predictions; the structured output IS the result.
	ErrPredictionGeneration = errors.New("prediction generation failed")
	ErrEmotionAnalysis      = errors.New("emotion analysis failed")
)

const historyWindowDays = 30

const predictionSystemPrompt = `You are an energy forecasting assistant for a personal wellness app.
Given a user's recent energy, sleep, focus and workout history, forecast their energy for the next 7 days.
Ground every prediction in visible patterns (day-of-week effects, sleep debt, workout recovery).
Always answer through the submit_energy_forecast function.`

const chatSystemPrompt = `You are HumanOS, a supportive wellness coach.
Keep answers short, practical and grounded in the user's own data when it is provided.
Never give medical diagnoses; suggest seeing a professional for medical concerns.`

const emotionSystemPrompt = `You detect the dominant emotion in a short piece of text.
Always answer through the report_emotion function.`

var predictionTool = ai.Tool{
	Type: "function",
	Function: ai.ToolFunction{
		Name:        "submit_energy_forecast",
		Description: "Submit the 7-day energy forecast",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"predictions": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"date": {"type": "string", "description": "YYYY-MM-DD"},
							"predicted_energy": {"type": "integer", "minimum": 1, "maximum": 10},
							"confidence": {"type": "number", "minimum": 0, "maximum": 1},
							"factors": {"type": "array", "items": {"type": "string"}},
							"recommendation": {"type": "string"}
						},
						"required": ["date", "predicted_energy", "confidence", "factors", "recommendation"]
					}
				},
				"patterns": {"type": "array", "items": {"type": "string"}},
				"insights": {"type": "string"}
			},
			"required": ["predictions", "patterns", "insights"]
		}`),
	},
}

var emotionTool = ai.Tool{
	Type: "function",
	Function: ai.ToolFunction{
		Name:        "report_emotion",
		Description: "Report the dominant emotion",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"emotion": {"type": "string"},
				"intensity": {"type": "number", "minimum": 0, "maximum": 1},
				"summary": {"type": "string"}
			},
			"required": ["emotion", "intensity"]
		}`),
	},
}

type Service struct {
	db *gorm.DB
	ai *ai.Client
}

func NewService(db *gorm.DB, aiClient *ai.Client) *Service {
	return &Service{db: db, ai: aiClient}
}

// PredictEnergy asks the model for a 7-day forecast and upserts one record
// per returned date, last write wins. Dates missing from the response are
// accepted as-is; there is no reconciliation against the 7-day ask.
func (s *Service) PredictEnergy(ctx context.Context, userID uuid.UUID) (*PredictionResult, error) {
	summary, err := s.buildHistorySummary(userID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize history: %w", err)
	}

	raw, err := s.ai.CompleteWithTool(ctx, predictionSystemPrompt, string(payload), predictionTool)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionGeneration, err)
	}

	result, err := parsePredictionResult(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionGeneration, err)
	}

	for _, item := range result.Predictions {
		date, err := time.Parse("2006-01-02", item.Date)
		if err != nil {
			continue
		}

		factors, err := json.Marshal(item.Factors)
		if err != nil {
			factors = []byte("[]")
		}

		record := EnergyPrediction{
			ID:              uuid.New(),
			UserID:          userID,
			PredictionDate:  date,
			PredictedEnergy: item.PredictedEnergy,
			Confidence:      item.Confidence,
			Factors:         datatypes.JSON(factors),
			Recommendation:  item.Recommendation,
		}

		err = s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "prediction_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"predicted_energy", "confidence", "factors", "recommendation", "updated_at",
			}),
		}).Create(&record).Error
		if err != nil {
			return nil, fmt.Errorf("failed to store prediction: %w", err)
		}
	}

	return result, nil
}

// ListPredictions returns stored predictions from today onward.
func (s *Service) ListPredictions(userID uuid.UUID) ([]EnergyPrediction, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	var predictions []EnergyPrediction
	err := s.db.Scopes(scope.OwnedBy(userID)).
		Where("prediction_date >= ?", today).
		Order("prediction_date ASC").
		Find(&predictions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch predictions: %w", err)
	}
	return predictions, nil
}

// Chat is a free-text completion; no schema, no fallback.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (string, error) {
	messages := make([]ai.Message, 0, len(req.History)+1)
	for _, m := range req.History {
		messages = append(messages, ai.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ai.Message{Role: "user", Content: req.Message})

	return s.ai.Complete(ctx, chatSystemPrompt, messages)
}

// AnalyzeEmotion returns the schema-constrained emotion read. Parse failure
// is fatal here: there is no deterministic stand-in for emotion detection.
func (s *Service) AnalyzeEmotion(ctx context.Context, text string) (*EmotionResult, error) {
	raw, err := s.ai.CompleteWithTool(ctx, emotionSystemPrompt, text, emotionTool)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmotionAnalysis, err)
	}

	var result EmotionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmotionAnalysis, err)
	}
	if result.Emotion == "" {
		return nil, fmt.Errorf("%w: empty emotion", ErrEmotionAnalysis)
	}
	result.Intensity = clampFloat(result.Intensity, 0, 1)

	return &result, nil
}

type historySummary struct {
	Days         []historyDay `json:"days"`
	FocusCount   int64        `json:"focus_session_count"`
	WorkoutCount int64        `json:"workout_count"`
}

type historyDay struct {
	Date         string   `json:"date"`
	DayOfWeek    string   `json:"day_of_week"`
	EnergyLevels []int    `json:"energy_levels,omitempty"`
	Moods        []string `json:"moods,omitempty"`
	SleepHours   float64  `json:"sleep_hours,omitempty"`
	SleepQuality int      `json:"sleep_quality,omitempty"`
}

func (s *Service) buildHistorySummary(userID uuid.UUID) (*historySummary, error) {
	since := time.Now().UTC().AddDate(0, 0, -historyWindowDays)

	var energyRows []activity.EnergyLog
	if err := s.db.Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ?", since).
		Order("occurred_at ASC").
		Find(&energyRows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch energy logs: %w", err)
	}

	var sleepRows []activity.SleepLog
	if err := s.db.Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ?", since).
		Order("occurred_at ASC").
		Find(&sleepRows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sleep logs: %w", err)
	}

	var focusCount, workoutCount int64
	s.db.Model(&activity.FocusSession{}).Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ?", since).Count(&focusCount)
	s.db.Model(&activity.Workout{}).Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ?", since).Count(&workoutCount)

	byDate := map[string]*historyDay{}
	ordered := []string{}

	dayFor := func(t time.Time) *historyDay {
		key := t.UTC().Format("2006-01-02")
		if d, ok := byDate[key]; ok {
			return d
		}
		d := &historyDay{Date: key, DayOfWeek: t.UTC().Weekday().String()}
		byDate[key] = d
		ordered = append(ordered, key)
		return d
	}

	for _, row := range energyRows {
		d := dayFor(row.OccurredAt)
		d.EnergyLevels = append(d.EnergyLevels, row.Level)
		if row.Mood != "" {
			d.Moods = append(d.Moods, row.Mood)
		}
	}
	for _, row := range sleepRows {
		d := dayFor(row.OccurredAt)
		d.SleepHours = row.DurationHours
		d.SleepQuality = row.Quality
	}

	summary := &historySummary{FocusCount: focusCount, WorkoutCount: workoutCount}
	for _, key := range ordered {
		summary.Days = append(summary.Days, *byDate[key])
	}
	return summary, nil
}

// parsePredictionResult validates the tool-call arguments. Out-of-range
// values are clamped rather than rejected; an empty prediction list is an
// error.
func parsePredictionResult(raw json.RawMessage) (*PredictionResult, error) {
	var result PredictionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("malformed forecast: %w", err)
	}
	if len(result.Predictions) == 0 {
		return nil, errors.New("forecast contains no predictions")
	}

	for i := range result.Predictions {
		p := &result.Predictions[i]
		if _, err := time.Parse("2006-01-02", p.Date); err != nil {
			return nil, fmt.Errorf("invalid prediction date %q", p.Date)
		}
		p.PredictedEnergy = clampInt(p.PredictedEnergy, 1, 10)
		p.Confidence = clampFloat(p.Confidence, 0, 1)
		if p.Factors == nil {
			p.Factors = []string{}
		}
	}
	return &result, nil
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clampFloat(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
