package insights

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EnergyPrediction is one model-generated forecast for a future date.
// Unique on (user_id, prediction_date): repeat generations overwrite.
type EnergyPrediction struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_prediction_user_date" json:"user_id"`
	PredictionDate  time.Time      `gorm:"type:date;uniqueIndex:idx_prediction_user_date" json:"prediction_date"`
	PredictedEnergy int            `gorm:"not null" json:"predicted_energy"`
	Confidence      float64        `gorm:"not null" json:"confidence"`
	Factors         datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"factors"`
	Recommendation  string         `gorm:"type:text" json:"recommendation"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// --- structured model output ---

type PredictionItem struct {
	Date            string   `json:"date"`
	PredictedEnergy int      `json:"predicted_energy"`
	Confidence      float64  `json:"confidence"`
	Factors         []string `json:"factors"`
	Recommendation  string   `json:"recommendation"`
}

type PredictionResult struct {
	Predictions []PredictionItem `json:"predictions"`
	Patterns    []string         `json:"patterns"`
	Insights    string           `json:"insights"`
}

type EmotionResult struct {
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
	Summary   string  `json:"summary"`
}

// --- DTOs ---

type ChatRequest struct {
	Message string        `json:"message" validate:"required,max=2000"`
	History []ChatMessage `json:"history" validate:"max=20,dive"`
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=2000"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type EmotionRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}
