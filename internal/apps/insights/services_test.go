package insights

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePredictionResult(t *testing.T) {
	raw := json.RawMessage(`{
		"predictions": [
			{"date": "2026-03-03", "predicted_energy": 7, "confidence": 0.8,
			 "factors": ["good sleep"], "recommendation": "Schedule deep work in the morning"},
			{"date": "2026-03-04", "predicted_energy": 5, "confidence": 0.6,
			 "factors": [], "recommendation": "Take a walk at lunch"}
		],
		"patterns": ["energy dips midweek"],
		"insights": "Your energy tracks your sleep closely."
	}`)

	result, err := parsePredictionResult(raw)
	require.NoError(t, err)
	require.Len(t, result.Predictions, 2)
	assert.Equal(t, "2026-03-03", result.Predictions[0].Date)
	assert.Equal(t, 7, result.Predictions[0].PredictedEnergy)
	assert.Equal(t, []string{"energy dips midweek"}, result.Patterns)
}

func TestParsePredictionResultClampsRanges(t *testing.T) {
	raw := json.RawMessage(`{
		"predictions": [
			{"date": "2026-03-03", "predicted_energy": 15, "confidence": 1.4,
			 "recommendation": "rest"},
			{"date": "2026-03-04", "predicted_energy": 0, "confidence": -0.2,
			 "recommendation": "rest"}
		]
	}`)

	result, err := parsePredictionResult(raw)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Predictions[0].PredictedEnergy)
	assert.Equal(t, 1.0, result.Predictions[0].Confidence)
	assert.Equal(t, 1, result.Predictions[1].PredictedEnergy)
	assert.Equal(t, 0.0, result.Predictions[1].Confidence)
	assert.NotNil(t, result.Predictions[0].Factors)
}

func TestParsePredictionResultRejectsEmpty(t *testing.T) {
	_, err := parsePredictionResult(json.RawMessage(`{"predictions": []}`))
	assert.Error(t, err)

	_, err = parsePredictionResult(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestParsePredictionResultRejectsBadDate(t *testing.T) {
	raw := json.RawMessage(`{
		"predictions": [
			{"date": "tomorrow", "predicted_energy": 5, "confidence": 0.5,
			 "recommendation": "rest"}
		]
	}`)

	_, err := parsePredictionResult(raw)
	assert.Error(t, err)
}

func TestClampHelpers(t *testing.T) {
	assert.Equal(t, 5, clampInt(5, 1, 10))
	assert.Equal(t, 1, clampInt(-3, 1, 10))
	assert.Equal(t, 10, clampInt(99, 1, 10))
	assert.Equal(t, 0.5, clampFloat(0.5, 0, 1))
	assert.Equal(t, 0.0, clampFloat(-1, 0, 1))
	assert.Equal(t, 1.0, clampFloat(2, 0, 1))
}
