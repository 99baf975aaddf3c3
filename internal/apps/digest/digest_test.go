package digest

import (
	"testing"

	"github.com/humanos-app/humanos-backend/internal/apps/analytics"
	"github.com/humanos-app/humanos-backend/internal/apps/gamification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDigest(t *testing.T) {
	overview := &analytics.Overview{
		Days: []analytics.DailyAggregate{
			{Date: "2026-03-02", AvgEnergy: 72.5, AvgMoodScore: 80, FocusHours: 2.5, ProductivityIndex: 59, SessionCount: 2},
		},
	}
	state := &gamification.GamificationState{
		CurrentStreak: 7,
		LongestStreak: 12,
		CurrentLevel:  3,
		TotalPoints:   640,
	}

	html, err := renderDigest("Alex", overview, state)
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Alex")
	assert.Contains(t, html, "7 days")
	assert.Contains(t, html, "best 12")
	assert.Contains(t, html, "Level 3")
	assert.Contains(t, html, "640 points")
	assert.Contains(t, html, "2026-03-02")
}

func TestRenderDigestEmptyName(t *testing.T) {
	html, err := renderDigest("", &analytics.Overview{}, &gamification.GamificationState{CurrentLevel: 1})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi there")
}
