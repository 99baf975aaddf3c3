package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func ptr(t time.Time) *time.Time { return &t }

func TestApplyStreakFirstActivity(t *testing.T) {
	st := GamificationState{CurrentLevel: 1, XPToNextLevel: 100}

	next, xp, events := applyStreak(st, day("2026-03-02"))

	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 1, next.LongestStreak)
	assert.Equal(t, 10, xp)
	assert.Equal(t, 10, next.TotalPoints)
	assert.Empty(t, events)
	require.NotNil(t, next.LastActivityDate)
	assert.Equal(t, day("2026-03-02"), *next.LastActivityDate)
}

func TestApplyStreakConsecutiveDay(t *testing.T) {
	st := GamificationState{
		CurrentLevel:     1,
		XPToNextLevel:    100,
		CurrentStreak:    4,
		LongestStreak:    4,
		LastActivityDate: ptr(day("2026-03-01")),
	}

	next, xp, _ := applyStreak(st, day("2026-03-02"))

	assert.Equal(t, 5, next.CurrentStreak)
	assert.Equal(t, 5, next.LongestStreak)
	assert.Equal(t, 10+5*5, xp)
}

func TestApplyStreakGapResets(t *testing.T) {
	st := GamificationState{
		CurrentLevel:     2,
		XPToNextLevel:    200,
		CurrentStreak:    12,
		LongestStreak:    12,
		LastActivityDate: ptr(day("2026-02-25")),
	}

	next, xp, _ := applyStreak(st, day("2026-03-02"))

	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 12, next.LongestStreak, "longest streak survives a reset")
	assert.Equal(t, 10, xp)
}

func TestApplyStreakSameDayIsNoop(t *testing.T) {
	st := GamificationState{
		CurrentLevel:     1,
		XPToNextLevel:    100,
		CurrentXP:        40,
		TotalPoints:      40,
		CurrentStreak:    3,
		LongestStreak:    5,
		LastActivityDate: ptr(day("2026-03-02")),
	}

	next, xp, events := applyStreak(st, day("2026-03-02"))

	assert.Equal(t, 0, xp)
	assert.Empty(t, events)
	assert.Equal(t, st.CurrentXP, next.CurrentXP)
	assert.Equal(t, st.CurrentStreak, next.CurrentStreak)
	assert.Equal(t, st.TotalPoints, next.TotalPoints)
}

func TestApplyStreakMilestoneBonus(t *testing.T) {
	st := GamificationState{
		CurrentLevel:     1,
		XPToNextLevel:    100,
		CurrentStreak:    6,
		LongestStreak:    6,
		LastActivityDate: ptr(day("2026-03-01")),
	}

	next, xp, events := applyStreak(st, day("2026-03-02"))

	assert.Equal(t, 7, next.CurrentStreak)
	assert.Equal(t, 7, next.LongestStreak)
	// base 10 + 7*5 = 45, milestone bonus 7*10 = 70
	assert.Equal(t, 115, xp)

	require.Len(t, events, 2)
	assert.Equal(t, EventMilestone, events[0].Kind)
	assert.Equal(t, 7, events[0].Streak)
	assert.Equal(t, EventLevelUp, events[1].Kind)
}

func TestApplyStreakLevelUp(t *testing.T) {
	st := GamificationState{
		CurrentLevel:     1,
		XPToNextLevel:    100,
		CurrentXP:        95,
		CurrentStreak:    1,
		LongestStreak:    1,
		LastActivityDate: ptr(day("2026-03-01")),
	}

	// 1-day gap with streak 2: xp = 10 + 2*5 = 20
	next, xp, events := applyStreak(st, day("2026-03-02"))

	assert.Equal(t, 20, xp)
	assert.Equal(t, 2, next.CurrentLevel)
	assert.Equal(t, 15, next.CurrentXP)
	assert.Equal(t, 200, next.XPToNextLevel)

	require.Len(t, events, 1)
	assert.Equal(t, EventLevelUp, events[0].Kind)
	assert.Equal(t, 2, events[0].Level)
}

func TestApplyStreakMultiLevelJump(t *testing.T) {
	// Milestone day 30: xp = 10 + 30*5 + 30*10 = 460, enough for several
	// level-1 thresholds at once.
	st := GamificationState{
		CurrentLevel:     1,
		XPToNextLevel:    100,
		CurrentXP:        90,
		CurrentStreak:    29,
		LongestStreak:    29,
		LastActivityDate: ptr(day("2026-03-01")),
	}

	next, xp, _ := applyStreak(st, day("2026-03-02"))

	assert.Equal(t, 460, xp)
	// 550 total xp: -100 (L1) -> 450, -200 (L2) -> 250, threshold 300 at L3
	assert.Equal(t, 3, next.CurrentLevel)
	assert.Equal(t, 250, next.CurrentXP)
	assert.Equal(t, 300, next.XPToNextLevel)
}

func TestApplyStreakLongestInvariant(t *testing.T) {
	states := []GamificationState{
		{CurrentLevel: 1, XPToNextLevel: 100},
		{CurrentLevel: 1, XPToNextLevel: 100, CurrentStreak: 5, LongestStreak: 9, LastActivityDate: ptr(day("2026-03-01"))},
		{CurrentLevel: 1, XPToNextLevel: 100, CurrentStreak: 9, LongestStreak: 9, LastActivityDate: ptr(day("2026-03-01"))},
		{CurrentLevel: 1, XPToNextLevel: 100, CurrentStreak: 9, LongestStreak: 9, LastActivityDate: ptr(day("2026-02-10"))},
	}

	for _, st := range states {
		next, _, _ := applyStreak(st, day("2026-03-02"))
		assert.GreaterOrEqual(t, next.LongestStreak, next.CurrentStreak)
	}
}

func TestDayUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2026, 3, 2, 2, 30, 0, 0, loc) // 2026-03-01 21:30 UTC

	assert.Equal(t, day("2026-03-01"), DayUTC(local))
}
