package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestMoodScoreLookup(t *testing.T) {
	assert.Equal(t, 95, MoodScore("great"))
	assert.Equal(t, 95, MoodScore("GREAT"))
	assert.Equal(t, 95, MoodScore("excellent"))
	assert.Equal(t, 80, MoodScore("good"))
	assert.Equal(t, 60, MoodScore("okay"))
	assert.Equal(t, 60, MoodScore("Neutral"))
	assert.Equal(t, 40, MoodScore("tired"))
	assert.Equal(t, 40, MoodScore("low"))
	assert.Equal(t, 25, MoodScore("bad"))
	assert.Equal(t, 25, MoodScore("stressed"))
	assert.Equal(t, 70, MoodScore("unknown-string"))
	assert.Equal(t, 70, MoodScore(""))
}

func TestAggregateEmptyDay(t *testing.T) {
	today := at("2026-03-02T00:00")

	days := BuildDailyAggregates(nil, nil, today, 1)

	require.Len(t, days, 1)
	assert.Equal(t, "2026-03-02", days[0].Date)
	assert.Zero(t, days[0].AvgEnergy)
	assert.Zero(t, days[0].AvgMoodScore)
	assert.Zero(t, days[0].ProductivityIndex)
	assert.Zero(t, days[0].SessionCount)
	assert.Zero(t, days[0].FocusHours)
}

func TestAggregateSingleDay(t *testing.T) {
	today := at("2026-03-02T00:00")
	energy := []EnergySample{
		{OccurredAt: at("2026-03-02T09:00"), Level: 80, Mood: "great"},
		{OccurredAt: at("2026-03-02T15:00"), Level: 60, Mood: "okay"},
	}
	focus := []FocusSample{
		{OccurredAt: at("2026-03-02T10:00"), DurationMinutes: 90},
		{OccurredAt: at("2026-03-02T14:00"), DurationMinutes: 60},
	}

	days := BuildDailyAggregates(energy, focus, today, 1)

	require.Len(t, days, 1)
	agg := days[0]
	assert.Equal(t, 70.0, agg.AvgEnergy)
	assert.Equal(t, 77.5, agg.AvgMoodScore) // (95+60)/2
	assert.Equal(t, 2.5, agg.FocusHours)
	assert.Equal(t, 2, agg.SessionCount)
	// 70*0.4 + (150/300)*60 = 28 + 30 = 58
	assert.Equal(t, 58, agg.ProductivityIndex)
}

func TestAggregateWindowOrdering(t *testing.T) {
	today := at("2026-03-02T00:00")
	energy := []EnergySample{
		{OccurredAt: at("2026-02-28T09:00"), Level: 50, Mood: "good"},
		{OccurredAt: at("2026-03-02T09:00"), Level: 90, Mood: "great"},
	}

	days := BuildDailyAggregates(energy, nil, today, 3)

	require.Len(t, days, 3)
	assert.Equal(t, "2026-02-28", days[0].Date)
	assert.Equal(t, "2026-03-01", days[1].Date)
	assert.Equal(t, "2026-03-02", days[2].Date)
	assert.Equal(t, 50.0, days[0].AvgEnergy)
	assert.Zero(t, days[1].AvgEnergy)
	assert.Equal(t, 90.0, days[2].AvgEnergy)
}

func TestProductivityIndexRequiresBothInputs(t *testing.T) {
	assert.Zero(t, productivityIndex(0, 120), "no energy, no index")
	assert.Zero(t, productivityIndex(75, 0), "no focus, no index")
	assert.Equal(t, 90, productivityIndex(75, 300)) // 30 + 60
	// Focus saturates at 5 hours.
	assert.Equal(t, 90, productivityIndex(75, 900))
}

func TestHourlyProfileDefaultsAndPeak(t *testing.T) {
	energy := []EnergySample{
		{OccurredAt: at("2026-03-01T08:15"), Level: 90},
		{OccurredAt: at("2026-03-01T09:45"), Level: 70}, // adjacent odd hour, same bucket
		{OccurredAt: at("2026-03-02T14:00"), Level: 40},
		{OccurredAt: at("2026-03-02T23:00"), Level: 100}, // outside 06-22, ignored
	}

	profile := BuildHourlyProfile(energy)

	require.Len(t, profile.Buckets, 8)
	assert.Equal(t, 6, profile.Buckets[0].StartHour)
	assert.Equal(t, 20, profile.Buckets[7].StartHour)

	// 08-10 bucket averages 80; 14-16 bucket 40; empty buckets default 50.
	assert.Equal(t, 80.0, profile.Buckets[1].AvgEnergy)
	assert.Equal(t, 2, profile.Buckets[1].Samples)
	assert.Equal(t, 40.0, profile.Buckets[4].AvgEnergy)
	assert.Equal(t, 50.0, profile.Buckets[0].AvgEnergy)
	assert.Zero(t, profile.Buckets[0].Samples)

	assert.Equal(t, 8, profile.PeakHour)
}
