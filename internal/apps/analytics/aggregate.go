package analytics

import (
	"math"
	"strings"
	"time"
)

// Fixed mood label scoring. Unknown labels score 70.
var moodScores = map[string]int{
	"great":     95,
	"excellent": 95,
	"good":      80,
	"okay":      60,
	"neutral":   60,
	"tired":     40,
	"low":       40,
	"bad":       25,
	"stressed":  25,
}

const defaultMoodScore = 70

// Focus time saturates at 5 hours for the productivity index.
const focusSaturationMinutes = 300

// Hourly profile covers 06:00-22:00 in 2-hour buckets.
const (
	profileStartHour = 6
	profileEndHour   = 22
	bucketSpanHours  = 2
)

const defaultBucketEnergy = 50

type EnergySample struct {
	OccurredAt time.Time
	Level      int
	Mood       string
}

type FocusSample struct {
	OccurredAt      time.Time
	DurationMinutes int
}

type DailyAggregate struct {
	Date              string  `json:"date"`
	AvgEnergy         float64 `json:"avg_energy"`
	AvgMoodScore      float64 `json:"avg_mood_score"`
	FocusHours        float64 `json:"focus_hours"`
	ProductivityIndex int     `json:"productivity_index"`
	SessionCount      int     `json:"session_count"`
}

type HourlyBucket struct {
	StartHour int     `json:"start_hour"`
	AvgEnergy float64 `json:"avg_energy"`
	Samples   int     `json:"samples"`
}

type HourlyProfile struct {
	Buckets  []HourlyBucket `json:"buckets"`
	PeakHour int            `json:"peak_hour"`
}

// MoodScore maps a mood label to its fixed score, case-insensitively.
func MoodScore(mood string) int {
	if score, ok := moodScores[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return score
	}
	return defaultMoodScore
}

// BuildDailyAggregates derives one aggregate per trailing calendar day,
// oldest to newest. Pure over its inputs; "today" anchors the window.
func BuildDailyAggregates(energy []EnergySample, focus []FocusSample, today time.Time, windowDays int) []DailyAggregate {
	if windowDays < 1 {
		windowDays = 1
	}

	out := make([]DailyAggregate, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		out = append(out, aggregateDay(energy, focus, day))
	}
	return out
}

func aggregateDay(energy []EnergySample, focus []FocusSample, day time.Time) DailyAggregate {
	dateStr := day.Format("2006-01-02")

	energySum, moodSum, energyCount := 0, 0, 0
	for _, e := range energy {
		if e.OccurredAt.UTC().Format("2006-01-02") != dateStr {
			continue
		}
		energySum += e.Level
		moodSum += MoodScore(e.Mood)
		energyCount++
	}

	focusMinutes, sessionCount := 0, 0
	for _, f := range focus {
		if f.OccurredAt.UTC().Format("2006-01-02") != dateStr {
			continue
		}
		focusMinutes += f.DurationMinutes
		sessionCount++
	}

	agg := DailyAggregate{Date: dateStr, SessionCount: sessionCount}
	if energyCount > 0 {
		agg.AvgEnergy = round1(float64(energySum) / float64(energyCount))
		agg.AvgMoodScore = round1(float64(moodSum) / float64(energyCount))
	}
	agg.FocusHours = round1(float64(focusMinutes) / 60)
	agg.ProductivityIndex = productivityIndex(agg.AvgEnergy, focusMinutes)

	return agg
}

// productivityIndex weights energy up to 40 points and focus time up to 60,
// with focus saturating at 5 hours. Zero unless both inputs are present.
func productivityIndex(avgEnergy float64, focusMinutes int) int {
	if avgEnergy <= 0 || focusMinutes <= 0 {
		return 0
	}
	focusRatio := float64(focusMinutes) / focusSaturationMinutes
	if focusRatio > 1 {
		focusRatio = 1
	}
	return int(math.Round(avgEnergy*0.4 + focusRatio*60))
}

// BuildHourlyProfile buckets all-time energy samples by hour of day. A
// sample lands in the bucket covering its hour (each even start hour plus the
// adjacent odd hour). Empty buckets default to 50.
func BuildHourlyProfile(energy []EnergySample) HourlyProfile {
	nBuckets := (profileEndHour - profileStartHour) / bucketSpanHours

	sums := make([]int, nBuckets)
	counts := make([]int, nBuckets)
	for _, e := range energy {
		hour := e.OccurredAt.UTC().Hour()
		if hour < profileStartHour || hour >= profileEndHour {
			continue
		}
		idx := (hour - profileStartHour) / bucketSpanHours
		sums[idx] += e.Level
		counts[idx]++
	}

	profile := HourlyProfile{Buckets: make([]HourlyBucket, nBuckets)}
	peakIdx := 0
	peakEnergy := -1.0
	for i := 0; i < nBuckets; i++ {
		bucket := HourlyBucket{
			StartHour: profileStartHour + i*bucketSpanHours,
			AvgEnergy: defaultBucketEnergy,
			Samples:   counts[i],
		}
		if counts[i] > 0 {
			bucket.AvgEnergy = round1(float64(sums[i]) / float64(counts[i]))
		}
		profile.Buckets[i] = bucket

		if bucket.AvgEnergy > peakEnergy {
			peakEnergy = bucket.AvgEnergy
			peakIdx = i
		}
	}
	profile.PeakHour = profile.Buckets[peakIdx].StartHour

	return profile
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
