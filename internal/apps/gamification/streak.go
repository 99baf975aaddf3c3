package gamification

import "time"

// Streak lengths that award a bonus of streak*10 XP and unlock an achievement.
var milestones = map[int]string{
	3:   "Kindling",
	7:   "One Week Strong",
	14:  "Fortnight Focus",
	21:  "Habit Formed",
	30:  "Monthly Master",
	50:  "Half Century",
	100: "Centurion",
	200: "Relentless",
	365: "Year of You",
}

// DayUTC truncates t to its UTC calendar day.
func DayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// applyStreak computes the next gamification state for an active day. It is
// pure: no I/O, no clock reads. Callers guarantee hasActivity was checked and
// today is a UTC day boundary.
//
// Returns the next state, the XP earned, and any celebratory events.
func applyStreak(st GamificationState, today time.Time) (GamificationState, int, []Event) {
	if st.LastActivityDate != nil && DayUTC(*st.LastActivityDate).Equal(today) {
		return st, 0, nil
	}

	var newStreak, xpEarned int
	switch {
	case st.LastActivityDate == nil:
		newStreak = 1
		xpEarned = 10
	default:
		gap := int(today.Sub(DayUTC(*st.LastActivityDate)).Hours() / 24)
		switch gap {
		case 1:
			newStreak = st.CurrentStreak + 1
			xpEarned = 10 + newStreak*5
		case 0:
			// Same-day guard above makes this unreachable in practice.
			newStreak = st.CurrentStreak
			if newStreak < 1 {
				newStreak = 1
			}
			xpEarned = 0
		default:
			newStreak = 1
			xpEarned = 10
		}
	}

	var events []Event
	if _, ok := milestones[newStreak]; ok {
		xpEarned += newStreak * 10
		events = append(events, Event{Kind: EventMilestone, Streak: newStreak})
	}

	level := st.CurrentLevel
	if level < 1 {
		level = 1
	}
	threshold := st.XPToNextLevel
	if threshold <= 0 {
		threshold = level * 100
	}

	xp := st.CurrentXP + xpEarned
	leveledUp := false
	// Loop: a single update can cross several thresholds.
	for xp >= threshold {
		xp -= threshold
		level++
		threshold = level * 100
		leveledUp = true
	}
	if leveledUp {
		events = append(events, Event{Kind: EventLevelUp, Level: level})
	}

	st.CurrentStreak = newStreak
	if newStreak > st.LongestStreak {
		st.LongestStreak = newStreak
	}
	st.CurrentLevel = level
	st.CurrentXP = xp
	st.XPToNextLevel = threshold
	st.TotalPoints += xpEarned
	d := today
	st.LastActivityDate = &d

	return st, xpEarned, events
}
