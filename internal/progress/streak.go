package progress

import "time"

const dayLayout = "2006-01-02"

// TouchStudyDay advances the daily streak for activity at now. A second
// session on the same calendar day leaves it unchanged; a session on the
// following day extends it; anything else restarts it at 1.
func (p *Progress) TouchStudyDay(now time.Time) {
	today := now.Format(dayLayout)
	switch {
	case p.LastStudyDate == nil || p.StreakDays == 0:
		p.StreakDays = 1
	case p.LastStudyDate.In(now.Location()).Format(dayLayout) == today:
		// already counted
	case p.LastStudyDate.In(now.Location()).Format(dayLayout) == now.AddDate(0, 0, -1).Format(dayLayout):
		p.StreakDays++
	default:
		p.StreakDays = 1
	}
	t := now
	p.LastStudyDate = &t
}

// ExpireStreak zeroes the streak when the last study day is neither today
// nor yesterday. It reports whether the streak changed.
func (p *Progress) ExpireStreak(now time.Time) bool {
	if p.StreakDays == 0 || p.LastStudyDate == nil {
		return false
	}
	last := p.LastStudyDate.In(now.Location()).Format(dayLayout)
	if last == now.Format(dayLayout) || last == now.AddDate(0, 0, -1).Format(dayLayout) {
		return false
	}
	p.StreakDays = 0
	return true
}

// StreakFromLog counts consecutive study days ending today or yesterday
// from the session log dates.
func StreakFromLog(log []StudySession, today time.Time) int {
	days := make(map[string]bool, len(log))
	for _, s := range log {
		days[s.Date.In(today.Location()).Format(dayLayout)] = true
	}

	check := today
	if !days[check.Format(dayLayout)] {
		check = check.AddDate(0, 0, -1)
		if !days[check.Format(dayLayout)] {
			return 0
		}
	}

	streak := 0
	for days[check.Format(dayLayout)] {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}
