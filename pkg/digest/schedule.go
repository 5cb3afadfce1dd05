// Package digest computes periodic digest windows and accumulates scored
// messages into per-schedule batches until the window fires.
package digest

import (
	"time"

	"github.com/umputun/chatscope/pkg/domain"
)

// LastFire returns the most recent scheduled fire time at or before now.
// Interval schedules are aligned to wall-clock boundaries (hourly on the
// hour, every_4h on 00/04/08... UTC), daily and weekly to their configured
// anchors. All computation is UTC.
func LastFire(sched domain.DigestSchedule, now time.Time) time.Time {
	now = now.UTC()

	if interval := sched.Type.Interval(); interval > 0 {
		return now.Truncate(interval)
	}

	switch sched.Type {
	case domain.ScheduleDaily:
		hour := 0
		if sched.DailyHour != nil {
			hour = *sched.DailyHour
		}
		fire := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
		if fire.After(now) {
			fire = fire.AddDate(0, 0, -1)
		}
		return fire

	case domain.ScheduleWeekly:
		day := time.Sunday
		if sched.WeeklyDay != nil {
			day = time.Weekday(*sched.WeeklyDay)
		}
		hour := 0
		if sched.WeeklyHour != nil {
			hour = *sched.WeeklyHour
		}
		fire := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
		fire = fire.AddDate(0, 0, -int((now.Weekday()-day+7)%7))
		if fire.After(now) {
			fire = fire.AddDate(0, 0, -7)
		}
		return fire
	}

	return time.Time{} // unknown type never fires
}

// NextFire returns the first scheduled fire time strictly after now,
// used by the observability surface to report upcoming digests.
func NextFire(sched domain.DigestSchedule, now time.Time) time.Time {
	now = now.UTC()
	last := LastFire(sched, now)
	if last.IsZero() {
		return time.Time{}
	}

	if interval := sched.Type.Interval(); interval > 0 {
		return last.Add(interval)
	}
	if sched.Type == domain.ScheduleWeekly {
		return last.AddDate(0, 0, 7)
	}
	return last.AddDate(0, 0, 1)
}

// IsDue reports whether the schedule should fire: the window boundary has
// passed and the persisted last run predates it. Calling twice with the
// same now after last_run is updated never fires twice.
func IsDue(sched domain.DigestSchedule, lastRun, now time.Time) bool {
	if !sched.Enabled || !sched.Type.Valid() {
		return false
	}
	fire := LastFire(sched, now)
	if fire.IsZero() {
		return false
	}
	return lastRun.Before(fire)
}
