package domain

import (
	"fmt"
	"time"
)

// ScheduleType defines the digest period
type ScheduleType string

// supported digest periods
const (
	ScheduleHourly  ScheduleType = "hourly"
	ScheduleEvery4h ScheduleType = "every_4h"
	ScheduleEvery6h ScheduleType = "every_6h"
	ScheduleEvery12 ScheduleType = "every_12h"
	ScheduleDaily   ScheduleType = "daily"
	ScheduleWeekly  ScheduleType = "weekly"
)

// Interval returns the fixed period for interval-based schedule types,
// zero for daily and weekly which fire on wall-clock anchors.
func (t ScheduleType) Interval() time.Duration {
	switch t {
	case ScheduleHourly:
		return time.Hour
	case ScheduleEvery4h:
		return 4 * time.Hour
	case ScheduleEvery6h:
		return 6 * time.Hour
	case ScheduleEvery12:
		return 12 * time.Hour
	}
	return 0
}

// Valid reports whether the schedule type is one of the supported periods
func (t ScheduleType) Valid() bool {
	switch t {
	case ScheduleHourly, ScheduleEvery4h, ScheduleEvery6h, ScheduleEvery12, ScheduleDaily, ScheduleWeekly:
		return true
	}
	return false
}

// DigestSchedule describes one periodic digest window owned by a profile.
// DailyHour applies to daily schedules, WeeklyDay/WeeklyHour to weekly ones;
// all anchors are UTC.
type DigestSchedule struct {
	Type             ScheduleType `json:"type"`
	Enabled          bool         `json:"enabled"`
	DailyHour        *int         `json:"daily_hour,omitempty"`
	WeeklyDay        *int         `json:"weekly_day,omitempty"` // 0=Sunday, matches time.Weekday
	WeeklyHour       *int         `json:"weekly_hour,omitempty"`
	MinScoreOverride *float64     `json:"min_score_override,omitempty"`
	TopNOverride     *int         `json:"top_n_override,omitempty"`

	// ProfileID is filled in at resolution time
	ProfileID int64 `json:"-"`
}

// Key identifies the schedule for last-run persistence and batch collection
func (s DigestSchedule) Key() string {
	return fmt.Sprintf("%d:%s", s.ProfileID, s.Type)
}
