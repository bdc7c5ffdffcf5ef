// File: services/dining/status.go
package dining

import (
	"fmt"
	"sort"
	"time"

	"cmueats/models"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
	MinutesPerWeek = 7 * MinutesPerDay

	// SoonThreshold is how close a transition must be for ChangesSoon.
	SoonThreshold = 60

	ClosedIndefinitely = "Closed until further notice"
)

// Interval is a slot in absolute week minutes. End may exceed MinutesPerWeek
// and Start may be negative for the shifted copy of a wrapping slot.
type Interval struct {
	Start int
	End   int
}

// Status is the derived open/closed state of one location.
type Status struct {
	IsOpen      bool
	Message     string
	ChangesSoon bool
	// MinutesUntilChange is minutes until close when open, until open when closed.
	// -1 when the location has no slots.
	MinutesUntilChange int
}

// WeekMinute converts t to minutes since Sunday 00:00 in t's location.
func WeekMinute(t time.Time) int {
	return int(t.Weekday())*MinutesPerDay + t.Hour()*MinutesPerHour + t.Minute()
}

func timestampMinutes(ts models.WeeklyTimestamp) int {
	return ts.Day*MinutesPerDay + ts.Hour*MinutesPerHour + ts.Minute
}

// ExpandSlots converts weekly slots to intervals sorted by start. A slot that
// wraps past the week boundary yields its end pushed into next week plus a
// copy shifted back one week, so the early Sunday part is matched directly.
func ExpandSlots(slots []models.TimeSlot) []Interval {
	out := make([]Interval, 0, len(slots))
	for _, slot := range slots {
		start := timestampMinutes(slot.Start)
		end := timestampMinutes(slot.End)
		if end < start {
			end += MinutesPerWeek
			out = append(out, Interval{Start: start - MinutesPerWeek, End: end - MinutesPerWeek})
		}
		out = append(out, Interval{Start: start, End: end})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// IsCurrentlyOpen reports whether now falls within the interval, bounds inclusive.
func IsCurrentlyOpen(iv Interval, now int) bool {
	return iv.Start <= now && now <= iv.End
}

// weekDistance is the forward distance from one week minute to another.
func weekDistance(from, to int) int {
	return ((to-from)%MinutesPerWeek + MinutesPerWeek) % MinutesPerWeek
}

// ComputeStatus derives the status of a location with the given slots at now.
// now must already be expressed in the dining time zone.
func ComputeStatus(slots []models.TimeSlot, now time.Time) Status {
	intervals := ExpandSlots(slots)
	if len(intervals) == 0 {
		return Status{Message: ClosedIndefinitely, MinutesUntilChange: -1}
	}
	nowMinute := WeekMinute(now)

	for _, iv := range intervals {
		if IsCurrentlyOpen(iv, nowMinute) {
			remaining := weekDistance(nowMinute, iv.End)
			return Status{
				IsOpen:             true,
				Message:            statusMessage(true, remaining, nowMinute),
				ChangesSoon:        remaining <= SoonThreshold,
				MinutesUntilChange: remaining,
			}
		}
	}

	next := -1
	for i, iv := range intervals {
		if iv.Start >= nowMinute {
			next = i
			break
		}
	}
	if next == -1 {
		// Nothing left this week; the first slot of the list opens next week.
		next = 0
	}
	until := weekDistance(nowMinute, intervals[next].Start)
	return Status{
		Message:            statusMessage(false, until, nowMinute),
		ChangesSoon:        until <= SoonThreshold,
		MinutesUntilChange: until,
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// clockLabel formats a week minute as "3:04 PM".
func clockLabel(weekMinute int) string {
	dayMinute := weekMinute % MinutesPerDay
	hour, minute := dayMinute/MinutesPerHour, dayMinute%MinutesPerHour
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

// statusMessage renders "Opens in 2 hours (at 5:00 PM)" style messages for a
// transition minutes ahead of nowMinute. Arithmetic stays in wall-clock week
// minutes so DST changes do not shift the reported time.
func statusMessage(open bool, minutes int, nowMinute int) string {
	action := "Opens"
	if open {
		action = "Closes"
	}
	at := (nowMinute + minutes) % MinutesPerWeek
	clock := clockLabel(at)

	nowDay, atDay := nowMinute/MinutesPerDay, at/MinutesPerDay
	dayDiff := (atDay - nowDay + 7) % 7
	if dayDiff == 0 && minutes >= MinutesPerDay {
		dayDiff = 7
	}

	switch {
	case minutes < MinutesPerHour:
		// Also covers a transition just past midnight, which would otherwise read "in 0 hours".
		return fmt.Sprintf("%s in %s (at %s)", action, plural(minutes, "minute"), clock)
	case dayDiff == 0:
		return fmt.Sprintf("%s in %s (at %s)", action, plural(minutes/MinutesPerHour, "hour"), clock)
	case dayDiff == 1:
		return fmt.Sprintf("%s tomorrow at %s", action, clock)
	default:
		return fmt.Sprintf("%s %s at %s", action, time.Weekday(atDay), clock)
	}
}
