package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Weekday uint8

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the days a section may meet on, in calendar order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayTokens = map[Weekday]string{
	Monday:    "Mo",
	Tuesday:   "Tu",
	Wednesday: "We",
	Thursday:  "Th",
	Friday:    "Fr",
}

func (day Weekday) String() string {
	return weekdayTokens[day]
}

// ParseWeekday maps a two-letter token (e.g. "Mo") into a Weekday
func ParseWeekday(token string) (Weekday, error) {
	day, ok := lo.FindKey(weekdayTokens, token)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDay, token)
	}
	return day, nil
}

// TimeOfDay is a wall-clock time expressed in minutes since midnight
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses a 12-hour clock time such as "10:00AM" or "1:30 PM"
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))
	parsed, err := time.Parse("3:04PM", normalized)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return NewTimeOfDay(parsed.Hour(), parsed.Minute()), nil
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Clock formats the time on a 24-hour clock, like "14:30"
func (t TimeOfDay) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// String formats the time on a zero-padded 12-hour clock, like "02:30 PM"
func (t TimeOfDay) String() string {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC).Format("03:04 PM")
}

// TimeDifference returns the signed duration going from t1 to t2
func TimeDifference(t1, t2 TimeOfDay) time.Duration {
	return time.Duration(t2-t1) * time.Minute
}

// MeetingTime is a weekly recurring meeting, like MoWe 10:00 AM - 12:00 PM
type MeetingTime struct {
	days  []Weekday
	begin TimeOfDay
	end   TimeOfDay
}

func NewMeetingTime(days []Weekday, begin, end TimeOfDay) (MeetingTime, error) {
	if len(days) == 0 {
		return MeetingTime{}, fmt.Errorf("%w: meeting time has no days", ErrInvalidDay)
	}
	if duplicates := lo.FindDuplicates(days); len(duplicates) > 0 {
		return MeetingTime{}, fmt.Errorf("%w: duplicate day %v", ErrInvalidDay, duplicates[0])
	}
	if begin >= end {
		return MeetingTime{}, fmt.Errorf("%w: begin %v is not before end %v", ErrInvalidTimeRange, begin.Clock(), end.Clock())
	}
	return MeetingTime{
		days:  append([]Weekday(nil), days...),
		begin: begin,
		end:   end,
	}, nil
}

// ParseMeetingTime builds a meeting time from catalog strings, days like "MoWeFr" and times like "10:00AM - 12:00PM"
func ParseMeetingTime(days, times string) (MeetingTime, error) {
	days = strings.TrimSpace(days)
	if len(days) == 0 || len(days)%2 != 0 {
		return MeetingTime{}, fmt.Errorf("%w: %q", ErrInvalidDay, days)
	}

	dayList := make([]Weekday, 0, len(days)/2)
	for _, token := range lo.ChunkString(days, 2) {
		day, err := ParseWeekday(token)
		if err != nil {
			return MeetingTime{}, err
		}
		dayList = append(dayList, day)
	}

	bounds := strings.Split(times, "-")
	if len(bounds) != 2 {
		return MeetingTime{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, times)
	}
	begin, err := ParseTimeOfDay(bounds[0])
	if err != nil {
		return MeetingTime{}, err
	}
	end, err := ParseTimeOfDay(bounds[1])
	if err != nil {
		return MeetingTime{}, err
	}

	return NewMeetingTime(dayList, begin, end)
}

func (meetingTime MeetingTime) Days() []Weekday {
	return append([]Weekday(nil), meetingTime.days...)
}

func (meetingTime MeetingTime) Begin() TimeOfDay {
	return meetingTime.begin
}

func (meetingTime MeetingTime) End() TimeOfDay {
	return meetingTime.end
}

func (meetingTime MeetingTime) Length() time.Duration {
	return TimeDifference(meetingTime.begin, meetingTime.end)
}

// SharesDay checks whether both meeting times have at least one weekday in common
func (meetingTime MeetingTime) SharesDay(other MeetingTime) bool {
	return lo.SomeBy(meetingTime.days, func(day Weekday) bool {
		return lo.Contains(other.days, day)
	})
}

// ConflictsWith checks whether two meeting times overlap on a common day.
// Meetings that border each other (one ends exactly when the other begins) do not conflict.
func (meetingTime MeetingTime) ConflictsWith(other MeetingTime) bool {
	if !meetingTime.SharesDay(other) {
		return false
	}

	first, second := meetingTime, other
	if second.begin < first.begin {
		first, second = second, first
	}
	return second.begin < first.end
}

// DayTokens returns the canonical day string, like "MoWeFr"
func (meetingTime MeetingTime) DayTokens() string {
	return strings.Join(lo.Map(meetingTime.days, func(day Weekday, _ int) string { return day.String() }), "")
}

func (meetingTime MeetingTime) String() string {
	return fmt.Sprintf("<MeetingTime Days=%v Begin=%v End=%v>", meetingTime.DayTokens(), meetingTime.begin.Clock(), meetingTime.end.Clock())
}
