package export

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/samber/lo"
)

const (
	ProductID = "-//coursepicker//schedule//EN"
	// localFormat is a floating date-time: it's read in the time zone of whoever opens the calendar
	localFormat = "20060102T150405"
)

// uidNamespace scopes the event UIDs, so exporting a schedule twice yields the same events
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/limaJavier/coursepicker"))

var icalWeekdays = map[model.Weekday]string{
	model.Monday:    "MO",
	model.Tuesday:   "TU",
	model.Wednesday: "WE",
	model.Thursday:  "TH",
	model.Friday:    "FR",
}

type Options struct {
	// WeekOf is any date in the first week of classes
	WeekOf time.Time
	// Weeks bounds the recurrence. Zero repeats forever.
	Weeks int
	// Stamp is the creation time of the events. Zero means now.
	Stamp time.Time
}

// Calendar turns a schedule into a calendar with one weekly recurring event per section
func Calendar(candidate model.Candidate, options Options) *ics.Calendar {
	stamp := lo.Ternary(options.Stamp.IsZero(), time.Now(), options.Stamp)
	monday := mondayOf(options.WeekOf)

	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)
	calendar.SetProductId(ProductID)

	for _, section := range candidate.Sections() {
		meetingTime := section.MeetingTime
		firstDay := slices.Min(meetingTime.Days())
		date := monday.AddDate(0, 0, int(firstDay))
		start := atTimeOfDay(date, meetingTime.Begin())
		end := atTimeOfDay(date, meetingTime.End())

		event := calendar.AddEvent(eventUID(section))
		event.SetDtStampTime(stamp)
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(localFormat))
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(localFormat))
		event.SetSummary(fmt.Sprintf("%v %v", section.Code(), section.Label()))
		event.SetDescription(section.Name)
		if section.Location != "" {
			event.SetLocation(section.Location)
		}
		event.AddProperty(ics.ComponentPropertyRrule, recurrence(meetingTime, options.Weeks))
	}
	return calendar
}

// Write serializes the calendar of a schedule
func Write(writer io.Writer, candidate model.Candidate, options Options) error {
	_, err := io.WriteString(writer, Calendar(candidate, options).Serialize())
	return err
}

func recurrence(meetingTime model.MeetingTime, weeks int) string {
	days := lo.Map(meetingTime.Days(), func(day model.Weekday, _ int) string { return icalWeekdays[day] })
	rule := "FREQ=WEEKLY;BYDAY=" + strings.Join(days, ",")
	if weeks > 0 {
		rule += fmt.Sprintf(";COUNT=%d", weeks*len(days))
	}
	return rule
}

func eventUID(section model.Section) string {
	name := fmt.Sprintf("%v/%v/%v/%v", section.TermCode, section.ClassNumber, section.Code(), section.Label())
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

// mondayOf returns the Monday of the week the date falls in, at midnight
func mondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7 // Days since Monday
	year, month, day := date.AddDate(0, 0, -offset).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, date.Location())
}

func atTimeOfDay(date time.Time, timeOfDay model.TimeOfDay) time.Time {
	return date.Add(time.Duration(timeOfDay) * time.Minute)
}
