package gtfs

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

const DateLayout = "20060102"

func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}

	return date, nil
}

// ServiceDates maps a service id to the sorted dates it runs on
type ServiceDates map[string][]time.Time

func (s ServiceDates) Runs(serviceID string, date time.Time) bool {
	for _, runningDate := range s[serviceID] {
		if runningDate.Equal(date) {
			return true
		}
	}

	return false
}

// ActiveServiceDates works out which services run on each day of the inclusive range.
// The weekly calendar contributes its days within its own start and end, then calendar
// date exceptions add (type 1) or remove (type 2) single days.
func ActiveServiceDates(feed *Feed, start time.Time, end time.Time) (ServiceDates, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("date window end %s before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	active := map[string]map[time.Time]bool{}
	set := func(serviceID string, date time.Time, running bool) {
		if active[serviceID] == nil {
			active[serviceID] = map[time.Time]bool{}
		}
		active[serviceID][date] = running
	}

	for _, calendar := range feed.Calendars {
		calendarStart, err := ParseDate(calendar.Start)
		if err != nil {
			return nil, fmt.Errorf("calendar %s: %w", calendar.ServiceID, err)
		}
		calendarEnd, err := ParseDate(calendar.End)
		if err != nil {
			return nil, fmt.Errorf("calendar %s: %w", calendar.ServiceID, err)
		}

		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			if date.Before(calendarStart) || date.After(calendarEnd) {
				continue
			}
			if calendar.RunsOn(date.Weekday()) {
				set(calendar.ServiceID, date, true)
			}
		}
	}

	for _, calendarDate := range feed.CalendarDates {
		date, err := ParseDate(calendarDate.Date)
		if err != nil {
			return nil, fmt.Errorf("calendar date for %s: %w", calendarDate.ServiceID, err)
		}
		if date.Before(start) || date.After(end) {
			continue
		}

		switch calendarDate.ExceptionType {
		case ExceptionTypeAdded:
			set(calendarDate.ServiceID, date, true)
		case ExceptionTypeRemoved:
			set(calendarDate.ServiceID, date, false)
		default:
			log.Warn().
				Str("service", calendarDate.ServiceID).
				Str("date", calendarDate.Date).
				Int("exception", calendarDate.ExceptionType).
				Msg("Unknown calendar date exception type")
		}
	}

	serviceDates := ServiceDates{}
	for serviceID, dates := range active {
		for date, running := range dates {
			if running {
				serviceDates[serviceID] = append(serviceDates[serviceID], date)
			}
		}
		slices.SortFunc(serviceDates[serviceID], func(a, b time.Time) int {
			return a.Compare(b)
		})
	}

	return serviceDates, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
