// Package export renders saved events for external calendar tools.
package export

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/abelbrown/campusfeed/internal/event"
)

// defaultDuration stands in for events that have a start but no end.
const defaultDuration = time.Hour

// ICS serializes events as an iCalendar document. Events without a start
// time are skipped; a VEVENT cannot represent "date to be announced".
func ICS(events []event.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//campusfeed//EN")

	now := time.Now()
	for _, e := range events {
		if !e.Scheduled() {
			continue
		}

		ve := cal.AddEvent(e.ID + "@campusfeed")
		ve.SetCreatedTime(now)
		ve.SetDtStampTime(now)
		ve.SetStartAt(e.Start)

		end := e.End
		if end.IsZero() {
			end = e.Start.Add(defaultDuration)
		}
		ve.SetEndAt(end)

		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.URL != "" {
			ve.SetProperty(ical.ComponentPropertyUrl, e.URL)
		}
		if len(e.Tags) > 0 {
			ve.SetProperty(ical.ComponentPropertyCategories, strings.Join(e.Tags, ","))
		}
	}

	return cal.Serialize()
}

// WriteICSFile writes the iCalendar form of events to path.
func WriteICSFile(path string, events []event.Event) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	return os.WriteFile(path, []byte(ICS(events)), 0644)
}

// GoogleCalendarURL builds a prefilled Google Calendar event link.
// Returns an error for unscheduled events.
func GoogleCalendarURL(e event.Event) (string, error) {
	if !e.Scheduled() {
		return "", fmt.Errorf("event %q has no start time", e.Title)
	}

	end := e.End
	if end.IsZero() {
		end = e.Start.Add(defaultDuration)
	}

	const stamp = "20060102T150405Z"
	details := e.Description
	if e.URL != "" {
		if details != "" {
			details += "\n\n"
		}
		details += e.URL
	}

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", e.Title)
	q.Set("dates", e.Start.UTC().Format(stamp)+"/"+end.UTC().Format(stamp))
	if details != "" {
		q.Set("details", details)
	}
	if e.Location != "" {
		q.Set("location", e.Location)
	}

	u := url.URL{
		Scheme:   "https",
		Host:     "calendar.google.com",
		Path:     "/calendar/render",
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}
