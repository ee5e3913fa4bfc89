package catalog

import (
	"bytes"
	"fmt"
	"strings"

	ical "github.com/arran4/golang-ical"

	"github.com/abelbrown/campusfeed/internal/event"
)

// ParseICS decodes an iCalendar payload into events. VEVENTs without a
// summary are dropped; the rest of the calendar still parses.
func ParseICS(body []byte, src Source) ([]event.Event, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	events := make([]event.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		e, ok := convertVEvent(ve, src)
		if !ok {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func convertVEvent(ve *ical.VEvent, src Source) (event.Event, bool) {
	e := event.Event{Organizer: src.Name}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		e.Title = strings.TrimSpace(p.Value)
	}
	if e.Title == "" {
		return event.Event{}, false
	}

	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		e.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		e.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyUrl); p != nil {
		e.URL = p.Value
	}

	// CATEGORIES carries comma-separated tags
	for _, p := range ve.GetProperties(ical.ComponentPropertyCategories) {
		for _, tag := range strings.Split(p.Value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				e.Tags = append(e.Tags, tag)
			}
		}
	}

	// The library's helpers handle VTIMEZONE/TZID logic. A VEVENT without
	// a parseable DTSTART stays unscheduled.
	if start, err := ve.GetStartAt(); err == nil {
		e.Start = start
	}
	if end, err := ve.GetEndAt(); err == nil {
		e.End = end
	}

	uid := ""
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		uid = p.Value
	}
	if uid != "" {
		e.ID = hashID(uid)
	} else {
		e.ID = hashID(e.Title + e.Start.String())
	}

	return e, true
}
