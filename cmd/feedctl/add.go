package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abelbrown/campusfeed/internal/event"
)

func runAdd() {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "Event title (required)")
	desc := fs.String("desc", "", "Description")
	organizer := fs.String("organizer", "", "Organizer (club or office)")
	location := fs.String("location", "", "Location")
	urlFlag := fs.String("url", "", "Event page URL")
	date := fs.String("date", "", "Start date, like 2026-09-12 (empty = to be announced)")
	clock := fs.String("time", "", "Start time, like 18:00")
	levelFlag := fs.String("level", "", "Level: beginner, intermediate or advanced")
	facultyFlag := fs.String("faculty", "", "Faculty (empty = open to all)")
	tagsFlag := fs.String("tags", "", "Tags, comma separated")
	fs.Parse(os.Args[1:])

	if strings.TrimSpace(*title) == "" {
		fmt.Fprintln(os.Stderr, "error: -title is required")
		os.Exit(1)
	}

	var start time.Time
	if d := strings.TrimSpace(*date); d != "" {
		day, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: -date must look like 2026-09-12")
			os.Exit(1)
		}
		start = day
		if tv := strings.TrimSpace(*clock); tv != "" {
			c, err := time.Parse("15:04", tv)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error: -time must look like 18:00")
				os.Exit(1)
			}
			start = start.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute)
		}
	}

	var level event.Level
	if lv := strings.TrimSpace(*levelFlag); lv != "" {
		if level = event.ParseLevel(lv); level == "" {
			fmt.Fprintln(os.Stderr, "error: -level must be beginner, intermediate or advanced")
			os.Exit(1)
		}
	}

	faculty := strings.TrimSpace(*facultyFlag)
	if faculty != "" {
		if strings.EqualFold(faculty, event.FacultyAll) {
			faculty = event.FacultyAll
		} else {
			faculty = canonicalFaculty(faculty)
		}
	}

	var tags []string
	for _, t := range strings.Split(*tagsFlag, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	st := openDB()
	defer st.Close()

	id := st.AddCustomEvent(event.Event{
		Title:       strings.TrimSpace(*title),
		Description: strings.TrimSpace(*desc),
		Organizer:   strings.TrimSpace(*organizer),
		Location:    strings.TrimSpace(*location),
		URL:         strings.TrimSpace(*urlFlag),
		Level:       level,
		Faculty:     faculty,
		Tags:        tags,
		Start:       start,
		IsCustom:    true,
	})

	fmt.Printf("Added %s: %s\n", id, strings.TrimSpace(*title))
}
