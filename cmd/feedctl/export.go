package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abelbrown/campusfeed/internal/config"
	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/export"
)

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", filepath.Join(config.DataDir(), "saved.ics"), "Output path")
	all := fs.Bool("all", false, "Export the whole catalog, not just saved events")
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	events := loadCatalog(st)

	var picked []event.Event
	if *all {
		picked = events
	} else {
		saved := st.GetSavedIDs()
		for _, e := range events {
			if saved[e.ID] {
				picked = append(picked, e)
			}
		}
	}

	if len(picked) == 0 {
		fmt.Println("Nothing to export.")
		return
	}

	scheduled := 0
	for _, e := range picked {
		if e.Scheduled() {
			scheduled++
		}
	}

	if err := export.WriteICSFile(*out, picked); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d event(s) to %s\n", scheduled, *out)
	if skipped := len(picked) - scheduled; skipped > 0 {
		fmt.Printf("Skipped %d unscheduled event(s); iCalendar needs a start time.\n", skipped)
	}
}
