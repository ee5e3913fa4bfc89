package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/feed"
)

func runEvents() {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	levelFlag := fs.String("level", "", "Filter by level (beginner, intermediate, advanced)")
	tagFlag := fs.String("tag", "", "Filter by tags, comma separated (OR semantics)")
	savedOnly := fs.Bool("saved", false, "Only saved events")
	forYou := fs.Bool("for-you", false, "Apply the stored profile (faculty + interests)")
	sortFlag := fs.String("sort", "date", "Sort order: date or trending")
	fs.Parse(os.Args[1:])

	// Positional args form the search query, same as the TUI search bar
	query := strings.Join(fs.Args(), " ")

	st := openDB()
	defer st.Close()

	events := loadCatalog(st)
	prefs := st.GetPreferences()
	saved := st.GetSavedIDs()
	counts := st.GetSaveCounts()

	sel := feed.DefaultSelection()
	sel.Query = query

	if *forYou {
		if prefs == nil {
			fmt.Fprintln(os.Stderr, "warning: no profile stored, showing all events (run 'feedctl prefs' to set one)")
		}
		sel.View = feed.ViewPersonalized
	}

	if *levelFlag != "" {
		lv := event.ParseLevel(*levelFlag)
		if lv == "" {
			fmt.Fprintf(os.Stderr, "error: unknown level %q (use beginner, intermediate or advanced)\n", *levelFlag)
			os.Exit(1)
		}
		sel.Level = string(lv)
	}

	for _, t := range strings.Split(*tagFlag, ",") {
		if t = strings.TrimSpace(t); t != "" {
			sel.Tags = append(sel.Tags, t)
		}
	}

	switch *sortFlag {
	case "date":
		sel.Sort = feed.SortDate
	case "trending":
		sel.Sort = feed.SortTrending
	default:
		fmt.Fprintf(os.Stderr, "error: unknown sort %q (use date or trending)\n", *sortFlag)
		os.Exit(1)
	}

	snap := feed.Compute(events, prefs, counts, saved, sel)

	shown := 0
	for _, e := range snap.Visible {
		if *savedOnly && !saved[e.ID] {
			continue
		}
		shown++

		marker := " "
		if saved[e.ID] {
			marker = "*"
		}
		fac := e.Faculty
		if fac == "" {
			fac = "-"
		}
		lv := string(e.Level)
		if lv == "" {
			lv = "-"
		}
		fmt.Printf("%s %-12s %-13s %-46s %-13s %-12s %s\n",
			marker, e.ID, when(e), truncate(e.Title, 44), lv, fac, strings.Join(e.Tags, ","))
	}

	fmt.Printf("\n%d of %d events", shown, len(events))
	if sel.View == feed.ViewPersonalized && prefs != nil {
		fmt.Printf(" (profile: %s, %s)", prefs.Name, prefs.Faculty)
	}
	fmt.Println()
}
