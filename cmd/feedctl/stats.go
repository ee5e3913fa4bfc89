package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/feed"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	storeHealth := fs.Bool("store", false, "Include store health section (versions, most saved)")
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	events := loadCatalog(st)
	prefs := st.GetPreferences()
	saved := st.GetSavedIDs()
	counts := st.GetSaveCounts()

	// --- Catalog statistics ---

	custom := 0
	scheduled := 0
	for _, e := range events {
		if e.IsCustom {
			custom++
		}
		if e.Scheduled() {
			scheduled++
		}
	}

	fmt.Printf("Total events:        %d\n", len(events))
	fmt.Printf("From sources:        %d\n", len(events)-custom)
	fmt.Printf("Custom (yours):      %d\n", custom)
	fmt.Printf("Scheduled:           %d\n", scheduled)
	fmt.Printf("To be announced:     %d\n", len(events)-scheduled)

	levels := map[event.Level]int{}
	for _, e := range events {
		levels[e.Level]++
	}
	fmt.Println("\nLevels:")
	for _, lv := range []event.Level{event.LevelBeginner, event.LevelIntermediate, event.LevelAdvanced} {
		fmt.Printf("  %-14s %d\n", lv, levels[lv])
	}
	fmt.Printf("  %-14s %d\n", "(none)", levels[""])

	byFaculty := map[string]int{}
	for _, e := range events {
		byFaculty[e.Faculty]++
	}
	fmt.Println("\nFaculties:")
	for _, f := range event.Faculties() {
		if byFaculty[f] > 0 {
			fmt.Printf("  %-14s %d\n", f, byFaculty[f])
		}
	}
	if n := byFaculty[event.FacultyAll] + byFaculty[""]; n > 0 {
		fmt.Printf("  %-14s %d\n", "(open to all)", n)
	}

	// Same derivations the TUI shows
	cloud := feed.TagCloud(events)
	if len(cloud) > 0 {
		fmt.Println("\nTag cloud:")
		for _, tc := range cloud {
			fmt.Printf("  %-14s %d\n", tc.Tag, tc.Count)
		}
	}

	trending := feed.Trending(events, counts)
	if len(trending) > 0 {
		fmt.Println("\nTrending:")
		for i, e := range trending {
			fmt.Printf("  %d. %-46s %d save(s)\n", i+1, truncate(e.Title, 44), counts[e.ID])
		}
	}

	if prefs != nil {
		pool := feed.BasePool(events, prefs, feed.ViewPersonalized)
		fmt.Printf("\nProfile: %s (%s) interested in %s\n", prefs.Name, prefs.Faculty, strings.Join(prefs.Interests, ", "))
		fmt.Printf("For You pool:        %d of %d events\n", len(pool), len(events))
	} else {
		fmt.Println("\nNo profile stored.")
	}

	fmt.Printf("Saved events:        %d\n", len(saved))

	// --- Store health section ---
	if !*storeHealth {
		return
	}

	fmt.Println("\n=== Store Health ===")
	fmt.Printf("State version:       %d\n", st.StateVersion())
	fmt.Printf("Last local version:  %d\n", st.LastLocalVersion())

	orphans := 0
	for id := range saved {
		if findEvent(events, id) == nil {
			orphans++
		}
	}
	fmt.Printf("Saves for events no longer in catalog: %d\n", orphans)

	type saveCount struct {
		id    string
		count int
	}
	var sc []saveCount
	for id, n := range counts {
		if n > 0 {
			sc = append(sc, saveCount{id, n})
		}
	}
	sort.Slice(sc, func(i, j int) bool {
		if sc[i].count != sc[j].count {
			return sc[i].count > sc[j].count
		}
		return sc[i].id < sc[j].id
	})
	if len(sc) > 0 {
		fmt.Println("\nMost saved:")
		for i, s := range sc {
			if i >= 10 {
				break
			}
			title := s.id
			if e := findEvent(events, s.id); e != nil {
				title = e.Title
			}
			fmt.Printf("  %3d  %s\n", s.count, truncate(title, 60))
		}
	}
}
