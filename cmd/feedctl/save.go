package main

import (
	"flag"
	"fmt"
	"os"
)

func runSave() {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	args := fs.Args()

	// No args: list saved events in catalog order
	if len(args) == 0 {
		events := loadCatalog(st)
		saved := st.GetSavedIDs()
		counts := st.GetSaveCounts()

		n := 0
		for _, e := range events {
			if !saved[e.ID] {
				continue
			}
			n++
			fmt.Printf("%-12s %-13s %-46s %d save(s)\n", e.ID, when(e), truncate(e.Title, 44), counts[e.ID])
		}
		if n == 0 {
			fmt.Println("No saved events.")
			return
		}
		fmt.Printf("\n%d saved event(s)\n", n)
		return
	}

	// Toggling is store-only so it works offline
	for _, id := range args {
		st.ToggleSaved(id)
	}
	saved := st.GetSavedIDs()
	counts := st.GetSaveCounts()
	for _, id := range args {
		state := "unsaved"
		if saved[id] {
			state = "saved"
		}
		fmt.Printf("%s: %s (%d save(s))\n", id, state, counts[id])
	}
}
