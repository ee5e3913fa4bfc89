// Command feedctl is the unified CLI for campusfeed debugging and maintenance.
//
// Usage:
//
//	feedctl                 Show help
//	feedctl events          List the merged catalog through the feed pipeline
//	feedctl prefs           Show or update the stored profile
//	feedctl save            Toggle an event's saved state
//	feedctl add             Add a custom event to the catalog
//	feedctl stats           Catalog and store statistics
//	feedctl export          Write saved events as an iCalendar file
package main

import (
	"fmt"
	"os"
)

const usage = `feedctl - campusfeed debug & maintenance CLI

Usage:
  feedctl <command> [flags]

Commands:
  events      List the merged catalog through the feed pipeline
  prefs       Show or update the stored profile
  save        Toggle an event's saved state (no args: list saved)
  add         Add a custom event to the catalog
  stats       Catalog and store statistics
  export      Write saved events as an iCalendar file

Run 'feedctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "events":
		runEvents()
	case "prefs":
		runPrefs()
	case "save":
		runSave()
	case "add":
		runAdd()
	case "stats":
		runStats()
	case "export":
		runExport()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "feedctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
