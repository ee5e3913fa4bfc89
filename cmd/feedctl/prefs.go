package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/abelbrown/campusfeed/internal/event"
)

func runPrefs() {
	fs := flag.NewFlagSet("prefs", flag.ExitOnError)
	name := fs.String("name", "", "Display name")
	faculty := fs.String("faculty", "", "Faculty: "+strings.Join(event.Faculties(), ", "))
	interests := fs.String("interests", "", fmt.Sprintf("Interests, comma separated (%d to %d of: %s)",
		event.MinInterests, event.MaxInterests, strings.Join(event.CanonicalTags(), ", ")))
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	current := st.GetPreferences()

	// No flags: show the stored profile
	if fs.NFlag() == 0 {
		if current == nil {
			fmt.Println("No profile stored.")
			fmt.Println("Set one with: feedctl prefs -name <name> -faculty <faculty> -interests <tag,tag>")
			return
		}
		fmt.Printf("Name:      %s\n", current.Name)
		fmt.Printf("Faculty:   %s\n", current.Faculty)
		fmt.Printf("Interests: %s\n", strings.Join(current.Interests, ", "))
		return
	}

	// Start from the stored profile so a single field can be updated
	var p event.Prefs
	if current != nil {
		p = *current
	}
	if *name != "" {
		p.Name = strings.TrimSpace(*name)
	}
	if *faculty != "" {
		p.Faculty = canonicalFaculty(*faculty)
	}
	if *interests != "" {
		p.Interests = canonicalInterests(*interests)
	}

	if err := event.ValidatePrefs(p); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	st.SavePreferences(p)
	fmt.Printf("Profile saved: %s (%s) interested in %s\n", p.Name, p.Faculty, strings.Join(p.Interests, ", "))
}

// canonicalFaculty maps a case-insensitive name to its canonical spelling,
// or exits with the valid list.
func canonicalFaculty(s string) string {
	s = strings.TrimSpace(s)
	for _, f := range event.Faculties() {
		if strings.EqualFold(f, s) {
			return f
		}
	}
	fmt.Fprintf(os.Stderr, "error: unknown faculty %q (use one of: %s)\n", s, strings.Join(event.Faculties(), ", "))
	os.Exit(1)
	return ""
}

// canonicalInterests maps a comma list to canonical tag spellings, or exits
// with the allow-list.
func canonicalInterests(s string) []string {
	var out []string
	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		matched := ""
		for _, tag := range event.CanonicalTags() {
			if event.NormalizeTag(tag) == event.NormalizeTag(raw) {
				matched = tag
			}
		}
		if matched == "" {
			fmt.Fprintf(os.Stderr, "error: unknown interest %q (use: %s)\n", raw, strings.Join(event.CanonicalTags(), ", "))
			os.Exit(1)
		}
		out = append(out, matched)
	}
	return out
}
