package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/export"
	"github.com/abelbrown/campusfeed/internal/feed"
)

// RenderHeader renders the one-line feed header: active view, profile,
// and any narrowing filters.
func RenderHeader(prefs *event.Prefs, sel feed.Selection, width int) string {
	var label string
	switch sel.View {
	case feed.ViewPersonalized:
		label = "For You"
		if prefs != nil {
			label = fmt.Sprintf("For You · %s (%s)", prefs.Name, prefs.Faculty)
		}
	default:
		label = "All Events"
	}

	var filters []string
	if sel.Level != feed.LevelAll {
		filters = append(filters, "level:"+sel.Level)
	}
	if sel.Sort == feed.SortDate {
		filters = append(filters, "sort:date")
	} else {
		filters = append(filters, "sort:trending")
	}
	if sel.Query != "" {
		filters = append(filters, fmt.Sprintf("search:%q", sel.Query))
	}

	line := SectionHeader.Render(label) + MetaText.Render(strings.Join(filters, " · "))
	return truncateLine(line, width)
}

// RenderTagCloud renders the numbered tag cloud. Tags active as filters
// are highlighted. Empty cloud renders to the empty string.
func RenderTagCloud(cloud []feed.TagCount, active []string, width int) string {
	if len(cloud) == 0 {
		return ""
	}
	activeSet := event.TagSet(active)
	var b strings.Builder
	for i, tc := range cloud {
		label := fmt.Sprintf("%d %s %d", i+1, tc.Tag, tc.Count)
		if activeSet[event.NormalizeTag(tc.Tag)] {
			b.WriteString(TagBadgeActive.Render(label))
		} else {
			b.WriteString(TagBadge.Render(label))
		}
	}
	return truncateLine(b.String(), width)
}

// RenderTrending renders the trending strip. Empty input renders to the
// empty string.
func RenderTrending(trending []event.Event, width int) string {
	if len(trending) == 0 {
		return ""
	}
	parts := make([]string, 0, len(trending))
	for i, e := range trending {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, e.Title))
	}
	line := SectionHeader.Render("Trending") + MetaText.Render(strings.Join(parts, "   "))
	return truncateLine(line, width)
}

// RenderFeed renders the visible event list with the cursor row highlighted.
func RenderFeed(events []event.Event, saved map[string]bool, cursor, width, height int) string {
	if len(events) == 0 {
		return HelpStyle.Render("No events match. Press c to clear filters, a to add one.")
	}
	if height < 1 {
		height = 1
	}
	offset := calcScrollOffset(cursor, len(events), height)

	var b strings.Builder
	for i := offset; i < len(events) && i < offset+height; i++ {
		if i > offset {
			b.WriteString("\n")
		}
		b.WriteString(renderEventLine(events[i], i == cursor, saved[events[i].ID], width))
	}
	return b.String()
}

func renderEventLine(e event.Event, selected, saved bool, width int) string {
	marker := "  "
	if saved {
		marker = "✔ "
	}
	when := fmt.Sprintf("%-13s", formatWhen(e))
	line := marker + when + e.Title + metaSuffix(e)

	if selected {
		return SelectedItem.Render(truncateTitle(line, width-2))
	}
	if saved {
		return SavedMark.Render(marker) + NormalItem.Render(truncateTitle(when+e.Title+metaSuffix(e), width-4))
	}
	return NormalItem.Render(truncateTitle(line, width-2))
}

func metaSuffix(e event.Event) string {
	var parts []string
	if e.Level != "" {
		parts = append(parts, string(e.Level))
	}
	if e.Faculty != "" && e.Faculty != event.FacultyAll {
		parts = append(parts, e.Faculty)
	}
	if e.IsCustom {
		parts = append(parts, "yours")
	}
	if len(parts) == 0 {
		return ""
	}
	return "  · " + strings.Join(parts, " · ")
}

// formatWhen formats the start time for list rows. Unscheduled events
// show a placeholder instead of a date.
func formatWhen(e event.Event) string {
	if !e.Scheduled() {
		return "TBA"
	}
	return e.Start.Format("Jan 2 15:04")
}

func formatWhenFull(e event.Event) string {
	if !e.Scheduled() {
		return "To be announced"
	}
	s := e.Start.Format("Mon, Jan 2 2006 15:04")
	if !e.End.IsZero() {
		s += " – " + e.End.Format("Mon, Jan 2 2006 15:04")
	}
	return s
}

// RenderDetail renders the full-screen view of a single event.
func RenderDetail(e event.Event, saved bool, count, width int) string {
	var b strings.Builder
	b.WriteString(DetailTitle.Render(e.Title))
	if e.IsCustom {
		b.WriteString(" " + CustomBadge.Render("(added by you)"))
	}
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(DetailLabel.Render(" "+label+": ") + DetailText.Render(value) + "\n")
	}

	field("When", formatWhenFull(e))
	field("Where", e.Location)
	field("Organizer", e.Organizer)
	if e.Level != "" {
		field("Level", string(e.Level))
	}
	if e.Faculty != "" {
		field("Faculty", e.Faculty)
	}
	if len(e.Tags) > 0 {
		field("Tags", strings.Join(e.Tags, ", "))
	}
	if saved {
		field("Saved", SavedMark.Render("yes"))
	}
	if count > 0 {
		field("Saves", fmt.Sprintf("%d", count))
	}
	field("Link", e.URL)
	if gcal, err := export.GoogleCalendarURL(e); err == nil {
		field("Calendar", gcal)
	}

	if e.Description != "" {
		b.WriteString("\n")
		b.WriteString(DetailText.Padding(0, 1).Width(width - 2).Render(e.Description))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSearchBar renders the live search input with a match count.
func RenderSearchBar(input string, matched, total, width int) string {
	count := SearchBarCount.Render(fmt.Sprintf("  %d/%d", matched, total))
	return SearchBar.Width(width).Render(truncateLine(input+count, width-2))
}

// RenderStatusBar renders the bottom bar with key hints on the left and
// a status message on the right.
func RenderStatusBar(width int, status string) string {
	hints := []struct{ key, desc string }{
		{"j/k", "move"},
		{"s", "save"},
		{"/", "search"},
		{"v", "view"},
		{"l", "level"},
		{"t", "sort"},
		{"c", "clear"},
		{"a", "add"},
		{"e", "export"},
		{"p", "profile"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, StatusBarKey.Render(h.key)+StatusBarText.Render(" "+h.desc))
	}
	left := strings.Join(parts, "  ")
	right := StatusBarText.Render(status)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return StatusBar.Width(width).Render(truncateLine(left, width-2))
	}
	return StatusBar.Render(left + strings.Repeat(" ", gap) + right)
}

// calcScrollOffset keeps the cursor roughly centered once the list is
// longer than the viewport.
func calcScrollOffset(cursor, total, visible int) int {
	if total <= visible {
		return 0
	}
	offset := cursor - visible/2
	if offset < 0 {
		offset = 0
	}
	if offset > total-visible {
		offset = total - visible
	}
	return offset
}

func truncateTitle(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// truncateLine trims a styled line by visible width rather than rune count.
func truncateLine(s string, max int) string {
	if max < 1 || lipgloss.Width(s) <= max {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(max).Render(s)
}
