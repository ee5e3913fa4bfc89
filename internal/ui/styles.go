package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
)

// SelectedItem style for the currently highlighted event.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected events.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// SavedMark style for the saved-event marker.
var SavedMark = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// SectionHeader style for section labels (e.g., "Trending").
var SectionHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// TagBadge style for tag cloud entries.
var TagBadge = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// TagBadgeActive style for tag cloud entries selected as filters.
var TagBadgeActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1).
	MarginRight(1)

// LevelBadge style for event level labels.
var LevelBadge = lipgloss.NewStyle().
	Foreground(colorSecondary)

// MetaText style for dates, organizers and other metadata.
var MetaText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// CustomBadge style for the marker on locally added events.
var CustomBadge = lipgloss.NewStyle().
	Foreground(colorHighlight)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// SearchBar style for the search input bar.
var SearchBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// SearchBarPrompt style for the "/" prompt.
var SearchBarPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// SearchBarCount style for the matched count.
var SearchBarCount = lipgloss.NewStyle().
	Foreground(colorSecondary)

// DetailTitle style for the event title in the detail view.
var DetailTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// DetailLabel style for field labels in the detail view.
var DetailLabel = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// DetailText style for field values in the detail view.
var DetailText = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255"))

// FormTitle style for form headings.
var FormTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(1, 1, 0, 1)

// FormLabel style for form field labels.
var FormLabel = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// FormLabelActive style for the focused form field label.
var FormLabelActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// FormChoice style for selectable form options.
var FormChoice = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255"))

// FormChoiceActive style for the highlighted form option.
var FormChoiceActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

// FormError style for validation messages.
var FormError = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Padding(0, 1)
