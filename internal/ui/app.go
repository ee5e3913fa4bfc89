package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/feed"
)

// Interaction modes. Forms and the detail pane take over the keyboard
// while active; the feed is the home mode.
const (
	modeFeed = iota
	modeSearch
	modeDetail
	modeOnboard
	modeAdd
)

// AppConfig carries the command functions the App runs against the
// outside world. Any of them may be nil, in which case the matching
// keys become no-ops.
type AppConfig struct {
	LoadState   func() tea.Cmd
	LoadEvents  func() tea.Cmd
	SavePrefs   func(p event.Prefs) tea.Cmd
	ToggleSave  func(id string) tea.Cmd
	AddEvent    func(e event.Event) tea.Cmd
	ExportSaved func(events []event.Event) tea.Cmd
}

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT hold the store. It receives state via messages
// and derives the visible feed with feed.Compute on every change.
type App struct {
	cfg AppConfig

	events []event.Event
	prefs  *event.Prefs
	saved  map[string]bool
	counts map[string]int
	sel    feed.Selection
	snap   feed.Snapshot

	mode      int
	cursor    int
	search    textinput.Model
	prevQuery string
	onboard   OnboardForm
	add       AddForm

	// explicitAll records that the user chose the all view while already
	// having a profile. A profile appearing later then leaves the view
	// alone instead of flipping to personalized.
	explicitAll bool
	booted      bool

	status  string
	err     error
	width   int
	height  int
	ready   bool
	loading bool
}

// NewApp creates a new App with the given command functions.
func NewApp(cfg AppConfig) App {
	search := textinput.New()
	search.Prompt = "/"
	search.PromptStyle = SearchBarPrompt
	search.Placeholder = "title, details, place, tags"
	search.CharLimit = 64
	search.Width = 40
	return App{
		cfg:     cfg,
		sel:     feed.DefaultSelection(),
		saved:   make(map[string]bool),
		counts:  make(map[string]int),
		search:  search,
		onboard: NewOnboardForm(),
		add:     NewAddForm(),
		loading: cfg.LoadEvents != nil,
	}
}

// Init loads persisted state and the catalog.
func (a App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if a.cfg.LoadState != nil {
		cmds = append(cmds, a.cfg.LoadState())
	}
	if a.cfg.LoadEvents != nil {
		cmds = append(cmds, a.cfg.LoadEvents())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case StateLoaded:
		first := !a.booted
		a.booted = true
		a.saved = msg.Saved
		a.counts = msg.Counts
		a.onPrefs(msg.Prefs)
		a.recompute()
		if first && msg.Prefs == nil && a.mode == modeFeed {
			a.mode = modeOnboard
			return a, a.onboard.Activate(nil)
		}
		return a, nil

	case CatalogLoaded:
		a.loading = false
		a.events = msg.Events
		if msg.Failed > 0 {
			a.status = fmt.Sprintf("%d source(s) unreachable", msg.Failed)
		}
		a.recompute()
		return a, nil

	case PrefsSaved:
		p := msg.Prefs
		a.onPrefs(&p)
		a.recompute()
		a.status = "Profile saved"
		return a, nil

	case SaveToggled:
		// Membership and counts are re-read rather than patched locally,
		// so the screen always reflects what the store accepted.
		if a.cfg.LoadState != nil {
			return a, a.cfg.LoadState()
		}
		return a, nil

	case EventAdded:
		a.status = "Event added"
		if a.cfg.LoadEvents != nil {
			return a, a.cfg.LoadEvents()
		}
		return a, nil

	case StoreChanged:
		var cmds []tea.Cmd
		if a.cfg.LoadState != nil {
			cmds = append(cmds, a.cfg.LoadState())
		}
		if a.cfg.LoadEvents != nil {
			cmds = append(cmds, a.cfg.LoadEvents())
		}
		return a, tea.Batch(cmds...)

	case ExportDone:
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.status = fmt.Sprintf("Exported %d event(s) to %s", msg.Count, msg.Path)
		}
		return a, nil
	}

	// Forms and the search input also consume non-key messages, such as
	// cursor blinks.
	switch a.mode {
	case modeOnboard:
		var cmd tea.Cmd
		a.onboard, cmd, _ = a.onboard.Update(msg)
		return a, cmd
	case modeAdd:
		var cmd tea.Cmd
		a.add, cmd, _ = a.add.Update(msg)
		return a, cmd
	case modeSearch:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleKeyMsg routes keyboard input by mode.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeOnboard:
		var cmd tea.Cmd
		var prefs *event.Prefs
		a.onboard, cmd, prefs = a.onboard.Update(msg)
		if prefs != nil {
			a.mode = modeFeed
			if a.cfg.SavePrefs != nil {
				return a, a.cfg.SavePrefs(*prefs)
			}
			return a, nil
		}
		if !a.onboard.IsActive() {
			a.mode = modeFeed
		}
		return a, cmd

	case modeAdd:
		var cmd tea.Cmd
		var ev *event.Event
		a.add, cmd, ev = a.add.Update(msg)
		if ev != nil {
			a.mode = modeFeed
			if a.cfg.AddEvent != nil {
				return a, a.cfg.AddEvent(*ev)
			}
			return a, nil
		}
		if !a.add.IsActive() {
			a.mode = modeFeed
		}
		return a, cmd

	case modeSearch:
		return a.handleSearchKey(msg)

	case modeDetail:
		return a.handleDetailKey(msg)
	}
	return a.handleFeedKey(msg)
}

// handleSearchKey narrows the feed live as the query changes. Enter
// keeps the query applied, esc restores the one before the search.
func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.sel.Query = a.prevQuery
		a.search.SetValue(a.prevQuery)
		a.search.Blur()
		a.mode = modeFeed
		a.recompute()
		return a, nil
	case "enter":
		a.search.Blur()
		a.mode = modeFeed
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.sel.Query = a.search.Value()
	a.recompute()
	return a, cmd
}

func (a App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.current() == nil {
		a.mode = modeFeed
		return a, nil
	}
	switch msg.String() {
	case "esc", "q", "enter":
		a.mode = modeFeed
	case "j", "down":
		if a.cursor < len(a.snap.Visible)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "s":
		if e := a.current(); e != nil && a.cfg.ToggleSave != nil {
			return a, a.cfg.ToggleSave(e.ID)
		}
	}
	return a, nil
}

func (a App) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Transient status and errors clear on the next key press.
	a.status = ""
	a.err = nil

	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "j", "down":
		if a.cursor < len(a.snap.Visible)-1 {
			a.cursor++
		}

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}

	case "g", "home":
		a.cursor = 0

	case "G", "end":
		if n := len(a.snap.Visible); n > 0 {
			a.cursor = n - 1
		}

	case "enter":
		if a.current() != nil {
			a.mode = modeDetail
		}

	case "s":
		if e := a.current(); e != nil && a.cfg.ToggleSave != nil {
			return a, a.cfg.ToggleSave(e.ID)
		}

	case "/":
		a.mode = modeSearch
		a.prevQuery = a.sel.Query
		a.search.SetValue(a.sel.Query)
		a.search.CursorEnd()
		a.search.Focus()
		return a, textinput.Blink

	case "v":
		if a.sel.View == feed.ViewAll {
			a.sel.View = feed.ViewPersonalized
			a.explicitAll = false
		} else {
			a.sel.View = feed.ViewAll
			a.explicitAll = a.prefs != nil
		}
		a.recompute()

	case "l":
		a.sel.Level = nextLevel(a.sel.Level)
		a.recompute()

	case "t":
		if a.sel.Sort == feed.SortTrending {
			a.sel.Sort = feed.SortDate
		} else {
			a.sel.Sort = feed.SortTrending
		}
		a.recompute()

	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		if idx < len(a.snap.TagCloud) {
			a.toggleTag(a.snap.TagCloud[idx].Tag)
			a.recompute()
		}

	case "c":
		a.sel.ClearFilters()
		a.search.SetValue("")
		a.recompute()

	case "a":
		a.mode = modeAdd
		return a, a.add.Activate()

	case "p":
		a.mode = modeOnboard
		return a, a.onboard.Activate(a.prefs)

	case "e":
		if a.cfg.ExportSaved != nil {
			return a, a.cfg.ExportSaved(a.savedEvents())
		}
	}
	return a, nil
}

// onPrefs applies a profile change. The feed flips to the personalized
// view when a profile first appears, unless the user explicitly chose
// the all view while already having one.
func (a *App) onPrefs(p *event.Prefs) {
	had := a.prefs != nil
	a.prefs = p
	if !had && p != nil && !a.explicitAll {
		a.sel.View = feed.ViewPersonalized
	}
}

// recompute rebuilds the snapshot and keeps the cursor in bounds.
func (a *App) recompute() {
	a.snap = feed.Compute(a.events, a.prefs, a.counts, a.saved, a.sel)
	if n := len(a.snap.Visible); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// toggleTag adds the tag to the active filters, or removes it if an
// equivalent spelling is already active.
func (a *App) toggleTag(tag string) {
	n := event.NormalizeTag(tag)
	for i, t := range a.sel.Tags {
		if event.NormalizeTag(t) == n {
			a.sel.Tags = append(a.sel.Tags[:i], a.sel.Tags[i+1:]...)
			return
		}
	}
	a.sel.Tags = append(a.sel.Tags, tag)
}

// nextLevel cycles all, beginner, intermediate, advanced, back to all.
func nextLevel(cur string) string {
	order := []string{
		feed.LevelAll,
		string(event.LevelBeginner),
		string(event.LevelIntermediate),
		string(event.LevelAdvanced),
	}
	for i, l := range order {
		if l == cur {
			return order[(i+1)%len(order)]
		}
	}
	return feed.LevelAll
}

func (a App) current() *event.Event {
	if a.cursor < 0 || a.cursor >= len(a.snap.Visible) {
		return nil
	}
	return &a.snap.Visible[a.cursor]
}

// savedEvents returns the saved events in catalog order, ignoring the
// active filters.
func (a App) savedEvents() []event.Event {
	out := make([]event.Event, 0, len(a.saved))
	for _, e := range a.events {
		if a.saved[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	switch a.mode {
	case modeOnboard:
		return a.onboard.View()
	case modeAdd:
		return a.add.View()
	case modeDetail:
		if e := a.current(); e != nil {
			return RenderDetail(*e, a.saved[e.ID], a.counts[e.ID], a.width) +
				"\n" + RenderStatusBar(a.width, "esc back · s save · j/k next")
		}
	}

	top := RenderHeader(a.prefs, a.sel, a.width)
	if cloud := RenderTagCloud(a.snap.TagCloud, a.sel.Tags, a.width); cloud != "" {
		top += "\n" + cloud
	}
	if trending := RenderTrending(a.snap.Trending, a.width); trending != "" {
		top += "\n" + trending
	}

	chrome := lipgloss.Height(top) + 1
	searchBar := ""
	if a.mode == modeSearch {
		searchBar = RenderSearchBar(a.search.View(), len(a.snap.Visible), len(a.snap.BasePool), a.width)
		chrome += lipgloss.Height(searchBar)
	}
	errorBar := ""
	if a.err != nil {
		errorBar = ErrorStyle.Width(a.width).Render("Error: " + a.err.Error())
		chrome++
	}

	listHeight := a.height - chrome
	list := RenderFeed(a.snap.Visible, a.saved, a.cursor, a.width, listHeight)
	if h := lipgloss.Height(list); h < listHeight {
		list += strings.Repeat("\n", listHeight-h)
	}

	parts := []string{top, list}
	if searchBar != "" {
		parts = append(parts, searchBar)
	}
	if errorBar != "" {
		parts = append(parts, errorBar)
	}
	parts = append(parts, RenderStatusBar(a.width, a.statusText()))
	return strings.Join(parts, "\n")
}

func (a App) statusText() string {
	if a.status != "" {
		return a.status
	}
	if a.loading {
		return "Refreshing..."
	}
	if n := len(a.snap.Visible); n > 0 {
		return fmt.Sprintf("%d/%d", a.cursor+1, n)
	}
	return "0 events"
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Visible returns the events currently listed (for testing).
func (a App) Visible() []event.Event {
	return a.snap.Visible
}

// Selection returns the active selection (for testing).
func (a App) Selection() feed.Selection {
	return a.sel
}

// Snapshot returns the full derived feed state (for testing).
func (a App) Snapshot() feed.Snapshot {
	return a.snap
}
