package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/campusfeed/internal/event"
)

// Onboarding stages, walked in order.
const (
	onboardName = iota
	onboardFaculty
	onboardInterests
)

// OnboardForm collects a personalization profile. App forwards messages
// while the form is active and reads back the submitted profile from
// Update's third return value.
type OnboardForm struct {
	name      textinput.Model
	stage     int
	faculty   int          // index into faculties
	cursor    int          // interest row under the cursor
	picked    map[int]bool // selected interest indices
	faculties []string
	tags      []string
	active    bool
	err       string
}

func NewOnboardForm() OnboardForm {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.Prompt = "> "
	ti.PromptStyle = SearchBarPrompt
	ti.CharLimit = 40
	ti.Width = 30
	return OnboardForm{
		name:      ti,
		picked:    make(map[int]bool),
		faculties: event.Faculties(),
		tags:      event.CanonicalTags(),
	}
}

// Activate opens the form, prefilled from prefs when editing an
// existing profile.
func (f *OnboardForm) Activate(prefs *event.Prefs) tea.Cmd {
	f.active = true
	f.stage = onboardName
	f.err = ""
	f.faculty = 0
	f.cursor = 0
	f.picked = make(map[int]bool)
	f.name.SetValue("")
	if prefs != nil {
		f.name.SetValue(prefs.Name)
		for i, fac := range f.faculties {
			if fac == prefs.Faculty {
				f.faculty = i
			}
		}
		want := event.TagSet(prefs.Interests)
		for i, t := range f.tags {
			if want[event.NormalizeTag(t)] {
				f.picked[i] = true
			}
		}
	}
	f.name.Focus()
	return textinput.Blink
}

// Deactivate closes the form without submitting.
func (f *OnboardForm) Deactivate() {
	f.active = false
	f.name.Blur()
}

// IsActive reports whether the form is open.
func (f OnboardForm) IsActive() bool {
	return f.active
}

// Update handles messages while the form is active. The third return
// value is non-nil exactly once, when a valid profile is submitted.
func (f OnboardForm) Update(msg tea.Msg) (OnboardForm, tea.Cmd, *event.Prefs) {
	if !f.active {
		return f, nil, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.stage == onboardName {
			var cmd tea.Cmd
			f.name, cmd = f.name.Update(msg)
			return f, cmd, nil
		}
		return f, nil, nil
	}

	switch key.String() {
	case "esc":
		f.Deactivate()
		return f, nil, nil
	case "shift+tab":
		if f.stage > onboardName {
			f.stage--
			f.err = ""
			if f.stage == onboardName {
				f.name.Focus()
				return f, textinput.Blink, nil
			}
		}
		return f, nil, nil
	}

	switch f.stage {
	case onboardName:
		if key.String() == "enter" {
			if strings.TrimSpace(f.name.Value()) == "" {
				f.err = "name is required"
				return f, nil, nil
			}
			f.err = ""
			f.stage = onboardFaculty
			f.name.Blur()
			return f, nil, nil
		}
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return f, cmd, nil

	case onboardFaculty:
		switch key.String() {
		case "up", "k":
			if f.faculty > 0 {
				f.faculty--
			}
		case "down", "j":
			if f.faculty < len(f.faculties)-1 {
				f.faculty++
			}
		case "enter":
			f.err = ""
			f.stage = onboardInterests
		}
		return f, nil, nil

	case onboardInterests:
		switch key.String() {
		case "up", "k":
			if f.cursor > 0 {
				f.cursor--
			}
		case "down", "j":
			if f.cursor < len(f.tags)-1 {
				f.cursor++
			}
		case " ":
			if f.picked[f.cursor] {
				delete(f.picked, f.cursor)
			} else if len(f.picked) >= event.MaxInterests {
				f.err = fmt.Sprintf("at most %d interests", event.MaxInterests)
				return f, nil, nil
			} else {
				f.picked[f.cursor] = true
			}
			f.err = ""
		case "enter":
			prefs := f.buildPrefs()
			if err := event.ValidatePrefs(prefs); err != nil {
				f.err = err.Error()
				return f, nil, nil
			}
			f.active = false
			return f, nil, &prefs
		}
		return f, nil, nil
	}
	return f, nil, nil
}

// buildPrefs assembles the profile from the current form state.
// Interests keep the canonical display spelling.
func (f OnboardForm) buildPrefs() event.Prefs {
	interests := make([]string, 0, len(f.picked))
	for i, t := range f.tags {
		if f.picked[i] {
			interests = append(interests, t)
		}
	}
	return event.Prefs{
		Name:      strings.TrimSpace(f.name.Value()),
		Faculty:   f.faculties[f.faculty],
		Interests: interests,
	}
}

func (f OnboardForm) View() string {
	var b strings.Builder
	b.WriteString(FormTitle.Render("Set up your profile"))
	b.WriteString("\n\n")

	nameLabel := FormLabel
	if f.stage == onboardName {
		nameLabel = FormLabelActive
	}
	b.WriteString(nameLabel.Render("Name") + " " + f.name.View() + "\n\n")

	facLabel := FormLabel
	if f.stage == onboardFaculty {
		facLabel = FormLabelActive
	}
	b.WriteString(facLabel.Render("Faculty") + "\n")
	for i, fac := range f.faculties {
		row := "   " + fac
		if i == f.faculty {
			row = " » " + fac
			if f.stage == onboardFaculty {
				row = " » " + FormChoiceActive.Render(fac)
			}
		}
		b.WriteString(FormChoice.Render(row) + "\n")
	}
	b.WriteString("\n")

	intLabel := FormLabel
	if f.stage == onboardInterests {
		intLabel = FormLabelActive
	}
	b.WriteString(intLabel.Render(fmt.Sprintf("Interests (pick %d to %d)", event.MinInterests, event.MaxInterests)) + "\n")
	for i, t := range f.tags {
		mark := "[ ]"
		if f.picked[i] {
			mark = "[x]"
		}
		row := "   " + mark + " " + t
		if f.stage == onboardInterests && i == f.cursor {
			row = " » " + FormChoiceActive.Render(mark+" "+t)
		}
		b.WriteString(FormChoice.Render(row) + "\n")
	}

	if f.err != "" {
		b.WriteString("\n" + FormError.Render(f.err) + "\n")
	}
	b.WriteString(HelpStyle.Render("enter next · space toggle · shift+tab back · esc cancel"))
	return b.String()
}
