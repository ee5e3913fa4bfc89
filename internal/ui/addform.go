package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/campusfeed/internal/event"
)

// Custom-event form fields, in tab order.
const (
	addTitle = iota
	addDescription
	addLocation
	addDate
	addTime
	addURL
	addLevel
	addFaculty
	addTags
	addFieldCount
)

var addLabels = [addFieldCount]string{
	"Title",
	"Details",
	"Where",
	"Date",
	"Time",
	"Link",
	"Level",
	"Faculty",
	"Tags",
}

// AddForm collects a new custom event. App forwards messages while the
// form is active and reads back the submitted event from Update's third
// return value. The store assigns the ID.
type AddForm struct {
	inputs [addFieldCount]textinput.Model
	focus  int
	active bool
	err    string
}

func NewAddForm() AddForm {
	placeholders := [addFieldCount]string{
		"Robotics social",
		"What happens there",
		"Makerspace, Building 7",
		"2026-09-12 (empty = to be announced)",
		"18:00",
		"https://campus.example/robotics",
		"beginner, intermediate or advanced",
		"Science (empty = open to all)",
		"AI, Workshop",
	}
	var f AddForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = 44
		f.inputs[i] = ti
	}
	f.inputs[addTitle].CharLimit = 80
	return f
}

// Activate opens a blank form.
func (f *AddForm) Activate() tea.Cmd {
	f.active = true
	f.err = ""
	f.focus = addTitle
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[addTitle].Focus()
	return textinput.Blink
}

// Deactivate closes the form without submitting.
func (f *AddForm) Deactivate() {
	f.active = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsActive reports whether the form is open.
func (f AddForm) IsActive() bool {
	return f.active
}

func (f *AddForm) focusField() tea.Cmd {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return textinput.Blink
}

// Update handles messages while the form is active. The third return
// value is non-nil exactly once, when a valid event is submitted.
func (f AddForm) Update(msg tea.Msg) (AddForm, tea.Cmd, *event.Event) {
	if !f.active {
		return f, nil, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd, nil
	}

	switch key.String() {
	case "esc":
		f.Deactivate()
		return f, nil, nil
	case "tab", "down":
		f.focus = (f.focus + 1) % addFieldCount
		return f, f.focusField(), nil
	case "shift+tab", "up":
		f.focus = (f.focus + addFieldCount - 1) % addFieldCount
		return f, f.focusField(), nil
	case "enter":
		if f.focus < addFieldCount-1 {
			f.focus++
			return f, f.focusField(), nil
		}
		ev, err := f.buildEvent()
		if err != nil {
			f.err = err.Error()
			return f, nil, nil
		}
		f.active = false
		return f, nil, ev
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return f, cmd, nil
}

// buildEvent assembles and validates the event from the form fields.
func (f AddForm) buildEvent() (*event.Event, error) {
	title := strings.TrimSpace(f.inputs[addTitle].Value())
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	var start time.Time
	if d := strings.TrimSpace(f.inputs[addDate].Value()); d != "" {
		day, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			return nil, fmt.Errorf("date must look like 2026-09-12")
		}
		start = day
		if tv := strings.TrimSpace(f.inputs[addTime].Value()); tv != "" {
			clock, err := time.Parse("15:04", tv)
			if err != nil {
				return nil, fmt.Errorf("time must look like 18:00")
			}
			start = start.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		}
	}

	var level event.Level
	if lv := strings.TrimSpace(f.inputs[addLevel].Value()); lv != "" {
		if level = event.ParseLevel(lv); level == "" {
			return nil, fmt.Errorf("level must be beginner, intermediate or advanced")
		}
	}

	faculty := strings.TrimSpace(f.inputs[addFaculty].Value())
	if faculty != "" {
		if strings.EqualFold(faculty, event.FacultyAll) {
			faculty = event.FacultyAll
		} else {
			matched := ""
			for _, fac := range event.Faculties() {
				if strings.EqualFold(fac, faculty) {
					matched = fac
				}
			}
			if matched == "" {
				return nil, fmt.Errorf("unknown faculty %q", faculty)
			}
			faculty = matched
		}
	}

	var tags []string
	for _, t := range strings.Split(f.inputs[addTags].Value(), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return &event.Event{
		Title:       title,
		Description: strings.TrimSpace(f.inputs[addDescription].Value()),
		Location:    strings.TrimSpace(f.inputs[addLocation].Value()),
		URL:         strings.TrimSpace(f.inputs[addURL].Value()),
		Level:       level,
		Faculty:     faculty,
		Tags:        tags,
		Start:       start,
		IsCustom:    true,
	}, nil
}

func (f AddForm) View() string {
	var b strings.Builder
	b.WriteString(FormTitle.Render("Add an event"))
	b.WriteString("\n\n")
	for i := range f.inputs {
		label := FormLabel
		if i == f.focus {
			label = FormLabelActive
		}
		b.WriteString(label.Render(fmt.Sprintf("%-8s", addLabels[i])) + " " + f.inputs[i].View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + FormError.Render(f.err) + "\n")
	}
	b.WriteString(HelpStyle.Render("enter next · enter on Tags submits · esc cancel"))
	return b.String()
}
