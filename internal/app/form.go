package app

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/reign/calleditor/internal/calllog"
	"github.com/reign/calleditor/internal/edit"
	"github.com/reign/calleditor/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Form fields in focus order.
const (
	fieldType = iota
	fieldName
	fieldNumber
	fieldDate
	fieldTime
	fieldDuration
	fieldSubmit
	fieldCount
)

// Text inputs, indexed by field-1.
const inputCount = fieldDuration

var fieldLabels = [fieldCount]string{"Type", "Name", "Number", "Date", "Time", "Duration", ""}

var fieldHints = [fieldCount]string{
	fieldDate:     "dd/MM/yyyy",
	fieldTime:     "hh:mm AM",
	fieldDuration: "HH:mm:ss",
}

// editForm binds an edit.State to text inputs for one session.
type editForm struct {
	state  *edit.State
	inputs [inputCount]textinput.Model
	focus  int
}

func newEditForm(state *edit.State) *editForm {
	f := &editForm{state: state}
	values := [inputCount]string{state.Name, state.Number, state.Date, state.Time, state.DurationText()}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fieldHints[i+1]
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.inputs[fieldDate-1].CharLimit = len(calllog.DateLayout)
	f.inputs[fieldTime-1].CharLimit = len(calllog.TimeLayout)
	f.inputs[fieldDuration-1].CharLimit = len(edit.ZeroDuration)
	return f
}

func (f *editForm) input(field int) *textinput.Model {
	if field < fieldName || field > fieldDuration {
		return nil
	}
	return &f.inputs[field-1]
}

// setFocus moves focus and returns the cursor blink command of the newly
// focused input.
func (f *editForm) setFocus(field int) tea.Cmd {
	field = (field + fieldCount) % fieldCount
	if in := f.input(f.focus); in != nil {
		in.Blur()
	}
	f.focus = field
	if in := f.input(field); in != nil {
		return in.Focus()
	}
	return nil
}

// cycleType steps through the editable types. A non-editable type (from
// the entry being edited) sits before the first one.
func (f *editForm) cycleType(step int) {
	types := calllog.EditableTypes
	idx := slices.Index(types, f.state.CallType())
	switch {
	case idx >= 0:
		idx = (idx + step + len(types)) % len(types)
	case step > 0:
		idx = 0
	default:
		idx = len(types) - 1
	}
	f.state.SetCallType(types[idx])
	f.inputs[fieldDuration-1].SetValue(f.state.DurationText())
}

// update forwards a key to the focused input and copies the result back
// into the edit state. A locked duration field keeps its value.
func (f *editForm) update(msg tea.Msg) tea.Cmd {
	in := f.input(f.focus)
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)

	switch f.focus {
	case fieldName:
		f.state.Name = in.Value()
	case fieldNumber:
		f.state.Number = in.Value()
	case fieldDate:
		f.state.Date = in.Value()
	case fieldTime:
		f.state.Time = in.Value()
	case fieldDuration:
		if !f.state.SetDurationText(in.Value()) {
			in.SetValue(f.state.DurationText())
		}
	}
	return cmd
}

func (f *editForm) title() string {
	if f.state.EntryID == "" {
		return "ADD CALL LOG"
	}
	return "EDIT CALL LOG #" + f.state.EntryID
}

func (f *editForm) view() string {
	var lines []string
	lines = append(lines, ui.PanelTitleStyle.Render(f.title()), "")

	for field := fieldType; field < fieldSubmit; field++ {
		label := ui.LabelStyle.Render(fieldLabels[field])
		if f.focus == field {
			label = ui.LabelFocusedStyle.Render(fieldLabels[field])
		}

		var value string
		switch field {
		case fieldType:
			value = f.renderTypeSelector()
		case fieldDuration:
			value = f.inputs[field-1].View()
			if f.state.DurationLocked() {
				value = ui.DimStyle.Render(f.state.DurationText() + "  (locked for missed calls)")
			}
		default:
			value = f.inputs[field-1].View()
		}
		lines = append(lines, "  "+label+value)

		if field == fieldDuration && !f.state.DurationValid() {
			lines = append(lines, "  "+ui.LabelStyle.Render("")+ui.ErrorTextStyle.Render("Invalid format. Use HH:mm:ss"))
		}
	}

	lines = append(lines, "", "  "+ui.LabelStyle.Render("")+f.renderSubmit())
	return strings.Join(lines, "\n")
}

func (f *editForm) renderTypeSelector() string {
	var parts []string
	if current := f.state.CallType(); !slices.Contains(calllog.EditableTypes, current) {
		parts = append(parts, ui.TypeStyle(current).Bold(true).Render("["+current.String()+"]"))
	}
	for _, t := range calllog.EditableTypes {
		if t == f.state.CallType() {
			parts = append(parts, ui.TypeStyle(t).Bold(true).Render("["+t.String()+"]"))
		} else {
			parts = append(parts, ui.DimStyle.Render(" "+t.String()+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (f *editForm) renderSubmit() string {
	switch {
	case !f.state.DurationValid():
		return ui.ButtonDisabledStyle.Render("Save")
	case f.focus == fieldSubmit:
		return ui.ButtonFocusedStyle.Render("Save")
	default:
		return ui.ButtonStyle.Render("Save")
	}
}
