package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pweza/pweza-admin/internal/validate"
)

// request performs one backend call and returns the status line to show.
type request func(ctx context.Context) (string, error)

// submitFunc validates form values, in field order, and returns the request
// to run. A validation failure keeps the form open with the message.
type submitFunc func(values []string) (request, error)

type formState int

const (
	formEditing formState = iota
	formSubmitted
	formCancelled
)

// formField is a text input, or a fixed choice when options is set.
type formField struct {
	label   string
	input   textinput.Model
	options []string
	choice  int
}

func textField(label, placeholder, value string) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = maxInputLen
	ti.Prompt = ""
	ti.SetValue(value)
	return formField{label: label, input: ti}
}

func secretField(label, placeholder string) formField {
	f := textField(label, placeholder, "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func choiceField(label string, options []string, selected string) formField {
	f := formField{label: label, options: options}
	for i, o := range options {
		if o == selected {
			f.choice = i
		}
	}
	return f
}

func (f formField) value() string {
	if f.options != nil {
		return f.options[f.choice]
	}
	return f.input.Value()
}

// formModel is a vertical form. The owner runs req once state is
// formSubmitted and reports the outcome back with fail or closes it.
type formModel struct {
	title  string
	fields []formField
	focus  int
	err    string
	submit submitFunc
	state  formState
	req    request
	busy   bool
}

func newForm(title string, submit submitFunc, fields ...formField) formModel {
	f := formModel{title: title, fields: fields, submit: submit}
	return f.focusField(0)
}

func (f formModel) focusField(i int) formModel {
	for j := range f.fields {
		if f.fields[j].options == nil {
			f.fields[j].input.Blur()
		}
	}
	f.focus = i
	if f.fields[i].options == nil {
		f.fields[i].input.Focus()
	}
	return f
}

// values returns field values in order.
func (f formModel) values() []string {
	out := make([]string, len(f.fields))
	for i, fld := range f.fields {
		out[i] = fld.value()
	}
	return out
}

// fail reopens a submitted form with err shown.
func (f formModel) fail(msg string) formModel {
	f.state = formEditing
	f.busy = false
	f.req = nil
	f.err = msg
	return f
}

func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if f.busy {
		return f, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.fields[f.focus].options != nil {
			return f, nil
		}
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return f, cmd
	}

	switch key.String() {
	case "esc":
		f.state = formCancelled
		return f, nil
	case "tab", "down":
		return f.focusField((f.focus + 1) % len(f.fields)), nil
	case "shift+tab", "up":
		return f.focusField((f.focus + len(f.fields) - 1) % len(f.fields)), nil
	case "ctrl+s":
		return f.trySubmit(), nil
	case "enter":
		if f.focus == len(f.fields)-1 {
			return f.trySubmit(), nil
		}
		return f.focusField(f.focus + 1), nil
	}

	fld := &f.fields[f.focus]
	if fld.options != nil {
		switch key.String() {
		case "right", "l", " ":
			fld.choice = (fld.choice + 1) % len(fld.options)
		case "left", "h":
			fld.choice = (fld.choice + len(fld.options) - 1) % len(fld.options)
		}
		return f, nil
	}
	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	return f, cmd
}

func (f formModel) trySubmit() formModel {
	req, err := f.submit(f.values())
	if err != nil {
		f.err = validate.Message(err)
		return f
	}
	f.err = ""
	f.req = req
	f.state = formSubmitted
	f.busy = true
	return f
}

func (f formModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n\n", selectedStyle.Render(f.title))

	width := 0
	for _, fld := range f.fields {
		width = max(width, len(fld.label))
	}
	for i, fld := range f.fields {
		marker := "  "
		label := dimStyle.Render(fmt.Sprintf("%-*s", width, fld.label))
		if i == f.focus {
			marker = accentStyle.Render("▸ ")
			label = selectedStyle.Render(fmt.Sprintf("%-*s", width, fld.label))
		}
		var input string
		if fld.options != nil {
			opt := fld.options[fld.choice]
			if i == f.focus {
				input = accentStyle.Render("‹ ") + selectedStyle.Render(opt) + accentStyle.Render(" ›")
			} else {
				input = normalStyle.Render(opt)
			}
		} else {
			input = fld.input.View()
		}
		fmt.Fprintf(&b, "  %s%s  %s\n", marker, label, input)
	}

	b.WriteString("\n")
	switch {
	case f.busy:
		b.WriteString("  " + dimStyle.Render("saving…") + "\n")
	case f.err != "":
		b.WriteString("  " + rejectStyle.Render(f.err) + "\n")
	}
	return b.String()
}

func (f formModel) Help() string {
	return helpBar(
		helpEntry("tab", "next"),
		helpEntry("←/→", "choose"),
		helpEntry("ctrl+s", "submit"),
		helpEntry("esc", "cancel"),
	)
}
