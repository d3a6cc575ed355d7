// Package live is a bubbletea front end for the converter panel. Both fields
// stay synchronized while the user types.
//
// Keys: tab and shift+tab move focus between the fields, [ and ] change the
// quantity, ctrl+u and ctrl+o cycle the input and output units, ctrl+s swaps
// the units and esc or ctrl+c quits.
package live

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

const helpText = "tab focus • [ ] quantity • ctrl+u/ctrl+o units • ctrl+s swap • esc quit"

// Option configures a Model.
type Option func(*Model)

// WithStyles replaces the default styles.
func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
		m.customStyles = true
	}
}

// WithAccentFunc picks the accent colour per quantity, for example from the
// quantity's theme variant.
func WithAccentFunc(fn func(quantity string) string) Option {
	return func(m *Model) {
		m.accent = fn
	}
}

// Model is the bubbletea model wrapping a widget.Panel.
type Model struct {
	panel        *widget.Panel
	fields       [2]textinput.Model
	focus        widget.Side
	styles       Styles
	customStyles bool
	accent       func(string) string
	err          string
	quitting     bool
}

// New builds a model over panel. A nil panel uses the default catalog.
func New(panel *widget.Panel, opts ...Option) Model {
	if panel == nil {
		panel = widget.NewPanel(nil)
	}
	m := Model{
		panel: panel,
		focus: widget.SideInput,
	}
	for i := range m.fields {
		field := textinput.New()
		field.Prompt = ""
		field.CharLimit = 32
		field.Width = 24
		m.fields[i] = field
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.restyle()
	m.syncFields()
	m.fields[0].Focus()
	return m
}

// Panel returns the underlying panel.
func (m Model) Panel() *widget.Panel { return m.panel }

// Focused reports which field has focus.
func (m Model) Focused() widget.Side { return m.focus }

// Err returns the message of the last failed edit, if any.
func (m Model) Err() string { return m.err }

// Quitting reports whether the model asked the program to exit.
func (m Model) Quitting() bool { return m.quitting }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateField(msg)
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		return m, m.toggleFocus()
	case "[":
		return m, m.stepQuantity(-1)
	case "]":
		return m, m.stepQuantity(1)
	case "ctrl+u":
		m.cycleUnit(widget.SideInput)
		return m, nil
	case "ctrl+o":
		m.cycleUnit(widget.SideOutput)
		return m, nil
	case "ctrl+s":
		m.panel.Swap()
		m.err = ""
		m.syncFields()
		return m, nil
	}
	return m.updateField(msg)
}

func (m Model) updateField(msg tea.Msg) (tea.Model, tea.Cmd) {
	idx := fieldIndex(m.focus)
	before := m.fields[idx].Value()

	var cmd tea.Cmd
	m.fields[idx], cmd = m.fields[idx].Update(msg)
	after := m.fields[idx].Value()
	if after == before {
		return m, cmd
	}

	edit := m.panel.EditInput
	if m.focus == widget.SideOutput {
		edit = m.panel.EditOutput
	}
	if err := edit(after); err != nil {
		m.err = render.Message(err)
	} else {
		m.err = ""
	}
	m.syncOther()
	return m, cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	m.fields[fieldIndex(m.focus)].Blur()
	if m.focus == widget.SideInput {
		m.focus = widget.SideOutput
	} else {
		m.focus = widget.SideInput
	}
	return m.fields[fieldIndex(m.focus)].Focus()
}

func (m *Model) stepQuantity(delta int) tea.Cmd {
	selector := m.panel.Selector()
	n := selector.Catalog().Len()
	if n == 0 {
		return nil
	}
	next := (selector.Index() + delta + n) % n
	if err := m.panel.SelectQuantityIndex(next); err != nil {
		m.err = render.Message(err)
		return nil
	}
	m.err = ""
	m.restyle()
	m.syncFields()
	return nil
}

func (m *Model) cycleUnit(side widget.Side) {
	view := m.panel.View()
	current, set := view.InputUnit, m.panel.SetInputUnit
	if side == widget.SideOutput {
		current, set = view.OutputUnit, m.panel.SetOutputUnit
	}
	if len(view.Units) == 0 {
		return
	}
	next := 0
	for i, unit := range view.Units {
		if unit.Key == current {
			next = (i + 1) % len(view.Units)
			break
		}
	}
	if err := set(view.Units[next].Key); err != nil {
		m.err = render.Message(err)
		return
	}
	m.err = ""
	m.syncFields()
}

// syncFields copies both panel values into the text fields.
func (m *Model) syncFields() {
	view := m.panel.View()
	m.fields[0].SetValue(view.InputText)
	m.fields[1].SetValue(view.OutputText)
	m.fields[0].CursorEnd()
	m.fields[1].CursorEnd()
}

// syncOther refreshes the field that is not being typed into.
func (m *Model) syncOther() {
	view := m.panel.View()
	if m.focus == widget.SideInput {
		m.fields[1].SetValue(view.OutputText)
		return
	}
	m.fields[0].SetValue(view.InputText)
}

func (m *Model) restyle() {
	switch {
	case m.accent != nil:
		m.styles = NewStyles(m.accent(m.panel.Quantity().Name))
	case !m.customStyles:
		m.styles = NewStyles("")
	}
}

func (m Model) View() string {
	if m.quitting {
		return m.panel.View().Summary() + "\n"
	}
	view := m.panel.View()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(view.Quantity))
	b.WriteString("\n")

	boxes := make([]string, 0, 2)
	for i, side := range []widget.Side{widget.SideInput, widget.SideOutput} {
		unit := view.InputUnit
		if side == widget.SideOutput {
			unit = view.OutputUnit
		}
		style := m.styles.Box
		if side == m.focus {
			style = m.styles.Focused
		}
		content := m.styles.Label.Render(view.UnitLabel(unit)) + "\n" + m.fields[i].View()
		boxes = append(boxes, style.Render(content))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")
	b.WriteString(m.styles.Summary.Render(view.Summary()))
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.err))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(helpText))
	b.WriteString("\n")
	return b.String()
}

func fieldIndex(side widget.Side) int {
	if side == widget.SideOutput {
		return 1
	}
	return 0
}
