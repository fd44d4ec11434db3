package ui

import (
	"unicode/utf8"

	"editcard/internal/logging"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// DefaultInputWidth is the number of visible characters in a field's input.
const DefaultInputWidth = 24

// FieldProps is everything the caller controls about a Field.
type FieldProps struct {
	Title         string
	Value         string
	OnValueChange func(newValue string)
}

// Field is a labeled, controlled text input. It always displays props.Value;
// edits are reported through OnValueChange and only show up once the caller
// passes the new value back through SetProps.
type Field struct {
	props      FieldProps
	input      textinput.Model
	cursor     int // cursor position survives value round trips
	labelWidth int
	charLimit  int
	logger     logrus.FieldLogger
	warned     bool
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithPlaceholder sets the text shown while the value is empty.
func WithPlaceholder(s string) FieldOption {
	return func(f *Field) { f.input.Placeholder = s }
}

// WithInputWidth sets the number of visible input characters.
func WithInputWidth(w int) FieldOption {
	return func(f *Field) { f.input.Width = w }
}

// WithCharLimit caps the length of values typed into the field. A caller
// value that is already longer is still shown in full; edits that would grow
// it further are dropped. Zero means unlimited.
func WithCharLimit(n int) FieldOption {
	return func(f *Field) { f.charLimit = n }
}

// WithEchoMode sets how the value is displayed, e.g. textinput.EchoPassword.
func WithEchoMode(m textinput.EchoMode) FieldOption {
	return func(f *Field) { f.input.EchoMode = m }
}

// WithLabelWidth pads labels to w columns so stacked fields line up.
func WithLabelWidth(w int) FieldOption {
	return func(f *Field) { f.labelWidth = w }
}

// WithFieldLogger sets the logger used for dropped edits.
func WithFieldLogger(l logrus.FieldLogger) FieldOption {
	return func(f *Field) { f.logger = l }
}

// Ensure Field implements View and Element.
var (
	_ View    = (*Field)(nil)
	_ Element = (*Field)(nil)
)

// NewField creates an unfocused field with no title and an empty value.
func NewField(opts ...FieldOption) *Field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = DefaultInputWidth

	f := &Field{input: ti, logger: logging.Discard()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetProps replaces the field's props. The displayed value becomes p.Value.
func (f *Field) SetProps(p FieldProps) {
	f.props = p
	f.input.SetValue(p.Value)
	f.input.SetCursor(f.cursor)
}

// Props returns the current props.
func (f *Field) Props() FieldProps {
	return f.props
}

// Value is the value the field currently displays, i.e. the caller's value.
func (f *Field) Value() string {
	return f.input.Value()
}

// Focus focuses the input and moves the cursor to the end.
func (f *Field) Focus() tea.Cmd {
	f.input.CursorEnd()
	f.cursor = f.input.Position()
	return f.input.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.input.Blur()
}

// Focused reports whether the input has focus.
func (f *Field) Focused() bool {
	return f.input.Focused()
}

// Init implements View.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View. A message that changes the text calls
// OnValueChange once with the full new text; the displayed value is then put
// back to the caller's value.
func (f *Field) Update(msg tea.Msg) (View, tea.Cmd) {
	f.input.SetValue(f.props.Value)
	f.input.SetCursor(f.cursor)
	before := f.input.Value() // sanitized form of props.Value

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	after := f.input.Value()
	f.cursor = f.input.Position()

	f.input.SetValue(f.props.Value)
	f.input.SetCursor(f.cursor)

	if after != before && !f.overLimit(before, after) {
		f.emit(after)
	}
	return f, cmd
}

// overLimit reports whether an edit grows the value past the char limit.
func (f *Field) overLimit(before, after string) bool {
	if f.charLimit <= 0 {
		return false
	}
	n := utf8.RuneCountInString(after)
	return n > f.charLimit && n > utf8.RuneCountInString(before)
}

func (f *Field) emit(v string) {
	if f.props.OnValueChange == nil {
		if !f.warned {
			f.logger.WithField("field", f.props.Title).Warn("field has no value-change handler; edit dropped")
			f.warned = true
		}
		return
	}
	f.props.OnValueChange(v)
}

// View implements View.
func (f *Field) View() string {
	label := Styles.Label
	if f.labelWidth > 0 {
		label = label.Width(f.labelWidth + label.GetHorizontalPadding())
	}
	input := Styles.Input
	if f.input.Focused() {
		input = Styles.InputFocus
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render(f.props.Title),
		input.Render(f.input.View()),
	)
}
