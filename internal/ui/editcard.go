package ui

import (
	"strings"

	"editcard/internal/logging"
	"editcard/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// DefaultCardWidth is the outer width of an EditCard before any resize.
const DefaultCardWidth = 72

// SaveLabel is the text of the card's single action.
const SaveLabel = "Save"

// EditCardProps is everything the caller controls about an EditCard.
type EditCardProps struct {
	Loading bool
	Title   string
	Content []Element
	OnSave  func() // nil means no-op
}

// EditCard renders a bordered form panel: a header with the title and, while
// loading, a busy indicator; a body hosting the caller's content; a footer with
// a Save button. The card owns no data. It keeps the latest props only to
// answer key events between renders.
type EditCard struct {
	props   EditCardProps
	spinner spinner.Model
	keys    editCardKeys
	width   int // current outer width
	maxW    int // requested outer width; resizes never exceed it
	focused bool // Save button has focus
	logger  logrus.FieldLogger
}

type editCardKeys struct {
	Save     key.Binding // activates from anywhere
	Activate key.Binding // activates only while the button is focused
}

// EditCardOption configures an EditCard.
type EditCardOption func(*EditCard)

// WithSaveKeys replaces the global save shortcut (default ctrl+s).
func WithSaveKeys(keys ...string) EditCardOption {
	return func(c *EditCard) {
		c.keys.Save = key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), "save"))
	}
}

// WithCardWidth sets the outer width of the card.
func WithCardWidth(w int) EditCardOption {
	return func(c *EditCard) { c.SetWidth(w) }
}

// WithCardLogger sets the logger used for activation events.
func WithCardLogger(l logrus.FieldLogger) EditCardOption {
	return func(c *EditCard) { c.logger = l }
}

// Ensure EditCard implements View.
var _ View = (*EditCard)(nil)

// NewEditCard creates an empty, idle card.
func NewEditCard(opts ...EditCardOption) *EditCard {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Spinner

	c := &EditCard{
		props:   EditCardProps{OnSave: func() {}},
		spinner: s,
		keys: editCardKeys{
			Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
			Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "save")),
		},
		width:  DefaultCardWidth,
		maxW:   DefaultCardWidth,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetProps replaces the card's props wholesale. Content from earlier props is
// dropped. When Loading turns on it returns the spinner's first tick.
func (c *EditCard) SetProps(p EditCardProps) tea.Cmd {
	if p.OnSave == nil {
		p.OnSave = func() {}
	}
	wasLoading := c.props.Loading
	c.props = p
	if p.Loading && !wasLoading {
		return c.spinner.Tick
	}
	return nil
}

// Props returns the current props, with OnSave defaulted.
func (c *EditCard) Props() EditCardProps {
	return c.props
}

// SaveBinding returns the global save shortcut, for help views.
func (c *EditCard) SaveBinding() key.Binding {
	return c.keys.Save
}

// SetWidth sets the requested outer width of the card. Widths below 20 are
// raised to 20.
func (c *EditCard) SetWidth(w int) {
	c.maxW = clampWidth(w)
	c.width = c.maxW
}

func clampWidth(w int) int {
	if w < 20 {
		return 20
	}
	return w
}

// Width returns the outer width of the card.
func (c *EditCard) Width() int {
	return c.width
}

// Focus gives the Save button focus so enter/space activate it.
func (c *EditCard) Focus() {
	c.focused = true
}

// Blur removes focus from the Save button.
func (c *EditCard) Blur() {
	c.focused = false
}

// Focused reports whether the Save button has focus.
func (c *EditCard) Focused() bool {
	return c.focused
}

// Save activates the Save button: OnSave is called once, with no arguments.
func (c *EditCard) Save() {
	c.logger.WithFields(logrus.Fields{
		"title":   c.props.Title,
		"loading": c.props.Loading,
	}).Debug("save activated")
	if c.props.OnSave != nil {
		c.props.OnSave()
	}
}

// Init implements View.
func (c *EditCard) Init() tea.Cmd {
	if c.props.Loading {
		return c.spinner.Tick
	}
	return nil
}

// Update implements View. Body content is not forwarded any messages; the
// caller routes input to its own elements.
func (c *EditCard) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = clampWidth(min(msg.Width, c.maxW))
		return c, nil
	case spinner.TickMsg:
		if !c.props.Loading {
			return c, nil // stop animating
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	case tea.KeyMsg:
		if key.Matches(msg, c.keys.Save) || (c.focused && key.Matches(msg, c.keys.Activate)) {
			c.Save()
		}
	}
	return c, nil
}

// View implements View.
func (c *EditCard) View() string {
	inner := c.innerWidth()
	rule := Styles.Rule.Render(strings.Repeat("─", inner))

	sections := []string{
		c.header(inner),
		rule,
		c.body(),
		rule,
		c.footer(inner),
	}
	return Styles.Card.Width(c.width - 2).Render(strings.Join(sections, "\n"))
}

// BusyIndicator returns the rendered busy indicator, or "" when idle.
func (c *EditCard) BusyIndicator() string {
	if !c.props.Loading {
		return ""
	}
	return c.spinner.View()
}

func (c *EditCard) header(inner int) string {
	busy := c.BusyIndicator()
	titleWidth := inner
	if busy != "" {
		titleWidth -= lipgloss.Width(busy) + 1
	}
	title := Styles.Title.Render(textutil.Truncate(c.props.Title, titleWidth))
	if busy == "" {
		return title
	}
	return title + strings.Repeat(" ", textutil.Gap(title, busy, inner, 1)) + busy
}

func (c *EditCard) body() string {
	parts := make([]string, 0, len(c.props.Content))
	for _, el := range c.props.Content {
		if el == nil {
			continue
		}
		parts = append(parts, el.View())
	}
	return strings.Join(parts, "\n")
}

func (c *EditCard) footer(inner int) string {
	style := Styles.Button
	if c.focused {
		style = Styles.ButtonFocus
	}
	return lipgloss.PlaceHorizontal(inner, lipgloss.Right, style.Render(SaveLabel))
}

// innerWidth is the content width inside border and padding.
func (c *EditCard) innerWidth() int {
	return c.width - Styles.Card.GetHorizontalFrameSize()
}
