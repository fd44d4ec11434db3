package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"editcard/internal/logging"
	"editcard/internal/profile"
	"editcard/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// saveFocusID is the focus ring ID of the card's Save button.
const saveFocusID = "save"

// ProfileSaver persists a profile. *profile.Store implements it.
type ProfileSaver interface {
	Save(ctx context.Context, p profile.Profile) error
}

// ProfileSavedMsg reports a finished save.
type ProfileSavedMsg struct {
	Profile profile.Profile
}

// ProfileSaveFailedMsg reports a failed save.
type ProfileSaveFailedMsg struct {
	Err error
}

// FormConfig configures a ProfileForm.
type FormConfig struct {
	SaveTimeout time.Duration // zero means no timeout
	CardWidth   int
	Logger      logrus.FieldLogger
}

// ProfileForm edits a profile inside an EditCard. It owns the draft profile
// and drives the card and fields as controlled components: every edit updates
// the draft, and the draft is pushed back down as props.
type ProfileForm struct {
	saver   ProfileSaver
	saved   profile.Profile
	draft   profile.Profile
	loading bool
	status  string
	failed  bool

	card   *EditCard
	fields map[string]*Field
	specs  []profile.FieldSpec
	focus  *FocusRing
	keys   formKeys
	help   help.Model

	saveTimeout time.Duration
	logger      logrus.FieldLogger

	// pending collects commands requested by callbacks during an Update.
	pending []tea.Cmd
}

// Ensure ProfileForm implements View.
var _ View = (*ProfileForm)(nil)

// NewProfileForm creates a form for p that saves through saver.
func NewProfileForm(p profile.Profile, saver ProfileSaver, cfg FormConfig) *ProfileForm {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	width := cfg.CardWidth
	if width == 0 {
		width = DefaultCardWidth
	}

	f := &ProfileForm{
		saver:       saver,
		saved:       p,
		draft:       p,
		fields:      make(map[string]*Field, len(profile.Fields)),
		specs:       profile.Fields,
		help:        newHelpModel(),
		saveTimeout: cfg.SaveTimeout,
		logger:      logger,
	}
	f.card = NewEditCard(WithCardWidth(width), WithCardLogger(logger))
	f.keys = newFormKeys(f.card.SaveBinding())

	labelWidth := 0
	ids := make([]string, 0, len(f.specs)+1)
	for _, spec := range f.specs {
		if w := textutil.VisualWidth(spec.Label); w > labelWidth {
			labelWidth = w
		}
		ids = append(ids, spec.Key)
	}
	ids = append(ids, saveFocusID)

	inputWidth := width - labelWidth - 13 // card frame, two field boxes, cursor cell
	if inputWidth < 8 {
		inputWidth = 8
	}
	for _, spec := range f.specs {
		f.fields[spec.Key] = NewField(
			WithLabelWidth(labelWidth),
			WithInputWidth(inputWidth),
			WithFieldLogger(logger.WithField("field", spec.Key)),
		)
	}

	f.focus = NewFocusRing(ids...)
	f.focus.OnChange = func(from, to string) {
		logger.WithFields(logrus.Fields{"from": from, "to": to}).Debug("focus moved")
	}
	f.sync()
	f.applyFocus()
	return f
}

// Draft returns the profile as currently edited.
func (f *ProfileForm) Draft() profile.Profile {
	return f.draft
}

// Dirty reports whether the draft differs from the last saved profile.
func (f *ProfileForm) Dirty() bool {
	return f.draft != f.saved
}

// Loading reports whether a save is in flight.
func (f *ProfileForm) Loading() bool {
	return f.loading
}

// Status returns the status line text.
func (f *ProfileForm) Status() string {
	return f.status
}

// Focused returns the focus ring's current target: a field key or "save".
func (f *ProfileForm) Focused() string {
	return f.focus.Current()
}

// Card exposes the hosted card, for tests and embedding.
func (f *ProfileForm) Card() *EditCard {
	return f.card
}

// Field returns the field for a profile key name, or nil.
func (f *ProfileForm) Field(name string) *Field {
	return f.fields[name]
}

// Init implements View.
func (f *ProfileForm) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, f.card.Init())
}

// Update implements View.
func (f *ProfileForm) Update(msg tea.Msg) (View, tea.Cmd) {
	f.pending = f.pending[:0]
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ProfileSavedMsg:
		f.saved = msg.Profile
		f.loading = false
		f.failed = false
		f.status = "Saved."
		f.logger.WithField("username", msg.Profile.Username).Info("profile saved")
		cmds = append(cmds, f.sync())
		return f, tea.Batch(cmds...)
	case ProfileSaveFailedMsg:
		f.loading = false
		f.failed = true
		f.status = fmt.Sprintf("Save failed: %v", msg.Err)
		f.logger.WithError(msg.Err).Error("profile save failed")
		cmds = append(cmds, f.sync())
		return f, tea.Batch(cmds...)
	case tea.WindowSizeMsg:
		f.help.Width = msg.Width
		_, cmd := f.card.Update(msg)
		return f, cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.keys.Quit):
			return f, tea.Quit
		case key.Matches(msg, f.keys.Next):
			f.focus.Next()
			return f, f.applyFocus()
		case key.Matches(msg, f.keys.Prev):
			f.focus.Prev()
			return f, f.applyFocus()
		case key.Matches(msg, f.keys.Save) || f.focus.Current() == saveFocusID:
			_, cmd := f.card.Update(msg)
			cmds = append(cmds, cmd)
		case msg.Type == tea.KeyEnter:
			f.focus.Next()
			cmds = append(cmds, f.applyFocus())
		default:
			if fld := f.fields[f.focus.Current()]; fld != nil {
				_, cmd := fld.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	default:
		// Spinner ticks go to the card, cursor blinks to the focused field.
		_, cmd := f.card.Update(msg)
		cmds = append(cmds, cmd)
		if fld := f.fields[f.focus.Current()]; fld != nil {
			_, cmd := fld.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, f.pending...)
	return f, tea.Batch(cmds...)
}

// View implements View.
func (f *ProfileForm) View() string {
	var b strings.Builder
	b.WriteString(f.card.View())
	b.WriteString("\n")
	switch {
	case f.failed:
		b.WriteString(Styles.Error.Render(f.status))
	case f.status != "":
		b.WriteString(Styles.Status.Render(f.status))
	case f.Dirty():
		b.WriteString(Styles.Hint.Render("Unsaved changes"))
	}
	b.WriteString("\n")
	b.WriteString(f.help.View(f.keys))
	return b.String()
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (f *ProfileForm) AsTeaModel() tea.Model {
	return &profileFormAdapter{ProfileForm: f}
}

// profileFormAdapter wraps ProfileForm to implement tea.Model.
type profileFormAdapter struct {
	*ProfileForm
}

// Update implements tea.Model.
func (a *profileFormAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.ProfileForm.Update(msg)
	return a, cmd
}

// onValueChange returns the value-change callback for the field at fieldKey.
func (f *ProfileForm) onValueChange(fieldKey string) func(string) {
	return func(v string) {
		next, err := profile.Update(f.draft, fieldKey, v)
		if err != nil {
			f.logger.WithError(err).Warn("ignoring edit")
			return
		}
		f.draft = next
		f.status = ""
		f.failed = false
		f.logger.WithField("field", fieldKey).Debug("value changed")
		f.pending = append(f.pending, f.sync())
	}
}

// onSave starts a save of the current draft unless one is already running.
func (f *ProfileForm) onSave() {
	if f.loading {
		f.logger.Debug("save already in progress")
		return
	}
	f.loading = true
	f.failed = false
	f.status = "Saving…"
	f.pending = append(f.pending, f.sync(), f.saveCmd(f.draft))
}

func (f *ProfileForm) saveCmd(p profile.Profile) tea.Cmd {
	saver, timeout := f.saver, f.saveTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		if err := saver.Save(ctx, p); err != nil {
			return ProfileSaveFailedMsg{Err: err}
		}
		return ProfileSavedMsg{Profile: p}
	}
}

// sync pushes the form's state down to the card and fields as props.
func (f *ProfileForm) sync() tea.Cmd {
	content := make([]Element, 0, len(f.specs))
	for _, spec := range f.specs {
		fld := f.fields[spec.Key]
		value, _ := f.draft.Get(spec.Key)
		fld.SetProps(FieldProps{
			Title:         spec.Label,
			Value:         value,
			OnValueChange: f.onValueChange(spec.Key),
		})
		content = append(content, fld)
	}
	return f.card.SetProps(EditCardProps{
		Loading: f.loading,
		Title:   f.title(),
		Content: content,
		OnSave:  f.onSave,
	})
}

func (f *ProfileForm) title() string {
	name := f.saved.DisplayName()
	if name == "" {
		return "Profile"
	}
	return "Profile: " + name
}

// applyFocus focuses the ring's current target and blurs everything else.
func (f *ProfileForm) applyFocus() tea.Cmd {
	current := f.focus.Current()
	var cmd tea.Cmd
	for k, fld := range f.fields {
		if k == current {
			cmd = fld.Focus()
		} else {
			fld.Blur()
		}
	}
	if current == saveFocusID {
		f.card.Focus()
	} else {
		f.card.Blur()
	}
	return cmd
}
