package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures OnValueChange calls.
type recorder struct {
	values []string
}

func (r *recorder) record(v string) { r.values = append(r.values, v) }

func TestField_DisplaysCallerValue(t *testing.T) {
	f := NewField()
	f.SetProps(FieldProps{Title: "Name", Value: "abc"})

	view := f.View()
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "abc")
	assert.Equal(t, "abc", f.Value())
}

func TestField_EditReportsFullValueOnce(t *testing.T) {
	rec := &recorder{}
	f := NewField()
	f.SetProps(FieldProps{Title: "Name", Value: "abc", OnValueChange: rec.record})
	f.Focus()

	f.Update(keyPress("d"))

	assert.Equal(t, []string{"abcd"}, rec.values)
	assert.Equal(t, "abc", f.Props().Value, "props are never mutated")
	assert.Equal(t, "abc", f.Value(), "display waits for the caller")
	assert.NotContains(t, f.View(), "abcd")
}

func TestField_CallerRoundTripShowsEdit(t *testing.T) {
	var f *Field
	value := "abc"
	onChange := func(v string) {
		value = v
		f.SetProps(FieldProps{Title: "Name", Value: value, OnValueChange: f.Props().OnValueChange})
	}
	f = NewField()
	f.SetProps(FieldProps{Title: "Name", Value: value, OnValueChange: onChange})
	f.Focus()

	typeText(f, "def")
	assert.Equal(t, "abcdef", value)
	assert.Equal(t, "abcdef", f.Value())

	f.Update(keyPress("backspace"))
	assert.Equal(t, "abcde", value)
}

func TestField_CursorSurvivesRoundTrip(t *testing.T) {
	var f *Field
	value := "ac"
	onChange := func(v string) {
		value = v
		f.SetProps(FieldProps{Value: value, OnValueChange: f.Props().OnValueChange})
	}
	f = NewField()
	f.SetProps(FieldProps{Value: value, OnValueChange: onChange})
	f.Focus()

	f.Update(keyPress("left"))
	f.Update(keyPress("b"))
	assert.Equal(t, "abc", value)

	f.Update(keyPress("x"))
	assert.Equal(t, "abxc", value, "second insert lands after the first")
}

func TestField_CursorMoveDoesNotReport(t *testing.T) {
	rec := &recorder{}
	f := NewField()
	f.SetProps(FieldProps{Value: "abc", OnValueChange: rec.record})
	f.Focus()

	f.Update(keyPress("left"))
	f.Update(keyPress("left"))
	assert.Empty(t, rec.values)
}

func TestField_IgnoresKeysWhenBlurred(t *testing.T) {
	rec := &recorder{}
	f := NewField()
	f.SetProps(FieldProps{Value: "abc", OnValueChange: rec.record})

	f.Update(keyPress("d"))
	assert.Empty(t, rec.values)

	f.Focus()
	f.Blur()
	f.Update(keyPress("d"))
	assert.Empty(t, rec.values)
}

func TestField_MissingHandlerWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	f := NewField(WithFieldLogger(logger))
	f.SetProps(FieldProps{Title: "Name", Value: "abc"})
	f.Focus()

	require.NotPanics(t, func() {
		f.Update(keyPress("d"))
		f.Update(keyPress("e"))
	})
	assert.Equal(t, "abc", f.Value(), "edit has no observable effect")
	assert.Equal(t, 1, strings.Count(buf.String(), "edit dropped"))
}

func TestField_CharLimit(t *testing.T) {
	rec := &recorder{}
	f := NewField(WithCharLimit(3))
	f.SetProps(FieldProps{Value: "abc", OnValueChange: rec.record})
	f.Focus()

	f.Update(keyPress("d"))
	assert.Empty(t, rec.values, "input at its limit does not change")

	f.Update(keyPress("backspace"))
	assert.Equal(t, []string{"ab"}, rec.values)
}

func TestField_CharLimitKeepsLongerCallerValue(t *testing.T) {
	rec := &recorder{}
	f := NewField(WithCharLimit(3), WithInputWidth(20))
	f.SetProps(FieldProps{Value: "abcdef", OnValueChange: rec.record})
	f.Focus()

	assert.Equal(t, "abcdef", f.Value())
	assert.Contains(t, f.View(), "abcdef")

	f.Update(keyPress("x"))
	assert.Empty(t, rec.values, "growing past the limit is dropped")

	f.Update(keyPress("backspace"))
	assert.Equal(t, []string{"abcde"}, rec.values, "shrinking keeps the caller's text")
	assert.Equal(t, "abcdef", f.Value())
}

func TestField_EchoPasswordMasksDisplayOnly(t *testing.T) {
	rec := &recorder{}
	f := NewField(WithEchoMode(textinput.EchoPassword))
	f.SetProps(FieldProps{Title: "PIN", Value: "1234", OnValueChange: rec.record})
	f.Focus()

	assert.NotContains(t, f.View(), "1234")
	assert.Equal(t, "1234", f.Value())

	f.Update(keyPress("5"))
	assert.Equal(t, []string{"12345"}, rec.values)
}

func TestField_EmptyValueShowsPlaceholder(t *testing.T) {
	f := NewField(WithPlaceholder("you@example.com"))
	f.SetProps(FieldProps{Title: "Email"})

	assert.Contains(t, f.View(), "you@example.com")
}

func TestField_LabelWidthAlignsInputs(t *testing.T) {
	short := NewField(WithLabelWidth(10))
	short.SetProps(FieldProps{Title: "Id", Value: "1"})
	long := NewField(WithLabelWidth(10))
	long.SetProps(FieldProps{Title: "Last name", Value: "1"})

	shortLine := strings.Split(short.View(), "\n")[1]
	longLine := strings.Split(long.View(), "\n")[1]
	assert.Equal(t, strings.Index(shortLine, "1"), strings.Index(longLine, "1"))
}
