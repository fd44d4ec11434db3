package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusRing_NextPrevWrap(t *testing.T) {
	r := NewFocusRing("a", "b", "c")
	assert.Equal(t, "a", r.Current())

	assert.Equal(t, "b", r.Next())
	assert.Equal(t, "c", r.Next())
	assert.Equal(t, "a", r.Next(), "next wraps to first")
	assert.Equal(t, "c", r.Prev(), "prev wraps to last")
	assert.Equal(t, "b", r.Prev())
}

func TestFocusRing_SetFocusAndOnChange(t *testing.T) {
	r := NewFocusRing("a", "b", "c")
	var changes [][2]string
	r.OnChange = func(from, to string) { changes = append(changes, [2]string{from, to}) }

	assert.True(t, r.SetFocus("c"))
	assert.False(t, r.SetFocus("zzz"))
	assert.True(t, r.SetFocus("c"), "refocusing is allowed")
	assert.Equal(t, "c", r.Current())
	assert.Equal(t, [][2]string{{"a", "c"}}, changes, "no change event for same target")
}

func TestFocusRing_Empty(t *testing.T) {
	r := NewFocusRing()
	assert.Equal(t, "", r.Current())
	assert.Equal(t, "", r.Next())
	assert.Equal(t, "", r.Prev())
}
