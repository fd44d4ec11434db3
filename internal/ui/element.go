package ui

// Element is anything the edit card can host in its body. Views and fields
// satisfy it; so does Text for static content.
type Element interface {
	View() string
}

// Text is static body content.
type Text string

// View implements Element.
func (t Text) View() string { return string(t) }

// ElementFunc adapts a render function to Element.
type ElementFunc func() string

// View implements Element.
func (f ElementFunc) View() string { return f() }
