// Package ui provides the edit card and its labeled fields for Bubble Tea.
//
// Core abstractions:
//   - EditCard: bordered form panel with a title, busy indicator, body slot and Save button
//   - Field: labeled, controlled text input reporting every edit to its owner
//   - ProfileForm: hosts Fields in an EditCard and owns the edited profile
//   - FocusRing: tab order across fields and the Save button
//
// Card and fields are controlled components. Callers pass props in with
// SetProps and receive callbacks out; neither component keeps its own copy of
// caller data.
package ui
