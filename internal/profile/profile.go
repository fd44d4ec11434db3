// Package profile holds the user profile edited by rollcall and its on-disk store.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned by Update for keys that are not in Fields.
var ErrUnknownField = errors.New("unknown profile field")

// Profile is the current user's editable account data.
type Profile struct {
	Username  string `yaml:"username"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Detail    Detail `yaml:"detail"`
}

// Detail holds the per-user details stored beside the account.
type Detail struct {
	PersonnelCode string `yaml:"personnel_code"`
	Phone         string `yaml:"phone"`
}

// FieldSpec describes one editable field of a Profile.
type FieldSpec struct {
	Key   string // dotted key, e.g. "detail.phone"
	Label string
}

// Fields lists the editable fields in display order. Username is not editable.
var Fields = []FieldSpec{
	{Key: "first_name", Label: "First name"},
	{Key: "last_name", Label: "Last name"},
	{Key: "email", Label: "Email"},
	{Key: "detail.personnel_code", Label: "Personnel code"},
	{Key: "detail.phone", Label: "Phone"},
}

// Get returns the value of the field named by key.
func (p Profile) Get(key string) (string, error) {
	ptr := p.field(key)
	if ptr == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return *ptr, nil
}

// Update returns a copy of p with the field named by key set to value.
// Nested detail fields are addressed as "detail.<name>".
func Update(p Profile, key, value string) (Profile, error) {
	ptr := p.field(key)
	if ptr == nil {
		return p, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	*ptr = value
	return p, nil
}

// DisplayName is "First Last", falling back to the username.
func (p Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Username
	}
	return name
}

// field returns a pointer into p (the receiver copy) for key, or nil.
func (p *Profile) field(key string) *string {
	switch key {
	case "username":
		return &p.Username
	case "first_name":
		return &p.FirstName
	case "last_name":
		return &p.LastName
	case "email":
		return &p.Email
	case "detail.personnel_code":
		return &p.Detail.PersonnelCode
	case "detail.phone":
		return &p.Detail.Phone
	}
	return nil
}
