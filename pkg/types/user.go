package types

import "strings"

// User is one row of the user table. NoteNumbers keeps the raw
// comma-separated text the user typed; NoteNumberList splits it.
type User struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name" csv:"name"`
	NoteTitle   string `json:"note_title" yaml:"note_title" mapstructure:"note_title" csv:"note_title"`
	NoteNumbers string `json:"note_numbers" yaml:"note_numbers" mapstructure:"note_numbers" csv:"note_numbers"`
}

// NoteNumberList returns the trimmed, non-empty note numbers in input order.
func (u User) NoteNumberList() []string {
	return SplitList(u.NoteNumbers)
}

// Normalize trims surrounding whitespace from every field.
func (u User) Normalize() User {
	return User{
		Name:        strings.TrimSpace(u.Name),
		NoteTitle:   strings.TrimSpace(u.NoteTitle),
		NoteNumbers: strings.TrimSpace(u.NoteNumbers),
	}
}

// SplitList splits a comma-separated string, trimming each element and
// dropping empties. It is used for note numbers and copy requests alike.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
