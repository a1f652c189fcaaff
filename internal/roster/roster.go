// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster manages the ordered user list: editing, merging imports,
// and reading or writing it as a spreadsheet, CSV, YAML, or JSON file.
package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/notepacket/pkg/types"
)

var (
	// ErrEmptyName rejects users without a name.
	ErrEmptyName = errors.New("user name is required")

	// ErrDuplicate rejects a second user with an existing name.
	ErrDuplicate = errors.New("user already exists")

	// ErrUnknownUser is returned when a named user is not in the roster.
	ErrUnknownUser = errors.New("unknown user")
)

// ApplyMode selects how imported users combine with the current roster.
type ApplyMode int

const (
	// Merge appends imported users whose name is not already present.
	Merge ApplyMode = iota
	// Replace discards the current roster.
	Replace
)

func (m ApplyMode) String() string {
	if m == Replace {
		return "replace"
	}
	return "merge"
}

// ParseApplyMode accepts "merge" (or empty) and "replace".
func ParseApplyMode(s string) (ApplyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merge":
		return Merge, nil
	case "replace":
		return Replace, nil
	}
	return Merge, fmt.Errorf("unknown import mode %q (want merge or replace)", s)
}

// Roster is an ordered list of users with unique names.
type Roster struct {
	users []types.User
}

// New returns a roster holding a trimmed copy of users. Unnamed users and
// repeated names are dropped; the first user with a name wins.
func New(users []types.User) *Roster {
	r, _ := Load(users)
	return r
}

// Load is New that also returns the users it dropped.
func Load(users []types.User) (*Roster, []types.User) {
	r := &Roster{users: make([]types.User, 0, len(users))}
	var dropped []types.User
	for _, u := range users {
		if err := r.Add(u); err != nil {
			dropped = append(dropped, u)
		}
	}
	return r, dropped
}

// Users returns a copy of the users in order.
func (r *Roster) Users() []types.User {
	out := make([]types.User, len(r.users))
	copy(out, r.users)
	return out
}

// Len returns the number of users.
func (r *Roster) Len() int { return len(r.users) }

// Find returns the user called name and its position.
func (r *Roster) Find(name string) (types.User, int, bool) {
	name = strings.TrimSpace(name)
	for i, u := range r.users {
		if u.Name == name {
			return u, i, true
		}
	}
	return types.User{}, -1, false
}

// Add appends u after trimming its fields.
func (r *Roster) Add(u types.User) error {
	u = u.Normalize()
	if u.Name == "" {
		return ErrEmptyName
	}
	if _, _, ok := r.Find(u.Name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, u.Name)
	}
	r.users = append(r.users, u)
	return nil
}

// Update replaces the user called name with u, keeping its position. u may
// carry a new name as long as it does not collide with another user.
func (r *Roster) Update(name string, u types.User) error {
	u = u.Normalize()
	if u.Name == "" {
		return ErrEmptyName
	}
	_, idx, ok := r.Find(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	if _, other, found := r.Find(u.Name); found && other != idx {
		return fmt.Errorf("%w: %s", ErrDuplicate, u.Name)
	}
	r.users[idx] = u
	return nil
}

// Delete removes the named users and returns how many were removed.
func (r *Roster) Delete(names ...string) int {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[strings.TrimSpace(n)] = true
	}
	kept := r.users[:0]
	removed := 0
	for _, u := range r.users {
		if drop[u.Name] {
			removed++
			continue
		}
		kept = append(kept, u)
	}
	r.users = kept
	return removed
}

// Select returns the named users in the order given.
func (r *Roster) Select(names []string) ([]types.User, error) {
	out := make([]types.User, 0, len(names))
	for _, n := range names {
		u, _, ok := r.Find(n)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUser, n)
		}
		out = append(out, u)
	}
	return out, nil
}

// Apply combines imported users with the roster and returns how many users
// were added. Imported users with empty names are ignored.
func (r *Roster) Apply(imported []types.User, mode ApplyMode) int {
	if mode == Replace {
		r.users = nil
	}
	added := 0
	for _, u := range imported {
		if err := r.Add(u); err == nil {
			added++
		}
	}
	return added
}
