// Package ui is the interactive user table: check rows, edit them in an
// inline form, save the roster, and compose packets for the checked users.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/notepacket/internal/roster"
	"github.com/pdiddy/notepacket/pkg/types"
)

// SaveFunc persists the full user list.
type SaveFunc func(users []types.User) error

// ComposeFunc composes packets for users and returns a one-line summary.
type ComposeFunc func(users []types.User) (string, error)

// Options wires the page to the rest of the program.
type Options struct {
	Save    SaveFunc
	Compose ComposeFunc
}

type pageMode int

const (
	modeBrowse pageMode = iota
	modeForm
	modeConfirmQuit
)

const (
	fieldName = iota
	fieldTitle
	fieldNumbers
	fieldCount
)

// UsersPageModel is the state of the user table.
type UsersPageModel struct {
	width  int
	height int
	table  table.Model

	roster   *roster.Roster
	checked  map[string]bool
	modified map[string]bool
	dirty    bool

	mode    pageMode
	inputs  [fieldCount]textinput.Model
	focus   int
	editing string // original name while editing; empty when adding

	status   string
	err      error
	quitting bool

	opts   Options
	styles Styles
}

// NewUsersPageModel builds the page around r. The page edits r in place.
func NewUsersPageModel(r *roster.Roster, opts Options) UsersPageModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "✓", Width: 4},
			{Title: "Name", Width: 20},
			{Title: "Note title", Width: 24},
			{Title: "Note numbers", Width: 30},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	m := UsersPageModel{
		table:    t,
		roster:   r,
		checked:  make(map[string]bool),
		modified: make(map[string]bool),
		opts:     opts,
		styles:   DefaultStyles(),
	}
	m.table.SetStyles(m.styles.Table)

	placeholders := [fieldCount]string{"name (required)", "note title", "note numbers, e.g. 101,102"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 200
		in.Width = 40
		m.inputs[i] = in
	}

	m.refreshRows()
	return m
}

// Init initializes the model.
func (m UsersPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m UsersPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmQuit:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m UsersPageModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case " ", "space":
		if u, ok := m.current(); ok {
			m.checked[u.Name] = !m.checked[u.Name]
			m.refreshRows()
		}
		return m, nil
	case "a":
		m.toggleAll()
		return m, nil
	case "n":
		m.openForm(types.User{}, "")
		return m, textinput.Blink
	case "e":
		if u, ok := m.current(); ok {
			m.openForm(u, u.Name)
			return m, textinput.Blink
		}
		return m, nil
	case "d":
		m.deleteChecked()
		return m, nil
	case "s":
		m.save()
		return m, nil
	case "p":
		m.compose()
		return m, nil
	case "q", "ctrl+c":
		if m.dirty {
			m.mode = modeConfirmQuit
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m UsersPageModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.status = "edit cancelled"
		return m, nil
	case "tab", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case "enter":
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m UsersPageModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeBrowse
		if !m.save() {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "n", "N":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		m.status = ""
	}
	return m, nil
}

// current returns the user under the cursor.
func (m *UsersPageModel) current() (types.User, bool) {
	users := m.roster.Users()
	i := m.table.Cursor()
	if i < 0 || i >= len(users) {
		return types.User{}, false
	}
	return users[i], true
}

func (m *UsersPageModel) toggleAll() {
	users := m.roster.Users()
	all := len(users) > 0
	for _, u := range users {
		if !m.checked[u.Name] {
			all = false
			break
		}
	}
	m.checked = make(map[string]bool)
	if !all {
		for _, u := range users {
			m.checked[u.Name] = true
		}
	}
	m.refreshRows()
}

func (m *UsersPageModel) openForm(u types.User, editing string) {
	m.mode = modeForm
	m.editing = editing
	m.inputs[fieldName].SetValue(u.Name)
	m.inputs[fieldTitle].SetValue(u.NoteTitle)
	m.inputs[fieldNumbers].SetValue(u.NoteNumbers)
	m.setFocus(fieldName)
}

func (m *UsersPageModel) closeForm() {
	m.mode = modeBrowse
	m.editing = ""
	for i := range m.inputs {
		m.inputs[i].Blur()
		m.inputs[i].SetValue("")
	}
}

func (m *UsersPageModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *UsersPageModel) submitForm() {
	u := types.User{
		Name:        m.inputs[fieldName].Value(),
		NoteTitle:   m.inputs[fieldTitle].Value(),
		NoteNumbers: m.inputs[fieldNumbers].Value(),
	}.Normalize()

	var err error
	if m.editing == "" {
		err = m.roster.Add(u)
	} else {
		err = m.roster.Update(m.editing, u)
	}
	if err != nil {
		m.err = err
		return
	}

	if m.editing != "" && m.editing != u.Name {
		if m.checked[m.editing] {
			m.checked[u.Name] = true
		}
		delete(m.checked, m.editing)
		delete(m.modified, m.editing)
		m.status = "updated " + u.Name
	} else if m.editing != "" {
		m.status = "updated " + u.Name
	} else {
		m.status = "added " + u.Name
	}
	m.modified[u.Name] = true
	m.dirty = true
	m.err = nil
	m.closeForm()
	m.refreshRows()
	if _, idx, ok := m.roster.Find(u.Name); ok {
		m.table.SetCursor(idx)
	}
}

func (m *UsersPageModel) deleteChecked() {
	names := m.Checked()
	if len(names) == 0 {
		m.status = "no rows checked"
		return
	}
	n := m.roster.Delete(names...)
	for _, name := range names {
		delete(m.checked, name)
		delete(m.modified, name)
	}
	m.dirty = true
	m.status = fmt.Sprintf("deleted %d user(s)", n)
	m.refreshRows()
}

// save reports whether the roster was written.
func (m *UsersPageModel) save() bool {
	if m.opts.Save == nil {
		m.err = errors.New("saving is not available")
		return false
	}
	if err := m.opts.Save(m.roster.Users()); err != nil {
		m.err = fmt.Errorf("saving: %w", err)
		return false
	}
	m.dirty = false
	m.modified = make(map[string]bool)
	m.status = fmt.Sprintf("saved %d user(s)", m.roster.Len())
	m.refreshRows()
	return true
}

func (m *UsersPageModel) compose() {
	names := m.Checked()
	if len(names) == 0 {
		m.status = "no rows checked"
		return
	}
	if m.opts.Compose == nil {
		m.err = errors.New("composing is not available")
		return
	}
	users, err := m.roster.Select(names)
	if err != nil {
		m.err = err
		return
	}
	summary, err := m.opts.Compose(users)
	if err != nil {
		m.err = err
		return
	}
	m.status = summary
}

func (m *UsersPageModel) refreshRows() {
	users := m.roster.Users()
	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		mark := "[ ]"
		if m.checked[u.Name] {
			mark = "[x]"
		}
		if m.modified[u.Name] {
			mark += "*"
		}
		rows = append(rows, table.Row{mark, u.Name, u.NoteTitle, u.NoteNumbers})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// Checked returns the checked user names in roster order.
func (m UsersPageModel) Checked() []string {
	var names []string
	for _, u := range m.roster.Users() {
		if m.checked[u.Name] {
			names = append(names, u.Name)
		}
	}
	return names
}

// Dirty reports whether there are unsaved changes.
func (m UsersPageModel) Dirty() bool { return m.dirty }

// Modified reports whether name was added or edited since the last save.
func (m UsersPageModel) Modified(name string) bool { return m.modified[name] }

// Status returns the last status line.
func (m UsersPageModel) Status() string { return m.status }

// Err returns the last error shown to the user.
func (m UsersPageModel) Err() error { return m.err }

// Quitting reports whether the page has asked the program to exit.
func (m UsersPageModel) Quitting() bool { return m.quitting }

// View renders the page.
func (m UsersPageModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Users (%d)", m.roster.Len())))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		heading := "Add user"
		if m.editing != "" {
			heading = "Edit " + m.editing
		}
		b.WriteString(m.styles.Prompt.Render(heading))
		b.WriteString("\n")
		labels := [fieldCount]string{"Name", "Note title", "Note numbers"}
		for i, in := range m.inputs {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Label.Render(labels[i]), in.View()))
			b.WriteString("\n")
		}
		b.WriteString(m.styles.Help.Render("tab next field • enter save • esc cancel"))
	case modeConfirmQuit:
		b.WriteString(m.styles.Prompt.Render("Unsaved changes. Save before quitting? (y/n, esc to cancel)"))
	default:
		b.WriteString(m.styles.Help.Render("space check • a all • n add • e edit • d delete checked • s save • p compose checked • q quit"))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	if m.dirty && m.mode == modeBrowse {
		b.WriteString(m.styles.Modified.Render("* unsaved changes"))
		b.WriteString("\n")
	}
	return b.String()
}

// Run shows the page until the user quits.
func Run(r *roster.Roster, opts Options) error {
	p := tea.NewProgram(NewUsersPageModel(r, opts))
	_, err := p.Run()
	return err
}
