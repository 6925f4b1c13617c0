// Package ui is the interactive menu shell over a contact store.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kordes/rolodex/internal/contact"
	"github.com/kordes/rolodex/internal/store"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

type mode int

const (
	modeMenu mode = iota
	modeAddName
	modeAddPhone
	modeSearch
	modeDelete
)

var menuItems = []string{
	"Add contact",
	"View all",
	"Search by name",
	"Delete contact",
	"Quit",
}

// Model is the shell state. It is a pure tea.Model: all transitions happen
// in Update, so the whole flow is testable without a terminal.
type Model struct {
	store  *store.Store
	mode   mode
	cursor int

	input       string
	pendingName string

	status    string
	statusErr bool
	listing   []contact.Record
}

// New returns a shell over s, starting at the menu.
func New(s *store.Store) Model {
	return Model{store: s}
}

// Run drives the shell to completion on the current terminal.
func Run(s *store.Store) error {
	_, err := tea.NewProgram(New(s)).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.mode == modeMenu {
		return m.updateMenu(key)
	}
	return m.updatePrompt(key)
}

func (m Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "1", "2", "3", "4", "5":
		m.cursor = int(key.String()[0] - '1')
		return m.selectItem()
	case "enter":
		return m.selectItem()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) selectItem() (tea.Model, tea.Cmd) {
	m.status = ""
	m.listing = nil
	m.input = ""

	switch m.cursor {
	case 0:
		m.mode = modeAddName
	case 1:
		m.listing = collect(m.store.All())
		if len(m.listing) == 0 {
			m.setStatus("no contacts yet", false)
		}
	case 2:
		m.mode = modeSearch
	case 3:
		m.mode = modeDelete
	case 4:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeMenu
		m.input = ""
		m.pendingName = ""
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if m.input != "" {
			r := []rune(m.input)
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

// submit applies the current prompt input. Every expected failure becomes a
// status message and returns to the menu; the shell itself never dies.
func (m Model) submit() (tea.Model, tea.Cmd) {
	in := m.input
	m.input = ""

	switch m.mode {
	case modeAddName:
		if strings.TrimSpace(in) == "" {
			m.setStatus(contact.ErrEmptyName.Error(), true)
			m.mode = modeMenu
			return m, nil
		}
		m.pendingName = in
		m.mode = modeAddPhone

	case modeAddPhone:
		name := m.pendingName
		m.pendingName = ""
		m.mode = modeMenu
		r, err := m.store.Add(name, in)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("added %s", r.Name), false)

	case modeSearch:
		m.mode = modeMenu
		m.listing = collect(m.store.Find(in))
		if len(m.listing) == 0 {
			m.setStatus(fmt.Sprintf("no contacts match %q", in), false)
		}

	case modeDelete:
		m.mode = modeMenu
		ok, err := m.store.Delete(in)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		if !ok {
			m.setStatus(fmt.Sprintf("no contact named %q", strings.TrimSpace(in)), true)
			return m, nil
		}
		m.setStatus("contact deleted", false)
	}
	return m, nil
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("rolodex") + "\n\n")

	switch m.mode {
	case modeMenu:
		for i, item := range menuItems {
			prefix := "  "
			line := fmt.Sprintf("%d. %s", i+1, item)
			if i == m.cursor {
				prefix = cursorStyle.Render("> ")
				line = cursorStyle.Render(line)
			}
			sb.WriteString(prefix + line + "\n")
		}
	case modeAddName:
		sb.WriteString("Enter name: " + m.input + "\n")
	case modeAddPhone:
		sb.WriteString("Enter phone for " + m.pendingName + ": " + m.input + "\n")
	case modeSearch:
		sb.WriteString("Search: " + m.input + "\n")
	case modeDelete:
		sb.WriteString("Delete name: " + m.input + "\n")
	}

	if len(m.listing) > 0 {
		sb.WriteString("\n")
		for i, r := range m.listing {
			sb.WriteString(fmt.Sprintf("%d. %s %s %s\n", i+1, r.Name, dimStyle.Render("·"), r.Phone))
		}
	}

	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errStyle
		}
		sb.WriteString("\n" + style.Render(m.status) + "\n")
	}

	if m.mode == modeMenu {
		sb.WriteString("\n" + dimStyle.Render("up/down to move, enter to select, q to quit") + "\n")
	} else {
		sb.WriteString("\n" + dimStyle.Render("enter to confirm, esc to cancel") + "\n")
	}
	return sb.String()
}

func collect(seq func(func(contact.Record) bool)) []contact.Record {
	var out []contact.Record
	for r := range seq {
		out = append(out, r)
	}
	return out
}
