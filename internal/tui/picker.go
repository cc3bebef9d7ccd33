package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user backs out of the picker.
var ErrCanceled = errors.New("selection canceled")

// Item is one selectable row in the picker.
type Item struct {
	ID     string
	Detail string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("240")).Foreground(lipgloss.Color("15"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// PickerModel presents a filterable list of items and records the one
// the user selects.
type PickerModel struct {
	title    string
	items    []Item
	filtered []int
	cursor   int
	filter   textinput.Model

	choice   int
	canceled bool
}

// NewPicker builds a picker over items. The filter input is focused so
// typing narrows the list immediately.
func NewPicker(title string, items []Item) PickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.Focus()

	m := PickerModel{
		title:  title,
		items:  items,
		filter: ti,
		choice: -1,
	}
	m.applyFilter()
	return m
}

func (m *PickerModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.filtered = m.filtered[:0]
	for i, it := range m.items {
		if needle == "" || strings.Contains(strings.ToLower(it.ID), needle) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Choice returns the index into the original item slice, or -1 when
// nothing was selected.
func (m PickerModel) Choice() int {
	if m.canceled {
		return -1
	}
	return m.choice
}

func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				m.choice = m.filtered[m.cursor]
			}
			return m, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title) + "\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(helpStyle.Render("  no matches") + "\n")
	}
	for pos, idx := range m.filtered {
		it := m.items[idx]
		line := fmt.Sprintf("  %s", it.ID)
		if it.Detail != "" {
			line += detailStyle.Render("  " + it.Detail)
		}
		if pos == m.cursor {
			line = selectedStyle.Render("> " + it.ID)
			if it.Detail != "" {
				line += detailStyle.Render("  " + it.Detail)
			}
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + m.filter.View() + "\n\n")
	b.WriteString(helpStyle.Render("↑/↓ = navigate | Enter = select | Esc = cancel"))

	return b.String()
}

// Pick runs the picker on the terminal and returns the index of the
// selected item.
func Pick(title string, items []Item) (int, error) {
	p := tea.NewProgram(NewPicker(title, items))
	out, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}
	final, ok := out.(PickerModel)
	if !ok || final.Choice() < 0 {
		return -1, ErrCanceled
	}
	return final.Choice(), nil
}
