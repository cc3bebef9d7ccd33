package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sampleItems() []Item {
	return []Item{
		{ID: "20171005_small_step", Detail: "Oct  5 2017"},
		{ID: "20171210_large_step_with_half_twist", Detail: "Dec 10 2017"},
		{ID: "20180101_pirouette", Detail: "Jan  1 2018"},
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPickerSelectsFirstItemByDefault(t *testing.T) {
	m := NewPicker("Did you mean?", sampleItems())

	updated, _ := m.Update(keyMsg(tea.KeyEnter))
	final := updated.(PickerModel)

	if got := final.Choice(); got != 0 {
		t.Errorf("Choice() = %d, want 0", got)
	}
}

func TestPickerNavigation(t *testing.T) {
	m := NewPicker("Did you mean?", sampleItems())

	var model tea.Model = m
	model, _ = model.(PickerModel).Update(keyMsg(tea.KeyDown))
	model, _ = model.(PickerModel).Update(keyMsg(tea.KeyDown))
	model, _ = model.(PickerModel).Update(keyMsg(tea.KeyUp))
	model, _ = model.(PickerModel).Update(keyMsg(tea.KeyEnter))

	if got := model.(PickerModel).Choice(); got != 1 {
		t.Errorf("Choice() = %d, want 1", got)
	}
}

func TestPickerCursorClampedAtEnds(t *testing.T) {
	m := NewPicker("Did you mean?", sampleItems())

	var model tea.Model = m
	model, _ = model.(PickerModel).Update(keyMsg(tea.KeyUp))
	model, _ = model.(PickerModel).Update(keyMsg(tea.KeyEnter))
	if got := model.(PickerModel).Choice(); got != 0 {
		t.Errorf("Choice() after up at top = %d, want 0", got)
	}

	model = NewPicker("Did you mean?", sampleItems())
	for i := 0; i < 10; i++ {
		model, _ = model.(PickerModel).Update(keyMsg(tea.KeyDown))
	}
	model, _ = model.(PickerModel).Update(keyMsg(tea.KeyEnter))
	if got := model.(PickerModel).Choice(); got != 2 {
		t.Errorf("Choice() after down past bottom = %d, want 2", got)
	}
}

func TestPickerFilterNarrowsList(t *testing.T) {
	m := NewPicker("Did you mean?", sampleItems())

	var model tea.Model = m
	model, _ = model.(PickerModel).Update(runes("twist"))
	model, _ = model.(PickerModel).Update(keyMsg(tea.KeyEnter))

	if got := model.(PickerModel).Choice(); got != 1 {
		t.Errorf("Choice() with filter %q = %d, want 1", "twist", got)
	}
}

func TestPickerEnterWithNoMatches(t *testing.T) {
	m := NewPicker("Did you mean?", sampleItems())

	var model tea.Model = m
	model, _ = model.(PickerModel).Update(runes("zzz"))
	model, _ = model.(PickerModel).Update(keyMsg(tea.KeyEnter))

	if got := model.(PickerModel).Choice(); got != -1 {
		t.Errorf("Choice() with no matches = %d, want -1", got)
	}
}

func TestPickerEscCancels(t *testing.T) {
	m := NewPicker("Did you mean?", sampleItems())

	model, _ := m.Update(keyMsg(tea.KeyEsc))

	if got := model.(PickerModel).Choice(); got != -1 {
		t.Errorf("Choice() after esc = %d, want -1", got)
	}
}

func TestPickerViewShowsItemsAndHelp(t *testing.T) {
	m := NewPicker("Did you mean?", sampleItems())

	view := m.View()
	for _, want := range []string{"Did you mean?", "small_step", "pirouette", "Esc = cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
