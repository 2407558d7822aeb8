package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TagList is a self-extending ordered list of tag input slots. The last
// slot is the only one allowed to be empty: filling it appends a fresh
// empty slot, clearing an interior slot removes it. Suggestions come from
// watson's known tags but entered values are not restricted to them.
type TagList struct {
	inputs  []textinput.Model
	options []string
	focused int // index of the focused slot, -1 when blurred
	width   int
}

// NewTagList returns a list with exactly one empty slot.
func NewTagList() TagList {
	l := TagList{focused: -1, width: 30}
	l.inputs = []textinput.Model{l.newSlot()}
	return l
}

func (l *TagList) newSlot() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "tag"
	ti.Prompt = "+ "
	ti.PromptStyle = DimStyle
	ti.CharLimit = 0
	ti.Width = l.width
	ti.ShowSuggestions = true
	ti.SetSuggestions(l.options)
	// tab and the arrow keys navigate between fields and slots, so the
	// suggestion bindings move off their defaults
	ti.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("enter"))
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))
	return ti
}

// SetOptions replaces the suggestion list on every slot, including slots
// created afterward. Entered values are untouched.
func (l *TagList) SetOptions(options []string) {
	l.options = append([]string(nil), options...)
	for i := range l.inputs {
		l.inputs[i].SetSuggestions(l.options)
	}
}

// Values returns the non-empty slot values in slot order.
func (l TagList) Values() []string {
	var values []string
	for _, in := range l.inputs {
		if v := in.Value(); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Len returns the current slot count.
func (l TagList) Len() int {
	return len(l.inputs)
}

// SetWidth sets the input width of all slots.
func (l *TagList) SetWidth(w int) {
	l.width = w
	for i := range l.inputs {
		l.inputs[i].Width = w
	}
}

// Focus gives focus to the first slot.
func (l *TagList) Focus() tea.Cmd {
	return l.focusSlot(0)
}

// FocusLast gives focus to the last slot.
func (l *TagList) FocusLast() tea.Cmd {
	return l.focusSlot(len(l.inputs) - 1)
}

// Blur removes focus from the list.
func (l *TagList) Blur() {
	if l.focused >= 0 {
		l.inputs[l.focused].Blur()
	}
	l.focused = -1
}

// Focused reports whether any slot has focus.
func (l TagList) Focused() bool {
	return l.focused >= 0
}

// FocusNext moves focus one slot down. It returns false when focus was
// already on the last slot, so the caller can move to the next field.
func (l *TagList) FocusNext() (tea.Cmd, bool) {
	if l.focused >= len(l.inputs)-1 {
		return nil, false
	}
	return l.focusSlot(l.focused + 1), true
}

// FocusPrev moves focus one slot up. It returns false when focus was
// already on the first slot.
func (l *TagList) FocusPrev() (tea.Cmd, bool) {
	if l.focused <= 0 {
		return nil, false
	}
	return l.focusSlot(l.focused - 1), true
}

func (l *TagList) focusSlot(i int) tea.Cmd {
	if l.focused >= 0 && l.focused < len(l.inputs) {
		l.inputs[l.focused].Blur()
	}
	l.focused = i
	return l.inputs[i].Focus()
}

// Update routes the message to the focused slot and applies the
// structural rule if its value changed.
func (l *TagList) Update(msg tea.Msg) tea.Cmd {
	if l.focused < 0 {
		return nil
	}
	i := l.focused
	before := l.inputs[i].Value()
	var cmd tea.Cmd
	l.inputs[i], cmd = l.inputs[i].Update(msg)
	if l.inputs[i].Value() != before {
		l.slotChanged(i)
	}
	return cmd
}

// slotChanged applies the transition rule for an edit of slot i:
// an interior slot cleared to empty is removed (indices shift down),
// the last slot turning non-empty grows the list by one empty slot.
// Any other edit leaves the structure alone.
func (l *TagList) slotChanged(i int) {
	last := len(l.inputs) - 1
	value := l.inputs[i].Value()
	switch {
	case i != last && value == "":
		l.inputs[i].Blur()
		l.inputs = append(l.inputs[:i], l.inputs[i+1:]...)
		if l.focused >= 0 {
			if l.focused > i {
				l.focused--
			}
			if l.focused >= len(l.inputs) {
				l.focused = len(l.inputs) - 1
			}
			l.inputs[l.focused].Focus()
		}
	case i == last && value != "":
		l.inputs = append(l.inputs, l.newSlot())
	}
}

// View renders the slot sequence, one slot per line.
func (l TagList) View() string {
	var b strings.Builder
	for i, in := range l.inputs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(in.View())
	}
	return b.String()
}
