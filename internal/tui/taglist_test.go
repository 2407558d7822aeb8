package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// edit sets slot i's value and runs the structural rule, the way an
// interactive edit of that slot would.
func edit(l *TagList, i int, value string) {
	l.inputs[i].SetValue(value)
	l.slotChanged(i)
}

// checkInvariants asserts the structural invariants that must hold after
// any sequence of edits: at least one slot, at most one empty slot, and
// the empty slot (if present) is last.
func checkInvariants(t *testing.T, l *TagList) {
	t.Helper()
	if l.Len() < 1 {
		t.Fatalf("list has %d slots, want >= 1", l.Len())
	}
	empties := 0
	for i, in := range l.inputs {
		if in.Value() == "" {
			empties++
			if i != l.Len()-1 {
				t.Errorf("empty slot at index %d is not last (len %d)", i, l.Len())
			}
		}
	}
	if empties > 1 {
		t.Errorf("%d empty slots, want at most 1", empties)
	}
	for _, v := range l.Values() {
		if v == "" {
			t.Error("Values() contains an empty string")
		}
	}
}

func TestNewTagListHasOneEmptySlot(t *testing.T) {
	l := NewTagList()
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
	if v := l.inputs[0].Value(); v != "" {
		t.Errorf("initial slot value = %q, want empty", v)
	}
	if values := l.Values(); len(values) != 0 {
		t.Errorf("Values = %v, want empty", values)
	}
}

func TestFillingLastSlotAppendsOne(t *testing.T) {
	l := NewTagList()
	edit(&l, 0, "x")

	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	if v := l.inputs[1].Value(); v != "" {
		t.Errorf("appended slot value = %q, want empty", v)
	}
	checkInvariants(t, &l)
}

func TestEditingFilledSlotCausesNoStructuralChange(t *testing.T) {
	l := NewTagList()
	edit(&l, 0, "x")
	edit(&l, 1, "y")
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}

	// Interior slot edited to a different non-empty value: nothing moves.
	edit(&l, 0, "x2")
	if l.Len() != 3 {
		t.Errorf("Len = %d after interior edit, want 3", l.Len())
	}
	if got, want := l.Values(), []string{"x2", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values = %v, want %v", got, want)
	}
	checkInvariants(t, &l)
}

func TestClearingInteriorSlotRemovesIt(t *testing.T) {
	l := NewTagList()
	edit(&l, 0, "x")
	edit(&l, 1, "y")
	edit(&l, 2, "z")
	if l.Len() != 4 {
		t.Fatalf("Len = %d, want 4", l.Len())
	}

	// Clear the middle slot: exactly that one goes, the rest reindex.
	edit(&l, 1, "")
	if l.Len() != 3 {
		t.Fatalf("Len = %d after removal, want 3", l.Len())
	}
	if got, want := l.Values(), []string{"x", "z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values = %v, want %v", got, want)
	}
	checkInvariants(t, &l)
}

func TestSingleSlotIsNeverRemoved(t *testing.T) {
	l := NewTagList()
	edit(&l, 0, "x")
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	// Clearing the interior slot collapses back to one slot...
	edit(&l, 0, "")
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
	// ...and clearing the sole remaining slot is a no-op.
	edit(&l, 0, "")
	if l.Len() != 1 {
		t.Errorf("Len = %d after clearing sole slot, want 1", l.Len())
	}
	checkInvariants(t, &l)
}

func TestValuesPreserveEntryOrder(t *testing.T) {
	l := NewTagList()
	for i, v := range []string{"zeta", "alpha", "mid"} {
		edit(&l, i, v)
	}
	if got, want := l.Values(), []string{"zeta", "alpha", "mid"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values = %v, want %v", got, want)
	}
}

func TestInvariantsHoldUnderEditSequence(t *testing.T) {
	// A scripted mix of grows, interior edits and removals; the
	// invariants must hold after every step.
	l := NewTagList()
	steps := []struct {
		slot  int
		value string
	}{
		{0, "a"},  // grow
		{1, "b"},  // grow
		{2, "c"},  // grow
		{1, ""},   // remove interior
		{0, "a2"}, // interior edit, no change
		{2, "d"},  // fill last, grow
		{0, ""},   // remove interior
		{0, ""},   // remove interior again
	}
	for i, s := range steps {
		edit(&l, s.slot, s.value)
		checkInvariants(t, &l)
		if t.Failed() {
			t.Fatalf("invariants broken after step %d (%+v)", i, s)
		}
	}
	if got, want := l.Values(), []string{"d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values = %v, want %v", got, want)
	}
}

func TestSetOptionsReachesExistingAndFutureSlots(t *testing.T) {
	l := NewTagList()
	l.SetOptions([]string{"alpha", "beta"})

	if got := l.inputs[0].AvailableSuggestions(); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("existing slot suggestions = %v", got)
	}

	edit(&l, 0, "x")
	if got := l.inputs[1].AvailableSuggestions(); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("new slot suggestions = %v", got)
	}

	// Entered values are untouched by an option refresh.
	l.SetOptions([]string{"gamma"})
	if got, want := l.Values(), []string{"x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values after SetOptions = %v, want %v", got, want)
	}
}

func TestTypingIntoFocusedSlotGrowsList(t *testing.T) {
	l := NewTagList()
	l.Focus()

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	if l.Len() != 2 {
		t.Fatalf("Len = %d after typing, want 2", l.Len())
	}
	if got, want := l.Values(), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values = %v, want %v", got, want)
	}
}

func TestBackspacingInteriorSlotToEmptyRemovesItImmediately(t *testing.T) {
	l := NewTagList()
	edit(&l, 0, "a")
	edit(&l, 1, "b")
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}

	l.Focus() // slot 0, value "a", cursor handling via textinput
	l.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if l.Len() != 2 {
		t.Fatalf("Len = %d after backspace, want 2", l.Len())
	}
	if got, want := l.Values(), []string{"b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values = %v, want %v", got, want)
	}
	checkInvariants(t, &l)
}

func TestFocusMovesBetweenSlots(t *testing.T) {
	l := NewTagList()
	edit(&l, 0, "a")
	edit(&l, 1, "b")

	l.Focus()
	if l.focused != 0 {
		t.Fatalf("focused = %d, want 0", l.focused)
	}
	if _, ok := l.FocusNext(); !ok {
		t.Fatal("FocusNext from slot 0 should succeed")
	}
	if _, ok := l.FocusNext(); !ok {
		t.Fatal("FocusNext from slot 1 should succeed")
	}
	if _, ok := l.FocusNext(); ok {
		t.Error("FocusNext past the last slot should report false")
	}
	if _, ok := l.FocusPrev(); !ok {
		t.Fatal("FocusPrev from last slot should succeed")
	}
	l.Blur()
	if l.Focused() {
		t.Error("list still focused after Blur")
	}
}
