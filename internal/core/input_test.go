package core

import "testing"

func TestInputFrameCounts(t *testing.T) {
	var f InputFrame

	if f.Has(ActionTap) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionTap)
	f.Set(ActionTap)
	f.Set(ActionPause)

	if f.Count(ActionTap) != 2 {
		t.Errorf("Count(Tap) = %d, expected 2", f.Count(ActionTap))
	}
	if !f.Has(ActionPause) || f.Has(ActionQuit) {
		t.Error("Has reported wrong actions")
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionTap) {
		t.Error("Clear should remove all actions")
	}
	if clone.Count(ActionTap) != 2 {
		t.Error("Clone should not share storage with the original")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:  "None",
		ActionTap:   "Tap",
		ActionPause: "Pause",
		ActionQuit:  "Quit",
		Action(99):  "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}
