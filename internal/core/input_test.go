package core

import "testing"

func TestInputFrameCounts(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionLeft) {
		t.Error("new frame should have no actions")
	}

	f.Set(ActionLeft)
	f.Set(ActionLeft)
	f.Set(ActionRotate)

	if f.Count(ActionLeft) != 2 {
		t.Errorf("Count(Left) = %d, expected 2", f.Count(ActionLeft))
	}
	if !f.Has(ActionRotate) {
		t.Error("Has(Rotate) should be true")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should remove all actions")
	}
	if clone.Count(ActionLeft) != 2 {
		t.Error("Clone should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) || f.Count(ActionPause) != 0 {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:     "None",
		ActionHardDrop: "HardDrop",
		ActionRotate:   "Rotate",
		Action(99):     "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}
