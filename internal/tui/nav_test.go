package tui

import (
	"testing"
	"time"

	"github.com/diegomarinho/jabref/internal/integrity"
	"github.com/diegomarinho/jabref/internal/model"
)

// recordingView captures every navigation command in arrival order.
type recordingView struct {
	calls    []string
	selected *model.Entry
	visible  bool
	focused  model.Field
}

func (v *recordingView) SelectEntry(e *model.Entry) {
	v.calls = append(v.calls, "select")
	v.selected = e
}

func (v *recordingView) SetEditorVisible(visible bool) {
	v.calls = append(v.calls, "visible")
	v.visible = visible
}

func (v *recordingView) FocusField(f model.Field) {
	v.calls = append(v.calls, "focus")
	v.focused = f
}

func testMessage() integrity.Message {
	e := model.NewEntry("article", "doe2020")
	e.SetField(model.FieldYear, "20xx")
	return integrity.Message{Entry: e, Field: model.FieldYear, Text: "should contain a four digit number"}
}

func TestActivationTracker_DoubleWithinThreshold(t *testing.T) {
	tr := ActivationTracker{Threshold: 400 * time.Millisecond}
	t0 := time.Now()

	if tr.Press(3, t0) {
		t.Fatal("first press must be single")
	}
	if !tr.Press(3, t0.Add(200*time.Millisecond)) {
		t.Fatal("second press within threshold must be double")
	}
	// after a completed double the tracker is idle again
	if tr.Press(3, t0.Add(250*time.Millisecond)) {
		t.Fatal("press after a completed double must start a new single")
	}
}

func TestActivationTracker_DifferentRow(t *testing.T) {
	tr := ActivationTracker{Threshold: 400 * time.Millisecond}
	t0 := time.Now()

	if tr.Press(1, t0) {
		t.Fatal("first press must be single")
	}
	if tr.Press(2, t0.Add(100*time.Millisecond)) {
		t.Fatal("press on a different row must not complete a double")
	}
	if !tr.Press(2, t0.Add(200*time.Millisecond)) {
		t.Fatal("repeat on the new row must complete a double")
	}
}

func TestActivationTracker_Expired(t *testing.T) {
	tr := ActivationTracker{Threshold: 400 * time.Millisecond}
	t0 := time.Now()

	tr.Press(5, t0)
	if tr.Press(5, t0.Add(500*time.Millisecond)) {
		t.Fatal("press after the threshold must start a new single")
	}
	if !tr.Press(5, t0.Add(600*time.Millisecond)) {
		t.Fatal("tracker must re-arm after an expired window")
	}
}

func TestActivationTracker_DefaultThreshold(t *testing.T) {
	var tr ActivationTracker // zero threshold falls back to the default
	t0 := time.Now()

	tr.Press(0, t0)
	if !tr.Press(0, t0.Add(DefaultDoubleActivation)) {
		t.Fatal("press exactly at the default threshold must count as double")
	}
}

func TestDispatcher_SingleActivation(t *testing.T) {
	view := &recordingView{}
	d := NewDispatcher(view, 400*time.Millisecond)
	msg := testMessage()

	focus, closeDialog := d.Activate(msg, 0, time.Now())
	if closeDialog {
		t.Fatal("single activation must not close the dialog")
	}
	if len(view.calls) != 2 || view.calls[0] != "select" || view.calls[1] != "visible" {
		t.Fatalf("expected select then visible before focus, got %v", view.calls)
	}
	if view.selected != msg.Entry {
		t.Fatal("wrong entry selected")
	}
	if !view.visible {
		t.Fatal("editor must be shown")
	}

	// focus is deferred: it must not have run yet
	if view.focused != "" {
		t.Fatalf("focus ran eagerly: %q", view.focused)
	}
	focus()
	if view.focused != model.FieldYear {
		t.Fatalf("expected focus on year, got %q", view.focused)
	}
	if view.calls[len(view.calls)-1] != "focus" {
		t.Fatalf("focus must come last, got %v", view.calls)
	}
}

func TestDispatcher_DoubleActivation(t *testing.T) {
	view := &recordingView{}
	d := NewDispatcher(view, 400*time.Millisecond)
	msg := testMessage()
	t0 := time.Now()

	if _, closeDialog := d.Activate(msg, 2, t0); closeDialog {
		t.Fatal("first activation must be single")
	}
	focus, closeDialog := d.Activate(msg, 2, t0.Add(150*time.Millisecond))
	if !closeDialog {
		t.Fatal("second activation within the window must request close")
	}
	// the double still performs full navigation before the close
	focus()
	if view.selected != msg.Entry || !view.visible || view.focused != model.FieldYear {
		t.Fatal("double activation must navigate like a single")
	}
}

func TestDispatcher_FocusOnMessageWithoutField(t *testing.T) {
	view := &recordingView{}
	d := NewDispatcher(view, 0)
	e := model.NewEntry("article", "")
	msg := integrity.Message{Entry: e, Field: model.FieldKey, Text: "empty citation key"}

	focus, _ := d.Activate(msg, 0, time.Now())
	focus()
	if view.focused != model.FieldKey {
		t.Fatalf("expected focus request for the citation key, got %q", view.focused)
	}
}

func TestEditorPane_FocusMissingFieldNoop(t *testing.T) {
	pane := &editorPane{}
	e := model.NewEntry("article", "doe2020")
	e.SetField(model.FieldTitle, "A Title")

	pane.SelectEntry(e)
	pane.FocusField(model.FieldYear)
	if pane.focused != "" {
		t.Fatalf("focusing an absent field must be a no-op, got %q", pane.focused)
	}
	pane.FocusField(model.FieldTitle)
	if pane.focused != model.FieldTitle {
		t.Fatalf("expected title focused, got %q", pane.focused)
	}

	// switching entries drops the focus
	pane.SelectEntry(model.NewEntry("book", "smith2021"))
	if pane.focused != "" {
		t.Fatal("focus must reset when the selection changes")
	}
}
