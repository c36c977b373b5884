package tui

import (
	"time"

	"github.com/diegomarinho/jabref/internal/integrity"
	"github.com/diegomarinho/jabref/internal/model"
)

// EntryView is the owning library view the dialog navigates against. The
// dialog only ever issues these three commands; it never reads back.
type EntryView interface {
	// SelectEntry makes the entry the active selection in the library.
	SelectEntry(e *model.Entry)
	// SetEditorVisible shows or hides the entry editor pane. Showing an
	// already visible editor is a no-op.
	SetEditorVisible(visible bool)
	// FocusField moves input focus to the field's control, best effort.
	// There is no completion signal; a missing field is a silent no-op.
	FocusField(f model.Field)
}

// DefaultDoubleActivation is the window within which a second activation of
// the same row counts as a double activation.
const DefaultDoubleActivation = 400 * time.Millisecond

// ActivationTracker classifies row activations as single or double without
// relying on any toolkit click-count. It is a two-state machine: idle, and
// armed for a second activation of a specific row. A second activation of a
// different row, or one arriving after the threshold, starts a new single.
type ActivationTracker struct {
	Threshold time.Duration

	armed    bool
	lastRow  int
	lastTime time.Time
}

// Press records an activation of row at time now and reports whether it
// completed a double activation.
func (t *ActivationTracker) Press(row int, now time.Time) bool {
	threshold := t.Threshold
	if threshold <= 0 {
		threshold = DefaultDoubleActivation
	}
	if t.armed && row == t.lastRow && now.Sub(t.lastTime) <= threshold {
		t.armed = false
		return true
	}
	t.armed = true
	t.lastRow = row
	t.lastTime = now
	return false
}

// Dispatcher turns row activations into navigation commands against the
// entry view.
type Dispatcher struct {
	view    EntryView
	tracker ActivationTracker
}

// NewDispatcher builds a dispatcher around the injected view. A threshold
// of 0 uses DefaultDoubleActivation.
func NewDispatcher(view EntryView, threshold time.Duration) *Dispatcher {
	return &Dispatcher{view: view, tracker: ActivationTracker{Threshold: threshold}}
}

// Activate handles a primary activation of the given row. It issues
// SelectEntry and SetEditorVisible inline, and returns the focus request as
// a deferred thunk: the entry editor may still be re-rendering for the
// newly selected entry, so focusing must wait for a later turn of the UI
// event loop. closeDialog reports a completed double activation; the caller
// must order the close strictly after the deferred focus. Non-primary
// inputs must not reach this method at all.
func (d *Dispatcher) Activate(m integrity.Message, row int, now time.Time) (focus func(), closeDialog bool) {
	double := d.tracker.Press(row, now)

	d.view.SelectEntry(m.Entry)
	d.view.SetEditorVisible(true)

	field := m.Field
	return func() { d.view.FocusField(field) }, double
}
