package cubemap

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Progress budget of LoadImage. Values are absolute offsets from the progress
// value observed when the operation starts.
const (
	// ProgressSourceUnits covers loading and pre-scaling the source image.
	ProgressSourceUnits = 100

	// ProgressFaceUnits covers building one face.
	ProgressFaceUnits = 200

	// ProgressBuildUnits covers a complete BuildFaces call.
	ProgressBuildUnits = ProgressSourceUnits + FaceCount*ProgressFaceUnits

	// ProgressTotalUnits covers a complete LoadImage call.
	ProgressTotalUnits = ProgressBuildUnits + 100
)

// Progress receives progress reports from long-running operations and tells
// them whether to stop. The pipeline reads the current value and sets
// absolute values derived from it; it never resets the value itself.
//
// The pipeline calls Progress from a single goroutine.
type Progress interface {
	// Value returns the current absolute progress value.
	Value() int

	// SetValue sets the absolute progress value.
	SetValue(v int)

	// SetLabel sets a short description of the current step.
	SetLabel(s string)

	// Cancelled reports whether the user asked to stop.
	Cancelled() bool
}

// labels formats step descriptions shown through Progress.SetLabel.
var labels = message.NewPrinter(language.English)

func buildLabel(t Tier, side Side) string {
	return labels.Sprintf("Building %s face %d of %d", t, int(side)+1, FaceCount)
}

// Tracker is a Progress implementation safe for concurrent use. It is
// cancelled either explicitly with Cancel or when its context is done.
type Tracker struct {
	ctx       context.Context
	cancelled atomic.Bool

	mu       sync.Mutex
	value    int
	label    string
	onChange func(value int, label string)
}

// NewTracker returns a Tracker bound to ctx. A nil ctx never cancels.
func NewTracker(ctx context.Context) *Tracker {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Tracker{ctx: ctx}
}

// OnChange registers fn to be called after every value or label change.
// fn runs on the goroutine that made the change.
func (t *Tracker) OnChange(fn func(value int, label string)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Value returns the current progress value.
func (t *Tracker) Value() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// SetValue sets the progress value.
func (t *Tracker) SetValue(v int) {
	t.mu.Lock()
	t.value = v
	fn, label := t.onChange, t.label
	t.mu.Unlock()
	if fn != nil {
		fn(v, label)
	}
}

// Label returns the current step description.
func (t *Tracker) Label() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.label
}

// SetLabel sets the step description.
func (t *Tracker) SetLabel(s string) {
	t.mu.Lock()
	t.label = s
	fn, v := t.onChange, t.value
	t.mu.Unlock()
	if fn != nil {
		fn(v, s)
	}
}

// Cancel requests cancellation.
func (t *Tracker) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel was called or the context is done.
func (t *Tracker) Cancelled() bool {
	return t.cancelled.Load() || t.ctx.Err() != nil
}
