package cubemap

import (
	"context"
	"slices"
	"sync"
	"testing"
)

func TestTrackerValueAndLabel(t *testing.T) {
	tr := NewTracker(context.Background())
	if tr.Value() != 0 {
		t.Errorf("Value() = %d, want 0", tr.Value())
	}

	var got []int
	var lastLabel string
	tr.OnChange(func(v int, label string) {
		got = append(got, v)
		lastLabel = label
	})

	const label = "Building full face 1 of 6"
	tr.SetValue(100)
	tr.SetLabel(label)
	tr.SetValue(300)

	if tr.Value() != 300 || tr.Label() != label {
		t.Errorf("Value(), Label() = %d, %q, want 300, %q", tr.Value(), tr.Label(), label)
	}
	if want := []int{100, 100, 300}; !slices.Equal(got, want) {
		t.Errorf("OnChange values = %v, want %v", got, want)
	}
	if lastLabel != label {
		t.Errorf("OnChange label = %q, want %q", lastLabel, label)
	}
}

func TestTrackerCancel(t *testing.T) {
	tr := NewTracker(nil) //nolint:staticcheck // nil context is documented
	if tr.Cancelled() {
		t.Fatal("new tracker is cancelled")
	}
	tr.Cancel()
	if !tr.Cancelled() {
		t.Error("Cancelled() = false after Cancel")
	}
}

func TestTrackerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tr := NewTracker(ctx)
	if tr.Cancelled() {
		t.Fatal("tracker cancelled before its context")
	}
	cancel()
	if !tr.Cancelled() {
		t.Error("Cancelled() = false after context cancel")
	}
}

func TestTrackerConcurrent(t *testing.T) {
	tr := NewTracker(context.Background())
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				tr.SetValue(i*100 + j)
				_ = tr.Cancelled()
			}
		}()
	}
	wg.Wait()
	if v := tr.Value(); v < 0 || v >= 800 {
		t.Errorf("Value() = %d, want a value that was set", v)
	}
}

func TestTrackerStopsBuild(t *testing.T) {
	tr := NewTracker(context.Background())
	tr.Cancel()
	_, err := BuildFace(tr, uniformSource(t), PosX, 16)
	checkKind(t, err, ErrCancelled)
}

func TestBuildLabel(t *testing.T) {
	tests := []struct {
		tier Tier
		side Side
		want string
	}{
		{TierPreview, PosY, "Building preview face 3 of 6"},
		{TierFull, NegZ, "Building full face 6 of 6"},
	}
	for _, tt := range tests {
		if got := buildLabel(tt.tier, tt.side); got != tt.want {
			t.Errorf("buildLabel(%v, %v) = %q, want %q", tt.tier, tt.side, got, tt.want)
		}
	}
}

func TestProgressBudget(t *testing.T) {
	if ProgressBuildUnits != ProgressSourceUnits+FaceCount*ProgressFaceUnits {
		t.Errorf("ProgressBuildUnits = %d, want %d", ProgressBuildUnits, ProgressSourceUnits+FaceCount*ProgressFaceUnits)
	}
	if ProgressTotalUnits != ProgressBuildUnits+100 {
		t.Errorf("ProgressTotalUnits = %d, want %d", ProgressTotalUnits, ProgressBuildUnits+100)
	}
}
