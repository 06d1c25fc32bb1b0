package cubemap

import "testing"

func TestPlanBuild(t *testing.T) {
	tests := []struct {
		name    string
		full    bool
		preview bool
		req     Request
		want    buildPlan
	}{
		{"nothing cached", false, false, Request{}, buildFull},
		{"nothing cached, load preview", false, false, Request{LoadPreview: true}, buildFull},
		{"nothing cached, build preview", false, false, Request{BuildPreview: true}, buildPreview},
		{"full cached", true, false, Request{}, buildNone},
		{"full cached, load preview", true, false, Request{LoadPreview: true}, buildPreview},
		{"full cached, build preview", true, false, Request{BuildPreview: true}, buildPreview},
		{"both cached", true, true, Request{LoadPreview: true, BuildPreview: true}, buildNone},
		{"preview cached", false, true, Request{}, buildFull},
		{"preview cached, build preview", false, true, Request{BuildPreview: true}, buildNone},
		{"build only", false, false, Request{BuildOnly: true}, buildFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := planBuild(tt.full, tt.preview, tt.req); got != tt.want {
				t.Errorf("planBuild(%v, %v, %+v) = %v, want %v", tt.full, tt.preview, tt.req, got, tt.want)
			}
		})
	}
}

func TestPlanLoad(t *testing.T) {
	tests := []struct {
		req  Request
		want loadPlan
	}{
		{Request{}, loadFullWithFallback},
		{Request{BuildPreview: true}, loadFullWithFallback},
		{Request{LoadPreview: true}, loadPreviewTier},
		{Request{LoadPreview: true, BuildOnly: true}, loadSkip},
	}
	for _, tt := range tests {
		if got := planLoad(tt.req); got != tt.want {
			t.Errorf("planLoad(%+v) = %v, want %v", tt.req, got, tt.want)
		}
	}
}

func TestBuildPlanString(t *testing.T) {
	for plan, want := range map[buildPlan]string{
		buildNone:    "reuse",
		buildFull:    "build-full",
		buildPreview: "build-preview",
	} {
		if got := plan.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
