package cubemap

// Request selects what LoadImage builds and loads.
type Request struct {
	// LoadPreview loads the preview tier instead of the full tier.
	LoadPreview bool

	// BuildPreview builds the preview tier when a build is needed. When false,
	// a missing full tier is built.
	BuildPreview bool

	// BuildOnly skips loading faces into memory.
	BuildOnly bool
}

// buildPlan is the outcome of the cache decision made by LoadImage.
type buildPlan uint8

const (
	// buildNone reuses the cache as it is.
	buildNone buildPlan = iota

	// buildFull regenerates the full tier: it is absent and no preview build was asked for.
	buildFull

	// buildPreview regenerates the preview tier: it is absent and is either
	// going to be loaded or was explicitly requested.
	buildPreview
)

// String returns the plan name used in logs.
func (b buildPlan) String() string {
	switch b {
	case buildFull:
		return "build-full"
	case buildPreview:
		return "build-preview"
	default:
		return "reuse"
	}
}

// planBuild decides which tier, if any, LoadImage builds. At most one tier
// is built per call.
func planBuild(fullExists, previewExists bool, req Request) buildPlan {
	switch {
	case !fullExists && !req.BuildPreview:
		return buildFull
	case !previewExists && (req.LoadPreview || req.BuildPreview):
		return buildPreview
	default:
		return buildNone
	}
}

// loadPlan is how LoadImage fills the in-memory faces after the cache decision.
type loadPlan uint8

const (
	// loadSkip leaves the scene without faces (build-only requests).
	loadSkip loadPlan = iota

	// loadPreviewTier loads the preview tier only.
	loadPreviewTier

	// loadFullWithFallback loads the full tier when present and falls back to
	// the preview tier when it is absent or any full face cannot be read.
	loadFullWithFallback
)

func planLoad(req Request) loadPlan {
	switch {
	case req.BuildOnly:
		return loadSkip
	case req.LoadPreview:
		return loadPreviewTier
	default:
		return loadFullWithFallback
	}
}
