package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/cubemap"
)

var printer = message.NewPrinter(language.English)

func (a *app) newBuildCmd() *cobra.Command {
	var preview, force bool

	cmd := &cobra.Command{
		Use:   "build SOURCE...",
		Short: "Build the cached faces of one or more panoramas",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := sources(args)
			if err != nil {
				return err
			}
			tier := cubemap.TierFull
			if preview {
				tier = cubemap.TierPreview
			}
			return a.buildAll(cmd, srcs, tier, force)
		},
	}
	cmd.Flags().BoolVar(&preview, "preview", false, "build the preview tier instead of the full tier")
	cmd.Flags().BoolVar(&force, "force", false, "rebuild even if the tier is cached")
	return cmd
}

// errCacheShared is reported for a source whose cache directory is already
// used by another source of the same run.
var errCacheShared = errors.New("cache directory shared with another source")

// buildAll builds a tier for every source, at most cfg.Jobs at a time. A
// failing source does not stop the others.
func (a *app) buildAll(cmd *cobra.Command, srcs []string, tier cubemap.Tier, force bool) error {
	ctx := cmd.Context()
	out := &syncWriter{w: cmd.OutOrStdout()}

	srcs, errs := uniqueCaches(srcs)
	for _, err := range errs {
		printer.Fprintf(out, "failed: %v\n", err)
	}
	total := len(srcs) + len(errs)

	var g errgroup.Group
	g.SetLimit(max(a.cfg.Jobs, 1))

	var mu sync.Mutex
	built := 0

	for _, src := range srcs {
		g.Go(func() error {
			if force {
				if err := cubemap.RemoveTier(src, tier); err != nil {
					return err
				}
			}

			tr := cubemap.NewTracker(ctx)
			tr.OnChange(progressPrinter(out, src))

			err := cubemap.NewScene(a.opts...).LoadImage(tr, src, buildRequest(tier))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", src, err))
				printer.Fprintf(out, "%s: failed: %v\n", src, err)
				return nil
			}
			built++
			printer.Fprintf(out, "%s: %s faces ready in %s\n", src, tier, cubemap.CacheDirFor(src))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printer.Fprintf(out, "%d of %d sources built\n", built, total)
	return errors.Join(errs...)
}

// uniqueCaches drops repeated sources and rejects sources whose cache
// directory belongs to an earlier source, so no two builds of one run ever
// write the same face files.
func uniqueCaches(srcs []string) ([]string, []error) {
	owner := make(map[string]string, len(srcs))
	var keep []string
	var errs []error
	for _, src := range srcs {
		abs, err := filepath.Abs(src)
		if err != nil {
			abs = filepath.Clean(src)
		}
		dir := cubemap.CacheDirFor(src)
		prev, ok := owner[dir]
		switch {
		case !ok:
			owner[dir] = abs
			keep = append(keep, src)
		case prev != abs:
			errs = append(errs, fmt.Errorf("%s: %w: %s uses %s", src, errCacheShared, prev, dir))
		}
	}
	return keep, errs
}

// buildRequest returns a build-only request for tier.
func buildRequest(t cubemap.Tier) cubemap.Request {
	preview := t == cubemap.TierPreview
	return cubemap.Request{LoadPreview: preview, BuildPreview: preview, BuildOnly: true}
}

// progressPrinter prints a line each time a build crosses another tenth of
// its progress budget.
func progressPrinter(w io.Writer, src string) func(int, string) {
	last := -1
	return func(value int, label string) {
		step := value * 10 / cubemap.ProgressTotalUnits
		if step == last || label == "" {
			return
		}
		last = step
		printer.Fprintf(w, "%s: %3d%% %s\n", src, step*10, label)
	}
}

// syncWriter serialises writes from concurrent builds.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
