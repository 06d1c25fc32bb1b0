package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/gogpu/cubemap"
	intImage "github.com/gogpu/cubemap/internal/image"
)

// settleDelay is how long a source must stay unchanged before it is rebuilt.
var settleDelay = 500 * time.Millisecond

func (a *app) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Rebuild preview faces whenever a panorama in DIR changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := sources(args)
			if err != nil {
				return err
			}
			w := &watcher{
				dir:  dirs[0],
				opts: a.opts,
				out:  &syncWriter{w: cmd.OutOrStdout()},
			}
			return w.run(cmd.Context())
		},
	}
}

// watcher rebuilds cache tiers of panoramas written into one directory.
type watcher struct {
	dir  string
	opts []cubemap.Option
	out  io.Writer

	// started is closed once the directory is being watched.
	started chan struct{}
	// built is called after each rebuild attempt.
	built func(src string, err error)

	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup

	// buildMu serialises rebuilds so a source is never built twice at once.
	buildMu sync.Mutex
}

// run watches w.dir until ctx is done.
func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.pending = make(map[string]*time.Timer)
	printer.Fprintf(w.out, "watching %s\n", w.dir)
	if w.started != nil {
		close(w.started)
	}

	defer w.wg.Wait()
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.schedule(ctx, event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			cubemap.Logger().Warn("watch: notify error", "dir", w.dir, "err", err)
		}
	}
}

// schedule (re)starts the settle timer of path.
func (w *watcher) schedule(ctx context.Context, path string) {
	if skipWatched(path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok && t.Stop() {
		t.Reset(settleDelay)
		return
	}

	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(settleDelay, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.pending[path] == t {
			delete(w.pending, path)
		}
		w.mu.Unlock()
		w.rebuild(ctx, path)
	})
	w.pending[path] = t
}

func (w *watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
}

// rebuild drops both stale tiers of src and builds a fresh preview tier.
func (w *watcher) rebuild(ctx context.Context, src string) {
	w.buildMu.Lock()
	defer w.buildMu.Unlock()

	if _, err := intImage.Sniff(src); err != nil {
		cubemap.Logger().Debug("watch: ignoring file", "path", src, "err", err)
		return
	}

	err := errors.Join(
		cubemap.RemoveTier(src, cubemap.TierFull),
		cubemap.RemoveTier(src, cubemap.TierPreview),
	)
	if err == nil {
		tr := cubemap.NewTracker(ctx)
		err = cubemap.NewScene(w.opts...).LoadImage(tr, src, buildRequest(cubemap.TierPreview))
	}

	if err != nil {
		printer.Fprintf(w.out, "%s: rebuild failed: %v\n", src, err)
	} else {
		printer.Fprintf(w.out, "%s: preview rebuilt\n", src)
	}
	if w.built != nil {
		w.built(src, err)
	}
}

// skipWatched reports whether a watch event path can never be a source:
// directories (including cache directories) and hidden or temporary files.
func skipWatched(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return true
	}
	fi, err := os.Stat(path)
	return err != nil || fi.IsDir()
}
