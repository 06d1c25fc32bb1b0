// Command cubeface converts equirectangular panoramas into cached cube faces.
//
// Usage:
//
//	cubeface build [--preview] [--force] pano.jpg...
//	cubeface load [--preview] pano.jpg
//	cubeface status pano.jpg...
//	cubeface clean [--preview|--full] pano.jpg...
//	cubeface watch DIR
//
// Settings are read from ~/.config/cubeface/config.toml unless --config is
// given; command-line flags override the file.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/cubemap"
	"github.com/gogpu/cubemap/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries the settings shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	workers    int
	jobs       int

	cfg  config.Config
	opts []cubemap.Option
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "cubeface",
		Short:         "Convert equirectangular panoramas into cube faces",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultPath, "configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.IntVar(&a.workers, "workers", 0, "sampling goroutines per build (0 = all CPUs)")
	pf.IntVar(&a.jobs, "jobs", 0, "sources built at the same time")

	root.AddCommand(
		a.newBuildCmd(),
		a.newLoadCmd(),
		a.newStatusCmd(),
		a.newCleanCmd(),
		a.newWatchCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and installs the
// library logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("jobs") {
		cfg.Jobs = a.jobs
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	level, _ := cfg.Level()
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	cubemap.SetLogger(slog.New(handler))

	a.cfg = cfg
	a.opts = opts
	return nil
}

// sources expands ~ in every argument.
func sources(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		p, err := config.Expand(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
