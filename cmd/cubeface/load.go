package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/cubemap"
)

func (a *app) newLoadCmd() *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "load SOURCE",
		Short: "Build if needed, then load the faces of a panorama",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := sources(args)
			if err != nil {
				return err
			}
			src := srcs[0]
			out := cmd.OutOrStdout()

			tr := cubemap.NewTracker(cmd.Context())
			tr.OnChange(progressPrinter(out, src))

			s := cubemap.NewScene(a.opts...)
			req := cubemap.Request{LoadPreview: preview, BuildPreview: preview}
			if err := s.LoadImage(tr, src, req); err != nil {
				return err
			}

			printer.Fprintf(out, "%s: loaded %s tier from %s\n", src, s.Tier(), s.CacheDir())
			for i, f := range s.Faces() {
				printer.Fprintf(out, "  %-2s %dx%d\n", cubemap.Side(i), f.Size(), f.Size())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&preview, "preview", false, "load the preview tier")
	return cmd
}
