package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/cubemap"
	intImage "github.com/gogpu/cubemap/internal/image"
)

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status SOURCE...",
		Short: "Report which face tiers are cached",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := sources(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, src := range srcs {
				kind, err := intImage.Sniff(src)
				if err != nil {
					kind = "unreadable"
				}
				printer.Fprintf(out, "%s (%s)\n  cache:   %s\n  full:    %s\n  preview: %s\n",
					src, kind, cubemap.CacheDirFor(src),
					presence(cubemap.FacesExist(src)), presence(cubemap.PreviewExists(src)))
			}
			return nil
		},
	}
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "missing"
}
