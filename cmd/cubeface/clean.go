package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gogpu/cubemap"
)

func (a *app) newCleanCmd() *cobra.Command {
	var preview, full bool

	cmd := &cobra.Command{
		Use:   "clean SOURCE...",
		Short: "Delete cached faces",
		Long:  "Delete cached faces. Without --preview or --full both tiers are removed.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := sources(args)
			if err != nil {
				return err
			}
			if !preview && !full {
				preview, full = true, true
			}

			var tiers []cubemap.Tier
			if full {
				tiers = append(tiers, cubemap.TierFull)
			}
			if preview {
				tiers = append(tiers, cubemap.TierPreview)
			}

			var errs []error
			for _, src := range srcs {
				for _, t := range tiers {
					if err := cubemap.RemoveTier(src, t); err != nil {
						errs = append(errs, err)
						continue
					}
					printer.Fprintf(cmd.OutOrStdout(), "%s: removed %s tier\n", src, t)
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVar(&preview, "preview", false, "remove the preview tier")
	cmd.Flags().BoolVar(&full, "full", false, "remove the full tier")
	return cmd
}
