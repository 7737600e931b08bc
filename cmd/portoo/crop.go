package main

import (
	"fmt"
	"os"

	"github.com/portoo/portoo-backend/internal/media"
	"github.com/spf13/cobra"
)

func newCropCmd() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "crop <in> [out]",
		Short: "Center-crop and resize an image the way the builder does before upload",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, ok := media.Preset(preset)
			if !ok {
				return fmt.Errorf("unknown preset %q (use profile or cover)", preset)
			}
			out := media.OptimizedName(args[0])
			if len(args) == 2 {
				out = args[1]
			}

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := media.CropAndResize(in, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %d bytes)\n", out, opts.Width, opts.Height, len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "profile", "crop preset: profile (1:1) or cover (16:9)")
	return cmd
}
