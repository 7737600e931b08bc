package main

import (
	"fmt"
	"io"
	"os"

	"github.com/portoo/portoo-backend/internal/form"
	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "edit <username>",
		Short: "Export a published portfolio as a draft for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.client(ctx)
			if err != nil {
				return err
			}
			agg, err := c.GetPortfolio(ctx, args[0])
			if err != nil {
				return err
			}

			store := form.NewStore()
			if err := store.Hydrate(agg, c.Session().State().Email); err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := form.WriteDraft(w, store.Data()); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s; publish changes with: portoo submit %s --edit %s\n", out, out, args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the draft to this file instead of stdout")
	return cmd
}
