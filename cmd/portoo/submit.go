package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/portoo/portoo-backend/internal/client"
	"github.com/portoo/portoo-backend/internal/form"
	"github.com/portoo/portoo-backend/internal/submission"
	"github.com/spf13/cobra"
)

func newSubmitCmd(a *app) *cobra.Command {
	var (
		edit string
		crop bool
	)

	cmd := &cobra.Command{
		Use:   "submit <draft.yaml>",
		Short: "Upload a draft's files and create or update the portfolio",
		Long: `Uploads the profile photo, resume, project covers and gallery images named in
the draft one at a time, then creates the portfolio. With --edit the existing
portfolio is updated instead and already stored URLs are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := form.LoadDraftFile(args[0])
			if err != nil {
				return err
			}
			c, err := a.client(ctx)
			if err != nil {
				return err
			}

			if edit != "" {
				if err := ensureOwner(ctx, c, edit); err != nil {
					return err
				}
				store.EditAs(edit)
			} else if strings.TrimSpace(store.Data().Username) == "" {
				name, err := c.SuggestUsername(ctx, store.Data().FullName)
				if err != nil {
					return fmt.Errorf("suggest username: %w", err)
				}
				store.SetUsername(name)
				fmt.Fprintf(cmd.ErrOrStderr(), "using username %s\n", name)
			}

			var opts []submission.Option
			if crop {
				opts = append(opts, submission.WithCropping())
			}
			res, err := submission.NewOrchestrator(c, c, a.logger(), opts...).Submit(ctx, store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if edit != "" {
				fmt.Fprintf(out, "updated %s (%d files uploaded)\n", res.Username, res.Uploaded)
				return nil
			}
			fmt.Fprintf(out, "created %s (%d files uploaded)\n%s\n", res.Username, res.Uploaded, res.PortfolioURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&edit, "edit", "", "update this existing portfolio instead of creating one")
	cmd.Flags().BoolVar(&crop, "crop", false, "crop the profile photo and project covers before upload")
	return cmd
}

// ensureOwner fails early, before any upload, when the session cannot edit username.
func ensureOwner(ctx context.Context, c *client.Client, username string) error {
	if !c.Session().State().LoggedIn() {
		return form.ErrLoginRequired
	}
	mine, err := c.MyPortfolios(ctx)
	if err != nil {
		return err
	}
	for _, p := range mine {
		if p.Username == username {
			return nil
		}
	}
	return form.ErrNotOwner
}
