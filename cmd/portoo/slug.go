package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/pkg/slug"
	"github.com/spf13/cobra"
)

func newSlugCmd() *cobra.Command {
	var taken []string

	cmd := &cobra.Command{
		Use:   "slug <name...>",
		Short: "Print the username derived from a display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if len(taken) == 0 {
				s := slug.Slugify(name)
				if s == "" {
					return errors.New("name has no usable characters")
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			existing := append(append([]string{}, taken...), domain.ReservedUsernames()...)
			fmt.Fprintln(cmd.OutOrStdout(), slug.NewGenerator().WithMaxLength(domain.MaxUsernameLength).Unique(name, existing))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&taken, "taken", nil, "usernames already in use; a suffix is added on collision")
	return cmd
}
