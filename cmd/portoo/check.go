package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <username>",
		Short: "Check whether a username is free",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			res, err := c.CheckUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if res.Available {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is available\n", args[0])
				return nil
			}
			reason := "taken"
			if res.Error != nil {
				reason = *res.Error
			}
			return fmt.Errorf("%s is not available: %s", args[0], reason)
		},
	}
}

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <name...>",
		Short: "Ask the server for a free username derived from a display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			name, err := c.SuggestUsername(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}
