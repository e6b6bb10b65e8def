package main

import (
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage stored settings such as GEMINI_API_KEY",
	}

	set := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			return store.SetSetting(ctx, args[0], args[1])
		},
	}

	rm := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a stored setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			return store.DeleteSetting(ctx, args[0])
		},
	}

	cmd.AddCommand(set, rm)
	return cmd
}
