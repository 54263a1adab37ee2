package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/smart-resume/internal/types"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the available target roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, role := range types.Roles {
			fmt.Fprintln(cmd.OutOrStdout(), role) //nolint:errcheck
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
