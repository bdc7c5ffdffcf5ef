package main

import (
	"fmt"
	"strings"

	"cmueats/services/dining"

	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title <name>...",
	Short: "Print location names as the backend normalizes them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range args {
			fmt.Fprintln(cmd.OutOrStdout(), dining.ToTitleCase(strings.TrimSpace(name)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(titleCmd)
}
