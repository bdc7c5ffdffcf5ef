package main

import (
	"github.com/spf13/cobra"
)

var (
	apiURL   string
	timeZone string
)

var rootCmd = &cobra.Command{
	Use:   "diningctl",
	Short: "Inspect CMU dining location hours",
	Long: `diningctl queries the dining API directly and prints what the CMUEats
backend would report, without needing the databases or cache.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "https://dining.apps.scottylabs.org", "dining API base URL")
	rootCmd.PersistentFlags().StringVar(&timeZone, "tz", "America/New_York", "time zone the hours are expressed in")
}
