package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"cmueats/models"
	"cmueats/services/dining"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	statusAt   string
	statusOpen bool
)

// cliClock is replaced in tests.
var cliClock = time.Now

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the open status of every dining location",
	Long:  `Fetches the dining locations and prints whether each is open and when that changes.`,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusAt, "at", "", "evaluate at this RFC3339 time instead of now")
	statusCmd.Flags().BoolVar(&statusOpen, "open", false, "only show open locations")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	zone, err := dining.LoadTimeZone(timeZone)
	if err != nil {
		return fmt.Errorf("loading time zone: %w", err)
	}

	var at time.Time
	if statusAt != "" {
		at, err = time.Parse(time.RFC3339, statusAt)
		if err != nil {
			return fmt.Errorf("parsing --at: %w", err)
		}
	}

	raw, err := dining.NewClient(apiURL).FetchLocations(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching locations: %w", err)
	}
	fetchedAt := cliClock()
	if statusAt == "" {
		at = fetchedAt
	}

	local := at.In(zone)
	statuses := make([]models.LocationStatus, 0, len(raw))
	open := 0
	for _, loc := range raw {
		st := dining.BuildStatus(dining.NormalizeLocation(loc), local)
		if st.IsOpen {
			open++
		}
		if statusOpen && !st.IsOpen {
			continue
		}
		statuses = append(statuses, st)
	}
	dining.SortStatuses(statuses)

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, st := range statuses {
		state := "closed"
		if st.IsOpen {
			state = "open"
		}
		flag := ""
		if st.ChangesSoon {
			flag = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s%s\t%s\n", st.ConceptID, st.Name, state, flag, st.StatusMsg)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s of %s locations open at %s", humanize.Comma(int64(open)), humanize.Comma(int64(len(raw))), local.Format("Mon 3:04 PM MST"))
	if statusAt != "" {
		fmt.Fprintf(out, " (%s)", humanize.RelTime(at, fetchedAt, "ago", "from now"))
	}
	fmt.Fprintf(out, "\nFetched %s (%s)\n", fetchedAt.In(zone).Format("Mon 3:04 PM MST"), humanize.RelTime(fetchedAt, cliClock(), "ago", "from now"))
	return nil
}
