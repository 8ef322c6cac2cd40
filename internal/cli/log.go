package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/app/tracker"
	"github.com/dailycheck-app/dailycheck/internal/daemon"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Date to log against (YYYY-MM-DD, default today)")
	logCmd.Flags().IntVar(&logGreen, "green", 0, "GREEN contracts in this batch")
	logCmd.Flags().IntVar(&logLight, "light", 0, "LIGHT contracts in this batch")
	rootCmd.AddCommand(logCmd)
}

var (
	logDate  string
	logGreen int
	logLight int
)

var logCmd = &cobra.Command{
	Use:   "log <activity> [delta]",
	Short: "Record activity counts",
	Long: `Record activity for a day. Delta defaults to +1 and may be negative
to correct a mistake (counts never go below zero).

Activities: contacts, videos_sent, appointments, new_contracts, new_family_utility

Contract subtypes go through flags:
  dailycheck log new_contracts 3 --green 2 --light 1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	activity, err := domain.ParseActivity(args[0])
	if err != nil {
		return fmt.Errorf("unknown activity %q", args[0])
	}

	delta := 1
	if len(args) == 2 {
		delta, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("delta must be an integer: %q", args[1])
		}
	}

	date := logDate
	if date == "" {
		date = domain.FormatDateKey(time.Now())
	}

	var updates []tracker.CountUpdate
	if logGreen > 0 || logLight > 0 {
		if activity != domain.ActNewContracts {
			return fmt.Errorf("--green/--light only apply to new_contracts")
		}
		if logGreen+logLight > delta {
			return fmt.Errorf("subtype counts (%d) exceed delta (%d)", logGreen+logLight, delta)
		}
		if logGreen > 0 {
			updates = append(updates, tracker.CountUpdate{Activity: activity, Delta: logGreen, Subtype: domain.SubtypeGreen})
		}
		if logLight > 0 {
			updates = append(updates, tracker.CountUpdate{Activity: activity, Delta: logLight, Subtype: domain.SubtypeLight})
		}
		if rest := delta - logGreen - logLight; rest > 0 {
			updates = append(updates, tracker.CountUpdate{Activity: activity, Delta: rest})
		}
	} else {
		updates = []tracker.CountUpdate{{Activity: activity, Delta: delta}}
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.Tracker.Apply(cmd.Context(), updates, date)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s = %d\n", result.DateKey, args[0], result.Log.Count(activity))
	for _, ev := range result.Events {
		fmt.Printf("  🎯 %s %s threshold crossed (%d/%d)\n", ev.Period, ev.Kind, ev.After, ev.Goal)
	}
	for _, a := range result.Unlocked {
		fmt.Printf("  %s Achievement unlocked: %s\n", a.Icon, a.Name)
	}
	return nil
}
