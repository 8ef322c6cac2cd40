package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/app/engagement"
	"github.com/dailycheck-app/dailycheck/internal/daemon"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's counts and current streak",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	today := domain.FormatDateKey(now)
	log, err := d.Tracker.DayLog(today)
	if err != nil && !errors.Is(err, domain.ErrLogNotFound) {
		return err
	}

	fmt.Printf("Daily Check — %s\n\n", today)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTIVITY\tTODAY\tDAILY GOAL")
	goals := d.Tracker.Goals()
	for _, a := range domain.AllActivities() {
		goal := "-"
		if g := goals.Target(domain.PeriodDaily, a); g > 0 {
			goal = fmt.Sprintf("%d", g)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", a, log.Count(a), goal)
	}
	w.Flush()

	current, longest := engagement.StreakStats(d.Tracker.Logs(), now)
	fmt.Printf("\nStreak: %d day(s) (best %d)\n", current, longest)

	unlocked, err := d.Achievement.UnlockedCount()
	if err != nil {
		return err
	}
	fmt.Printf("Achievements: %d of %d\n", unlocked, d.Achievement.TotalCount())
	return nil
}
