package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/daemon"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress [activity]",
	Short: "Show period progress against goals",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	activities := domain.AllActivities()
	if len(args) == 1 {
		a, err := domain.ParseActivity(args[0])
		if err != nil {
			return fmt.Errorf("unknown activity %q", args[0])
		}
		activities = []domain.ActivityType{a}
	}

	goals := d.Tracker.Goals()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTIVITY\tTODAY\tWEEK\tMONTH\tCOMM. MONTH")
	for _, a := range activities {
		p := d.Tracker.Progress(a)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			a,
			withGoal(p.Daily, goals.Target(domain.PeriodDaily, a)),
			withGoal(p.Weekly, goals.Target(domain.PeriodWeekly, a)),
			withGoal(p.Monthly, goals.Target(domain.PeriodMonthly, a)),
			p.CommercialMonthly,
		)
	}
	return w.Flush()
}

func withGoal(n, goal int) string {
	if goal <= 0 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d/%d", n, goal)
}
