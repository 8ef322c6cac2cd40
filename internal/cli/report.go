package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/app/career"
	"github.com/dailycheck-app/dailycheck/internal/app/engagement"
	"github.com/dailycheck-app/dailycheck/internal/app/period"
	"github.com/dailycheck-app/dailycheck/internal/daemon"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Full summary: progress, streak, career, and commercial month",
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	logs := d.Tracker.Logs()
	startDay := d.Tracker.StartDay()
	goals := d.Tracker.Goals()

	fmt.Printf("Daily Check report — %s\n\n", domain.FormatDateKey(now))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTIVITY\tTODAY\tWEEK\tMONTH\tCOMM. MONTH")
	for _, a := range domain.AllActivities() {
		p := d.Tracker.Progress(a)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			a,
			withGoal(p.Daily, goals.Target(domain.PeriodDaily, a)),
			withGoal(p.Weekly, goals.Target(domain.PeriodWeekly, a)),
			withGoal(p.Monthly, goals.Target(domain.PeriodMonthly, a)),
			p.CommercialMonthly,
		)
	}
	w.Flush()

	current, longest := engagement.StreakStats(logs, now)
	fmt.Printf("\nStreak: %d day(s) (best %d)\n", current, longest)

	status := career.Status(logs, d.Config.Profile.QualificationOverride)
	fmt.Printf("Career: %s (%d clients)\n", status.Level, status.TotalClients)

	cmStart, cmEnd := period.CommercialMonthRange(now, startDay)
	commStatus, err := domain.ParseCommissionStatus(d.Config.Profile.CommissionStatus)
	if err != nil {
		commStatus = domain.StatusStandard
	}
	earnings := career.Earnings(logs, func(t time.Time) bool {
		return period.InCommercialMonth(t, now, startDay)
	}, commStatus, domain.DefaultRateTable())

	fmt.Printf("Commercial month: %s → %s (%.0f%% elapsed, %d days left)\n",
		domain.FormatDateKey(cmStart), domain.FormatDateKey(cmEnd),
		period.CommercialMonthProgress(now, startDay),
		period.DaysUntilCommercialMonthEnd(now, startDay))
	fmt.Printf("Earnings this commercial month: €%s\n", earnings.StringFixed(2))
	return nil
}
