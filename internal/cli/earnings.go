package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/app/career"
	"github.com/dailycheck-app/dailycheck/internal/app/period"
	"github.com/dailycheck-app/dailycheck/internal/daemon"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func init() {
	earningsCmd.Flags().StringVar(&earningsPeriod, "period", "commercial_month",
		"Period: day, week, month, commercial_month, all")
	rootCmd.AddCommand(earningsCmd)
}

var earningsPeriod string

var earningsCmd = &cobra.Command{
	Use:   "earnings",
	Short: "Show commission earnings for a period",
	RunE:  runEarnings,
}

func runEarnings(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	startDay := d.Tracker.StartDay()

	var pred func(time.Time) bool
	switch earningsPeriod {
	case "day":
		today := domain.FormatDateKey(now)
		pred = func(t time.Time) bool { return domain.FormatDateKey(t) == today }
	case "week":
		pred = func(t time.Time) bool { return period.WeekID(t) == period.WeekID(now) }
	case "month":
		pred = func(t time.Time) bool { return period.MonthID(t) == period.MonthID(now) }
	case "commercial_month":
		pred = func(t time.Time) bool { return period.InCommercialMonth(t, now, startDay) }
	case "all":
		pred = func(time.Time) bool { return true }
	default:
		return fmt.Errorf("unknown period %q", earningsPeriod)
	}

	status, err := domain.ParseCommissionStatus(d.Config.Profile.CommissionStatus)
	if err != nil {
		status = domain.StatusStandard
	}

	total := career.Earnings(d.Tracker.Logs(), pred, status, domain.DefaultRateTable())
	fmt.Printf("Earnings (%s, %s): €%s\n", earningsPeriod, status, total.StringFixed(2))
	return nil
}
