package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/daemon"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func init() {
	goalsCmd.AddCommand(goalsSetCmd)
	rootCmd.AddCommand(goalsCmd)
}

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show configured goals",
	RunE:  runGoals,
}

var goalsSetCmd = &cobra.Command{
	Use:   "set <activity> <daily-target>",
	Short: "Set a daily goal (weekly and monthly targets are derived)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsSet,
}

func runGoals(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goals := d.Tracker.Goals()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTIVITY\tDAILY\tWEEKLY\tMONTHLY")
	for _, a := range domain.AllActivities() {
		daily := goals.Target(domain.PeriodDaily, a)
		weekly := goals.Target(domain.PeriodWeekly, a)
		monthly := goals.Target(domain.PeriodMonthly, a)
		if daily == 0 && weekly == 0 && monthly == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", a, daily, weekly, monthly)
	}
	return w.Flush()
}

func runGoalsSet(cmd *cobra.Command, args []string) error {
	activity, err := domain.ParseActivity(args[0])
	if err != nil {
		return fmt.Errorf("unknown activity %q", args[0])
	}
	target, err := strconv.Atoi(args[1])
	if err != nil || target < 0 {
		return fmt.Errorf("daily target must be a non-negative integer: %q", args[1])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goals := d.Tracker.Goals()
	if goals.Daily == nil {
		goals.Daily = make(map[domain.ActivityType]int)
	}
	goals.Daily[activity] = target

	derived := domain.DeriveFromDaily(goals.Daily)
	if goals.Weekly == nil {
		goals.Weekly = make(map[domain.ActivityType]int)
	}
	if goals.Monthly == nil {
		goals.Monthly = make(map[domain.ActivityType]int)
	}
	goals.Weekly[activity] = derived.Weekly[activity]
	goals.Monthly[activity] = derived.Monthly[activity]

	d.Tracker.SetGoals(goals)
	if err := d.SaveGoals(goals); err != nil {
		return err
	}

	fmt.Printf("%s: daily %d, weekly %d, monthly %d\n",
		activity, target, goals.Weekly[activity], goals.Monthly[activity])
	return nil
}
