package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/app/career"
	"github.com/dailycheck-app/dailycheck/internal/app/engagement"
	"github.com/dailycheck-app/dailycheck/internal/app/share"
	"github.com/dailycheck-app/dailycheck/internal/daemon"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func init() {
	shareCmd.AddCommand(shareViewCmd)
	rootCmd.AddCommand(shareCmd)
}

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Export your progress as a share code",
	RunE:  runShare,
}

var shareViewCmd = &cobra.Command{
	Use:   "view <code>",
	Short: "Decode and display someone's share code",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareView,
}

func runShare(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	logs := d.Tracker.Logs()

	unlocked, err := d.Achievement.ListUnlocked()
	if err != nil {
		return err
	}
	defs := make(map[string]domain.AchievementDef)
	for _, def := range d.Achievement.Definitions() {
		defs[def.ID] = def
	}
	var earned []domain.AchievementDef
	for _, u := range unlocked {
		if def, ok := defs[u.ID]; ok {
			earned = append(earned, def)
		}
	}

	current, _ := engagement.StreakStats(logs, now)
	status := career.Status(logs, d.Config.Profile.QualificationOverride)
	summary := share.Build(logs, status, current, earned, now, d.Tracker.StartDay())

	code, err := share.Encode(summary)
	if err != nil {
		return err
	}
	fmt.Println(code)
	return nil
}

func runShareView(cmd *cobra.Command, args []string) error {
	summary, err := share.Decode(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Shared on %s — %s\n", summary.GeneratedAt, summary.Level)
	fmt.Printf("Streak: %d day(s)\n", summary.CurrentStreak)
	fmt.Printf("This month: %d contacts, %d videos, %d contracts\n",
		summary.MonthContacts, summary.MonthVideos, summary.MonthContracts)
	if len(summary.Achievements) > 0 {
		fmt.Println("Achievements:")
		for _, b := range summary.Achievements {
			fmt.Printf("  %s %s\n", b.Icon, b.Name)
		}
	}
	return nil
}
