package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/daemon"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"badges"},
	Short:   "Show earned and locked achievements",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	unlocked, err := d.Achievement.ListUnlocked()
	if err != nil {
		return err
	}
	unlockedSet := make(map[string]domain.UnlockedAchievement, len(unlocked))
	for _, u := range unlocked {
		unlockedSet[u.ID] = u
	}

	for _, def := range d.Achievement.Definitions() {
		if u, ok := unlockedSet[def.ID]; ok {
			fmt.Printf("%s %s — %s (unlocked %s)\n",
				def.Icon, def.Name, def.Description, u.UnlockedAt.Format("2006-01-02"))
		} else {
			fmt.Printf("🔒 %s — %s\n", def.Name, def.Description)
		}
	}
	fmt.Printf("\n%d of %d unlocked\n", len(unlocked), d.Achievement.TotalCount())
	return nil
}
