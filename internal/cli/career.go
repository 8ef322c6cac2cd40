package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/app/career"
	"github.com/dailycheck-app/dailycheck/internal/daemon"
)

func init() {
	rootCmd.AddCommand(careerCmd)
}

var careerCmd = &cobra.Command{
	Use:   "career",
	Short: "Show career level and progress to the next tier",
	RunE:  runCareer,
}

func runCareer(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	status := career.Status(d.Tracker.Logs(), d.Config.Profile.QualificationOverride)

	fmt.Printf("Level: %s", status.Level)
	if status.ManualOverride {
		fmt.Print(" (manually set)")
	}
	if status.SpecialStatus {
		fmt.Print(" ⭐")
	}
	fmt.Println()
	fmt.Printf("Total clients: %d\n", status.TotalClients)
	if status.Next != nil {
		fmt.Printf("Next: %s at %d clients (%.0f%%)\n",
			status.Next.Name, status.Next.MinClients, status.ProgressPct)
	}
	return nil
}
