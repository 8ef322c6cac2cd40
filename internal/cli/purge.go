package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/daemon"
)

func init() {
	purgeCmd.Flags().BoolVar(&purgeYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(purgeCmd)
}

var purgeYes bool

var purgeCmd = &cobra.Command{
	Use:   "purge <start> <end>",
	Short: "Delete all logs in a date range (inclusive)",
	Long: `Delete every activity log with a date in [start, end], both YYYY-MM-DD.
This also removes attached contract details and leads. There is no undo.`,
	Args: cobra.ExactArgs(2),
	RunE: runPurge,
}

func runPurge(cmd *cobra.Command, args []string) error {
	if !purgeYes {
		fmt.Printf("Delete all logs from %s to %s? This cannot be undone. [y/N] ", args[0], args[1])
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	removed, err := d.Tracker.DeleteRange(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d log(s).\n", removed)
	return nil
}
