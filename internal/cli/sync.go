package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/daemon"
)

func init() {
	syncCmd.AddCommand(syncPushCmd)
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Cloud replica operations",
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the local log collection to the cloud replica",
	Long: `Replace the remote snapshot with the local collection, synchronously.
Requires sync to be enabled and a MongoDB URI configured.`,
	RunE: runSyncPush,
}

func runSyncPush(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.PushNow(cmd.Context()); err != nil {
		return err
	}
	fmt.Printf("Pushed %d log(s) to the cloud replica.\n", len(d.Tracker.Logs()))
	return nil
}
