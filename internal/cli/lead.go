package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailycheck-app/dailycheck/internal/daemon"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func init() {
	leadAddCmd.Flags().StringVar(&leadDate, "date", "", "Date to log against (YYYY-MM-DD, default today)")
	leadAddCmd.Flags().StringVar(&leadPhone, "phone", "", "Phone number")
	leadAddCmd.Flags().StringVar(&leadNote, "note", "", "Free-form note")
	leadAddCmd.Flags().StringVar(&leadActivity, "activity", string(domain.ActContacts),
		"Activity the lead counts toward")
	leadStatusCmd.Flags().StringVar(&leadDate, "date", "", "Date the lead was captured (YYYY-MM-DD, default today)")
	leadCmd.AddCommand(leadAddCmd)
	leadCmd.AddCommand(leadStatusCmd)
	rootCmd.AddCommand(leadCmd)
}

var (
	leadDate     string
	leadPhone    string
	leadNote     string
	leadActivity string
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Capture and track leads",
}

var leadAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Capture a lead (also counts one activity)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeadAdd,
}

var leadStatusCmd = &cobra.Command{
	Use:   "status <lead-id> <new|contacted|converted|lost>",
	Short: "Move a lead through the pipeline",
	Args:  cobra.ExactArgs(2),
	RunE:  runLeadStatus,
}

func runLeadAdd(cmd *cobra.Command, args []string) error {
	activity, err := domain.ParseActivity(leadActivity)
	if err != nil {
		return fmt.Errorf("unknown activity %q", leadActivity)
	}

	date := leadDate
	if date == "" {
		date = domain.FormatDateKey(time.Now())
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.Tracker.CaptureLead(cmd.Context(), date, domain.Lead{
		Name:     args[0],
		Phone:    leadPhone,
		Note:     leadNote,
		Activity: activity,
	})
	if err != nil {
		return err
	}

	lead := result.Log.Leads[len(result.Log.Leads)-1]
	fmt.Printf("Captured %s (id %s) on %s\n", lead.Name, lead.ID, result.DateKey)
	return nil
}

func runLeadStatus(cmd *cobra.Command, args []string) error {
	date := leadDate
	if date == "" {
		date = domain.FormatDateKey(time.Now())
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Tracker.UpdateLeadStatus(cmd.Context(), date, args[0], domain.LeadStatus(args[1])); err != nil {
		return err
	}
	fmt.Printf("Lead %s → %s\n", args[0], args[1])
	return nil
}
