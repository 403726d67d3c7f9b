package commands

import (
	"github.com/spf13/cobra"

	"rollbook/internal/printer"
)

var historyCmd = &cobra.Command{
	Use:   "history <email>",
	Short: "Show attendance history for a single person",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	profile, ok := st.Lookup(args[0])
	if !ok {
		printer.Info("No attendance data found for %s", args[0])
		return nil
	}
	printer.Info("Attendance history for %s <%s>:", profile.Name, profile.Email)
	for _, evt := range profile.Events {
		suffix := ""
		if evt.Source != "" {
			suffix = " (" + evt.Source + ")"
		}
		printer.Info("  • %s%s", evt.Timestamp.Format("2006-01-02 15:04"), suffix)
	}
	return nil
}
