package commands

import (
	"github.com/spf13/cobra"

	"rollbook/internal/printer"
	"rollbook/internal/report"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the recorded profiles",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	profiles := st.Profiles()
	if len(profiles) == 0 {
		printer.Info("No profiles recorded yet.")
		return nil
	}
	for _, profile := range report.SortProfiles(profiles) {
		printer.Info("%s <%s> — %d event(s)", profile.Name, profile.Email, len(profile.Events))
	}
	return nil
}
