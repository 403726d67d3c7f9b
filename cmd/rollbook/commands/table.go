package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rollbook/internal/report"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Display a name/date attendance table",
	RunE:  runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	fmt.Println(report.FormatAttendanceTable(st.Profiles()))
	return nil
}
