package commands

import (
	"github.com/spf13/cobra"

	"rollbook/internal/parse"
	"rollbook/internal/printer"
)

var importSource string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a CSV/TSV attendance export",
	Long: `Import an exported attendance table. The delimiter and the time,
name, and email columns are detected from the header row. Any row with
an unparseable timestamp aborts the whole import; nothing is saved to
disk unless the entire file parses.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importSource, "source", "", "label to store with the imported data (e.g., meeting name)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	rows, err := parse.ReadFile(args[0])
	if err != nil {
		return err
	}
	for _, row := range rows {
		st.RecordAttendance(row.Name, row.Email, row.Timestamp, importSource)
	}
	if err := st.Save(); err != nil {
		return err
	}
	printer.Success("Imported %d rows from %s", len(rows), args[0])
	return nil
}
