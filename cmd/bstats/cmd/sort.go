package cmd

import (
	"github.com/spf13/cobra"
)

var sortCmd = &cobra.Command{
	Use:   "sort <file.csv>",
	Short: "Load a CSV export back and print it sorted by total",
	Long: `Load a table previously written by 'bstats export csv' and print it
sorted by total. Values are read back from the display text, so N/A and 0
both come back as unknown.

Example:
  bstats sort export-10_15_2026.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().Bool("json", false, "print records as JSON")
}

func runSort(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	s, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	t, err := loadTable(cmd, s, args, false, true)
	if err != nil {
		return err
	}
	return printTable(cmd, s, t, asJSON)
}
