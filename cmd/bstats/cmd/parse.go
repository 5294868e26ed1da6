package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/f3rmion/battlestats/internal/render"
	"github.com/f3rmion/battlestats/internal/session"
	"github.com/f3rmion/battlestats/internal/stats"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse pasted battle stats and print them sorted by total",
	Long: `Parse battle stat blocks from a file, stdin or the clipboard, infer a
single missing stat from the others, and print the table sorted by total.

Example:
  bstats parse report.txt
  pbpaste | bstats parse
  bstats parse --clipboard --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("clipboard", false, "read input from the clipboard")
	parseCmd.Flags().Bool("json", false, "print records as JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	fromClipboard, _ := cmd.Flags().GetBool("clipboard")
	asJSON, _ := cmd.Flags().GetBool("json")

	s, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	t, err := loadTable(cmd, s, args, fromClipboard, false)
	if err != nil {
		return err
	}
	return printTable(cmd, s, t, asJSON)
}

func printTable(cmd *cobra.Command, s *session.Session, t *stats.Table, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(t.Records())
	}

	if t.Len() == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No battle stats found.")
		return nil
	}
	return render.NewTableWriter(cmd.OutOrStdout(), s.Config.API.ProfileURL).Write(t)
}
