package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/f3rmion/battlestats/internal/clipboard"
	"github.com/f3rmion/battlestats/internal/export"
	"github.com/f3rmion/battlestats/internal/render"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export parsed battle stats",
	Long:  `Commands for writing the sorted table as a generic CSV or a YATA import file.`,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv [file|-]",
	Short: "Export the table as a plain CSV",
	Long: `Parse the input and write the sorted table as CSV, exactly as it is
displayed. Commas inside cells are removed and nothing is quoted.

The file is named export-<date>.csv and written to the export directory
unless -o is given. Use -o - to write to stdout.

Example:
  bstats export csv report.txt
  bstats export csv --clipboard -o - --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExportCSV,
}

var exportYATACmd = &cobra.Command{
	Use:   "yata [file|-]",
	Short: "Export the table as a YATA import CSV",
	Long: `Parse the input, look up every player's level and faction on the Torn
API, and write a CSV in the YATA import layout. Players whose lookup fails
are left out.

The API key comes from --key, then BSTATS_APIKEY, then the stored key
(see 'bstats apikey set').

Example:
  bstats export yata report.txt
  bstats export yata --from-csv export-10_15_2026.csv --key abc123`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExportYATA,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportYATACmd)

	for _, c := range []*cobra.Command{exportCSVCmd, exportYATACmd} {
		c.Flags().Bool("clipboard", false, "read input from the clipboard")
		c.Flags().Bool("from-csv", false, "input is a previous generic CSV export")
		c.Flags().StringP("output", "o", "", "output file (- for stdout)")
		c.Flags().Bool("copy", false, "also copy the CSV to the clipboard")
	}
	exportYATACmd.Flags().String("key", "", "Torn API key")
}

type exportFlags struct {
	clipboard bool
	fromCSV   bool
	output    string
	copy      bool
}

func getExportFlags(cmd *cobra.Command) exportFlags {
	var f exportFlags
	f.clipboard, _ = cmd.Flags().GetBool("clipboard")
	f.fromCSV, _ = cmd.Flags().GetBool("from-csv")
	f.output, _ = cmd.Flags().GetString("output")
	f.copy, _ = cmd.Flags().GetBool("copy")
	return f
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	flags := getExportFlags(cmd)

	s, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	t, err := loadTable(cmd, s, args, flags.clipboard, flags.fromCSV)
	if err != nil {
		return err
	}

	name, data := s.CSV(t)
	return writeExport(cmd, flags, s.Config.Export.Dir, name, data)
}

func runExportYATA(cmd *cobra.Command, args []string) error {
	flags := getExportFlags(cmd)
	flagKey, _ := cmd.Flags().GetString("key")

	s, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	apiKey, err := resolveAPIKey(s, flagKey)
	if err != nil {
		return err
	}
	if apiKey == "" {
		return errors.New("no API key: pass --key, set BSTATS_APIKEY or run 'bstats apikey set'")
	}

	t, err := loadTable(cmd, s, args, flags.clipboard, flags.fromCSV)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	progress := render.NewTextProgress(cmd.ErrOrStderr())
	res := s.YATA(ctx, t, apiKey, progress)
	progress.Finish()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export interrupted: %w", err)
	}
	if res.Dropped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d players could not be looked up\n", res.Dropped, t.Len())
	}

	return writeExport(cmd, flags, s.Config.Export.Dir, s.FileName(), res.CSV)
}

func writeExport(cmd *cobra.Command, flags exportFlags, dir, name, data string) error {
	path, err := export.Save(data, flags.output, dir, name, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if flags.output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", path)
	}

	if flags.copy {
		if err := clipboard.Write(data); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
	}
	return nil
}
