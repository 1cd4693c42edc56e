package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/career-advisor/internal/observability"
	"github.com/jonathan/career-advisor/internal/resume"
	"github.com/spf13/cobra"
)

var analyzeJSON bool

var analyzeCVCmd = &cobra.Command{
	Use:   "analyze-cv <file>",
	Short: "Analyze a résumé file",
	Long:  `Extract the text of a .pdf, .docx or .txt résumé, report the keywords found and recommend matching jobs.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyzeCV,
}

func init() {
	analyzeCVCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(analyzeCVCmd)
}

func runAnalyzeCV(cmd *cobra.Command, args []string) error {
	path := args[0]
	mime := resume.DetectType(filepath.Base(path), "")
	if mime == "" {
		return fmt.Errorf("%w: %s", resume.ErrUnsupportedType, path)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := resume.ReadAll(f, cfg.Server.MaxUploadBytes)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	engine, err := newOfflineEngine(cfg)
	if err != nil {
		return err
	}
	report, err := engine.AnalyzeCV(mime, data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printer := observability.NewPrinter(out)
	printer.PrintCVAnalysis(report.Analysis)
	printer.PrintProfile(report.Profile)
	printer.PrintBundle(report.Recommendations)
	return nil
}
