package main

import (
	"fmt"
	"os"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/spf13/cobra"
)

var validateCatalogCmd = &cobra.Command{
	Use:   "validate-catalog <dir>",
	Short: "Validate catalog override files",
	Long: `Validate jobs.json, resources.json and mentorship.json in dir against the
catalog JSON Schemas. Files missing from dir fall back to the embedded copies.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateCatalog,
}

func init() {
	rootCmd.AddCommand(validateCatalogCmd)
}

func runValidateCatalog(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("failed to read catalog dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", args[0])
	}

	c, err := catalog.Load(args[0])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Catalog OK: %d jobs, %d mentorship platforms\n",
		len(c.Jobs()), len(c.Platforms()))
	return nil
}
