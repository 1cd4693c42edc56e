package main

import (
	"encoding/json"

	"github.com/jonathan/career-advisor/internal/observability"
	"github.com/jonathan/career-advisor/internal/types"
	"github.com/spf13/cobra"
)

var (
	searchCategory string
	searchLevel    string
	searchSkills   []string
	searchJSON     bool
)

var searchJobsCmd = &cobra.Command{
	Use:   "search-jobs [query]",
	Short: "Search the job catalog",
	Long:  `Search the job catalog by keyword, or list it when no query is given, then filter by category, level and skills.`,
	Example: `  career_agent search-jobs developer
  career_agent search-jobs --category design --level entry`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearchJobs,
}

func init() {
	searchJobsCmd.Flags().StringVar(&searchCategory, "category", "", "Category substring, e.g. technology")
	searchJobsCmd.Flags().StringVar(&searchLevel, "level", "", "Entry, Mid or Senior")
	searchJobsCmd.Flags().StringSliceVar(&searchSkills, "skills", nil, "Comma-separated skills; any must match")
	searchJobsCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(searchJobsCmd)
}

func runSearchJobs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := newOfflineEngine(cfg)
	if err != nil {
		return err
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	jobs := engine.SearchJobs(query, types.SearchFilters{
		Category: searchCategory,
		Level:    searchLevel,
		Skills:   searchSkills,
	})

	if searchJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(jobs)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintJobs(jobs)
	return nil
}
