package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-advisor/internal/observability"
	"github.com/jonathan/career-advisor/internal/profile"
	"github.com/jonathan/career-advisor/internal/types"
	"github.com/spf13/cobra"
)

var (
	recommendSkills     []string
	recommendExperience string
	recommendAbout      string
	recommendJSON       bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print recommendations for a profile",
	Long: `Build a profile from --skills, --experience and free text (--about) and print
the matching jobs, learning resources, mentors and career advice.`,
	Example: `  career_agent recommend --skills python,sql --experience "3 years"
  career_agent recommend --about "I'm new to design and love figma" --json`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringSliceVar(&recommendSkills, "skills", nil, "Comma-separated skills")
	recommendCmd.Flags().StringVar(&recommendExperience, "experience", "", `Experience, e.g. "3 years" or "senior"`)
	recommendCmd.Flags().StringVar(&recommendAbout, "about", "", "Free text describing background and interests")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print the bundle as JSON")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	explicit := &types.PartialProfile{Skills: recommendSkills, Experience: recommendExperience}
	if explicit.IsEmpty() && recommendAbout == "" {
		return fmt.Errorf("at least one of --skills, --experience or --about is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := newOfflineEngine(cfg)
	if err != nil {
		return err
	}

	p := profile.ExtractText(recommendAbout, explicit)
	bundle := engine.RecommendForProfile(p)

	out := cmd.OutOrStdout()
	if recommendJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	}

	printer := observability.NewPrinter(out)
	printer.PrintProfile(p)
	printer.PrintBundle(bundle)
	return nil
}
