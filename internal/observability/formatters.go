// Package observability provides logging, metrics and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-advisor/internal/resume"
	"github.com/jonathan/career-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer renders profiles and recommendations as boxed text for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs the profile the recommendations were computed from
func (p *Printer) PrintProfile(profile types.Profile) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experience: %s\n", profile.Level()))
	sb.WriteString(fmt.Sprintf("Skills:     %s\n", listOrNone(profile.Skills)))
	sb.WriteString(fmt.Sprintf("Interests:  %s", listOrNone(profile.Interests)))

	p.printBox("PROFILE", sb.String())
}

// PrintJobMatches outputs scored job matches with the reason they were picked
func (p *Printer) PrintJobMatches(matches []types.JobMatch) {
	if len(matches) == 0 {
		p.printBox("RECOMMENDED JOBS", "No matching jobs found")
		return
	}

	var sb strings.Builder
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, m.Title, m.Level))
		sb.WriteString(fmt.Sprintf("    Match: %.0f%%\n", m.MatchScore))
		if len(m.MatchingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(m.MatchingSkills, ", "), 40)))
		}
		if m.WhyRecommended != "" {
			for _, line := range wrap(m.WhyRecommended, boxWidth-8) {
				sb.WriteString(fmt.Sprintf("    %s\n", line))
			}
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(matches)-maxItemsToShow))
	}

	p.printBox("RECOMMENDED JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs plain catalog listings, as returned by a search
func (p *Printer) PrintJobs(jobs []types.JobListing) {
	if len(jobs) == 0 {
		p.printBox("JOBS", "No jobs found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d jobs:\n\n", len(jobs)))
	for _, j := range jobs {
		sb.WriteString(fmt.Sprintf("• %s [%s, %s]\n", j.Title, j.Category, j.Level))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(strings.Join(j.Skills, ", "), 50)))
	}

	p.printBox("JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResources outputs learning resources
func (p *Printer) PrintResources(resources []types.LearningResource) {
	if len(resources) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range resources {
		sb.WriteString(fmt.Sprintf("• %s\n", truncate(r.Title, 50)))
		sb.WriteString(fmt.Sprintf("  %s · %s", r.Provider, r.Type))
		if r.Price != "" {
			sb.WriteString(fmt.Sprintf(" · %s", r.Price))
		}
		sb.WriteString("\n")
	}

	p.printBox("LEARNING RESOURCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMentors outputs mentorship recommendations
func (p *Printer) PrintMentors(mentors []types.MentorRecommendation) {
	if len(mentors) == 0 {
		return
	}

	var sb strings.Builder
	for i, m := range mentors {
		sb.WriteString(fmt.Sprintf("• %s\n", m.Platform))
		if m.Focus != "" {
			sb.WriteString(fmt.Sprintf("  Focus: %s\n", truncate(m.Focus, 45)))
		}
		for _, line := range wrap(m.Reason, boxWidth-6) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
		if i < len(mentors)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("MENTORSHIP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBundle outputs a full recommendation bundle
func (p *Printer) PrintBundle(bundle types.RecommendationBundle) {
	p.PrintJobMatches(bundle.Jobs)
	p.PrintResources(bundle.Resources)
	p.PrintMentors(bundle.Mentors)
	if bundle.CareerAdvice != "" {
		p.printBox("CAREER ADVICE", strings.Join(wrap(bundle.CareerAdvice, boxWidth-4), "\n"))
	}
}

// PrintCVAnalysis outputs the keyword report of a résumé
func (p *Printer) PrintCVAnalysis(a resume.Analysis) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keywords found: %d\n", len(a.Keywords)))
	for _, line := range wrap(listOrNone(a.Keywords), boxWidth-6) {
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}

	if len(a.RecommendedJobs) > 0 {
		sb.WriteString("\nMatching jobs:\n")
		count := min(len(a.RecommendedJobs), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", a.RecommendedJobs[i].Title))
		}
		if len(a.RecommendedJobs) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.RecommendedJobs)-maxItemsToShow))
		}
	}

	if a.CourseSuggestion != "" {
		sb.WriteString("\n")
		for _, line := range wrap("⚠ "+a.CourseSuggestion, boxWidth-4) {
			sb.WriteString(line + "\n")
		}
	}

	p.printBox("CV ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// wrap breaks text into lines of at most width bytes on word boundaries
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
