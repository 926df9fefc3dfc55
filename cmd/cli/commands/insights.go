package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Insight flag names
const (
	flagFile = "file"
	flagDays = "days"
)

// GetInsightsCmd returns the insights command group
func GetInsightsCmd() *cobra.Command {
	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "AI-assisted project insights",
	}

	insightsCmd.AddCommand(healthCmd)
	insightsCmd.AddCommand(suggestionsCmd)
	insightsCmd.AddCommand(reportCmd)
	insightsCmd.AddCommand(analyzeDocumentCmd)
	insightsCmd.AddCommand(deadlinesCmd)

	return insightsCmd
}

func init() {
	// Project-scoped commands take an optional project ID; without it the
	// command runs against the global scope.
	healthCmd.Flags().Uint(flagProjectID, 0, "Project ID (omit for all projects)")
	suggestionsCmd.Flags().Uint(flagProjectID, 0, "Project ID (omit for all projects)")
	reportCmd.Flags().Uint(flagProjectID, 0, "Project ID (omit for all projects)")

	analyzeDocumentCmd.Flags().StringP(flagFile, "f", "", "Path to the document to analyze")
	if err := analyzeDocumentCmd.MarkFlagRequired(flagFile); err != nil {
		panic(fmt.Errorf("failed to mark file flag as required for analyze-document command: %w", err))
	}

	deadlinesCmd.Flags().Int(flagDays, 30, "How many days ahead to look")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Compute a project health score",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project-id flag: %w", err)
		}

		if projectID == 0 {
			health, err := apiClient.GlobalHealth(context.Background())
			if err != nil {
				return fmt.Errorf("error computing health score: %w", err)
			}
			return printJSON(health)
		}

		health, err := apiClient.ProjectHealth(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error computing health score: %w", err)
		}
		return printJSON(health)
	},
}

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Generate task suggestions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project-id flag: %w", err)
		}

		if projectID == 0 {
			suggestions, err := apiClient.GlobalSuggestions(context.Background())
			if err != nil {
				return fmt.Errorf("error generating suggestions: %w", err)
			}
			return printJSON(suggestions)
		}

		suggestions, err := apiClient.ProjectSuggestions(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error generating suggestions: %w", err)
		}
		return printJSON(suggestions)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a progress report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project-id flag: %w", err)
		}

		if projectID == 0 {
			report, err := apiClient.GlobalReport(context.Background())
			if err != nil {
				return fmt.Errorf("error generating report: %w", err)
			}
			return printJSON(report)
		}

		report, err := apiClient.ProjectReport(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error generating report: %w", err)
		}
		return printJSON(report)
	},
}

var analyzeDocumentCmd = &cobra.Command{
	Use:   "analyze-document",
	Short: "Extract study data from a document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString(flagFile)
		if err != nil {
			return fmt.Errorf("error getting file flag: %w", err)
		}

		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading document: %w", err)
		}

		result, err := apiClient.AnalyzeDocument(context.Background(), string(text))
		if err != nil {
			return fmt.Errorf("error analyzing document: %w", err)
		}
		return printJSON(result)
	},
}

var deadlinesCmd = &cobra.Command{
	Use:   "deadlines",
	Short: "List upcoming deadlines",
	RunE: func(cmd *cobra.Command, _ []string) error {
		days, err := cmd.Flags().GetInt(flagDays)
		if err != nil {
			return fmt.Errorf("error getting days flag: %w", err)
		}

		deadlines, err := apiClient.ListDeadlines(context.Background(), days)
		if err != nil {
			return fmt.Errorf("error listing deadlines: %w", err)
		}
		return printJSON(deadlines)
	},
}
