package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/infrastructure/extractor"
)

func newReviewCmd(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "review <file>",
		Short: "Review a standard document",
		Long:  "Extract the text of a local document (docx, txt, md, html) and run the five-dimension standards review on it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			return withRuntime(cmd, load, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Review.Invoke(ctx, &models.ReviewRequest{
					Data:     data,
					Format:   extractor.FormatFromFilename(path),
					FileName: filepath.Base(path),
				})
				if err != nil {
					return err
				}

				if jsonOutput(cmd) {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				printReview(cmd.OutOrStdout(), resp)
				return nil
			})
		},
	}
}

// printReview 以文本形式输出审核结果，降级结果直接输出模型原文
func printReview(w io.Writer, resp *models.ReviewResponse) {
	result := resp.Result
	fmt.Fprintf(w, "File: %s\n", resp.FileName)
	if result == nil {
		return
	}
	if result.Degraded() {
		fmt.Fprintln(w, "Model output could not be parsed, raw response follows:")
		fmt.Fprintln(w, result.RawResponse)
		return
	}

	fmt.Fprintf(w, "Standard: %s (%s)\n", result.StandardName, result.StandardType)
	fmt.Fprintf(w, "Overall score: %s\n", result.OverallScore)
	fmt.Fprintf(w, "Assessment: %s\n\n", result.OverallAssessment)

	names := make([]string, 0, len(result.DetailedChecks))
	for name := range result.DetailedChecks {
		names = append(names, string(name))
	}
	sort.Strings(names)
	for _, name := range names {
		check := result.DetailedChecks[models.CheckName(name)]
		fmt.Fprintf(w, "  %-24s %5s  %s\n", name, check.Score, check.Findings)
	}

	if len(result.IssuesAndSuggestions) == 0 {
		return
	}
	fmt.Fprintf(w, "\nIssues (%d):\n", len(result.IssuesAndSuggestions))
	for i, issue := range result.IssuesAndSuggestions {
		fmt.Fprintf(w, "%d. [%s] %s: %s\n", i+1, issue.Severity, issue.Clause, issue.IssueDescription)
		if issue.OriginalText != "" {
			fmt.Fprintf(w, "   original: %s\n", issue.OriginalText)
		}
		if issue.Suggestion != "" {
			fmt.Fprintf(w, "   suggestion: %s\n", issue.Suggestion)
		}
	}
}
