package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/eino/nodes"
)

func newClauseCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clause <topic>",
		Short: "Draft a clause for a standard",
		Long:  "Draft one section of a standard for the given topic. Valid types: scope, definitions, requirements, test_methods.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clauseType, _ := cmd.Flags().GetString("type")
			kind, _ := cmd.Flags().GetString("kind")

			return runGeneration(cmd, load, &nodes.GenerationInput{
				Task: nodes.TaskClause,
				Spec: models.PromptSpec{
					UseCase:      models.UseCase(clauseType),
					DocumentKind: models.DocumentKind(kind),
					Topic:        strings.Join(args, " "),
				},
			}, "generatedText")
		},
	}
	cmd.Flags().StringP("type", "t", string(models.UseCaseScope), "clause type")
	cmd.Flags().StringP("kind", "k", "", "document kind: standard, patent or other")
	return cmd
}

func newRewriteCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite <text>",
		Short: "Rewrite a passage following an instruction",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instruction, _ := cmd.Flags().GetString("prompt")
			return runGeneration(cmd, load, &nodes.GenerationInput{
				Task:         nodes.TaskRewrite,
				SelectedText: strings.Join(args, " "),
				Instruction:  instruction,
			}, "rewrittenText")
		},
	}
	cmd.Flags().StringP("prompt", "p", "", "rewrite instruction")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newAskCmd(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the standards expert a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneration(cmd, load, &nodes.GenerationInput{
				Task:     nodes.TaskAsk,
				Question: strings.Join(args, " "),
			}, "response")
		},
	}
}

// runGeneration 执行文本生成流程，JSON 输出沿用 HTTP 接口的字段名
func runGeneration(cmd *cobra.Command, load Loader, in *nodes.GenerationInput, field string) error {
	return withRuntime(cmd, load, func(ctx context.Context, rt *Runtime) error {
		out, err := rt.Generation.Invoke(ctx, in)
		if err != nil {
			return err
		}
		if jsonOutput(cmd) {
			return printJSON(cmd.OutOrStdout(), map[string]string{field: out.Text})
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.Text)
		return nil
	})
}
