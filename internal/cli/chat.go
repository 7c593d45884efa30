package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/eino/nodes"
)

func newChatCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Chat with the model, optionally about a document",
		Long:  "Send one message to the chat model. Use --file for a local document or --stored for a document in the standards library.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			localFile, _ := cmd.Flags().GetString("file")
			storedFile, _ := cmd.Flags().GetString("stored")
			if localFile != "" && storedFile != "" {
				return models.InvalidInputf("--file and --stored are mutually exclusive")
			}

			return withRuntime(cmd, load, func(ctx context.Context, rt *Runtime) error {
				in := &nodes.ChatInput{History: []models.ChatTurn{
					{Role: models.RoleUser, Text: strings.Join(args, " ")},
				}}

				var err error
				switch {
				case localFile != "":
					var data []byte
					if data, err = os.ReadFile(localFile); err != nil {
						return fmt.Errorf("read %s: %w", localFile, err)
					}
					in.FileRef, err = rt.Resolver.FromUpload(ctx, filepath.Base(localFile), data)
				case storedFile != "":
					in.FileRef, err = rt.Resolver.FromStore(ctx, storedFile)
				}
				if err != nil {
					return err
				}

				reply, err := rt.Chat.Invoke(ctx, in)
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return printJSON(cmd.OutOrStdout(), map[string]interface{}{
						"response": reply.Text,
						"fileId":   in.FileRef,
						"usage":    reply.Usage,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
				return nil
			})
		},
	}
	cmd.Flags().StringP("file", "f", "", "local document to attach")
	cmd.Flags().StringP("stored", "s", "", "standards library document to attach")
	return cmd
}
