package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"standard-ai/internal/domain/models"
)

func newStandardsCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standards",
		Short: "Browse the standards library",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List documents in the standards library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			return withRuntime(cmd, load, func(ctx context.Context, rt *Runtime) error {
				if rt.Store == nil {
					return models.ErrStoreUnavailable
				}
				names, err := rt.Store.List(ctx, search)
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return printJSON(cmd.OutOrStdout(), map[string][]string{"files": names})
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
	list.Flags().String("search", "", "case-insensitive name filter")

	cmd.AddCommand(list)
	return cmd
}
