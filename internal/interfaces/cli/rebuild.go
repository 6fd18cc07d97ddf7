package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/cricket-scorer/internal/usecase"
)

func newRebuildCareerCommand(root *rootOptions) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "rebuild-career",
		Short: "Recompute career stats from every completed match",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withStore(cmd.Context(), func(store Store) error {
				svc := usecase.NewCareerService(store.Matches, store.Deliveries, store.Careers, workers, root.logger)
				result, err := svc.Rebuild(cmd.Context())
				if err != nil {
					return &ExitError{Code: ExitCommandError, Message: "rebuild career stats", Err: err}
				}
				if root.format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]any{
						"matches":    result.Matches,
						"applied":    result.Applied,
						"durationMs": result.DurationMs,
					})
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "rebuilt career stats from %d match(es), %d applied in %dms\n",
					result.Matches, result.Applied, result.DurationMs)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "matches recomputed in parallel")
	return cmd
}
