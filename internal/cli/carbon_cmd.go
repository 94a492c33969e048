package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/concord/internal/carbon"
	"github.com/MikeSquared-Agency/concord/internal/negotiation"
)

func newCarbonCmd(app *App) *cobra.Command {
	var (
		model        string
		tokens       int
		timeMs       int64
		participants int
		detailed     bool
	)

	cmd := &cobra.Command{
		Use:   "carbon",
		Short: "Estimate the footprint of a simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokens < 0 || timeMs < 0 {
				return fmt.Errorf("tokens and time-ms must be non-negative")
			}
			if participants < 1 {
				return fmt.Errorf("participants must be at least 1")
			}

			m := carbon.Estimate(model, tokens, timeMs, participants)
			var result any = m
			if detailed {
				result = struct {
					carbon.Metrics
					Detailed []carbon.Recommendation `json:"detailedRecommendations"`
					Offsets  carbon.Offsets          `json:"offsets"`
				}{m, carbon.DetailedRecommendations(m), carbon.OffsetOptions(m.TotalCO2Grams)}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&model, "model", string(negotiation.DefaultModel), "Model that generated the tokens")
	cmd.Flags().IntVar(&tokens, "tokens", 0, "Tokens generated")
	cmd.Flags().Int64Var(&timeMs, "time-ms", 0, "Wall-clock time in milliseconds")
	cmd.Flags().IntVar(&participants, "participants", 2, "Meeting participants replaced")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include categorised recommendations and offset options")
	return cmd
}
