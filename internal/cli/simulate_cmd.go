package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/concord/internal/negotiation"
	"github.com/MikeSquared-Agency/concord/internal/scoring"
)

func newSimulateCmd(app *App) *cobra.Command {
	var (
		file     string
		advanced bool
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one simulation from a JSON request and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, file)
			if err != nil {
				return err
			}
			defer in.Close()

			var jitter scoring.Jitter
			if seed != 0 {
				jitter = scoring.NewSeededJitter(seed)
			}
			// stdout carries the result, so logs go to stderr.
			quiet := *app
			quiet.Logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			return runSimulate(cmd.Context(), &quiet, in, cmd.OutOrStdout(), advanced, jitter)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Request JSON file ('-' reads stdin)")
	cmd.Flags().BoolVar(&advanced, "advanced", false, "Treat the request as an advanced multi-party simulation")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for score variation (0 picks a random seed)")
	return cmd
}

func openInput(cmd *cobra.Command, file string) (io.ReadCloser, error) {
	if file == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open request: %w", err)
	}
	return f, nil
}

func runSimulate(ctx context.Context, app *App, in io.Reader, out io.Writer, advanced bool, jitter scoring.Jitter) error {
	orch := newOrchestrator(app, newCompletionClient(app), jitter)

	var result any
	if advanced {
		var req negotiation.AdvancedRequest
		if err := json.NewDecoder(in).Decode(&req); err != nil {
			return fmt.Errorf("decode request: %w", err)
		}
		if err := req.Validate(); err != nil {
			return err
		}
		resp, _, err := orch.SimulateAdvanced(ctx, &req)
		if err != nil {
			return err
		}
		result = resp
	} else {
		var req negotiation.BasicRequest
		if err := json.NewDecoder(in).Decode(&req); err != nil {
			return fmt.Errorf("decode request: %w", err)
		}
		if err := req.Validate(); err != nil {
			return err
		}
		resp, _, err := orch.Simulate(ctx, &req)
		if err != nil {
			return err
		}
		result = resp
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
