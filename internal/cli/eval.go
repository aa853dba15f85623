package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
	"github.com/kailas-cloud/patchscout/internal/usecase/evaluation"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		modes     []string
		benchmark string
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score retrieval quality (P@5, NDCG@10, MAP)",
		Long: `Runs every benchmark query in each mode at depth 10 and prints per-query
P@5, NDCG@10 and AP plus per-mode MAP and mean NDCG@10. A result is relevant
when its text contains one of the query's keywords.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.buildEngine(cmd.Context())
			if err != nil {
				return err
			}

			path := benchmark
			if path == "" {
				path = a.cfg.Evaluation.BenchmarkPath
			}
			queries := evaluation.DefaultBenchmark()
			if path != "" {
				if queries, err = evaluation.LoadBenchmark(path); err != nil {
					return err
				}
			}

			ms := make([]mode.Mode, 0, len(modes))
			for _, s := range modes {
				ms = append(ms, mode.Parse(s))
			}

			report, err := evaluation.NewHarness(e.Searcher(), nil, a.logger).Run(cmd.Context(), ms, queries)
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}
			return report.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringSliceVar(&modes, "modes", []string{mode.Lexical.String(), mode.Semantic.String()},
		"modes to evaluate")
	cmd.Flags().StringVar(&benchmark, "benchmark", "", "YAML benchmark file (default: evaluation.benchmark_path or built-in)")
	return cmd
}
