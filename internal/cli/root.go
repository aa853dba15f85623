// Package cli implements the patchscout command line: search, predict, eval,
// serve and version. Commands share one lazily built application (config,
// logger, embedder chain, engine).
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/patchscout/internal/config"
)

const categoryHelp = `label filter, matched case-insensitively as a substring of the category
(e.g. "Bug Fix", "XP", "Combat", "Mobile", "Quest")`

// NewRootCmd builds the command tree. Output goes to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	return newRootCmd(&app{}, out)
}

func newRootCmd(a *app, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "patchscout",
		Short: "Search and classify game patch notes",
		Long: `patchscout indexes a corpus of patch notes for lexical (BM25) and semantic search
and predicts the category of new patch-note text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "config environment (config/<env>.yaml)")
	root.PersistentFlags().StringVar(&a.corpusPath, "corpus", "", "corpus file (.csv or .xlsx), overrides corpus.path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override: debug, info, warn, error")

	root.AddCommand(
		newSearchCmd(a),
		newPredictCmd(a),
		newEvalCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line with args and releases everything it opened.
func Execute(ctx context.Context, out io.Writer, args []string) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a, out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
