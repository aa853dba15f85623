package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
	"github.com/kailas-cloud/patchscout/internal/domain/search/result"
)

type searchOptions struct {
	mode  string
	label string
	topK  int
	json  bool
}

type searchHit struct {
	Rank  int     `json:"rank"`
	Doc   int     `json:"doc"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

func newSearchCmd(a *app) *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search patch notes",
		Long: `Ranks patch notes against a query. Lexical mode (aliases: keyword, bm25) uses BM25
term matching; any other mode, including the default, uses vector similarity.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			topK := opts.topK
			if topK == 0 {
				topK = a.cfg.Search.DefaultTopK
			}
			query := strings.Join(args, " ")
			m := mode.Parse(opts.mode)

			list, err := e.Search(cmd.Context(), query, m, opts.label, topK)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if opts.json {
				return outputSearchJSON(cmd, list)
			}
			outputSearchText(cmd, query, opts.label, list)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", mode.Semantic.String(), "search mode: lexical or semantic")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", categoryHelp)
	cmd.Flags().IntVarP(&opts.topK, "top-k", "k", 0, "number of results (default: search.default_top_k)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output results as JSON")
	return cmd
}

func outputSearchJSON(cmd *cobra.Command, list result.List) error {
	hits := make([]searchHit, len(list.Items()))
	for i, r := range list.Items() {
		hits[i] = searchHit{Rank: i + 1, Doc: r.Doc(), Label: r.Label(), Score: r.Score(), Text: r.Text()}
	}
	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, query, label string, list result.List) {
	header := fmt.Sprintf("--- Results for '%s'", query)
	if label != "" {
		header += fmt.Sprintf(" (Filter: %s)", label)
	}
	cmd.Println(header + " ---")

	if list.Delivered() == 0 {
		cmd.Println("No results found.")
		return
	}
	for i, r := range list.Items() {
		cmd.Printf("[%d] [%s] %s (%.4f)\n", i+1, r.Label(), r.Text(), r.Score())
	}
	if list.Shortfall() {
		cmd.Printf("(%d of %d requested; the filter matched fewer candidates)\n", list.Delivered(), list.Requested())
	}
}
