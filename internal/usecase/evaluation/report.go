package evaluation

import (
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
)

const queryColumnWidth = 28

// Render writes the per-query tables and the final per-mode scores as text.
func (r *Report) Render(w io.Writer) error {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nEVALUATION (NDCG@10 & MAP) run %s\n%s\n", rule, r.RunID, rule)
	for _, m := range r.Modes {
		fmt.Fprintf(&b, "\nMode: %s\n%s\n", strings.ToUpper(m.Mode.String()), thin)
		fmt.Fprintf(&b, "%-30s | %-8s | %-8s | %-8s\n%s\n", "Query", "P@5", "NDCG@10", "AP", thin)
		for _, q := range m.Queries {
			fmt.Fprintf(&b, "%-30s | %-8.2f | %-8.2f | %-8.2f\n", truncate(q.Query, queryColumnWidth), q.P5, q.NDCG, q.AP)
		}
	}

	fmt.Fprintf(&b, "\n%s\nFINAL SCORES\n%s\n", rule, rule)
	for _, m := range r.Modes {
		fmt.Fprintf(&b, "MODE: %s\n", strings.ToUpper(m.Mode.String()))
		fmt.Fprintf(&b, "  > Mean Average Precision (MAP): %.4f\n", m.MAP)
		fmt.Fprintf(&b, "  > Average NDCG@10:              %.4f\n\n", m.MeanNDCG)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ForMode returns the report for m, if it was evaluated.
func (r *Report) ForMode(m mode.Mode) (ModeReport, bool) {
	for _, mr := range r.Modes {
		if mr.Mode == m {
			return mr, true
		}
	}
	return ModeReport{}, false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
