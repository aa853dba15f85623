package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPredictCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "predict <text>",
		Short: "Predict the category of a patch note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			label, err := e.Predict(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("predict failed: %w", err)
			}
			cmd.Printf("Prediction: [%s]\n", label)
			return nil
		},
	}
}
