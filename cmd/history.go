package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/mfimport/internal/adapters/render/outcome"
	"github.com/bnema/mfimport/internal/domain"
)

const defaultHistoryLimit = 20

func newHistoryCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history [report-id]",
		Short: "List past import runs, or show one run in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				report, err := app.history.Get(cmd.Context(), domain.ReportID(args[0]))
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, report)
				}
				rendered, err := outcome.Report(report)
				if err != nil {
					return err
				}
				for _, o := range report.Outcomes {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), outcome.Line(o)); err != nil {
						return err
					}
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return err
			}

			summaries, err := app.history.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, summaries)
			}
			rendered, err := outcome.History(summaries)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
