package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenrisk/entity-screening/internal/domain/factor"
)

// classifiedID is one classification result in the classify command output.
type classifiedID struct {
	ID       string                `json:"id"`
	Label    string                `json:"label"`
	Category factor.Category       `json:"category"`
	Severity factor.Severity       `json:"severity"`
	Level    factor.Level          `json:"level,omitempty"`
	Type     factor.Type           `json:"type,omitempty"`
	Tier     factor.ResolutionTier `json:"tier"`
}

func newClassifyCmd(opts *RootOptions) *cobra.Command {
	var factorIDs string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify raw risk factor identifiers",
		Long:  "Resolve raw risk factor identifiers into human-readable labels, display\ncategories and severities, reporting which tier resolved each id.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := splitIDs(factorIDs)
			if len(args) > 0 {
				ids = append(ids, args...)
			}
			if len(ids) == 0 {
				return fmt.Errorf("no factor ids given; use --factors or positional arguments")
			}

			results := make([]classifiedID, 0, len(ids))
			for _, id := range ids {
				d, tier := factor.ClassifyWithTier(id)
				results = append(results, classifiedID{
					ID:       id,
					Label:    d.Label,
					Category: d.Category,
					Severity: d.Severity,
					Level:    d.Level,
					Type:     d.Type,
					Tier:     tier,
				})
			}

			return printResult(cmd, opts, results, func() string {
				var b strings.Builder
				for _, r := range results {
					fmt.Fprintf(&b, "%-40s %-20s %-10s %-10s %s\n", r.ID, r.Category, r.Severity, r.Tier, r.Label)
				}
				return strings.TrimRight(b.String(), "\n")
			})
		},
	}

	cmd.Flags().StringVar(&factorIDs, "factors", "", "comma-separated risk factor ids")

	return cmd
}
