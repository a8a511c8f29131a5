package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenrisk/entity-screening/internal/domain/scoring"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/profilefile"
)

func newScoreCmd(opts *RootOptions) *cobra.Command {
	var (
		profilePath string
		factorIDs   string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score triggered risk factors against a profile file",
		Long:  "Filter the given risk factor ids against the profile's enabled set, sum\ntheir configured point values and report whether the total meets the\nprofile's risk threshold.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := splitIDs(factorIDs)
			if len(args) > 0 {
				ids = append(ids, args...)
			}
			if len(ids) == 0 {
				return fmt.Errorf("no factor ids given; use --factors or positional arguments")
			}

			log, err := cliLogger(opts)
			if err != nil {
				return err
			}
			p, err := profilefile.NewLoader(log).LoadFile(profilePath)
			if err != nil {
				return err
			}

			result := scoring.ScoreFiltered(ids, p)

			return printResult(cmd, opts, result, func() string {
				var b strings.Builder
				fmt.Fprintf(&b, "profile:    %s (%s)\n", p.Name, p.ID)
				fmt.Fprintf(&b, "total:      %d\n", result.TotalScore)
				fmt.Fprintf(&b, "threshold:  %d\n", result.Threshold)
				fmt.Fprintf(&b, "breach:     %t\n", result.MeetsThreshold)
				if len(result.TriggeredRiskFactors) > 0 {
					b.WriteString("factors:\n")
					for _, f := range result.TriggeredRiskFactors {
						fmt.Fprintf(&b, "  %-40s %d\n", f.ID, f.Score)
					}
				}
				return strings.TrimRight(b.String(), "\n")
			})
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "risk profile YAML file [REQUIRED]")
	cmd.Flags().StringVar(&factorIDs, "factors", "", "comma-separated risk factor ids")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}
