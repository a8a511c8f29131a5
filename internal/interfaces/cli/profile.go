package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/profilefile"
)

func newProfileCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and validate risk profile files",
	}

	cmd.AddCommand(
		newProfileValidateCmd(opts),
		newProfileShowCmd(opts),
	)

	return cmd
}

func newProfileValidateCmd(opts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate risk profile YAML files",
		Long:  "Parse, normalize and validate profile files. With --dir the whole\ndirectory is loaded and cross-file constraints are checked, including the\nsingle-default rule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := cliLogger(opts)
			if err != nil {
				return err
			}
			loader := profilefile.NewLoader(log)

			if dir != "" {
				profiles, err := loader.LoadDir(dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OK: %d profile(s) valid\n", len(profiles))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("no profile files given; pass file paths or --dir")
			}
			loaded := make([]*profile.RiskProfile, 0, len(args))
			for _, path := range args {
				p, err := loader.LoadFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				loaded = append(loaded, p)
			}
			if _, err := profile.DefaultProfile(loaded); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d profile(s) valid\n", len(loaded))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "validate every profile file in a directory")

	return cmd
}

func newProfileShowCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Show a normalized risk profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := cliLogger(opts)
			if err != nil {
				return err
			}
			p, err := profilefile.NewLoader(log).LoadFile(args[0])
			if err != nil {
				return err
			}

			return printResult(cmd, opts, p, func() string {
				var b strings.Builder
				fmt.Fprintf(&b, "id:          %s\n", p.ID)
				fmt.Fprintf(&b, "name:        %s\n", p.Name)
				fmt.Fprintf(&b, "default:     %t\n", p.IsDefault)
				fmt.Fprintf(&b, "scoring:     %t\n", p.RiskScoringEnabled)
				fmt.Fprintf(&b, "threshold:   %d\n", p.RiskThreshold)
				fmt.Fprintf(&b, "factors:     %d enabled\n", len(p.EnabledFactors))
				if len(p.RiskScores) > 0 {
					b.WriteString("scores:\n")
					for _, id := range p.EnabledFactors {
						if score, ok := p.RiskScores[id]; ok {
							fmt.Fprintf(&b, "  %-40s %d\n", id, score)
						}
					}
				}
				return strings.TrimRight(b.String(), "\n")
			})
		},
	}

	return cmd
}
