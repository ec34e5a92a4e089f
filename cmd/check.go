package cmd

import (
	"fmt"
	"strings"

	"amalgam/pkg/amalgam"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newCheckCmd reports inputs that the merge would silently leave incomplete.
func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every input follows the divider layout",
		Long: `Check scans every input without writing the output. An input is flagged when
it has no divider line, when its divider is not followed by a blank line, or
when its content looks binary. The command fails if any input is flagged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			filter, err := cfg.BoilerplateSet(opts.logger)
			if err != nil {
				return err
			}

			inspections, err := amalgam.InspectFilesConcurrently(cfg.Inputs(), cfg.Workers, filter, opts.logger)
			if err != nil {
				opts.logger.Error("Failed to inspect inputs", zap.Error(err))
				return fmt.Errorf("check failed: %w", err)
			}

			out := cmd.OutOrStdout()
			flagged := 0
			for _, in := range inspections {
				warnings := in.Warnings()
				if len(warnings) == 0 {
					fmt.Fprintf(out, "ok      %s (%d declaration lines, %d implementation lines)\n",
						in.Path, in.DeclarationLines, in.ImplementationLines)
					continue
				}
				flagged++
				fmt.Fprintf(out, "warning %s: %s\n", in.Path, strings.Join(warnings, ", "))
			}

			if flagged > 0 {
				return fmt.Errorf("%d of %d inputs do not follow the divider layout", flagged, len(inspections))
			}
			return nil
		},
	}
}
