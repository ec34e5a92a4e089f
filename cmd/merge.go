package cmd

import (
	"fmt"

	"amalgam/pkg/amalgam"
	"amalgam/pkg/boilerplate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runMerge loads the config and writes the merged header.
func runMerge(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}

	filter, err := cfg.BoilerplateSet(opts.logger)
	if err != nil {
		opts.logger.Error("Failed to build boilerplate set", zap.Error(err))
		return err
	}

	if !opts.noWarn {
		warnLayout(cfg, filter, opts.logger)
	}

	if _, err := amalgam.New(cfg, filter, opts.logger).Run(); err != nil {
		opts.logger.Error("Failed to amalgamate headers", zap.Error(err))
		return fmt.Errorf("amalgamation failed: %w", err)
	}
	return nil
}

// warnLayout logs inputs that would contribute nothing to one of the phases.
// It never stops the merge; unreadable inputs are reported by the merge itself.
func warnLayout(cfg amalgam.Config, filter boilerplate.Matcher, logger *zap.Logger) {
	inspections, err := amalgam.InspectFilesConcurrently(cfg.Inputs(), cfg.Workers, filter, logger)
	if err != nil {
		logger.Warn("Layout check incomplete", zap.Error(err))
	}
	for _, in := range inspections {
		if in.Err != nil {
			continue
		}
		if warnings := in.Warnings(); len(warnings) > 0 {
			logger.Warn("Input does not follow the divider layout",
				zap.String("filePath", in.Path),
				zap.String("role", string(in.Role)),
				zap.Strings("warnings", warnings))
		}
	}
}
