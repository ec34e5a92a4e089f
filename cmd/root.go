package cmd

import (
	"fmt"

	"amalgam/pkg/amalgam"
	"amalgam/pkg/logging"
	"amalgam/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options holds the flags shared by every command.
type options struct {
	logger          *zap.Logger
	configPath      string
	dir             string
	debug           bool
	primary         string
	auxiliaries     []string
	output          string
	boilerplateFile string
	noWarn          bool
}

// NewRootCmd builds the command tree. Running the root command merges the
// configured headers.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := &options{logger: logger}

	rootCmd := &cobra.Command{
		Use:   "amalgam",
		Short: "amalgam merges a header-only library into a single header",
		Long: `amalgam merges a primary header and a list of auxiliary headers into one
header. Every declarations region is written first, then an Implementations
banner, then every implementations region, in file-list order.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.debug {
				return nil
			}
			if err := logging.Setup(true, "amalgam", version.Version); err != nil {
				return fmt.Errorf("failed to initialize debug logger: %w", err)
			}
			opts.logger = logging.Logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	flags.StringVarP(&opts.dir, "dir", "d", "", "Base directory for relative paths")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVarP(&opts.primary, "primary", "p", "", "Primary header file")
	flags.StringArrayVarP(&opts.auxiliaries, "aux", "a", nil, "Auxiliary header file, repeatable and ordered")
	flags.StringVarP(&opts.output, "output", "o", "", "Output header file")
	flags.StringVar(&opts.boilerplateFile, "boilerplate-file", "", "File listing extra boilerplate lines")
	rootCmd.Flags().BoolVar(&opts.noWarn, "no-warn", false, "Skip the input layout warning pass")

	rootCmd.AddCommand(newCheckCmd(opts), newConfigCmd(opts), newVersionCmd())
	return rootCmd
}

// Execute runs the root command with the given logger.
func Execute(logger *zap.Logger) error {
	return NewRootCmd(logger).Execute()
}

// loadConfig builds the effective config: defaults, then the config file,
// then any flags set on the command line.
func (o *options) loadConfig(cmd *cobra.Command) (amalgam.Config, error) {
	cfg := amalgam.DefaultConfig()
	if o.configPath != "" {
		loaded, err := amalgam.LoadConfig(o.configPath)
		if err != nil {
			o.logger.Error("Failed to load config", zap.String("config", o.configPath), zap.Error(err))
			return amalgam.Config{}, err
		}
		cfg = loaded
		o.logger.Debug("Loaded config", zap.String("config", o.configPath))
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = o.dir
	}
	if flags.Changed("primary") {
		cfg.Primary = o.primary
	}
	if flags.Changed("aux") {
		cfg.Auxiliaries = o.auxiliaries
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("boilerplate-file") {
		cfg.BoilerplateFile = o.boilerplateFile
	}

	if err := cfg.Validate(); err != nil {
		o.logger.Error("Invalid config", zap.Error(err))
		return amalgam.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
