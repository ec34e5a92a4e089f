// File: pkg/amalgam/config.go
package amalgam

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"amalgam/pkg/boilerplate"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoPrimary     = errors.New("no primary file configured")
	ErrNoOutput      = errors.New("no output file configured")
	ErrOutputIsInput = errors.New("output file is also an input")
)

// Config holds the file list and exclusion set for one amalgamation.
type Config struct {
	Dir             string   `yaml:"dir"`                       // Base directory for relative paths.
	Primary         string   `yaml:"primary"`                   // File whose declarations open the output verbatim.
	Auxiliaries     []string `yaml:"auxiliaries"`               // Files merged after the primary, in order.
	Output          string   `yaml:"output"`                    // Destination, overwritten on every run.
	Boilerplate     []string `yaml:"boilerplate"`               // Exact lines dropped from auxiliary files.
	BoilerplateFile string   `yaml:"boilerplateFile,omitempty"` // Optional file with extra boilerplate lines.
	Workers         int      `yaml:"workers"`                   // Worker count for the inspection pass.
}

// DefaultConfig returns the layout of the displayer library.
func DefaultConfig() Config {
	return Config{
		Dir:     ".",
		Primary: "ArrayConverter.hpp",
		Auxiliaries: []string{
			"Displayer.hpp",
			"extra/BoxDisplayer.hpp",
			"extra/CsvDisplayer.hpp",
			"extra/ExtraDisplayer.hpp",
			"extra/JsonDisplayer.hpp",
		},
		Output:      "AllDisplayers.hpp",
		Boilerplate: boilerplate.Defaults(),
		Workers:     4,
	}
}

// LoadConfig reads a YAML config file over the defaults. Keys absent from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config for settings that cannot produce an output.
func (c Config) Validate() error {
	if c.Primary == "" {
		return ErrNoPrimary
	}
	if c.Output == "" {
		return ErrNoOutput
	}
	out := filepath.Clean(c.Resolve(c.Output))
	for _, in := range c.Inputs() {
		if filepath.Clean(in.Path) == out {
			return fmt.Errorf("%w: %s", ErrOutputIsInput, c.Output)
		}
	}
	return nil
}

// Resolve joins a relative path onto the configured base directory.
func (c Config) Resolve(path string) string {
	if filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Inputs returns the primary followed by the auxiliaries, paths resolved.
func (c Config) Inputs() []Input {
	inputs := make([]Input, 0, len(c.Auxiliaries)+1)
	inputs = append(inputs, Input{Path: c.Resolve(c.Primary), Role: RolePrimary})
	for _, aux := range c.Auxiliaries {
		inputs = append(inputs, Input{Path: c.Resolve(aux), Role: RoleAuxiliary})
	}
	return inputs
}

// BoilerplateSet builds the exclusion set from the inline list and the
// optional boilerplate file.
func (c Config) BoilerplateSet(logger *zap.Logger) (*boilerplate.Set, error) {
	set := boilerplate.NewSet(logger, c.Boilerplate...)
	if c.BoilerplateFile != "" {
		if err := set.LoadFile(c.Resolve(c.BoilerplateFile)); err != nil {
			return nil, fmt.Errorf("failed to load boilerplate file: %w", err)
		}
	}
	return set, nil
}

// YAML renders the config as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
