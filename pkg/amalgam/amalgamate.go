// File: pkg/amalgam/amalgamate.go
package amalgam

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"amalgam/pkg/boilerplate"

	"go.uber.org/zap"
)

// Amalgamator merges a primary header and its auxiliary headers into a single
// header: every declarations region first, then the banner, then every
// implementations region, each phase in file-list order.
type Amalgamator struct {
	cfg    Config
	filter boilerplate.Matcher
	logger *zap.Logger
}

// New creates an Amalgamator. A nil filter drops nothing.
func New(cfg Config, filter boilerplate.Matcher, logger *zap.Logger) *Amalgamator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if filter == nil {
		filter = boilerplate.NewSet(logger)
	}
	return &Amalgamator{cfg: cfg, filter: filter, logger: logger}
}

// Run creates (or truncates) the output file and writes the merged header to it.
func (a *Amalgamator) Run() (Report, error) {
	startTime := time.Now()
	output := a.cfg.Resolve(a.cfg.Output)
	a.logger.Info("Starting amalgamation",
		zap.String("primary", a.cfg.Primary),
		zap.Int("auxiliaries", len(a.cfg.Auxiliaries)),
		zap.String("output", output))

	if err := ensureDirectory(filepath.Dir(output), a.logger); err != nil {
		return Report{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	outFile, err := os.Create(output)
	if err != nil {
		a.logger.Error("Failed to create output file", zap.String("file", output), zap.Error(err))
		return Report{}, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			a.logger.Error("Failed to close output file", zap.String("file", output), zap.Error(err))
		}
	}()

	report, err := a.Amalgamate(outFile)
	report.Output = output
	if err != nil {
		return report, err
	}

	declarations, implementations := report.Totals()
	a.logger.Info("Amalgamation completed",
		zap.String("output", output),
		zap.Int("declarationLines", declarations),
		zap.Int("implementationLines", implementations),
		zap.Duration("elapsed", time.Since(startTime)))
	return report, nil
}

// Amalgamate writes the merged header to w. Buffered content written before a
// failure is still flushed.
func (a *Amalgamator) Amalgamate(w io.Writer) (Report, error) {
	writer := bufio.NewWriter(w)
	inputs := a.cfg.Inputs()
	report := Report{Files: make([]FileReport, len(inputs))}
	for i, in := range inputs {
		report.Files[i] = FileReport{Path: in.Path, Role: in.Role}
	}

	err := a.amalgamate(writer, inputs, &report)
	if flushErr := writer.Flush(); flushErr != nil && err == nil {
		a.logger.Error("Failed to flush output", zap.Error(flushErr))
		err = fmt.Errorf("failed to flush output: %w", flushErr)
	}
	return report, err
}

func (a *Amalgamator) amalgamate(w *bufio.Writer, inputs []Input, report *Report) error {
	for i, in := range inputs {
		if err := a.collectDeclarations(w, in, &report.Files[i]); err != nil {
			return fmt.Errorf("failed to collect declarations: %w", err)
		}
	}

	if err := WriteBanner(w); err != nil {
		a.logger.Error("Failed to write banner", zap.Error(err))
		return fmt.Errorf("failed to write banner: %w", err)
	}

	for i, in := range inputs {
		if err := a.collectImplementations(w, in, &report.Files[i]); err != nil {
			return fmt.Errorf("failed to collect implementations: %w", err)
		}
	}
	return nil
}

// collectDeclarations copies the lines preceding the first divider. Auxiliary
// files are filtered; the primary is copied verbatim.
func (a *Amalgamator) collectDeclarations(w *bufio.Writer, in Input, fr *FileReport) error {
	var writeErr error
	err := forEachLine(in.Path, a.logger, func(line string) bool {
		if in.Role == RoleAuxiliary && a.filter.Matches(line) {
			fr.DroppedLines++
			return true
		}
		if IsDivider(line) {
			return false
		}
		if _, writeErr = w.WriteString(line); writeErr != nil {
			return false
		}
		fr.DeclarationLines++
		return true
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		a.logger.Error("Failed to write declarations", zap.String("filePath", in.Path), zap.Error(writeErr))
		return writeErr
	}

	a.logger.Debug("Collected declarations",
		zap.String("filePath", in.Path),
		zap.String("role", string(in.Role)),
		zap.Int("lines", fr.DeclarationLines))
	return nil
}

// collectImplementations runs a fresh scan over the file and copies the lines
// of its implementations region. Boilerplate is dropped from auxiliary files
// before the line reaches the scanner.
func (a *Amalgamator) collectImplementations(w *bufio.Writer, in Input, fr *FileReport) error {
	state := Searching
	var writeErr error
	err := forEachLine(in.Path, a.logger, func(line string) bool {
		if in.Role == RoleAuxiliary && a.filter.Matches(line) {
			fr.DroppedLines++
			return true
		}
		var emit bool
		state, emit = state.Next(line)
		if !emit {
			return true
		}
		if _, writeErr = w.WriteString(line); writeErr != nil {
			return false
		}
		fr.ImplementationLines++
		return true
	})
	fr.FinalState = state
	if err != nil {
		return err
	}
	if writeErr != nil {
		a.logger.Error("Failed to write implementations", zap.String("filePath", in.Path), zap.Error(writeErr))
		return writeErr
	}

	a.logger.Debug("Collected implementations",
		zap.String("filePath", in.Path),
		zap.String("role", string(in.Role)),
		zap.Int("lines", fr.ImplementationLines),
		zap.Stringer("finalState", state))
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
