// File: pkg/amalgam/inspect.go
package amalgam

import (
	"fmt"

	"amalgam/pkg/boilerplate"

	"go.uber.org/zap"
)

// Inspection is the result of a read-only layout check of one input.
type Inspection struct {
	Input
	Binary              bool      // Content looks binary.
	Dividers            int       // Divider lines seen before the implementations region.
	DeclarationLines    int       // Lines before the first divider, boilerplate excluded.
	ImplementationLines int       // Lines the merge would copy in phase 2.
	FinalState          ScanState // Scan state reached at end of file.
	Err                 error     // Set when the file could not be inspected.
}

// Warning codes produced by Inspection.Warnings.
const (
	WarnNoDivider        = "no divider"
	WarnMissingSeparator = "missing blank separator"
	WarnBinary           = "binary content"
)

// Warnings lists the reasons this input would merge silently incomplete.
func (in Inspection) Warnings() []string {
	var warnings []string
	if in.Binary {
		warnings = append(warnings, WarnBinary)
	}
	switch in.FinalState {
	case Searching:
		warnings = append(warnings, WarnNoDivider)
	case Found:
		warnings = append(warnings, WarnMissingSeparator)
	}
	return warnings
}

// InspectFile scans one input the way the merge would, without writing anything.
func InspectFile(in Input, filter boilerplate.Matcher, logger *zap.Logger) (Inspection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	result := Inspection{Input: in}

	isBinary, err := isBinaryFile(in.Path)
	if err != nil {
		logger.Error("Failed to check if file is binary", zap.String("filePath", in.Path), zap.Error(err))
		return result, fmt.Errorf("failed to inspect %s: %w", in.Path, err)
	}
	result.Binary = isBinary

	state := Searching
	err = forEachLine(in.Path, logger, func(line string) bool {
		if in.Role == RoleAuxiliary && filter != nil && filter.Matches(line) {
			return true
		}
		if IsDivider(line) && state != Emitting {
			result.Dividers++
		}
		if result.Dividers == 0 {
			result.DeclarationLines++
		}
		var emit bool
		state, emit = state.Next(line)
		if emit {
			result.ImplementationLines++
		}
		return true
	})
	if err != nil {
		return result, fmt.Errorf("failed to inspect %s: %w", in.Path, err)
	}
	result.FinalState = state

	logger.Debug("Inspected file",
		zap.String("filePath", in.Path),
		zap.Bool("binary", result.Binary),
		zap.Int("dividers", result.Dividers),
		zap.Stringer("finalState", state))
	return result, nil
}
