// File: pkg/amalgam/layout.go
package amalgam

import (
	"bufio"
	"strings"
)

// DividerSentinel separates the declarations region of an input file from its
// implementations region.
const DividerSentinel = "// ============================================================"

// Separator is the content of the single blank line that must follow the
// divider for the implementations region to begin.
const Separator = ""

// Banner is written between the declarations and the implementations of the
// merged output. It never depends on the inputs.
var Banner = []string{
	DividerSentinel,
	DividerSentinel,
	"// ===================== Implementations ======================",
	DividerSentinel,
	DividerSentinel,
}

// WriteBanner writes a blank line, the banner and another blank line.
func WriteBanner(w *bufio.Writer) error {
	if _, err := w.WriteString("\n"); err != nil {
		return err
	}
	for _, line := range Banner {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

// ScanState tracks where a phase-2 scan is within a single file.
type ScanState int

const (
	Searching ScanState = iota // before the divider
	Found                      // divider seen, waiting for the blank separator
	Emitting                   // copying the implementations region
)

func (s ScanState) String() string {
	switch s {
	case Searching:
		return "searching"
	case Found:
		return "found"
	case Emitting:
		return "emitting"
	default:
		return "unknown"
	}
}

// Next applies one line to the state machine and reports whether the line
// belongs to the implementations region.
func (s ScanState) Next(line string) (ScanState, bool) {
	if s == Emitting {
		return Emitting, true
	}
	content := lineContent(line)
	if content == DividerSentinel {
		return Found, false
	}
	if s == Found && content == Separator {
		return Emitting, false
	}
	return s, false
}

// IsDivider reports whether a raw line is the divider sentinel.
func IsDivider(line string) bool {
	return lineContent(line) == DividerSentinel
}

// lineContent strips the line terminator so lines are compared by content.
func lineContent(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
