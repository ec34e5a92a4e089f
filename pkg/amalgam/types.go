package amalgam

// Role tells the amalgamator which rules apply to an input.
type Role string

const (
	RolePrimary   Role = "primary"   // unfiltered, seeds the output header
	RoleAuxiliary Role = "auxiliary" // boilerplate-filtered
)

// Input is one file of the ordered file list.
type Input struct {
	Path string
	Role Role
}

// FileReport describes what one input contributed to the output.
type FileReport struct {
	Path                string    // Resolved input path.
	Role                Role      // Primary or auxiliary.
	DeclarationLines    int       // Lines written in phase 1.
	ImplementationLines int       // Lines written in phase 2.
	DroppedLines        int       // Boilerplate lines skipped across both phases.
	FinalState          ScanState // Scan state at end of file in phase 2.
}

// Report collects per-file results in file-list order.
type Report struct {
	Output string
	Files  []FileReport
}

// Totals sums declaration and implementation lines over all inputs.
func (r Report) Totals() (declarations, implementations int) {
	for _, f := range r.Files {
		declarations += f.DeclarationLines
		implementations += f.ImplementationLines
	}
	return declarations, implementations
}
