package lifecycle

// Phase is one ordered stage of turning a recipe into a packaged
// artifact. The set is closed; phases between SetVersion and Package run
// on a single linear path, ComputePackageID is independent of it.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseSetVersion
	PhaseValidate
	PhaseGenerate
	PhaseBuild
	PhasePackage
	PhaseDone

	// PhaseComputePackageID may run at any time, including before
	// SetVersion; it never participates in the linear sequence.
	PhaseComputePackageID
)

var phaseNames = map[Phase]string{
	PhaseIdle:             "idle",
	PhaseSetVersion:       "set-version",
	PhaseValidate:         "validate",
	PhaseGenerate:         "generate",
	PhaseBuild:            "build",
	PhasePackage:          "package",
	PhaseDone:             "done",
	PhaseComputePackageID: "compute-package-id",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}
