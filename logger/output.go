package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
//	0 (default) - job handle, cancellation confirmation, errors
//	1 (-v)      - + operation summaries, which config files were merged
//	2 (-vv)     - + HTTP call details, timing, normalized job spec
//	3 (-vvv)    - + internal flow (client and credential store setup)
//	4 (-vvvv)   - + full request/response bodies

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 1 (-v) - Informational
	OutputOperationInfo OutputCategory = iota // High-level operation summaries
	OutputConfig        // Config files merged

	// Level 2 (-vv) - Detailed
	OutputTiming    // Request timing
	OutputHTTPCalls // Requests made to the scheduler
	OutputJobSpec   // Normalized job specification

	// Level 3 (-vvv) - Debug
	OutputInternalOp // Internal operation flow

	// Level 4 (-vvvv) - Full dump
	OutputRequestBody  // Full request bodies
	OutputResponseBody // Full response bodies
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputOperationInfo: VerbosityInfo,
	OutputConfig:        VerbosityInfo,

	OutputTiming:    VerbosityDebug,
	OutputHTTPCalls: VerbosityDebug,
	OutputJobSpec:   VerbosityDebug,

	OutputInternalOp: VerbosityTrace,

	OutputRequestBody:  VerbosityAll,
	OutputResponseBody: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}
