package swatext

import "context"

// ToolRequirement describes an external toolchain the build depends on.
//
// Each requirement carries a version probe that is run with its output
// discarded; a probe that cannot start or exits non-zero marks the
// toolchain missing. Remedy tells the operator where to obtain the tool.
type ToolRequirement struct {
	// Name is the tool binary name (e.g., "go", "swig").
	Name string

	// Probe is the argument list for the version/identity probe.
	Probe []string

	// Purpose is a human-readable description of why the tool is needed.
	Purpose string

	// Remedy points the operator at where to obtain the tool.
	Remedy string
}

// requiredTools returns the toolchains every build needs, with the
// configured binaries substituted.
func (c *BuildConfig) requiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:    c.goTool(),
			Probe:   []string{"version"},
			Purpose: "compiles the libswat client into a c-archive",
			Remedy:  "see https://golang.org",
		},
		{
			Name:    c.swigTool(),
			Probe:   []string{"-version"},
			Purpose: "generates Python glue source from the client interface file",
			Remedy:  "see http://www.swig.org",
		},
	}
}

// CheckToolchains verifies that every required toolchain is present and
// usable by running its version probe with output suppressed.
//
// This is a hard precondition: it runs before any filesystem mutation and a
// failure aborts the build with a *ToolchainMissingError carrying the
// remediation hint.
func CheckToolchains(ctx context.Context, cfg *BuildConfig) error {
	run := cfg.runner()

	for _, req := range cfg.requiredTools() {
		c := Command{
			Name:  req.Name,
			Args:  req.Probe,
			Quiet: true,
		}
		if _, err := run(ctx, c); err != nil {
			return &ToolchainMissingError{
				Tool:   req.Name,
				Remedy: req.Remedy,
				Err:    err,
			}
		}
	}

	return nil
}
