package swatext

import (
	"context"

	"go.uber.org/zap"
)

// fetchAttempts bounds the dependency fetch retry. Transient network and
// proxy failures are common for this fetch, so the first failure is
// swallowed and the command is re-run once with identical arguments.
const fetchAttempts = 2

// fetchDependency retrieves the libswat source into the workspace GOPATH.
//
// A fetch that fails on every attempt is recorded as a diagnostic on the
// result but does not abort the pipeline; the interface-generation step
// that follows fails hard when the source is actually absent.
func fetchDependency(ctx context.Context, cfg *BuildConfig, ws *Workspace, env map[string]string, result *BuildResult) {
	args := append([]string{"get", "-d"}, cfg.fetchFlags()...)
	args = append(args, cfg.clientRoot())

	c := Command{
		Name: cfg.goTool(),
		Args: args,
		Dir:  ws.SrcDir,
		Env:  env,
	}

	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		_, err := runStep(ctx, cfg, result, c)
		if err == nil {
			return
		}
		lastErr = err
		cfg.logger().Warn("dependency fetch attempt failed",
			zap.Int("attempt", attempt),
			zap.String("root", cfg.clientRoot()),
			zap.Error(err))
	}

	diag := stepError(StepFetch, c, result.Output, lastErr)
	result.Diagnostics = append(result.Diagnostics, diag.Error())
}
