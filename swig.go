package swatext

import (
	"context"
	"path/filepath"
)

// generateInterface runs swig against the client's interface-description
// file and returns the path of the generated glue source.
//
// The generator is invoked in Python binding mode with builtin types; its
// output lands at a deterministic path inside the workspace. A generator
// failure means the interface file and the fetched source disagree, which
// no retry can fix, so it is fatal.
func generateInterface(ctx context.Context, cfg *BuildConfig, ws *Workspace, clientRoot string, env map[string]string, result *BuildResult) (string, error) {
	generated := filepath.Join(ws.SrcDir, cfg.moduleName()+".c")

	c := Command{
		Name: cfg.swigTool(),
		Args: []string{
			"-outdir", ws.SrcDir,
			"-python", "-builtin",
			"-module", cfg.moduleName(),
			"-o", generated,
			filepath.Join(clientRoot, "swat.i"),
		},
		Dir: clientRoot,
		Env: env,
	}

	if _, err := runStep(ctx, cfg, result, c); err != nil {
		return "", stepError(StepGenerate, c, result.Output, err)
	}

	return generated, nil
}
