package swatext

import "context"

// compileArchive builds the fetched client into a single statically
// linkable archive using the Go toolchain's c-archive buildmode, rooted at
// the client source inside the workspace. The GOPATH and module cache in
// env keep the build isolated from the host's global toolchain state.
//
// Returns the archive path, which is deterministic within the workspace.
func compileArchive(ctx context.Context, cfg *BuildConfig, ws *Workspace, clientRoot string, env map[string]string, result *BuildResult) (string, error) {
	archive := ws.ArchivePath()

	args := append([]string{"build", "-buildmode=c-archive"}, cfg.BuildFlags...)
	args = append(args, "-o", archive)

	c := Command{
		Name: cfg.goTool(),
		Args: args,
		Dir:  clientRoot,
		Env:  env,
	}

	if _, err := runStep(ctx, cfg, result, c); err != nil {
		return "", stepError(StepCompile, c, result.Output, err)
	}

	return archive, nil
}
