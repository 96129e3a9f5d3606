package swatext

import (
	"context"
	"runtime"

	"go.uber.org/zap"
)

// ExtensionBuilder runs the full build pipeline for the _pyswat extension
// module.
//
// The pipeline is single-threaded and strictly sequential; each external
// toolchain invocation runs to completion before the next step starts. All
// intermediate state lives in a freshly acquired Workspace that is released
// on every exit path. Only the installed extension module survives.
type ExtensionBuilder struct {
	cfg *BuildConfig
}

// NewExtensionBuilder creates a builder for the given configuration.
func NewExtensionBuilder(cfg *BuildConfig) *ExtensionBuilder {
	return &ExtensionBuilder{cfg: cfg}
}

// Build runs toolchain validation, staging, fetch, interface generation,
// archive compilation, linking and installation, in that order.
//
// Returns:
//   - BuildResult with Success=true and ExtensionPath set on success
//   - BuildResult with Success=false and Error on failure
//
// The result's Output field carries every echoed command and every line the
// toolchains printed, in order, for diagnosis.
func (b *ExtensionBuilder) Build(ctx context.Context) (*BuildResult, error) {
	cfg := b.cfg
	log := cfg.logger()
	result := &BuildResult{}

	fail := func(err error) (*BuildResult, error) {
		result.Error = err
		return result, err
	}

	// Hard precondition: nothing runs, and nothing is staged, until the
	// toolchains probe clean.
	if err := CheckToolchains(ctx, cfg); err != nil {
		return fail(err)
	}

	profile := ClassifyPlatform(b.platform())
	log.Info("starting extension build",
		zap.String("profile", string(profile)),
		zap.String("client_root", cfg.clientRoot()))

	ws, err := AcquireWorkspace()
	if err != nil {
		return fail(err)
	}
	defer func() {
		if relErr := ws.Release(); relErr != nil {
			log.Warn("workspace release failed", zap.Error(relErr))
		}
	}()

	env := ws.BuildEnv()
	for key, value := range cfg.Env {
		env[key] = value
	}
	if profile == ProfileMacOS {
		darwinOverrides(env, cfg.plat())
	}

	clientRoot := ws.ClientRoot(cfg.clientRoot())

	fetchDependency(ctx, cfg, ws, env, result)

	generated, err := generateInterface(ctx, cfg, ws, clientRoot, env, result)
	if err != nil {
		return fail(err)
	}

	archive, err := compileArchive(ctx, cfg, ws, clientRoot, env, result)
	if err != nil {
		return fail(err)
	}

	spec := NewExtensionSpec(cfg.moduleName())
	spec.AddSource(generated)
	for _, flag := range warningSuppressionFlags {
		spec.AddCompileArg(flag)
	}
	spec.AddIncludeDir(clientRoot)
	spec.AddLinkArg(archive)

	linker := LinkerFor(profile)
	log.Info("linking extension", zap.String("strategy", linker.Name()))

	built, err := linker.Link(ctx, cfg, spec, env, ws.SrcDir, result)
	if err != nil {
		return fail(err)
	}

	// The extension module is the only artifact that outlives the
	// workspace; it is copied out before the deferred release runs.
	installed, err := installExtension(built, cfg.DestPath)
	if err != nil {
		return fail(err)
	}

	result.ExtensionPath = installed
	result.Success = true
	log.Info("extension build complete", zap.String("extension", installed))
	return result, nil
}

func (b *ExtensionBuilder) platform() string {
	if b.cfg.Platform != "" {
		return b.cfg.Platform
	}
	return runtime.GOOS
}
