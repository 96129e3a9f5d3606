package swatext

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// warningSuppressionFlags quiet the noise gcc/clang produce for
// swig-generated glue. They suppress warnings, never errors.
var warningSuppressionFlags = []string{
	"-Wno-unused-variable",
	"-Wno-unused-label",
	"-Wno-unused-function",
	"-Wno-visibility",
	"-Wno-strict-prototypes",
}

// ExtensionSpec describes the extension module to link: the glue sources,
// include directories and compiler/linker arguments accumulated by the
// pipeline.
//
// All Add methods are idempotent - adding the same source, directory or
// flag twice leaves exactly one occurrence - so several build passes can
// share one spec without duplicating link arguments.
type ExtensionSpec struct {
	Module      string
	Sources     []string
	IncludeDirs []string
	CompileArgs []string
	LinkArgs    []string
}

// NewExtensionSpec creates a spec for the named extension module.
func NewExtensionSpec(module string) *ExtensionSpec {
	return &ExtensionSpec{Module: module}
}

// AddSource records a glue source file.
func (s *ExtensionSpec) AddSource(path string) {
	s.Sources = appendUnique(s.Sources, path)
}

// AddIncludeDir records an include directory.
func (s *ExtensionSpec) AddIncludeDir(dir string) {
	s.IncludeDirs = appendUnique(s.IncludeDirs, dir)
}

// AddCompileArg records an extra compiler argument.
func (s *ExtensionSpec) AddCompileArg(arg string) {
	s.CompileArgs = appendUnique(s.CompileArgs, arg)
}

// AddLinkArg records an extra link argument (e.g., the client archive).
func (s *ExtensionSpec) AddLinkArg(arg string) {
	s.LinkArgs = appendUnique(s.LinkArgs, arg)
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

// Linker produces the final loadable extension module from a prepared
// ExtensionSpec. Two mutually exclusive strategies exist, selected once by
// platform profile.
type Linker interface {
	// Name returns the human-readable strategy name, used in logs.
	Name() string

	// Link assembles the extension module in outDir and returns its path.
	Link(ctx context.Context, cfg *BuildConfig, spec *ExtensionSpec, env map[string]string, outDir string, result *BuildResult) (string, error)
}

// LinkerFor selects the link strategy for a profile. Windows needs a manual
// compiler invocation; everything else goes through the interpreter's
// standard extension-build path.
func LinkerFor(profile Profile) Linker {
	if profile == ProfileWindows {
		return &ManualLinker{}
	}
	return &StandardLinker{}
}

// interpreterInfo is the build configuration queried from the active Python
// interpreter before linking.
type interpreterInfo struct {
	Prefix    string `json:"prefix"`
	Version   []int  `json:"version"`
	ExtSuffix string `json:"ext_suffix"`
	Include   string `json:"include"`
	LDShared  string `json:"ldshared"`
}

const interpreterProbe = `import json, sys, sysconfig
print(json.dumps({
    "prefix": getattr(sys, "real_prefix", sys.prefix),
    "version": [sys.version_info[0], sys.version_info[1]],
    "ext_suffix": sysconfig.get_config_var("EXT_SUFFIX") or ".so",
    "include": sysconfig.get_path("include"),
    "ldshared": sysconfig.get_config_var("LDSHARED") or "",
}))`

// queryInterpreter asks the configured interpreter for its extension-build
// configuration. The probe's stdout must be a single JSON object.
func queryInterpreter(ctx context.Context, cfg *BuildConfig, env map[string]string, result *BuildResult) (*interpreterInfo, error) {
	c := Command{
		Name: cfg.pythonTool(),
		Args: []string{"-c", interpreterProbe},
		Env:  env,
	}

	out, err := cfg.runner()(ctx, c)
	if err != nil {
		return nil, stepError(StepLink, c, result.Output, err)
	}

	info := &interpreterInfo{}
	if err := json.Unmarshal(out, info); err != nil {
		return nil, stepError(StepLink, c, result.Output,
			fmt.Errorf("parsing interpreter configuration: %w", err))
	}
	if len(info.Version) < 2 {
		return nil, stepError(StepLink, c, result.Output,
			fmt.Errorf("interpreter reported no version"))
	}

	return info, nil
}

// StandardLinker delegates to the interpreter's own extension link command
// (LDSHARED), the same command the host build tool uses for its standard
// extension-build path.
type StandardLinker struct{}

// Name returns the strategy name
func (l *StandardLinker) Name() string {
	return "Standard"
}

// Link runs the interpreter's link command over the prepared spec.
func (l *StandardLinker) Link(ctx context.Context, cfg *BuildConfig, spec *ExtensionSpec, env map[string]string, outDir string, result *BuildResult) (string, error) {
	info, err := queryInterpreter(ctx, cfg, env, result)
	if err != nil {
		return "", err
	}

	ldshared := strings.Fields(info.LDShared)
	if len(ldshared) == 0 {
		ldshared = []string{"cc", "-shared"}
	}

	out := filepath.Join(outDir, "_"+spec.Module+info.ExtSuffix)

	args := append([]string{}, ldshared[1:]...)
	args = append(args, spec.CompileArgs...)
	args = append(args, "-I"+info.Include)
	for _, dir := range spec.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	args = append(args, spec.Sources...)
	args = append(args, spec.LinkArgs...)
	args = append(args, "-o", out)

	c := Command{
		Name: ldshared[0],
		Args: args,
		Env:  env,
	}

	if _, err := runStep(ctx, cfg, result, c); err != nil {
		return "", stepError(StepLink, c, result.Output, err)
	}

	return out, nil
}

// ManualLinker constructs the full compiler/linker invocation directly,
// bypassing the interpreter's build path. The standard path cannot be
// parameterized sufficiently for the Windows link requirements, so the
// command carries everything explicitly: sources, archive, the 64-bit
// define, include directories, interpreter library flags and shared-library
// output flags.
type ManualLinker struct{}

// Name returns the strategy name
func (l *ManualLinker) Name() string {
	return "Manual"
}

// Link runs an explicit gcc invocation over the prepared spec.
func (l *ManualLinker) Link(ctx context.Context, cfg *BuildConfig, spec *ExtensionSpec, env map[string]string, outDir string, result *BuildResult) (string, error) {
	info, err := queryInterpreter(ctx, cfg, env, result)
	if err != nil {
		return "", err
	}

	out := filepath.Join(outDir, "_"+spec.Module+".pyd")

	args := append([]string{}, spec.Sources...)
	args = append(args, spec.LinkArgs...)
	args = append(args, "-D", "MS_WIN64", "-O2")
	args = append(args, "-I"+info.Include)
	for _, dir := range spec.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	args = append(args, spec.CompileArgs...)
	args = append(args, pythonLibraryFlags(info.Prefix, info.Version[0], info.Version[1])...)
	args = append(args, "-fpic", "-shared", "-o", out)

	c := Command{
		Name: "gcc",
		Args: args,
		Env:  env,
	}

	if _, err := runStep(ctx, cfg, result, c); err != nil {
		return "", stepError(StepLink, c, result.Output, err)
	}

	return out, nil
}
