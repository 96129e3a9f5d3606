package swatext

import "go.uber.org/zap"

// Defaults for the libswat source dependency. All three can be overridden
// through BuildConfig fields, a YAML config file, or the environment
// (see ApplyEnvironment).
const (
	DefaultClientRoot = "gitlab.sas.com/kesmit/go-libswat"
	DefaultFetchFlags = "-insecure"
	DefaultModuleName = "pyswat"
)

// BuildConfig contains configuration for one extension build.
//
// Source and output paths:
//   - ClientRoot: import path of the libswat source dependency; also the
//     directory the fetch step populates under the workspace GOPATH
//   - DestPath: directory the final extension module is installed into
//
// Toolchain selection:
//   - GoTool, SwigTool, PythonTool: executables used for the native build,
//     interface generation and the standard link step (default: go, swig,
//     python)
//
// Build behavior:
//   - FetchFlags: extra arguments for the dependency fetch command
//   - BuildFlags: extra arguments for the archive compile command
//   - Plat: packaging platform string; on macOS its version field becomes
//     the deployment target
//   - Platform: raw platform identifier to classify; defaults to the host
//   - Env: extra environment variables merged into every invocation
//
// Logger and Runner are optional; a nop logger and the real subprocess
// runner are used when unset.
type BuildConfig struct {
	ClientRoot string `yaml:"client_root"`
	DestPath   string `yaml:"dest_path"`
	ModuleName string `yaml:"module"`

	GoTool     string `yaml:"go_tool"`
	SwigTool   string `yaml:"swig_tool"`
	PythonTool string `yaml:"python_tool"`

	FetchFlags []string          `yaml:"fetch_flags"`
	BuildFlags []string          `yaml:"build_flags"`
	Plat       string            `yaml:"plat"`
	Platform   string            `yaml:"platform"`
	Env        map[string]string `yaml:"env"`

	Verbose bool `yaml:"verbose"`

	Logger *zap.Logger `yaml:"-"`
	Runner Runner      `yaml:"-"`
}

// BuildResult contains the output and status of one extension build.
//
// Output holds every echoed command line and every line the toolchains
// printed, in order. Diagnostics holds non-fatal conditions (currently only
// a fully failed dependency fetch) that did not abort the pipeline.
type BuildResult struct {
	Success       bool     // True if the pipeline completed
	ExtensionPath string   // Installed extension module, valid when Success
	Output        []string // Lines of output from the build steps
	Diagnostics   []string // Non-fatal conditions recorded during the build
	Error         error    // Error if the build failed, nil otherwise
}

func (c *BuildConfig) clientRoot() string {
	if c.ClientRoot != "" {
		return c.ClientRoot
	}
	return DefaultClientRoot
}

func (c *BuildConfig) moduleName() string {
	if c.ModuleName != "" {
		return c.ModuleName
	}
	return DefaultModuleName
}

func (c *BuildConfig) goTool() string {
	if c.GoTool != "" {
		return c.GoTool
	}
	return "go"
}

func (c *BuildConfig) swigTool() string {
	if c.SwigTool != "" {
		return c.SwigTool
	}
	return "swig"
}

func (c *BuildConfig) pythonTool() string {
	if c.PythonTool != "" {
		return c.PythonTool
	}
	return "python"
}

func (c *BuildConfig) runner() Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return runSystem
}

func (c *BuildConfig) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}
