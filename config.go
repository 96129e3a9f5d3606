package swatext

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns a BuildConfig with the stock defaults. Fields left
// zero fall back to the package defaults at use time, so an empty config is
// also valid.
func DefaultConfig() *BuildConfig {
	return &BuildConfig{
		ClientRoot: DefaultClientRoot,
		ModuleName: DefaultModuleName,
	}
}

// LoadConfig reads a YAML build configuration file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading build config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing build config %s: %w", path, err)
	}

	return cfg, nil
}

// Environment variables consulted by ApplyEnvironment.
const (
	EnvClientRoot = "LIBSWAT_ROOT"
	EnvFetchFlags = "GO_GET_FLAGS"
	EnvBuildFlags = "GO_BUILD_FLAGS"
	EnvPlat       = "PLAT"
)

// ApplyEnvironment overlays the build-time environment overrides onto the
// config. Only variables that are actually set replace config values, so
// precedence is environment over file over defaults.
func (c *BuildConfig) ApplyEnvironment() {
	if root, ok := os.LookupEnv(EnvClientRoot); ok {
		c.ClientRoot = root
	}
	if flags, ok := os.LookupEnv(EnvFetchFlags); ok {
		c.FetchFlags = strings.Fields(flags)
	}
	if flags, ok := os.LookupEnv(EnvBuildFlags); ok {
		c.BuildFlags = strings.Fields(flags)
	}
	if plat, ok := os.LookupEnv(EnvPlat); ok {
		c.Plat = plat
	}
}

func (c *BuildConfig) fetchFlags() []string {
	if c.FetchFlags != nil {
		return c.FetchFlags
	}
	return strings.Fields(DefaultFetchFlags)
}

func (c *BuildConfig) plat() string {
	return c.Plat
}
