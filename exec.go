package swatext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Command describes a single external toolchain invocation.
//
// Env is merged over the inherited process environment for the duration of
// the invocation; the process's own environment is never mutated. Quiet
// invocations (version probes) discard their output instead of capturing it.
type Command struct {
	Name  string
	Args  []string
	Dir   string
	Env   map[string]string
	Quiet bool
}

// Runner executes a Command and returns its combined output.
//
// The default runner shells out via os/exec. Tests and embedders can
// substitute their own through BuildConfig.Runner.
type Runner func(ctx context.Context, cmd Command) ([]byte, error)

// runSystem is the default Runner.
func runSystem(ctx context.Context, c Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	cmd.Env = os.Environ()
	for key, value := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	if c.Quiet {
		return nil, cmd.Run()
	}
	return cmd.CombinedOutput()
}

// echoCommand renders a Command the way a shell transcript would show it:
//
//	$ GOPATH='/tmp/x' go get -d gitlab.sas.com/kesmit/go-libswat
//
// Environment overrides are sorted so the echo is deterministic.
func echoCommand(c Command) string {
	parts := make([]string, 0, len(c.Env)+len(c.Args)+2)

	keys := make([]string, 0, len(c.Env))
	for key := range c.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", key, shellQuote(c.Env[key])))
	}

	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		parts = append(parts, shellQuote(arg))
	}

	return "$ " + strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$&|;<>()*?[]#~`") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// appendOutput splits captured subprocess output into lines on the result.
func appendOutput(result *BuildResult, out []byte) {
	if len(out) == 0 {
		return
	}
	result.Output = append(result.Output, strings.Split(strings.TrimRight(string(out), "\n"), "\n")...)
}

// runStep echoes and executes one pipeline command, accumulating its output
// on the result.
func runStep(ctx context.Context, cfg *BuildConfig, result *BuildResult, c Command) ([]byte, error) {
	result.Output = append(result.Output, echoCommand(c))
	out, err := cfg.runner()(ctx, c)
	appendOutput(result, out)
	return out, err
}
