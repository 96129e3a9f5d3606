package swatext

import (
	"fmt"
	"strings"
)

// Step identifies the pipeline stage a StepError originated from.
type Step string

// Pipeline stages that can fail with a StepError.
const (
	StepFetch    Step = "dependency fetch"
	StepGenerate Step = "interface generation"
	StepCompile  Step = "native compile"
	StepLink     Step = "extension link"
)

// ToolchainMissingError reports a required external toolchain that could not
// be located or probed. It carries a remediation hint telling the operator
// where to obtain the tool.
//
// This error aborts the build before any filesystem mutation.
type ToolchainMissingError struct {
	Tool   string
	Remedy string
	Err    error
}

func (e *ToolchainMissingError) Error() string {
	return fmt.Sprintf("the %s tools do not appear to be installed; make sure they are installed (%s) and that the %s command is in your system path",
		e.Tool, e.Remedy, e.Tool)
}

func (e *ToolchainMissingError) Unwrap() error { return e.Err }

// StepError reports a failed build-pipeline subprocess. It preserves the
// exact command line, the merged environment overrides and the captured
// output so the operator can reproduce the failure.
type StepError struct {
	Step    Step
	Command string
	Env     map[string]string
	Output  []string
	Err     error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s failed: %v\n\ncommand:\n%s", e.Step, e.Err, e.Command)
	if out := strings.TrimSpace(strings.Join(e.Output, "\n")); out != "" {
		msg += "\n\nbuild output:\n" + out
	}
	return msg
}

func (e *StepError) Unwrap() error { return e.Err }

// stepError builds a StepError from the command that failed and the output
// collected so far.
func stepError(step Step, c Command, output []string, err error) *StepError {
	return &StepError{
		Step:    step,
		Command: echoCommand(c),
		Env:     c.Env,
		Output:  output,
		Err:     err,
	}
}
