package swatext

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCheckToolchains(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		var probes []string
		cfg := &BuildConfig{
			Runner: func(ctx context.Context, c Command) ([]byte, error) {
				if !c.Quiet {
					t.Errorf("probe for %s must suppress output", c.Name)
				}
				probes = append(probes, c.Name+" "+strings.Join(c.Args, " "))
				return nil, nil
			},
		}

		if err := CheckToolchains(context.Background(), cfg); err != nil {
			t.Fatalf("CheckToolchains: %v", err)
		}

		want := []string{"go version", "swig -version"}
		if len(probes) != len(want) {
			t.Fatalf("expected probes %v, got %v", want, probes)
		}
		for i := range want {
			if probes[i] != want[i] {
				t.Errorf("probe %d = %q, want %q", i, probes[i], want[i])
			}
		}
	})

	t.Run("missing generator", func(t *testing.T) {
		cfg := &BuildConfig{
			Runner: func(ctx context.Context, c Command) ([]byte, error) {
				if c.Name == "swig" {
					return nil, fmt.Errorf("executable file not found in $PATH")
				}
				return nil, nil
			},
		}

		err := CheckToolchains(context.Background(), cfg)
		var missing *ToolchainMissingError
		if !errors.As(err, &missing) {
			t.Fatalf("expected ToolchainMissingError, got %v", err)
		}
		if missing.Tool != "swig" {
			t.Errorf("missing tool = %q, want swig", missing.Tool)
		}
		if !strings.Contains(missing.Error(), "swig.org") {
			t.Errorf("error should carry the remediation hint: %v", missing)
		}
	})

	t.Run("configured binaries are probed", func(t *testing.T) {
		var names []string
		cfg := &BuildConfig{
			GoTool:   "go1.25",
			SwigTool: "/opt/swig/bin/swig",
			Runner: func(ctx context.Context, c Command) ([]byte, error) {
				names = append(names, c.Name)
				return nil, nil
			},
		}

		if err := CheckToolchains(context.Background(), cfg); err != nil {
			t.Fatalf("CheckToolchains: %v", err)
		}
		if names[0] != "go1.25" || names[1] != "/opt/swig/bin/swig" {
			t.Errorf("unexpected probed binaries: %v", names)
		}
	})
}
