package swatext

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestFetchDependencyRetry(t *testing.T) {
	testCases := []struct {
		name         string
		failures     int
		wantAttempts int
		wantDiags    int
	}{
		{"first attempt succeeds", 0, 1, 0},
		{"fails once then succeeds", 1, 2, 0},
		{"fails twice", 2, 2, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			attempts := 0
			cfg := &BuildConfig{
				Runner: func(ctx context.Context, c Command) ([]byte, error) {
					attempts++
					if attempts <= tc.failures {
						return []byte("fetch: connection refused\n"), fmt.Errorf("exit status 1")
					}
					return nil, nil
				},
			}

			ws := &Workspace{Root: t.TempDir()}
			result := &BuildResult{}
			fetchDependency(context.Background(), cfg, ws, ws.BuildEnv(), result)

			if attempts != tc.wantAttempts {
				t.Errorf("expected %d attempts, got %d", tc.wantAttempts, attempts)
			}
			if len(result.Diagnostics) != tc.wantDiags {
				t.Errorf("expected %d diagnostics, got %d: %v",
					tc.wantDiags, len(result.Diagnostics), result.Diagnostics)
			}
		})
	}
}

func TestFetchDependencyCommand(t *testing.T) {
	var got Command
	cfg := &BuildConfig{
		ClientRoot: "example.com/analytics/client",
		FetchFlags: []string{"-insecure", "-u"},
		Runner: func(ctx context.Context, c Command) ([]byte, error) {
			got = c
			return nil, nil
		},
	}

	ws := &Workspace{Root: t.TempDir()}
	ws.SrcDir = ws.Root
	fetchDependency(context.Background(), cfg, ws, ws.BuildEnv(), &BuildResult{})

	wantArgs := "get -d -insecure -u example.com/analytics/client"
	if strings.Join(got.Args, " ") != wantArgs {
		t.Errorf("fetch args = %q, want %q", strings.Join(got.Args, " "), wantArgs)
	}
	if got.Dir != ws.SrcDir {
		t.Errorf("fetch cwd = %q, want src dir %q", got.Dir, ws.SrcDir)
	}
	if got.Env["GOPATH"] != ws.Root {
		t.Errorf("fetch GOPATH = %q, want %q", got.Env["GOPATH"], ws.Root)
	}
}
