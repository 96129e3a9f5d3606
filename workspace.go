package swatext

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is an exclusively-owned temporary directory tree that isolates
// one build's fetched source, generated glue and compiled artifacts. It is
// never reused: every build acquires a fresh workspace and releases it on
// exit, success or failure.
//
// The tree acts as an isolated GOPATH so the host's global toolchain state
// is never touched:
//
//	<root>/          GOPATH for the build
//	<root>/src/      dependency source, generated glue, archive output
//	<root>/pkg/mod/  isolated module cache
type Workspace struct {
	Root     string
	SrcDir   string
	ModDir   string
	released bool
}

// AcquireWorkspace creates a new staging workspace. The src directory is
// created eagerly since every later step relies on it.
func AcquireWorkspace() (*Workspace, error) {
	root, err := os.MkdirTemp("", "swatext-build-")
	if err != nil {
		return nil, fmt.Errorf("creating staging workspace: %w", err)
	}

	ws := &Workspace{
		Root:   root,
		SrcDir: filepath.Join(root, "src"),
		ModDir: filepath.Join(root, "pkg", "mod"),
	}

	if err := os.MkdirAll(ws.SrcDir, 0o755); err != nil {
		_ = os.RemoveAll(root)
		return nil, fmt.Errorf("creating workspace src directory: %w", err)
	}

	return ws, nil
}

// ClientRoot returns the path the fetched dependency lands at inside the
// workspace GOPATH. The import-path form uses forward slashes; the
// element-wise join yields the host's separator convention.
func (w *Workspace) ClientRoot(importPath string) string {
	elems := append([]string{w.SrcDir}, strings.Split(importPath, "/")...)
	return filepath.Join(elems...)
}

// ArchivePath returns the deterministic location of the compiled client
// archive within this workspace.
func (w *Workspace) ArchivePath() string {
	return filepath.Join(w.SrcDir, "libswat.a")
}

// BuildEnv returns the environment overrides that redirect all toolchain
// state into the workspace. A fresh map is returned on every call; callers
// may extend it without affecting the workspace.
func (w *Workspace) BuildEnv() map[string]string {
	return map[string]string{
		"GOPATH":      w.Root,
		"GO111MODULE": "auto",
	}
}

// Release removes the workspace recursively. Module caches and some source
// checkouts are written read-only, which blocks removal on some platforms;
// in that case the tree is made writable and removal is retried. Release is
// idempotent.
func (w *Workspace) Release() error {
	if w.released {
		return nil
	}
	w.released = true

	if err := os.RemoveAll(w.Root); err == nil {
		return nil
	}

	_ = filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		mode := fs.FileMode(0o600)
		if d.IsDir() {
			mode = 0o700
		}
		_ = os.Chmod(path, mode)
		return nil
	})

	if err := os.RemoveAll(w.Root); err != nil {
		return fmt.Errorf("releasing staging workspace: %w", err)
	}
	return nil
}
