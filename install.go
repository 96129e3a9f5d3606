package swatext

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// installExtension copies the built extension module out of the staging
// workspace into destDir (created if needed) and returns the installed
// path. An empty destDir installs into the current directory.
func installExtension(built, destDir string) (string, error) {
	if destDir == "" {
		destDir = "."
	}

	dest := filepath.Join(destDir, filepath.Base(built))
	if err := copyFile(built, dest); err != nil {
		return "", fmt.Errorf("installing extension module: %w", err)
	}

	return dest, nil
}

func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	if mkErr := os.MkdirAll(filepath.Dir(destPath), 0o755); mkErr != nil {
		return mkErr
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
