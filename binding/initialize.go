package binding

import (
	"os"
	"strings"
)

// tkPathVar locates the TK runtime for the native client. Unrelated TK
// consumers in the same process read it too, which is why every mutation
// below is scoped or deliberately neutralized.
const tkPathVar = "TKPATH"

// InitializeTK initializes the native client's TK subsystem.
//
// On ppc machines the runtime cannot find its TK path on its own, so when
// the variable is unset it is patched in from path for the duration of the
// native call and removed again on every exit path. On Windows, after
// initialization, a still-unset variable is forced to the path-list
// separator sentinel so the initialization path does not leak into other
// TK consumers that run later in the process.
func (b *Bridge) InitializeTK(path string) (int, error) {
	m, err := b.module()
	if err != nil {
		return 0, err
	}

	patched := strings.Contains(b.arch, "ppc") && path != ""
	if patched {
		if _, exists := os.LookupEnv(tkPathVar); exists {
			patched = false
		} else {
			os.Setenv(tkPathVar, path)
		}
	}

	defer func() {
		if patched {
			os.Unsetenv(tkPathVar)
		}
		if b.goos == "windows" {
			if _, exists := os.LookupEnv(tkPathVar); !exists {
				os.Setenv(tkPathVar, string(os.PathListSeparator))
			}
		}
	}()

	return m.InitializeTK(path), nil
}
