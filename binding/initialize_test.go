package binding

import (
	"os"
	"testing"
)

// tkModule records the TKPATH value visible during the native call.
type tkModule struct {
	*fakeModule
	seenDuringCall string
	seenSet        bool
}

func (m *tkModule) InitializeTK(path string) int {
	m.seenDuringCall, m.seenSet = os.LookupEnv(tkPathVar)
	return m.fakeModule.InitializeTK(path)
}

func newTKBridge(t *testing.T, goos, arch string) (*Bridge, *tkModule) {
	t.Helper()
	mod := &tkModule{fakeModule: newFakeModule()}
	b := New(func() (Module, error) { return mod, nil })
	b.goos = goos
	b.arch = arch
	return b, mod
}

// clearTKPath unsets TKPATH for the test and restores it afterward.
func clearTKPath(t *testing.T) {
	t.Helper()
	t.Setenv(tkPathVar, "")
	os.Unsetenv(tkPathVar)
}

func TestInitializeTKPatchesEnvOnPPC(t *testing.T) {
	clearTKPath(t)

	b, mod := newTKBridge(t, "linux", "ppc64le")
	mod.tkOut = 7

	out, err := b.InitializeTK("/opt/sas/tk")
	if err != nil {
		t.Fatalf("InitializeTK: %v", err)
	}
	if out != 7 {
		t.Errorf("out = %d, want the native result", out)
	}

	if !mod.seenSet || mod.seenDuringCall != "/opt/sas/tk" {
		t.Errorf("native call saw TKPATH=(%q, %v), want the patched path", mod.seenDuringCall, mod.seenSet)
	}
	if mod.tkPath != "/opt/sas/tk" {
		t.Errorf("native call received path %q", mod.tkPath)
	}

	// Removed again after the call returns.
	if _, exists := os.LookupEnv(tkPathVar); exists {
		t.Error("TKPATH leaked past InitializeTK")
	}
}

func TestInitializeTKRespectsExistingEnvOnPPC(t *testing.T) {
	t.Setenv(tkPathVar, "/preset/tk")

	b, mod := newTKBridge(t, "linux", "ppc64")

	if _, err := b.InitializeTK("/opt/sas/tk"); err != nil {
		t.Fatalf("InitializeTK: %v", err)
	}

	if mod.seenDuringCall != "/preset/tk" {
		t.Errorf("preset TKPATH overwritten: %q", mod.seenDuringCall)
	}
	if got := os.Getenv(tkPathVar); got != "/preset/tk" {
		t.Errorf("preset TKPATH not preserved after the call: %q", got)
	}
}

func TestInitializeTKNoPatchOnOtherArch(t *testing.T) {
	clearTKPath(t)

	b, mod := newTKBridge(t, "linux", "amd64")

	if _, err := b.InitializeTK("/opt/sas/tk"); err != nil {
		t.Fatalf("InitializeTK: %v", err)
	}

	if mod.seenSet {
		t.Errorf("TKPATH patched on amd64: %q", mod.seenDuringCall)
	}
	if _, exists := os.LookupEnv(tkPathVar); exists {
		t.Error("TKPATH set after the call on a non-ppc machine")
	}
}

func TestInitializeTKWindowsSentinel(t *testing.T) {
	clearTKPath(t)

	b, _ := newTKBridge(t, "windows", "amd64")

	if _, err := b.InitializeTK(`C:\sas\tk`); err != nil {
		t.Fatalf("InitializeTK: %v", err)
	}

	// Forced to the separator sentinel so later TK consumers do not pick
	// up the initialization path.
	if got := os.Getenv(tkPathVar); got != string(os.PathListSeparator) {
		t.Errorf("TKPATH = %q, want the path-separator sentinel", got)
	}
}

func TestInitializeTKWindowsKeepsExisting(t *testing.T) {
	t.Setenv(tkPathVar, `C:\existing\tk`)

	b, _ := newTKBridge(t, "windows", "amd64")

	if _, err := b.InitializeTK(`C:\sas\tk`); err != nil {
		t.Fatalf("InitializeTK: %v", err)
	}

	if got := os.Getenv(tkPathVar); got != `C:\existing\tk` {
		t.Errorf("existing TKPATH clobbered: %q", got)
	}
}
