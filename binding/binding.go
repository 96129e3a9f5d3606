// Package binding bridges calls into the compiled _pyswat extension module
// and translates native-side error state into Go errors.
//
// The extension is optional at runtime: a package installed from source
// without compiling it still loads. The Bridge therefore attempts the load
// lazily, exactly once, and only fails on first actual use - every
// forwarding entry point checks the one-shot load state before touching the
// native module and returns *UnavailableError when the load failed.
//
// Every native call site must route its result through ErrorCheck, which is
// the single synchronization point between the client's internal error
// state and Go's error model: a non-empty last-error message on a handle
// becomes a *ClientError, an empty one passes the result through unchanged.
package binding

import (
	"runtime"
	"strings"
	"sync"
)

// Handle is an opaque runtime object returned by a native constructor.
// Handles are independently owned by the caller; the only structured field
// the bridge ever reads from the native side is the last error message.
type Handle interface {
	// LastErrorMessage returns the handle's last error message, UTF-8
	// encoded. Empty means no error.
	LastErrorMessage() string
}

// Module is the entry-point surface the compiled extension exports: one
// constructor per native object plus the TK runtime initializer.
type Module interface {
	NewConnection(args ...any) Handle
	NewValueList(args ...any) Handle
	NewFormatter(args ...any) Handle
	NewEventWatcher(args ...any) Handle
	NewDataBuffer(args ...any) Handle
	NewError(args ...any) Handle
	InitializeTK(path string) int
}

// Loader produces the native Module. The default loaders live with the
// build outputs; tests and fallback-only deployments supply their own or
// none at all.
type Loader func() (Module, error)

// Bridge forwards calls into the native module.
//
// The load state is written exactly once, on the first call that needs the
// module, and never reset; afterward it is safe to read from any number of
// goroutines. A nil loader is the normal representation of "extension not
// compiled" and behaves like a failed load.
type Bridge struct {
	loader  Loader
	once    sync.Once
	mod     Module
	loadErr error

	// Host identification, overridable in tests.
	goos string
	arch string
}

// New creates a Bridge around the given loader. The loader is not invoked
// until the first forwarding call.
func New(loader Loader) *Bridge {
	return &Bridge{
		loader: loader,
		goos:   runtime.GOOS,
		arch:   runtime.GOARCH,
	}
}

// Available reports whether the native module loaded, performing the
// one-shot load attempt if it has not happened yet.
func (b *Bridge) Available() bool {
	_, err := b.module()
	return err == nil
}

func (b *Bridge) module() (Module, error) {
	b.once.Do(func() {
		if b.loader == nil {
			b.loadErr = errNoLoader
			return
		}
		b.mod, b.loadErr = b.loader()
		if b.mod == nil && b.loadErr == nil {
			b.loadErr = errNoLoader
		}
	})

	if b.loadErr != nil {
		return nil, &UnavailableError{Cause: b.loadErr}
	}
	return b.mod, nil
}

// Connection forwards to the native connection constructor.
func (b *Bridge) Connection(args ...any) (Handle, error) {
	m, err := b.module()
	if err != nil {
		return nil, err
	}
	return m.NewConnection(args...), nil
}

// ValueList forwards to the native value-list constructor.
func (b *Bridge) ValueList(args ...any) (Handle, error) {
	m, err := b.module()
	if err != nil {
		return nil, err
	}
	return m.NewValueList(args...), nil
}

// Formatter forwards to the native formatter constructor.
func (b *Bridge) Formatter(args ...any) (Handle, error) {
	m, err := b.module()
	if err != nil {
		return nil, err
	}
	return m.NewFormatter(args...), nil
}

// EventWatcher forwards to the native connection event watcher constructor.
func (b *Bridge) EventWatcher(args ...any) (Handle, error) {
	m, err := b.module()
	if err != nil {
		return nil, err
	}
	return m.NewEventWatcher(args...), nil
}

// DataBuffer forwards to the native data buffer constructor.
func (b *Bridge) DataBuffer(args ...any) (Handle, error) {
	m, err := b.module()
	if err != nil {
		return nil, err
	}
	return m.NewDataBuffer(args...), nil
}

// ErrorObject forwards to the native error object constructor.
func (b *Bridge) ErrorObject(args ...any) (Handle, error) {
	m, err := b.module()
	if err != nil {
		return nil, err
	}
	return m.NewError(args...), nil
}

// ErrorCheck implements the post-call error-check protocol. If the handle
// is present and reports a non-empty last-error message, the message is
// surfaced as a *ClientError; otherwise result is returned unchanged.
//
// Route the result of every native call through this function.
func ErrorCheck[T any](result T, h Handle) (T, error) {
	if h != nil {
		if msg := h.LastErrorMessage(); msg != "" {
			return result, &ClientError{Message: strings.ToValidUTF8(msg, "�")}
		}
	}
	return result, nil
}
