// Package dylib wraps the operating system's dynamic-library loader: open a
// shared library from disk, resolve exported symbols to typed Go functions,
// and release the library when done.
package dylib

import (
	"fmt"
	"os"

	"github.com/ebitengine/purego"

	"github.com/dylib-go/dylib/internal/load"
)

// Indirection over the platform loader so tests can interpose fakes.
var (
	loadLibrary   = load.LoadLibrary
	loadLibraryEx = load.LoadLibraryEx
	findSymbol    = load.FindSymbol
	closeLibrary  = load.CloseLibrary
)

// Library owns at most one loaded native library.
//
// The zero value is a Library that never loaded anything; resolving against
// it fails with ErrNotFound. A Library obtained from Open holds a live
// handle until Close releases it.
type Library struct {
	path   string
	handle uintptr
	// loaded records that a load attempt completed; it stays true after
	// Close, which zeroes the handle instead.
	loaded bool
}

// Open loads the shared library at path and returns a Library holding its
// handle.
//
// The file must exist; a missing file fails with ErrNotFound before any
// loader call is made. A file that exists but cannot be loaded fails with
// the loader's error.
//
// It is the caller's responsibility to call Close on the Library when it is
// no longer needed.
func Open(path string) (*Library, error) {
	if err := checkExists(path); err != nil {
		return nil, err
	}
	handle, err := loadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("loading library %s: %w", path, err)
	}
	return &Library{path: path, handle: handle, loaded: true}, nil
}

// OpenWithFlags is Open with loader flags forwarded verbatim to the
// platform's extended load call.
func OpenWithFlags(path string, flags Flags) (*Library, error) {
	if err := checkExists(path); err != nil {
		return nil, err
	}
	handle, err := loadLibraryEx(path, uintptr(flags))
	if err != nil {
		return nil, fmt.Errorf("loading library %s (flags %v): %w", path, flags, err)
	}
	return &Library{path: path, handle: handle, loaded: true}, nil
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("library %s: %w: %w", path, ErrNotFound, err)
	}
	return nil
}

// Lookup resolves the exported symbol name to its address.
//
// It fails with ErrNotFound when the Library never loaded anything, with
// ErrNotLoaded when the native handle is zero (released, or constructed
// without a load), and with ErrSymbolNotFound when the loader knows no such
// symbol.
func (l *Library) Lookup(name string) (uintptr, error) {
	if !l.loaded {
		return 0, fmt.Errorf("resolving %s: %w", name, ErrNotFound)
	}
	if l.handle == 0 {
		return 0, fmt.Errorf("resolving %s: %w", name, ErrNotLoaded)
	}
	addr, err := findSymbol(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("resolving %s in %s: %w: %w", name, l.path, ErrSymbolNotFound, err)
	}
	if addr == 0 {
		return 0, fmt.Errorf("resolving %s in %s: %w", name, l.path, ErrSymbolNotFound)
	}
	return addr, nil
}

// Func resolves the exported symbol name and binds its address to a Go
// function of type T. T must be a function type whose signature matches the
// native export; Func panics, as purego.RegisterFunc does, when T is not a
// function type.
func Func[T any](l *Library, name string) (T, error) {
	var fn T
	addr, err := l.Lookup(name)
	if err != nil {
		return fn, err
	}
	purego.RegisterFunc(&fn, addr)
	return fn, nil
}

// Close releases the loaded library. It frees the native handle exactly
// once; closing an already-closed or never-loaded Library is a no-op.
func (l *Library) Close() error {
	if !l.loaded || l.handle == 0 {
		return nil
	}
	handle := l.handle
	l.handle = 0
	if err := closeLibrary(handle); err != nil {
		return fmt.Errorf("closing library %s: %w", l.path, err)
	}
	return nil
}

// Handle returns the raw native handle. It is zero before a load and after
// Close.
func (l *Library) Handle() uintptr { return l.handle }

// Path returns the file path the library was loaded from.
func (l *Library) Path() string { return l.path }
