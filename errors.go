package dylib

import "errors"

var (
	// ErrNotFound reports that the library file does not exist, or that
	// symbol resolution was attempted on a Library that never loaded one.
	ErrNotFound = errors.New("library not found")
	// ErrNotLoaded reports that the native handle is zero, either because
	// the library was released or the handle was never populated.
	ErrNotLoaded = errors.New("library not loaded")
	// ErrSymbolNotFound reports that the loader resolved no address for the
	// requested symbol name.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrDigestMismatch reports that the library file on disk does not match
	// the fingerprint the caller demanded.
	ErrDigestMismatch = errors.New("library digest mismatch")
)
