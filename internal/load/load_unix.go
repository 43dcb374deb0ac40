//go:build (darwin || freebsd || linux) && !android && !faketime

package load

import "github.com/ebitengine/purego"

func LoadLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// LoadLibraryEx accepts the caller's loader flag word for symmetry with the
// Windows extended load. dlopen has no counterpart for those bits, so the
// word is ignored here.
func LoadLibraryEx(path string, flags uintptr) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func FindSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func CloseLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}
