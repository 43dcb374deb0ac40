//go:build windows

package load

import "golang.org/x/sys/windows"

func LoadLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	return uintptr(handle), err
}

// LoadLibraryEx passes the flag word to the extended loader verbatim. The
// reserved handle argument is always zero per the LoadLibraryExW contract.
func LoadLibraryEx(path string, flags uintptr) (uintptr, error) {
	handle, err := windows.LoadLibraryEx(path, 0, flags)
	return uintptr(handle), err
}

func FindSymbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func CloseLibrary(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}
