//go:generate go run ./scripts

package dylib

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

var testLibPath string

func init() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get current working directory: %v", err)
	}
	ext := "so"
	switch runtime.GOOS {
	case "darwin":
		ext = "dylib"
	case "windows":
		ext = "dll"
	}
	testLibPath = filepath.Join(cwd, "testdata", "libadd."+ext)
}

func requireTestLib(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testLibPath); err != nil {
		t.Skipf("test library not built, run go generate: %v", err)
	}
}

// loaderStub records calls made through the loader seam.
type loaderStub struct {
	loads int
	frees int
	flags uintptr
}

// stubLoader replaces the platform loader for the duration of the test. All
// load calls hand back handle; free calls succeed.
func stubLoader(t *testing.T, handle uintptr) *loaderStub {
	t.Helper()
	s := &loaderStub{}
	origLoad, origLoadEx, origFree := loadLibrary, loadLibraryEx, closeLibrary
	loadLibrary = func(string) (uintptr, error) {
		s.loads++
		return handle, nil
	}
	loadLibraryEx = func(_ string, flags uintptr) (uintptr, error) {
		s.loads++
		s.flags = flags
		return handle, nil
	}
	closeLibrary = func(uintptr) error {
		s.frees++
		return nil
	}
	t.Cleanup(func() { loadLibrary, loadLibraryEx, closeLibrary = origLoad, origLoadEx, origFree })
	return s
}

// touch creates a file so the existence precondition passes without a real
// library on disk.
func touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("\x7fELF"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	stub := stubLoader(t, 1)
	path := filepath.Join(t.TempDir(), "libmissing.so")

	if _, err := Open(path); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Open() error = %v, want ErrNotFound", err)
	}
	if _, err := OpenWithFlags(path, SearchSystem32); !errors.Is(err, ErrNotFound) {
		t.Fatalf("OpenWithFlags() error = %v, want ErrNotFound", err)
	}
	if stub.loads != 0 {
		t.Errorf("missing file reached the loader %d times", stub.loads)
	}
}

func TestOpenStoresHandle(t *testing.T) {
	stubLoader(t, 42)
	path := touch(t, "libfake.so")

	lib, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if lib.Handle() != 42 {
		t.Errorf("Handle() = %#x, want 0x2a", lib.Handle())
	}
	if lib.Path() != path {
		t.Errorf("Path() = %q, want %q", lib.Path(), path)
	}
}

func TestFlagsForwarded(t *testing.T) {
	stub := stubLoader(t, 1)
	path := touch(t, "libfake.so")

	flags := SearchSystem32 | LoadWithAlteredSearchPath
	if _, err := OpenWithFlags(path, flags); err != nil {
		t.Fatal(err)
	}
	if stub.flags != uintptr(flags) {
		t.Errorf("extended load received flags %#x, want %#x", stub.flags, uintptr(flags))
	}
}

func TestLookupBeforeLoad(t *testing.T) {
	var lib Library
	if _, err := lib.Lookup("Add"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup() error = %v, want ErrNotFound", err)
	}
}

func TestLookupNilHandle(t *testing.T) {
	lib := &Library{loaded: true}
	if _, err := lib.Lookup("Add"); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Lookup() error = %v, want ErrNotLoaded", err)
	}
}

func TestCloseFreesOnce(t *testing.T) {
	stub := stubLoader(t, 7)
	path := touch(t, "libfake.so")

	lib, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := lib.Close(); err != nil {
			t.Fatal(err)
		}
	}
	if stub.frees != 1 {
		t.Errorf("native free called %d times, want 1", stub.frees)
	}

	var never Library
	if err := never.Close(); err != nil {
		t.Fatal(err)
	}
	if stub.frees != 1 {
		t.Errorf("Close on a never-loaded Library reached the loader")
	}

	if _, err := lib.Lookup("Add"); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Lookup() after Close error = %v, want ErrNotLoaded", err)
	}
}

func TestOpenAndCall(t *testing.T) {
	requireTestLib(t)

	lib, err := Open(testLibPath)
	if err != nil {
		t.Fatal(err)
	}
	defer lib.Close()

	add, err := Func[func(int32, int32) int32](lib, "Add")
	if err != nil {
		t.Fatal(err)
	}
	if got := add(3, 5); got != 8 {
		t.Errorf("Add(3, 5) = %d, want 8", got)
	}

	square, err := Func[func(int32) int32](lib, "Square")
	if err != nil {
		t.Fatal(err)
	}
	if got := square(9); got != 81 {
		t.Errorf("Square(9) = %d, want 81", got)
	}

	if _, err := lib.Lookup("NoSuchExport"); !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("Lookup() error = %v, want ErrSymbolNotFound", err)
	}
}
