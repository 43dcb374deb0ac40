package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

func main() {
	var ext string
	switch runtime.GOOS {
	case "linux", "freebsd":
		ext = "so"
	case "darwin":
		ext = "dylib"
	case "windows":
		ext = "dll"
	default:
		fmt.Printf("Unsupported operating system: %s", runtime.GOOS)
		os.Exit(1)
	}

	srcPath := filepath.Join("testdata", "add.c")
	dstPath := filepath.Join("testdata", fmt.Sprintf("libadd.%s", ext))

	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}

	fmt.Printf("+ Building %s from %s\n", dstPath, srcPath)
	cmd := exec.Command(cc, "-shared", "-fPIC", "-O2", "-o", dstPath, srcPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("Error building test library: %v\n", err)
		os.Exit(1)
	}
}
