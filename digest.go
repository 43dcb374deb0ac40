package dylib

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Digest is the BLAKE2b-256 fingerprint of a library file.
type Digest [32]byte

// ParseDigest decodes a digest from its hexadecimal form.
func ParseDigest(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, fmt.Errorf("parsing digest: %w", err)
	}
	if len(b) != len(Digest{}) {
		return Digest{}, fmt.Errorf("parsing digest: got %d bytes, want %d", len(b), len(Digest{}))
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// String implements the fmt.Stringer interface for Digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Fingerprint returns the digest of the library file at path.
func Fingerprint(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Digest{}, fmt.Errorf("library %s: %w: %w", path, ErrNotFound, err)
		}
		return Digest{}, fmt.Errorf("fingerprinting %s: %w", path, err)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return Digest{}, err
	}
	if _, err := io.Copy(h, f); err != nil {
		return Digest{}, fmt.Errorf("fingerprinting %s: %w", path, err)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// OpenVerified fingerprints the file at path and loads it only when the
// digest matches want. A mismatch fails with ErrDigestMismatch before any
// loader call is made.
func OpenVerified(path string, want Digest) (*Library, error) {
	got, err := Fingerprint(path)
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, fmt.Errorf("library %s: %w: have %v, want %v", path, ErrDigestMismatch, got, want)
	}
	return Open(path)
}
