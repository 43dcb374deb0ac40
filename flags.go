package dylib

import (
	"strconv"
	"strings"
)

// Flags is a bitset of loader options forwarded to the extended load call.
// The values are the Windows LoadLibraryEx flag bits; on other platforms the
// loader has no counterpart for them and the word is ignored.
type Flags uintptr

const (
	DontResolveReferences     Flags = 0x00000001
	LoadAsDatafile            Flags = 0x00000002
	LoadWithAlteredSearchPath Flags = 0x00000008
	IgnoreCodeAuthzLevel      Flags = 0x00000010
	LoadAsImageResource       Flags = 0x00000020
	LoadAsDatafileExclusive   Flags = 0x00000040
	SearchDLLLoadDir          Flags = 0x00000100
	SearchApplicationDir      Flags = 0x00000200
	SearchUserDirs            Flags = 0x00000400
	SearchSystem32            Flags = 0x00000800
	SearchDefaultDirs         Flags = 0x00001000
)

var flagNames = []struct {
	bit  Flags
	name string
}{
	{DontResolveReferences, "dont-resolve-references"},
	{LoadAsDatafile, "load-as-datafile"},
	{LoadWithAlteredSearchPath, "altered-search-path"},
	{IgnoreCodeAuthzLevel, "ignore-code-authz-level"},
	{LoadAsImageResource, "load-as-image-resource"},
	{LoadAsDatafileExclusive, "load-as-datafile-exclusive"},
	{SearchDLLLoadDir, "search-dll-load-dir"},
	{SearchApplicationDir, "search-application-dir"},
	{SearchUserDirs, "search-user-dirs"},
	{SearchSystem32, "search-system32"},
	{SearchDefaultDirs, "search-default-dirs"},
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.bit != 0 {
			parts = append(parts, fn.name)
			f &^= fn.bit
		}
	}
	if f != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(f), 16))
	}
	return strings.Join(parts, "|")
}
