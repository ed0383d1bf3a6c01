package ffi

import "fmt"

// Entries of cef_version_info.
const (
	VersionMajor = iota
	VersionMinor
	VersionPatch
	VersionCommit
	ChromeMajor
	ChromeMinor
	ChromeBuild
	ChromePatch
)

// VersionInfo is the version of the loaded engine build.
type VersionInfo struct {
	Major, Minor, Patch, Commit                        int
	ChromeMajor, ChromeMinor, ChromeBuild, ChromePatch int
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d+chromium-%d.%d.%d.%d", v.Major, v.Minor, v.Patch,
		v.ChromeMajor, v.ChromeMinor, v.ChromeBuild, v.ChromePatch)
}

// Version queries cef_version_info for every entry.
func Version(lib Library, sym *Symbols) VersionInfo {
	entry := func(i int) int {
		return int(int32(lib.Call(sym.VersionInfo, uintptr(i))))
	}
	return VersionInfo{
		Major:       entry(VersionMajor),
		Minor:       entry(VersionMinor),
		Patch:       entry(VersionPatch),
		Commit:      entry(VersionCommit),
		ChromeMajor: entry(ChromeMajor),
		ChromeMinor: entry(ChromeMinor),
		ChromeBuild: entry(ChromeBuild),
		ChromePatch: entry(ChromePatch),
	}
}

// UserfreeString decodes a cef_string_userfree_t returned by the engine and
// frees it.
func UserfreeString(lib Library, sym *Symbols, addr uintptr) string {
	if addr == 0 {
		return ""
	}
	s := StringAt(addr)
	lib.Call(sym.UserfreeFree, addr)
	return s
}
