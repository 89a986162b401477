// Package storepath extracts human version strings from content-addressed
// store paths of the shape <root>/<hash>-<name[-version][-suffix...]>.
// It is pure string parsing, decoupled from any process invocation, and
// best-effort only: enrichment for display, never load-bearing.
package storepath

import (
	"path"
	"strings"
)

// hashLen is the store scheme's fixed hash length. It is a constant of
// the addressing scheme, not re-derived from the input.
const hashLen = 32

// Unknown is returned when no version can be extracted.
const Unknown = "unknown"

// Version parses one store path. The final path segment is stripped of
// its hash prefix and trailing separator, then scanned left to right for
// a '-' immediately followed by a digit; the match starting at that
// digit is the version. Taking the leftmost match is a deliberate
// tie-break: names with embedded digits can mis-parse, and that is an
// accepted limitation.
func Version(storePath string) (string, bool) {
	segment := path.Base(strings.TrimSuffix(storePath, "/"))
	if len(segment) <= hashLen+1 {
		return "", false
	}
	nameVer := segment[hashLen+1:]

	for i := 0; i+1 < len(nameVer); i++ {
		if nameVer[i] == '-' && isDigit(nameVer[i+1]) {
			return nameVer[i+1:], true
		}
	}
	return "", false
}

// References enumerates the storage system's transitive reference set
// for a path. Injected so the fallback stays testable without a store.
type References func(storePath string) ([]string, error)

// Resolve runs the heuristic on the primary path and, failing that, on
// each reference whose final segment contains the package name, until
// one parses. It never fails; exhaustion yields Unknown.
func Resolve(storePath, pkgName string, refs References) string {
	if v, ok := Version(storePath); ok {
		return v
	}
	if refs == nil || pkgName == "" {
		return Unknown
	}

	paths, err := refs(storePath)
	if err != nil {
		return Unknown
	}
	for _, ref := range paths {
		if !strings.Contains(path.Base(ref), pkgName) {
			continue
		}
		if v, ok := Version(ref); ok {
			return v
		}
	}
	return Unknown
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
