package core

import (
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/rs/zerolog/log"
)

// NoVersionFound is the sentinel emitted when no publication of a package
// was found in any pocket or supplementary repository. It marks "nothing
// published", not a real version.
const NoVersionFound = "0.0.0"

// MaxVersion reduces a candidate list of Debian version strings to the
// single highest one under Debian package version ordering
// (epoch:upstream-version-debian-revision). An empty candidate list yields
// NoVersionFound. Unparseable candidates contribute nothing.
func MaxVersion(candidates []string) string {
	maxVersion := NoVersionFound
	for _, candidate := range candidates {
		if CompareVersions(candidate, maxVersion) > 0 {
			maxVersion = candidate
		}
	}
	return maxVersion
}

// CompareVersions returns -1, 0, or 1 comparing two Debian version
// strings. Returns 0 on parse errors.
func CompareVersions(a string, b string) int {
	v1, err := debversion.NewVersion(a)
	if err != nil {
		log.Debug().Str("version", a).Msg("unparseable debian version")
		return 0
	}
	v2, err := debversion.NewVersion(b)
	if err != nil {
		log.Debug().Str("version", b).Msg("unparseable debian version")
		return 0
	}
	return v1.Compare(v2)
}
