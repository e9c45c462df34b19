package types

// ResolvedBinaryVersion is the highest version of a binary package found
// across all queried pockets and supplementary repositories. MaxVersion is
// the sentinel "0.0.0" when nothing was published.
type ResolvedBinaryVersion struct {
	Name       string
	MaxVersion string
}

// ResolvedSnapVersion is the revision currently published for a snap in a
// channel. Revision is an integer rendered as a string in manifest output.
type ResolvedSnapVersion struct {
	Name     string
	Channel  string
	Revision string
}

// DriftEntry compares one manifest-recorded version against the version
// the archive or snap store offers now.
type DriftEntry struct {
	Name            string `yaml:"name"`
	Channel         string `yaml:"channel,omitempty"`
	ManifestVersion string `yaml:"manifest_version"`
	ArchiveVersion  string `yaml:"archive_version"`
	Drifted         bool   `yaml:"drifted"`
}

// DriftReport is the optional YAML report listing per-entry drift between
// the input manifest and current archive state.
type DriftReport struct {
	Series       string       `yaml:"series"`
	Architecture string       `yaml:"architecture"`
	Binaries     []DriftEntry `yaml:"binaries"`
	Snaps        []DriftEntry `yaml:"snaps"`
}
