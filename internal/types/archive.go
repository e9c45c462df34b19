package types

// DistroSeries identifies a release series on the archive service.
type DistroSeries struct {
	Name     string
	SelfLink string
}

// DistroArchSeries identifies an architecture within a series. When Source
// is true the "arch series" stands for the series itself and archive
// queries target source packages instead of binaries.
type DistroArchSeries struct {
	ArchTag    string
	SelfLink   string
	SeriesLink string
	Source     bool
}

// ArchiveRef names an archive to query: the primary distribution archive
// or a supplementary PPA owned by a named user or team.
type ArchiveRef struct {
	Kind  ArchiveKind
	Owner string
	Name  string
}

func PrimaryArchive() ArchiveRef {
	return ArchiveRef{Kind: ArchiveKindPrimary}
}

func PPAArchive(ppa PPARef) ArchiveRef {
	return ArchiveRef{Kind: ArchiveKindPPA, Owner: ppa.Owner, Name: ppa.Name}
}

// PPARef names a supplementary repository as owner/name.
type PPARef struct {
	Owner string
	Name  string
}

func (p PPARef) String() string {
	return p.Owner + "/" + p.Name
}

// PublishedBinary is one publication record returned by an archive query.
// For source-package queries Name and Version carry the source package
// name and version.
type PublishedBinary struct {
	Name    string
	Version string
	Pocket  Pocket
	Status  PublicationStatus
}

// Credential identifies the archive service user for authenticated
// queries. A zero Credential means anonymous access.
type Credential struct {
	User  string
	Token string
}

func (c Credential) Anonymous() bool {
	return c.User == "" && c.Token == ""
}
