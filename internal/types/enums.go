package types

type Pocket string

const (
	PocketUpdates  Pocket = "Updates"
	PocketSecurity Pocket = "Security"
	PocketRelease  Pocket = "Release"
)

// ArchivePockets is the fixed, ordered set of main-archive pockets queried
// for every binary package.
var ArchivePockets = []Pocket{PocketUpdates, PocketSecurity, PocketRelease}

type PublicationStatus string

const (
	StatusPublished PublicationStatus = "Published"
)

// ArchitectureSource is the architecture tag that switches archive queries
// from binary packages to source packages.
const ArchitectureSource = "source"

type ArchiveKind string

const (
	ArchiveKindPrimary ArchiveKind = "primary"
	ArchiveKindPPA     ArchiveKind = "ppa"
)
