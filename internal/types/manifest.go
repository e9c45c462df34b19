package types

// BinaryPackageRef is a binary package named by the input manifest. The
// manifest's recorded version is read but not retained; current versions
// are recomputed from the archive.
type BinaryPackageRef struct {
	Name string
}

// SnapRef is a snap named by the input manifest together with the store
// channel it was installed from.
type SnapRef struct {
	Name    string
	Channel string
}

// Manifest holds the parsed input manifest, split into binary package and
// snap entries in input order.
type Manifest struct {
	Binaries []BinaryPackageRef
	Snaps    []SnapRef
}

// RecordedVersions holds the version fields the input manifest recorded at
// image-build time. Resolution never consults these; only the optional
// drift report does.
type RecordedVersions struct {
	Binaries map[string]string
	Snaps    map[SnapRef]string
}
