package ports

import "manifest-archive-diff/internal/types"

type ManifestReaderPort interface {
	ReadManifest(path string) (types.Manifest, error)
	ReadRecordedVersions(path string) (types.RecordedVersions, error)
}
