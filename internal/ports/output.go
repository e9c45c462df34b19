package ports

import "manifest-archive-diff/internal/types"

type OutputPort interface {
	WriteArchiveManifest(path string, binaries []types.ResolvedBinaryVersion, snaps []types.ResolvedSnapVersion) error
}

type DriftReportPort interface {
	WriteDriftReport(path string, report types.DriftReport) error
}
