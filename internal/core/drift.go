package core

import (
	"manifest-archive-diff/internal/types"
)

// BuildDriftReport compares the versions recorded in the input manifest
// against the resolved archive and snap store state. A binary entry has
// drifted when the archive offers a strictly higher Debian version than
// the manifest recorded; a snap entry when the published revision differs
// from the recorded one.
func BuildDriftReport(series string, architecture string, recorded types.RecordedVersions, binaries []types.ResolvedBinaryVersion, snaps []types.ResolvedSnapVersion) types.DriftReport {
	report := types.DriftReport{
		Series:       series,
		Architecture: architecture,
	}
	for _, binary := range binaries {
		manifestVersion := recorded.Binaries[binary.Name]
		if manifestVersion == "" {
			// Resolved names have the architecture tag stripped; the
			// manifest may still carry it.
			manifestVersion = recorded.Binaries[binary.Name+":"+architecture]
		}
		report.Binaries = append(report.Binaries, types.DriftEntry{
			Name:            binary.Name,
			ManifestVersion: manifestVersion,
			ArchiveVersion:  binary.MaxVersion,
			Drifted:         manifestVersion != "" && CompareVersions(binary.MaxVersion, manifestVersion) > 0,
		})
	}
	for _, snap := range snaps {
		ref := types.SnapRef{Name: snap.Name, Channel: snap.Channel}
		manifestVersion := recorded.Snaps[ref]
		report.Snaps = append(report.Snaps, types.DriftEntry{
			Name:            snap.Name,
			Channel:         snap.Channel,
			ManifestVersion: manifestVersion,
			ArchiveVersion:  snap.Revision,
			Drifted:         manifestVersion != "" && manifestVersion != snap.Revision,
		})
	}
	return report
}
