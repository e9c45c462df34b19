package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"manifest-archive-diff/internal/core"
	"manifest-archive-diff/internal/types"
)

// ManifestFileAdapter reads input manifests and writes the resolved
// archive manifest in the same tab-separated text format.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) ReadManifest(path string) (types.Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open manifest").
			WithCause(err)
	}
	defer file.Close()
	return core.ParseManifest(file)
}

func (a ManifestFileAdapter) ReadRecordedVersions(path string) (types.RecordedVersions, error) {
	file, err := os.Open(path)
	if err != nil {
		return types.RecordedVersions{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open manifest").
			WithCause(err)
	}
	defer file.Close()
	return core.ParseRecordedVersions(file)
}

// WriteArchiveManifest writes one "name\tmax_version" line per binary
// followed by one "snap:name\tchannel\trevision" line per snap, in
// resolution order. An existing file at path is overwritten.
func (a ManifestFileAdapter) WriteArchiveManifest(path string, binaries []types.ResolvedBinaryVersion, snaps []types.ResolvedSnapVersion) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("archive manifest path is required")
	}
	var builder strings.Builder
	for _, binary := range binaries {
		builder.WriteString(fmt.Sprintf("%s\t%s\n", binary.Name, binary.MaxVersion))
	}
	for _, snap := range snaps {
		builder.WriteString(fmt.Sprintf("snap:%s\t%s\t%s\n", snap.Name, snap.Channel, snap.Revision))
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write archive manifest").
			WithCause(err)
	}
	return nil
}
