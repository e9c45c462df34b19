package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"manifest-archive-diff/internal/types"
)

const snapPrefix = "snap:"

// ParseManifest reads a package manifest line stream and splits entries
// into binary package and snap references. A line containing "snap:" must
// have exactly three whitespace-separated fields (snap:name channel
// version); any other line exactly two (name version). The version fields
// are read but not retained: resolution recomputes current versions rather
// than trusting the manifest's recorded ones.
func ParseManifest(r io.Reader) (types.Manifest, error) {
	manifest := types.Manifest{}
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if strings.Contains(line, snapPrefix) {
			if len(fields) != 3 {
				return types.Manifest{}, formatError(lineNumber, line, "expected 'snap:name channel version'")
			}
			manifest.Snaps = append(manifest.Snaps, types.SnapRef{
				Name:    strings.TrimPrefix(fields[0], snapPrefix),
				Channel: fields[1],
			})
			continue
		}
		if len(fields) != 2 {
			return types.Manifest{}, formatError(lineNumber, line, "expected 'name version'")
		}
		manifest.Binaries = append(manifest.Binaries, types.BinaryPackageRef{Name: fields[0]})
	}
	if err := scanner.Err(); err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read manifest").
			WithCause(err)
	}
	return manifest, nil
}

// ParseRecordedVersions reads the same line stream but keeps the version
// fields the manifest recorded, keyed by entry. Only the drift report
// consumes these.
func ParseRecordedVersions(r io.Reader) (types.RecordedVersions, error) {
	recorded := types.RecordedVersions{
		Binaries: map[string]string{},
		Snaps:    map[types.SnapRef]string{},
	}
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if strings.Contains(line, snapPrefix) {
			if len(fields) != 3 {
				return types.RecordedVersions{}, formatError(lineNumber, line, "expected 'snap:name channel version'")
			}
			ref := types.SnapRef{
				Name:    strings.TrimPrefix(fields[0], snapPrefix),
				Channel: fields[1],
			}
			recorded.Snaps[ref] = fields[2]
			continue
		}
		if len(fields) != 2 {
			return types.RecordedVersions{}, formatError(lineNumber, line, "expected 'name version'")
		}
		recorded.Binaries[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return types.RecordedVersions{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read manifest").
			WithCause(err)
	}
	return recorded, nil
}

func formatError(lineNumber int, line string, expected string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed manifest line %d: %s", lineNumber, expected)).
		WithCause(fmt.Errorf("line=%q", line))
}
