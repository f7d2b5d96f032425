package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
)

// ModeratorFromDir extracts the moderator's display name from a room folder
// name such as "2021-05-01 10.00.00 John Smith's Personal Meeting Room".
// Everything up to and including the second space is discarded; a name with
// fewer than two spaces yields "".
func ModeratorFromDir(name string) string {
	var buf strings.Builder
	spaces := 0
	for _, c := range name {
		if spaces >= 2 {
			buf.WriteRune(c)
		} else if c == ' ' {
			spaces++
		}
	}
	return strings.TrimSuffix(buf.String(), RoomSuffix)
}

// Locate lists root one level deep and returns every room folder that holds
// a transcript. Folders without a transcript are skipped.
func Locate(root string) ([]Room, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", pferrors.ErrScanFailed, root, err)
	}

	rooms := make([]Room, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !utf8.ValidString(name) {
			return nil, fmt.Errorf("%w: %q", pferrors.ErrInvalidName, name)
		}

		dir := filepath.Join(root, name)
		transcriptPath, found, err := findTranscript(dir)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		rooms = append(rooms, Room{
			Dir:            dir,
			Moderator:      ModeratorFromDir(name),
			TranscriptPath: transcriptPath,
		})
	}

	return rooms, nil
}

// findTranscript looks for the transcript file directly inside dir. Every
// name in dir must be valid UTF-8.
func findTranscript(dir string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, fmt.Errorf("%w: reading %s: %v", pferrors.ErrScanFailed, dir, err)
	}

	found := false
	for _, entry := range entries {
		if !utf8.ValidString(entry.Name()) {
			return "", false, fmt.Errorf("%w: %q in %s", pferrors.ErrInvalidName, entry.Name(), dir)
		}
		if entry.Name() == TranscriptFilename && !entry.IsDir() {
			found = true
		}
	}
	if !found {
		return "", false, nil
	}
	return filepath.Join(dir, TranscriptFilename), true, nil
}
