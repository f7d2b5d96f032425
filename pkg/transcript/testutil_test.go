package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const exampleRoom = "2021-05-01 10.00.00 John Smith's Personal Meeting Room"

const exampleTranscript = "10:01:00\tFrom Alice to Everyone:\n" +
	"\tHello!\n" +
	"10:02:00\tFrom John Smith to Everyone:\n" +
	"\tHi all\n" +
	"10:03:00\tFrom Alice to Everyone:\n" +
	"\tHow are you?\n"

// writeRoom creates a room folder under root holding content as its transcript.
func writeRoom(t *testing.T, root, dir, content string) string {
	t.Helper()
	roomDir := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(roomDir, 0o755))
	path := filepath.Join(roomDir, TranscriptFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// header returns a transcript header line for speaker.
func header(ts, speaker string) string {
	return ts + "\tFrom " + speaker + " to Everyone:\n"
}
