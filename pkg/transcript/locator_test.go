package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
)

func TestModeratorFromDir(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"zoom export", exampleRoom, "John Smith"},
		{"single name", "2021-05-01 10.00.00 Ann's Personal Meeting Room", "Ann"},
		{"no suffix", "2021-05-01 10.00.00 John Smith", "John Smith"},
		{"only trailing suffix stripped", "a b Room's Personal Meeting Room's Personal Meeting Room", "Room's Personal Meeting Room"},
		{"one space", "2021-05-01 John", ""},
		{"no spaces", "archive", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModeratorFromDir(tt.dir))
		})
	}
}

func TestLocate(t *testing.T) {
	root := t.TempDir()
	writeRoom(t, root, exampleRoom, exampleTranscript)
	writeRoom(t, root, "2021-05-02 09.00.00 Jane Doe's Personal Meeting Room", "")

	// Room without a transcript.
	require.NoError(t, os.Mkdir(filepath.Join(root, "2021-05-03 09.00.00 Empty's Personal Meeting Room"), 0o755))
	// Transcript name used by a directory.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "x y Odd's Personal Meeting Room", TranscriptFilename), 0o755))
	// Plain file at the root.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0o644))

	rooms, err := Locate(root)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, "John Smith", rooms[0].Moderator)
	assert.Equal(t, filepath.Join(root, exampleRoom), rooms[0].Dir)
	assert.Equal(t, filepath.Join(root, exampleRoom, TranscriptFilename), rooms[0].TranscriptPath)
	assert.Equal(t, "Jane Doe", rooms[1].Moderator)
}

func TestLocate_EmptyRoot(t *testing.T) {
	rooms, err := Locate(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestLocate_MissingRoot(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, pferrors.IsScanFailed(err))
}

func TestLocate_InvalidDirName(t *testing.T) {
	root := t.TempDir()
	writeRoom(t, root, exampleRoom, exampleTranscript)
	if err := os.Mkdir(filepath.Join(root, "bad \xff name"), 0o755); err != nil {
		t.Skipf("filesystem rejects non UTF-8 names: %v", err)
	}

	_, err := Locate(root)
	require.Error(t, err)
	assert.True(t, pferrors.IsInvalidName(err))
}

func TestLocate_InvalidFileNameInRoom(t *testing.T) {
	root := t.TempDir()
	path := writeRoom(t, root, exampleRoom, exampleTranscript)
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "\xfe.txt"), nil, 0o644); err != nil {
		t.Skipf("filesystem rejects non UTF-8 names: %v", err)
	}

	_, err := Locate(root)
	require.Error(t, err)
	assert.True(t, pferrors.IsInvalidName(err))
}
