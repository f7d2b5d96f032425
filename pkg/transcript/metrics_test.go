package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.observeRoom(RoomResult{MessageCount: 2, DroppedLines: 1})
	m.observeScan(sessionWithCounts(t, map[string]int{"Alice": 2}), 0)

	path := filepath.Join(t.TempDir(), "zoomchat.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "zoomchat_messages_total 2")
	assert.Contains(t, out, `zoomchat_lines_dropped_total{reason="no_speaker"} 1`)
	assert.Contains(t, out, `zoomchat_scans_total{status="success"} 1`)
	assert.Contains(t, out, "zoomchat_participants 1")
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeRoom(RoomResult{MessageCount: 1})
		m.observeScan(NewSession(CounterScan), 0)
		m.observeScanFailure()
	})
}

func TestMetrics_Registry(t *testing.T) {
	m := NewMetrics()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
