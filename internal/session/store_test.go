package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saessak-labs/planterm/internal/api"
	"github.com/saessak-labs/planterm/internal/logging"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), logging.NewNop())
	require.NoError(t, err)
	return s
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := testStore(t)

	sci := "Monstera deliciosa"
	snap := Snapshot{
		Identification: api.Identification{
			PlantName:      "몬스테라",
			ScientificName: &sci,
			Confidence:     0.93,
			CommonNames:    []string{"Swiss cheese plant"},
		},
		CareGuide:         &api.CareGuide{Watering: "겉흙이 마르면 충분히", Tips: []string{"통풍 유지"}},
		UploadedImagePath: "/tmp/monstera.jpg",
		Timestamp:         time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, SaveSnapshot(s, snap))

	restored, ok := LoadSnapshot(s)
	require.True(t, ok)
	assert.Equal(t, snap, restored)
	// The binary is never restored — only the path reference survives.
	assert.Equal(t, "/tmp/monstera.jpg", restored.UploadedImagePath)
}

func TestSnapshot_ClearThenLoad(t *testing.T) {
	s := testStore(t)
	require.NoError(t, SaveSnapshot(s, Snapshot{Timestamp: time.Now()}))
	require.NoError(t, ClearSnapshot(s))

	_, ok := LoadSnapshot(s)
	assert.False(t, ok)

	// Clearing an already-empty slot is fine.
	require.NoError(t, ClearSnapshot(s))
}

func TestLoad_MissingReadsAsAbsent(t *testing.T) {
	s := testStore(t)
	var snap Snapshot
	assert.False(t, s.Load(KeyIdentification, &snap))
}

func TestLoad_CorruptReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, logging.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyIdentification+".json"), []byte("{not json"), 0o600))

	var snap Snapshot
	assert.False(t, s.Load(KeyIdentification, &snap), "corrupt content must read as absent, never error")
	assert.Zero(t, snap)
}

func TestSave_LastWriteWins(t *testing.T) {
	s := testStore(t)
	require.NoError(t, SaveSnapshot(s, Snapshot{Identification: api.Identification{PlantName: "first"}}))
	require.NoError(t, SaveSnapshot(s, Snapshot{Identification: api.Identification{PlantName: "second"}}))

	restored, ok := LoadSnapshot(s)
	require.True(t, ok)
	assert.Equal(t, "second", restored.Identification.PlantName)
}

func TestStore_KeysAreIndependent(t *testing.T) {
	s := testStore(t)
	require.NoError(t, SaveSnapshot(s, Snapshot{Identification: api.Identification{PlantName: "몬스테라"}}))
	require.NoError(t, s.Save(KeySchedules, []int{1, 2, 3}))

	require.NoError(t, ClearSnapshot(s))

	var nums []int
	require.True(t, s.Load(KeySchedules, &nums))
	assert.Equal(t, []int{1, 2, 3}, nums)
}

func TestStore_RejectsInvalidKey(t *testing.T) {
	s := testStore(t)
	assert.Error(t, s.Save("../escape", 1))
	assert.Error(t, s.Clear("UPPER"))
	assert.False(t, s.Load("bad key", new(int)))
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := Open(dir, logging.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
