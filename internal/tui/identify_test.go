package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saessak-labs/planterm/internal/api"
	"github.com/saessak-labs/planterm/internal/config"
	"github.com/saessak-labs/planterm/internal/logging"
	"github.com/saessak-labs/planterm/internal/schedule"
	"github.com/saessak-labs/planterm/internal/session"
)

func testDeps(t *testing.T) deps {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: config.Duration(time.Second),
		},
		Upload: config.UploadConfig{
			MaxBytes:   10 << 20,
			Extensions: []string{".jpg", ".jpeg", ".png"},
		},
	}
	log := logging.NewNop()
	store, err := session.Open(t.TempDir(), log)
	require.NoError(t, err)
	return deps{
		client:    api.New(cfg, log),
		store:     store,
		schedules: schedule.NewManager(store),
		log:       log,
	}
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plant.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not really a jpeg"), 0o600))
	return path
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func analyzeOK(name string) *api.AnalyzeResponse {
	return &api.AnalyzeResponse{
		Identification: &api.Identification{PlantName: name, Confidence: 0.9},
		CareGuide:      &api.CareGuide{Watering: "주 1회"},
	}
}

func TestIdentify_SelectValidFile(t *testing.T) {
	m := newIdentifyModel(testDeps(t))
	path := writeTestImage(t)

	m = m.selectFile(path)

	assert.Equal(t, identifyFileSelected, m.state)
	assert.Equal(t, path, m.imagePath)
	assert.True(t, m.fileVerified)
	assert.Empty(t, m.notice)
}

func TestIdentify_RejectWrongExtension(t *testing.T) {
	m := newIdentifyModel(testDeps(t))
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0o600))

	m = m.selectFile(path)

	assert.Equal(t, identifyIdle, m.state, "a rejected file leaves the page unchanged")
	assert.Empty(t, m.imagePath)
	assert.True(t, m.noticeErr)
	assert.Contains(t, m.notice, "notes.txt")
}

func TestIdentify_SubmitWithoutFileIsBlocked(t *testing.T) {
	m := newIdentifyModel(testDeps(t))

	m, cmd := m.submit()

	assert.Nil(t, cmd, "no network call without a selected file")
	assert.Equal(t, identifyIdle, m.state)
	assert.True(t, m.noticeErr)
}

func TestIdentify_RestoredPathCannotResubmit(t *testing.T) {
	d := testDeps(t)
	require.NoError(t, session.SaveSnapshot(d.store, session.Snapshot{
		Identification:    api.Identification{PlantName: "몬스테라"},
		UploadedImagePath: "/tmp/gone.jpg",
		Timestamp:         time.Now(),
	}))

	m := newIdentifyModel(d)
	require.Equal(t, identifySuccess, m.state, "a stored snapshot restores the result view")
	assert.False(t, m.fileVerified)

	m, cmd := m.submit()
	assert.Nil(t, cmd, "a restored path alone must not trigger an upload")
	assert.Contains(t, m.notice, "다시 선택")
}

func TestIdentify_SubmitEntersBlockingState(t *testing.T) {
	m := newIdentifyModel(testDeps(t))
	m = m.selectFile(writeTestImage(t))

	m, cmd := m.submit()
	require.NotNil(t, cmd)
	assert.Equal(t, identifySubmitting, m.state)

	// All page keys are ignored until the result lands.
	m2, cmd := m.handleKey(key("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, identifySubmitting, m2.state)
	assert.Equal(t, m.imagePath, m2.imagePath)
}

func TestIdentify_SuccessPersistsSnapshot(t *testing.T) {
	d := testDeps(t)
	m := newIdentifyModel(d)
	path := writeTestImage(t)
	m = m.selectFile(path)
	m, _ = m.submit()

	m, _ = m.update(analyzeDoneMsg{seq: m.seq, resp: analyzeOK("몬스테라"), imagePath: path})

	assert.Equal(t, identifySuccess, m.state)
	snap, ok := session.LoadSnapshot(d.store)
	require.True(t, ok, "success writes the snapshot")
	assert.Equal(t, "몬스테라", snap.Identification.PlantName)
	assert.Equal(t, path, snap.UploadedImagePath)
}

func TestIdentify_ExplicitFailureKeepsStoreEmpty(t *testing.T) {
	d := testDeps(t)
	m := newIdentifyModel(d)
	m = m.selectFile(writeTestImage(t))
	m, _ = m.submit()

	failed := false
	m, _ = m.update(analyzeDoneMsg{seq: m.seq, resp: &api.AnalyzeResponse{
		Success: &failed,
		Message: "식물을 찾을 수 없습니다",
	}})

	assert.Equal(t, identifyFailed, m.state)
	assert.Contains(t, m.notice, "식별 실패")
	_, ok := session.LoadSnapshot(d.store)
	assert.False(t, ok, "a failed analysis must not overwrite the store")
}

func TestIdentify_StaleResultDropped(t *testing.T) {
	m := newIdentifyModel(testDeps(t))
	m = m.selectFile(writeTestImage(t))
	m, _ = m.submit()

	m, _ = m.update(analyzeDoneMsg{seq: m.seq - 1, resp: analyzeOK("이전 요청")})

	assert.Equal(t, identifySubmitting, m.state, "a superseded response changes nothing")
	assert.False(t, m.hasSnap)
}

func TestIdentify_NetworkFailureReturnsToSelected(t *testing.T) {
	m := newIdentifyModel(testDeps(t))
	path := writeTestImage(t)
	m = m.selectFile(path)
	m, _ = m.submit()

	m, _ = m.update(analyzeFailMsg{seq: m.seq, err: &api.RequestError{URL: "http://127.0.0.1:1", Err: os.ErrDeadlineExceeded}})

	assert.Equal(t, identifyFileSelected, m.state, "the selection survives a failed upload")
	assert.Equal(t, path, m.imagePath)
	assert.True(t, m.noticeErr)
}

func TestIdentify_RemoveClearsSnapshot(t *testing.T) {
	d := testDeps(t)
	m := newIdentifyModel(d)
	path := writeTestImage(t)
	m = m.selectFile(path)
	m, _ = m.submit()
	m, _ = m.update(analyzeDoneMsg{seq: m.seq, resp: analyzeOK("몬스테라"), imagePath: path})
	require.True(t, m.hasSnap)

	m = m.removeImage()

	assert.Equal(t, identifyIdle, m.state)
	assert.Empty(t, m.imagePath)
	_, ok := session.LoadSnapshot(d.store)
	assert.False(t, ok)
}
