package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saessak-labs/planterm/internal/api"
	"github.com/saessak-labs/planterm/internal/session"
)

// identifyState is the upload state machine. A restored snapshot lands in
// identifySuccess with the image path shown but not verified; submitting
// again requires picking a readable file first.
type identifyState int

const (
	identifyIdle identifyState = iota
	identifyFileSelected
	identifySubmitting
	identifySuccess
	identifyFailed
)

// Message types
type analyzeDoneMsg struct {
	seq       int
	resp      *api.AnalyzeResponse
	imagePath string
}

type analyzeFailMsg struct {
	seq int
	err error
}

type identifyModel struct {
	deps  deps
	state identifyState
	input textinput.Model
	spin  spinner.Model

	imagePath string
	// fileVerified means imagePath passed validation in this process.
	// A path restored from a previous session is display-only.
	fileVerified bool

	snap      session.Snapshot
	hasSnap   bool
	notice    string
	noticeErr bool
	seq       int
}

func newIdentifyModel(d deps) identifyModel {
	input := textinput.New()
	input.Placeholder = "이미지 파일 경로 (예: ~/plant.jpg)"
	input.CharLimit = 512
	input.Width = 48

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = healthyStyle

	m := identifyModel{deps: d, input: input, spin: spin}
	if snap, ok := session.LoadSnapshot(d.store); ok {
		m.snap = snap
		m.hasSnap = true
		m.imagePath = snap.UploadedImagePath
		m.state = identifySuccess
	}
	return m
}

func (m identifyModel) init() tea.Cmd {
	return nil
}

func (m identifyModel) capturing() bool {
	return m.input.Focused()
}

func (m identifyModel) update(msg tea.Msg) (identifyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != identifySubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case analyzeDoneMsg:
		if msg.seq != m.seq {
			return m, nil // superseded request, drop
		}
		return m.handleResult(msg), nil

	case analyzeFailMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		// Transport and server failures return to FileSelected: the
		// verified selection survives and can be resubmitted as-is.
		// identifyFailed is reserved for the backend's explicit
		// success=false verdict.
		m.state = identifyFileSelected
		m.notice = errorText(msg.err)
		m.noticeErr = true
		return m, nil
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m identifyModel) handleKey(msg tea.KeyMsg) (identifyModel, tea.Cmd) {
	// The submit overlay blocks all page input until the result lands.
	if m.state == identifySubmitting {
		return m, nil
	}

	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			return m.selectFile(strings.TrimSpace(m.input.Value())), nil
		case "esc":
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "o":
		m.notice = ""
		m.input.Focus()
		return m, textinput.Blink
	case "s", "enter":
		return m.submit()
	case "x":
		return m.removeImage(), nil
	}
	return m, nil
}

// selectFile validates the typed path locally. A rejected file leaves the
// page exactly where it was.
func (m identifyModel) selectFile(path string) identifyModel {
	if err := m.deps.client.ValidateImage(path); err != nil {
		m.notice = errorText(err)
		m.noticeErr = true
		return m
	}
	m.imagePath = path
	m.fileVerified = true
	m.state = identifyFileSelected
	m.notice = ""
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m identifyModel) submit() (identifyModel, tea.Cmd) {
	if !m.fileVerified {
		m.noticeErr = true
		if m.imagePath != "" {
			m.notice = "저장된 경로만으로는 재분석할 수 없습니다. [o]로 이미지를 다시 선택해주세요."
		} else {
			m.notice = "먼저 [o]로 이미지를 선택해주세요."
		}
		return m, nil
	}
	m.state = identifySubmitting
	m.notice = ""
	m.seq++
	return m, tea.Batch(m.spin.Tick, analyzeCmd(m.deps.client, m.imagePath, m.seq))
}

// removeImage drops the local selection and the persisted snapshot.
func (m identifyModel) removeImage() identifyModel {
	m.imagePath = ""
	m.fileVerified = false
	m.snap = session.Snapshot{}
	m.hasSnap = false
	m.state = identifyIdle
	m.notice = ""
	if err := session.ClearSnapshot(m.deps.store); err != nil {
		m.notice = errorText(err)
		m.noticeErr = true
	}
	return m
}

func (m identifyModel) handleResult(msg analyzeDoneMsg) identifyModel {
	resp := msg.resp
	if !resp.Succeeded() || resp.Identification == nil {
		m.state = identifyFailed
		m.noticeErr = true
		if resp.Message != "" {
			m.notice = "식별 실패: " + resp.Message
		} else {
			m.notice = "식별 실패: 식물을 인식하지 못했습니다."
		}
		return m
	}

	snap := session.Snapshot{
		Identification:    *resp.Identification,
		CareGuide:         resp.CareGuide,
		GrowthPrediction:  resp.GrowthPrediction,
		UploadedImagePath: msg.imagePath,
		Timestamp:         time.Now(),
	}
	if err := session.SaveSnapshot(m.deps.store, snap); err != nil {
		m.notice = errorText(err)
		m.noticeErr = true
	} else {
		m.notice = ""
	}
	m.snap = snap
	m.hasSnap = true
	m.state = identifySuccess
	return m
}

func analyzeCmd(c *api.Client, imagePath string, seq int) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.AnalyzeAuto(context.Background(), imagePath)
		if err != nil {
			return analyzeFailMsg{seq: seq, err: err}
		}
		return analyzeDoneMsg{seq: seq, resp: resp, imagePath: imagePath}
	}
}

func (m identifyModel) view() string {
	var content string
	content += sectionStyle.Render("┃ 식물 식별") + "\n"

	if m.imagePath != "" {
		badge := dimStyle.Render("(이전 세션)")
		if m.fileVerified {
			badge = healthyStyle.Render("[✓]")
		}
		content += labelStyle.Render("  이미지: ") + valueStyle.Render(m.imagePath) + " " + badge + "\n"
	} else {
		content += dimStyle.Render("  선택된 이미지가 없습니다.") + "\n"
	}

	if m.input.Focused() {
		content += "  " + m.input.View() + "\n"
		content += dimStyle.Render("  enter 선택 · esc 취소") + "\n"
	}

	content += renderNotice(m.notice, m.noticeErr)

	if m.state == identifySubmitting {
		content += "\n" + overlayStyle.Render(m.spin.View()+" AI가 식물을 분석하고 있습니다...") + "\n"
	}

	if m.hasSnap && m.state != identifySubmitting {
		content += m.renderResult()
	}

	content += "\n" + footerKeys("o", "이미지 선택", "s", "분석", "x", "초기화", "q", "종료")
	return content
}

func (m identifyModel) renderResult() string {
	id := m.snap.Identification
	var content string
	content += "\n" + sectionStyle.Render("┃ 식별 결과") + "\n"
	content += labelStyle.Render("  종명: ") + valueStyle.Render(id.PlantName) + "\n"
	if id.ScientificName != nil && *id.ScientificName != "" {
		content += labelStyle.Render("  학명: ") + valueStyle.Render(*id.ScientificName) + "\n"
	}
	content += labelStyle.Render("  신뢰도: ") + valueStyle.Render(fmt.Sprintf("%.1f%%", id.Confidence*100)) + "\n"
	if len(id.CommonNames) > 0 {
		content += labelStyle.Render("  일반 명칭: ") + dimStyle.Render(strings.Join(id.CommonNames, ", ")) + "\n"
	}
	if !m.snap.Timestamp.IsZero() {
		content += dimStyle.Render("  분석 일시: "+m.snap.Timestamp.Format("2006-01-02 15:04")) + "\n"
	}
	content += dimStyle.Render("  관리 가이드는 [2], 성장 예측은 [3] 탭에서 확인하세요.") + "\n"
	return content
}
