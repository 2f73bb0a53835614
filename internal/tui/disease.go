package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saessak-labs/planterm/internal/api"
)

// Message types
type diseaseDoneMsg struct {
	seq  int
	resp *api.DiseaseResponse
}

type diseaseFailMsg struct {
	seq int
	err error
}

// diseaseModel runs the leaf-photo health check. Results are shown only
// for the current session; nothing here touches the store.
type diseaseModel struct {
	deps  deps
	input textinput.Model
	spin  spinner.Model

	imagePath  string
	submitting bool
	result     *api.DiseaseResponse

	notice    string
	noticeErr bool
	seq       int
}

func newDiseaseModel(d deps) diseaseModel {
	input := textinput.New()
	input.Placeholder = "잎 사진 경로 (예: ~/leaf.jpg)"
	input.CharLimit = 512
	input.Width = 48

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = healthyStyle

	return diseaseModel{deps: d, input: input, spin: spin}
}

func (m diseaseModel) capturing() bool {
	return m.input.Focused()
}

func (m diseaseModel) update(msg tea.Msg) (diseaseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case diseaseDoneMsg:
		if msg.seq != m.seq {
			return m, nil // superseded request, drop
		}
		m.submitting = false
		m.result = msg.resp
		m.notice = ""
		return m, nil

	case diseaseFailMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.submitting = false
		m.notice = errorText(msg.err)
		m.noticeErr = true
		return m, nil
	}
	return m, nil
}

func (m diseaseModel) handleKey(msg tea.KeyMsg) (diseaseModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if err := m.deps.client.ValidateImage(path); err != nil {
				m.notice = errorText(err)
				m.noticeErr = true
				return m, nil
			}
			m.imagePath = path
			m.notice = ""
			m.input.Blur()
			m.input.SetValue("")
			return m, nil
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
		if m.imagePath == "" {
			m.notice = "먼저 [o]로 잎 사진을 선택해주세요."
			m.noticeErr = true
			return m, nil
		}
		m.submitting = true
		m.notice = ""
		m.seq++
		return m, tea.Batch(m.spin.Tick, detectCmd(m.deps.client, m.imagePath, m.seq))
	case "x":
		m.imagePath = ""
		m.result = nil
		m.notice = ""
		return m, nil
	}
	return m, nil
}

func detectCmd(c *api.Client, imagePath string, seq int) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.DetectDisease(context.Background(), imagePath)
		if err != nil {
			return diseaseFailMsg{seq: seq, err: err}
		}
		return diseaseDoneMsg{seq: seq, resp: resp}
	}
}

func (m diseaseModel) view() string {
	var content string
	content += sectionStyle.Render("┃ 병충해 진단") + "\n"

	if m.imagePath != "" {
		content += labelStyle.Render("  이미지: ") + valueStyle.Render(m.imagePath) + "\n"
	} else {
		content += dimStyle.Render("  잎 사진을 선택하면 건강 상태를 진단합니다.") + "\n"
	}

	if m.input.Focused() {
		content += "  " + m.input.View() + "\n"
		content += dimStyle.Render("  enter 선택 · esc 취소") + "\n"
	}

	content += renderNotice(m.notice, m.noticeErr)

	if m.submitting {
		content += "\n" + overlayStyle.Render(m.spin.View()+" 잎 상태를 진단하고 있습니다...") + "\n"
	} else if m.result != nil {
		content += m.renderResult()
	}

	content += "\n" + footerKeys("o", "사진 선택", "s", "진단", "x", "초기화", "q", "종료")
	return content
}

func (m diseaseModel) renderResult() string {
	r := m.result
	var content string
	content += "\n" + sectionStyle.Render("┃ 진단 결과") + "\n"

	switch r.Status {
	case api.DiseaseStatusHealthy:
		content += healthyStyle.Render("  ✓ 건강한 상태입니다") +
			dimStyle.Render(fmt.Sprintf(" (신뢰도 %.1f%%)", r.Confidence)) + "\n"
	case api.DiseaseStatusDisease:
		content += errorStyle.Render("  ✗ 병충해 의심") +
			dimStyle.Render(fmt.Sprintf(" (신뢰도 %.1f%%)", r.Confidence)) + "\n"
		if r.DiseaseType != "" {
			content += labelStyle.Render("  병명: ") + valueStyle.Render(r.DiseaseType) + "\n"
		}
		if r.Severity != "" {
			content += labelStyle.Render("  심각도: ") + warningStyle.Render(r.Severity) + "\n"
		}
	default:
		content += warningStyle.Render("  ⚠ "+r.Status) + "\n"
	}

	if r.Message != "" {
		content += dimStyle.Render("  "+r.Message) + "\n"
	}
	if r.Description != "" {
		content += dimStyle.Render("  "+r.Description) + "\n"
	}

	content += bulletSection("증상", r.Symptoms)
	content += bulletSection("원인", r.Causes)
	content += bulletSection("해결 방법", r.Solutions)
	content += bulletSection("예방", r.Prevention)
	content += bulletSection("관리 팁", r.Tips)
	return content
}

func bulletSection(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	out := labelStyle.Render("  "+title+":") + "\n"
	for _, item := range items {
		out += dimStyle.Render("   · "+item) + "\n"
	}
	return out
}
