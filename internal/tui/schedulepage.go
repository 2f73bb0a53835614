package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saessak-labs/planterm/internal/schedule"
)

// schedMode is the page's interaction mode. The form and the delete
// confirmation each take over the keyboard until resolved.
type schedMode int

const (
	schedList schedMode = iota
	schedForm
	schedConfirmDelete
)

const (
	formFieldDate = iota
	formFieldWater
	formFieldWeather
	formFieldMemo
	formFieldCount
)

type scheduleModel struct {
	deps    deps
	entries []schedule.Entry
	filter  schedule.Filter
	cursor  int
	mode    schedMode

	inputs   [formFieldCount]textinput.Model
	focusIdx int
	// editID is nil for the add form, set for the edit form.
	editID *int64

	notice    string
	noticeErr bool
}

func newScheduleModel(d deps) scheduleModel {
	m := scheduleModel{deps: d, filter: schedule.FilterAll}

	placeholders := [formFieldCount]string{
		"날짜 (YYYY-MM-DD)",
		"급수 횟수 1-10 (선택)",
		"날씨: 흐림/비/맑음 (선택)",
		"메모 (선택)",
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		in.Width = 36
		m.inputs[i] = in
	}

	m.reload()
	return m
}

func (m *scheduleModel) reload() {
	m.entries = m.filter.Apply(m.deps.schedules.List())
	if m.cursor >= len(m.entries) {
		m.cursor = 0
	}
}

func (m scheduleModel) capturing() bool {
	return m.mode == schedForm
}

func (m scheduleModel) update(msg tea.Msg) (scheduleModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.mode {
	case schedForm:
		return m.updateForm(key)
	case schedConfirmDelete:
		return m.updateConfirm(key), nil
	default:
		return m.updateList(key), nil
	}
}

func (m scheduleModel) updateList(key tea.KeyMsg) scheduleModel {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "a":
		return m.openForm(nil)
	case "e":
		if entry, ok := m.selected(); ok {
			return m.openForm(&entry)
		}
	case "d":
		if _, ok := m.selected(); ok {
			m.mode = schedConfirmDelete
			m.notice = ""
		}
	case "f":
		m.filter = nextFilter(m.filter)
		m.reload()
		m.notice = ""
	case "x":
		return m.exportCSV()
	}
	return m
}

func (m scheduleModel) updateConfirm(key tea.KeyMsg) scheduleModel {
	switch key.String() {
	case "y":
		entry, ok := m.selected()
		m.mode = schedList
		if !ok {
			return m
		}
		if err := m.deps.schedules.Delete(entry.ID); err != nil {
			m.notice = errorText(err)
			m.noticeErr = true
			return m
		}
		m.reload()
		m.notice = "삭제했습니다."
		m.noticeErr = false
	case "n", "esc":
		m.mode = schedList
	}
	return m
}

func (m scheduleModel) updateForm(key tea.KeyMsg) (scheduleModel, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = schedList
		m.blurAll()
		return m, nil
	case "enter":
		return m.submitForm(), nil
	case "tab", "down":
		return m.focusField((m.focusIdx + 1) % formFieldCount)
	case "shift+tab", "up":
		return m.focusField((m.focusIdx + formFieldCount - 1) % formFieldCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(key)
	return m, cmd
}

func (m scheduleModel) openForm(entry *schedule.Entry) scheduleModel {
	m.mode = schedForm
	m.notice = ""
	m.editID = nil

	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	if entry != nil {
		id := entry.ID
		m.editID = &id
		m.inputs[formFieldDate].SetValue(entry.Date)
		if entry.WaterCount != nil {
			m.inputs[formFieldWater].SetValue(strconv.Itoa(*entry.WaterCount))
		}
		if entry.WeatherType != nil {
			m.inputs[formFieldWeather].SetValue(entry.WeatherType.Label())
		}
		m.inputs[formFieldMemo].SetValue(entry.Memo)
	} else {
		m.inputs[formFieldDate].SetValue(time.Now().Format("2006-01-02"))
	}

	m2, _ := m.focusField(formFieldDate)
	return m2
}

func (m scheduleModel) focusField(idx int) (scheduleModel, tea.Cmd) {
	m.blurAll()
	m.focusIdx = idx
	m.inputs[idx].Focus()
	return m, textinput.Blink
}

func (m *scheduleModel) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m scheduleModel) submitForm() scheduleModel {
	fields, err := m.parseForm()
	if err != nil {
		m.notice = err.Error()
		m.noticeErr = true
		return m
	}

	if m.editID != nil {
		_, err = m.deps.schedules.Update(*m.editID, fields)
	} else {
		_, err = m.deps.schedules.Add(fields)
	}
	if err != nil {
		m.notice = err.Error()
		m.noticeErr = true
		return m
	}

	m.mode = schedList
	m.blurAll()
	m.reload()
	m.notice = "저장했습니다."
	m.noticeErr = false
	return m
}

func (m scheduleModel) parseForm() (schedule.Fields, error) {
	fields := schedule.Fields{
		Date: strings.TrimSpace(m.inputs[formFieldDate].Value()),
		Memo: strings.TrimSpace(m.inputs[formFieldMemo].Value()),
	}

	if raw := strings.TrimSpace(m.inputs[formFieldWater].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return schedule.Fields{}, fmt.Errorf("급수 횟수는 숫자여야 합니다: %q", raw)
		}
		fields.WaterCount = &n
	}

	if raw := strings.TrimSpace(m.inputs[formFieldWeather].Value()); raw != "" {
		w, ok := parseWeather(raw)
		if !ok {
			return schedule.Fields{}, fmt.Errorf("날씨는 흐림/비/맑음 중 하나여야 합니다: %q", raw)
		}
		fields.WeatherType = &w
	}

	return fields, nil
}

// parseWeather accepts both the Korean labels and the stored identifiers.
func parseWeather(raw string) (schedule.WeatherType, bool) {
	switch strings.ToLower(raw) {
	case "흐림", "cloudy":
		return schedule.WeatherCloudy, true
	case "비", "rainy":
		return schedule.WeatherRainy, true
	case "맑음", "sunny":
		return schedule.WeatherSunny, true
	}
	return "", false
}

func nextFilter(f schedule.Filter) schedule.Filter {
	switch f {
	case schedule.FilterAll:
		return schedule.FilterWater
	case schedule.FilterWater:
		return schedule.FilterWeather
	case schedule.FilterWeather:
		return schedule.FilterBoth
	default:
		return schedule.FilterAll
	}
}

func filterLabel(f schedule.Filter) string {
	switch f {
	case schedule.FilterWater:
		return "급수만"
	case schedule.FilterWeather:
		return "날씨만"
	case schedule.FilterBoth:
		return "급수+날씨"
	default:
		return "전체"
	}
}

func (m scheduleModel) selected() (schedule.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return schedule.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m scheduleModel) exportCSV() scheduleModel {
	entries := m.deps.schedules.List()
	path := fmt.Sprintf("급수스케줄_%s.csv", time.Now().Format("2006-01-02"))
	if err := schedule.ExportCSVFile(path, entries); err != nil {
		m.notice = errorText(err)
		m.noticeErr = true
		return m
	}
	m.notice = fmt.Sprintf("%s 파일로 %d건 내보냈습니다.", path, len(entries))
	m.noticeErr = false
	return m
}

func (m scheduleModel) view() string {
	switch m.mode {
	case schedForm:
		return m.viewForm()
	default:
		return m.viewList()
	}
}

func (m scheduleModel) viewList() string {
	var content string
	content += sectionStyle.Render("┃ 급수 스케줄") +
		dimStyle.Render("  필터: "+filterLabel(m.filter)) + "\n"

	if len(m.entries) == 0 {
		content += dimStyle.Render("  등록된 스케줄이 없습니다. [a]로 추가하세요.") + "\n"
	}

	for i, e := range m.entries {
		marker := "  "
		line := formatEntry(e)
		if i == m.cursor {
			marker = healthyStyle.Render("> ")
			line = valueStyle.Render(line)
		} else {
			line = dimStyle.Render(line)
		}
		content += marker + line + "\n"
	}

	if m.mode == schedConfirmDelete {
		if entry, ok := m.selected(); ok {
			content += "\n" + warningStyle.Render(fmt.Sprintf("  %s 스케줄을 삭제할까요? [y/n]", entry.Date)) + "\n"
		}
	}

	content += renderNotice(m.notice, m.noticeErr)
	content += "\n" + footerKeys(
		"a", "추가", "e", "수정", "d", "삭제", "f", "필터", "x", "CSV 내보내기", "q", "종료",
	)
	return content
}

func (m scheduleModel) viewForm() string {
	title := "스케줄 추가"
	if m.editID != nil {
		title = "스케줄 수정"
	}

	var content string
	content += sectionStyle.Render("┃ "+title) + "\n"
	labels := [formFieldCount]string{"날짜", "급수", "날씨", "메모"}
	for i := range m.inputs {
		content += labelStyle.Render(fmt.Sprintf("  %s: ", labels[i])) + m.inputs[i].View() + "\n"
	}
	content += renderNotice(m.notice, m.noticeErr)
	content += "\n" + dimStyle.Render("  tab 다음 항목 · enter 저장 · esc 취소")
	return content
}

func formatEntry(e schedule.Entry) string {
	water := "-"
	if e.WaterCount != nil {
		water = fmt.Sprintf("%d번", *e.WaterCount)
	}
	weather := "-"
	if e.WeatherType != nil {
		weather = e.WeatherType.Label()
	}
	line := fmt.Sprintf("%s  급수 %s  날씨 %s", e.Date, water, weather)
	if e.Memo != "" {
		line += "  " + e.Memo
	}
	return line
}
