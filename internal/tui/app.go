// Package tui is the interactive terminal front end: five pages over the
// backend client, the session store and the schedule journal. All network
// work runs in tea.Cmd closures; results carry a sequence stamp so
// answers to superseded requests are dropped instead of clobbering newer
// state.
package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saessak-labs/planterm/internal/api"
	"github.com/saessak-labs/planterm/internal/logging"
	"github.com/saessak-labs/planterm/internal/schedule"
	"github.com/saessak-labs/planterm/internal/session"
)

type pageID int

const (
	pageIdentify pageID = iota
	pageCare
	pageGrowth
	pageSchedule
	pageDisease
	pageCount
)

var pageTitles = [pageCount]string{
	"1 식별",
	"2 관리",
	"3 성장",
	"4 스케줄",
	"5 진단",
}

// deps are the shared services every page draws on.
type deps struct {
	client    *api.Client
	store     *session.Store
	schedules *schedule.Manager
	log       *logging.Logger
}

// App is the root model. It owns the tab bar and routes everything else
// to the active page.
type App struct {
	deps     deps
	active   pageID
	width    int
	height   int
	quitting bool

	identify identifyModel
	care     careModel
	growth   growthModel
	schedule scheduleModel
	disease  diseaseModel
}

// NewApp wires the five pages over the shared services.
func NewApp(client *api.Client, store *session.Store, schedules *schedule.Manager, log *logging.Logger) App {
	d := deps{client: client, store: store, schedules: schedules, log: log.Named("tui")}
	return App{
		deps:     d,
		identify: newIdentifyModel(d),
		care:     newCareModel(d),
		growth:   newGrowthModel(d),
		schedule: newScheduleModel(d),
		disease:  newDiseaseModel(d),
	}
}

// Run starts the program in the alternate screen.
func Run(client *api.Client, store *session.Store, schedules *schedule.Manager, log *logging.Logger) error {
	p := tea.NewProgram(NewApp(client, store, schedules, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// Init initializes the model
func (a App) Init() tea.Cmd {
	return a.identify.init()
}

// Update handles messages
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
		// Global keys only when no page is reading text input.
		if !a.capturing() {
			switch msg.String() {
			case "q":
				a.quitting = true
				return a, tea.Quit
			case "1", "2", "3", "4", "5":
				return a.switchTo(pageID(int(msg.String()[0] - '1'))), nil
			case "tab":
				return a.switchTo((a.active + 1) % pageCount), nil
			}
		}
	}

	return a.routeToActive(msg)
}

// switchTo activates a page and lets it reload from the stores so a
// snapshot saved on one page is visible on the next without a restart.
func (a App) switchTo(id pageID) App {
	a.active = id
	switch id {
	case pageCare:
		a.care.reload()
	case pageGrowth:
		a.growth.reload()
	case pageSchedule:
		a.schedule.reload()
	}
	return a
}

func (a App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case pageIdentify:
		a.identify, cmd = a.identify.update(msg)
	case pageCare:
		a.care, cmd = a.care.update(msg)
	case pageGrowth:
		a.growth, cmd = a.growth.update(msg)
	case pageSchedule:
		a.schedule, cmd = a.schedule.update(msg)
	case pageDisease:
		a.disease, cmd = a.disease.update(msg)
	}
	return a, cmd
}

// capturing reports whether the active page is reading free text, in
// which case digits and q belong to the page, not the tab bar.
func (a App) capturing() bool {
	switch a.active {
	case pageIdentify:
		return a.identify.capturing()
	case pageSchedule:
		return a.schedule.capturing()
	case pageDisease:
		return a.disease.capturing()
	}
	return false
}

// View renders the active page under the shared tab bar.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	header := headerStyle.Render(" 새싹 키움 ")
	tabs := ""
	for i := pageID(0); i < pageCount; i++ {
		if i == a.active {
			tabs += tabActiveStyle.Render(pageTitles[i])
		} else {
			tabs += tabInactiveStyle.Render(pageTitles[i])
		}
	}

	var body string
	switch a.active {
	case pageIdentify:
		body = a.identify.view()
	case pageCare:
		body = a.care.view()
	case pageGrowth:
		body = a.growth.view()
	case pageSchedule:
		body = a.schedule.view()
	case pageDisease:
		body = a.disease.view()
	}

	content := lipgloss.JoinHorizontal(lipgloss.Center, header, " ", tabs) + "\n" + body
	return containerStyle.Render(content)
}

// errorText maps the client's failure classes to a user-facing line.
func errorText(err error) string {
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	var re *api.RequestError
	if errors.As(err, &re) {
		return "서버에 연결할 수 없습니다. 백엔드가 실행 중인지 확인해주세요."
	}
	var ae *api.APIError
	if errors.As(err, &ae) {
		if ae.Detail != "" {
			return fmt.Sprintf("서버 오류 (%d): %s", ae.Status, ae.Detail)
		}
		return fmt.Sprintf("서버 오류 (%d)", ae.Status)
	}
	return err.Error()
}

func renderNotice(notice string, isErr bool) string {
	if notice == "" {
		return ""
	}
	if isErr {
		return errorStyle.Render("✗ "+notice) + "\n"
	}
	return healthyStyle.Render("✓ "+notice) + "\n"
}
