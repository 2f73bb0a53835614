package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saessak-labs/planterm/internal/schedule"
)

func intp(v int) *int { return &v }

func seedEntries(t *testing.T, d deps) []schedule.Entry {
	t.Helper()
	sunny := schedule.WeatherSunny
	_, err := d.schedules.Add(schedule.Fields{Date: "2026-08-26", WaterCount: intp(2)})
	require.NoError(t, err)
	_, err = d.schedules.Add(schedule.Fields{Date: "2026-08-27", WeatherType: &sunny, Memo: "화창함"})
	require.NoError(t, err)
	return d.schedules.List()
}

func TestSchedulePage_ListsNewestFirst(t *testing.T) {
	d := testDeps(t)
	seedEntries(t, d)

	m := newScheduleModel(d)
	require.Len(t, m.entries, 2)
	assert.Equal(t, "2026-08-27", m.entries[0].Date)
}

func TestSchedulePage_AddFormDefaultsToToday(t *testing.T) {
	m := newScheduleModel(testDeps(t))

	m = m.openForm(nil)

	assert.Equal(t, schedForm, m.mode)
	assert.True(t, m.capturing())
	assert.Equal(t, time.Now().Format("2006-01-02"), m.inputs[formFieldDate].Value())
	assert.Nil(t, m.editID)
}

func TestSchedulePage_SubmitAdd(t *testing.T) {
	d := testDeps(t)
	m := newScheduleModel(d)

	m = m.openForm(nil)
	m.inputs[formFieldDate].SetValue("2026-08-28")
	m.inputs[formFieldWater].SetValue("3")
	m.inputs[formFieldWeather].SetValue("맑음")
	m.inputs[formFieldMemo].SetValue("아침 급수")

	m = m.submitForm()

	assert.Equal(t, schedList, m.mode)
	assert.False(t, m.noticeErr, m.notice)
	entries := d.schedules.List()
	require.Len(t, entries, 1)
	assert.Equal(t, 3, *entries[0].WaterCount)
	assert.Equal(t, schedule.WeatherSunny, *entries[0].WeatherType)
	assert.Equal(t, "아침 급수", entries[0].Memo)
}

func TestSchedulePage_SubmitRejectsBadWaterCount(t *testing.T) {
	d := testDeps(t)
	m := newScheduleModel(d)

	m = m.openForm(nil)
	m.inputs[formFieldWater].SetValue("열두번")

	m = m.submitForm()

	assert.Equal(t, schedForm, m.mode, "a rejected form stays open")
	assert.True(t, m.noticeErr)
	assert.Empty(t, d.schedules.List())
}

func TestSchedulePage_EditPrefillsForm(t *testing.T) {
	d := testDeps(t)
	entries := seedEntries(t, d)

	m := newScheduleModel(d)
	m = m.openForm(&entries[0])

	require.NotNil(t, m.editID)
	assert.Equal(t, entries[0].ID, *m.editID)
	assert.Equal(t, "2026-08-27", m.inputs[formFieldDate].Value())
	assert.Equal(t, "맑음", m.inputs[formFieldWeather].Value())
	assert.Equal(t, "화창함", m.inputs[formFieldMemo].Value())
}

func TestSchedulePage_DeleteNeedsConfirmation(t *testing.T) {
	d := testDeps(t)
	seedEntries(t, d)
	m := newScheduleModel(d)

	m = m.updateList(key("d"))
	assert.Equal(t, schedConfirmDelete, m.mode)
	assert.Len(t, d.schedules.List(), 2, "nothing is deleted before confirmation")

	m = m.updateConfirm(key("n"))
	assert.Equal(t, schedList, m.mode)
	assert.Len(t, d.schedules.List(), 2, "declining keeps the entry")

	m = m.updateList(key("d"))
	m = m.updateConfirm(key("y"))
	entries := d.schedules.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-08-26", entries[0].Date)
}

func TestSchedulePage_FilterCycle(t *testing.T) {
	d := testDeps(t)
	seedEntries(t, d)
	m := newScheduleModel(d)
	require.Len(t, m.entries, 2)

	m = m.updateList(key("f"))
	assert.Equal(t, schedule.FilterWater, m.filter)
	require.Len(t, m.entries, 1)
	assert.Equal(t, "2026-08-26", m.entries[0].Date)

	m = m.updateList(key("f"))
	assert.Equal(t, schedule.FilterWeather, m.filter)
	require.Len(t, m.entries, 1)
	assert.Equal(t, "2026-08-27", m.entries[0].Date)

	m = m.updateList(key("f"))
	assert.Equal(t, schedule.FilterBoth, m.filter)
	assert.Empty(t, m.entries)

	m = m.updateList(key("f"))
	assert.Equal(t, schedule.FilterAll, m.filter)
	assert.Len(t, m.entries, 2)
}

func TestSchedulePage_ExportCSV(t *testing.T) {
	d := testDeps(t)
	seedEntries(t, d)
	t.Chdir(t.TempDir())

	m := newScheduleModel(d)
	m = m.exportCSV()

	assert.False(t, m.noticeErr, m.notice)
	path := "급수스케줄_" + time.Now().Format("2006-01-02") + ".csv"
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\uFEFF"))
	assert.Contains(t, string(data), `"맑음"`)
}

func TestParseWeather(t *testing.T) {
	w, ok := parseWeather("맑음")
	require.True(t, ok)
	assert.Equal(t, schedule.WeatherSunny, w)

	w, ok = parseWeather("rainy")
	require.True(t, ok)
	assert.Equal(t, schedule.WeatherRainy, w)

	_, ok = parseWeather("우박")
	assert.False(t, ok)
}
