package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saessak-labs/planterm/internal/schedule"
)

var (
	schedDate    string
	schedWater   int
	schedWeather string
	schedMemo    string
	schedFilter  string
	schedYes     bool
	schedOutPath string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the watering journal",
	Long: `Manage watering journal entries: list, add, edit, remove and export
to CSV. Entries live in the local session store; no backend is involved.

Examples:
  planterm schedule list
  planterm schedule add --date 2026-08-28 --water 2 --weather 맑음 --memo "아침 급수"
  planterm schedule edit 1756339200000 --date 2026-08-28 --water 3
  planterm schedule rm 1756339200000
  planterm schedule export -o 스케줄.csv`,
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runScheduleList,
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a journal entry",
	Args:  cobra.NoArgs,
	RunE:  runScheduleAdd,
}

var scheduleEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace an entry's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleEdit,
}

var scheduleRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an entry (asks for confirmation)",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleRm,
}

var scheduleExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all entries to CSV",
	Args:  cobra.NoArgs,
	RunE:  runScheduleExport,
}

func init() {
	for _, c := range []*cobra.Command{scheduleAddCmd, scheduleEditCmd} {
		c.Flags().StringVar(&schedDate, "date", "", "entry date, YYYY-MM-DD (add defaults to today)")
		c.Flags().IntVar(&schedWater, "water", 0, "watering count, 1-10")
		c.Flags().StringVar(&schedWeather, "weather", "", "weather: 흐림|비|맑음")
		c.Flags().StringVar(&schedMemo, "memo", "", "free-form memo")
	}
	scheduleListCmd.Flags().StringVar(&schedFilter, "filter", "all", "filter: all|water|weather|both")
	scheduleRmCmd.Flags().BoolVarP(&schedYes, "yes", "y", false, "skip the confirmation prompt")
	scheduleExportCmd.Flags().StringVarP(&schedOutPath, "output", "o", "", "output file (default 급수스케줄_<date>.csv)")

	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleEditCmd)
	scheduleCmd.AddCommand(scheduleRmCmd)
	scheduleCmd.AddCommand(scheduleExportCmd)
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	filter := schedule.Filter(schedFilter)
	entries := filter.Apply(svc.schedules.List())
	if len(entries) == 0 {
		cmd.Println("등록된 스케줄이 없습니다.")
		return nil
	}

	for _, e := range entries {
		water := "-"
		if e.WaterCount != nil {
			water = fmt.Sprintf("%d번", *e.WaterCount)
		}
		weather := "-"
		if e.WeatherType != nil {
			weather = e.WeatherType.Label()
		}
		cmd.Printf("%d  %s  급수 %-4s 날씨 %-4s %s\n", e.ID, e.Date, water, weather, e.Memo)
	}
	return nil
}

func runScheduleAdd(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	if schedDate == "" {
		schedDate = time.Now().Format("2006-01-02")
	}
	fields, err := scheduleFields(cmd)
	if err != nil {
		return err
	}

	entry, err := svc.schedules.Add(fields)
	if err != nil {
		return err
	}
	cmd.Printf("스케줄 %d을(를) 추가했습니다.\n", entry.ID)
	return nil
}

func runScheduleEdit(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	id, err := parseEntryID(args[0])
	if err != nil {
		return err
	}
	fields, err := scheduleFields(cmd)
	if err != nil {
		return err
	}

	entry, err := svc.schedules.Update(id, fields)
	if err != nil {
		return err
	}
	cmd.Printf("스케줄 %d을(를) 수정했습니다.\n", entry.ID)
	return nil
}

func runScheduleRm(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	id, err := parseEntryID(args[0])
	if err != nil {
		return err
	}
	entry, ok := svc.schedules.Get(id)
	if !ok {
		return fmt.Errorf("schedule %d not found", id)
	}

	if !schedYes {
		cmd.Printf("%s 스케줄을 삭제할까요? [y/N] ", entry.Date)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			cmd.Println("취소했습니다.")
			return nil
		}
	}

	if err := svc.schedules.Delete(id); err != nil {
		return err
	}
	cmd.Println("삭제했습니다.")
	return nil
}

func runScheduleExport(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	entries := svc.schedules.List()
	path := schedOutPath
	if path == "" {
		path = fmt.Sprintf("급수스케줄_%s.csv", time.Now().Format("2006-01-02"))
	}
	if err := schedule.ExportCSVFile(path, entries); err != nil {
		return err
	}
	cmd.Printf("%s 파일로 %d건 내보냈습니다.\n", path, len(entries))
	return nil
}

// scheduleFields maps the shared add/edit flags to validated fields.
// Unset optional flags stay nil so they export as "-".
func scheduleFields(cmd *cobra.Command) (schedule.Fields, error) {
	fields := schedule.Fields{Date: schedDate, Memo: schedMemo}

	if cmd.Flags().Changed("water") {
		w := schedWater
		fields.WaterCount = &w
	}
	if schedWeather != "" {
		wt, ok := parseWeatherFlag(schedWeather)
		if !ok {
			return schedule.Fields{}, fmt.Errorf("unknown weather %q (흐림|비|맑음)", schedWeather)
		}
		fields.WeatherType = &wt
	}
	return fields, nil
}

func parseWeatherFlag(raw string) (schedule.WeatherType, bool) {
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

func parseEntryID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule id %q", raw)
	}
	return id, nil
}
