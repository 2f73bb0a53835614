package schedule

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// csvHeader matches the original export column order.
var csvHeader = []string{"날짜", "급수", "날씨", "메모", "등록일시"}

// utf8BOM keeps spreadsheet tools from mangling the Korean headers.
const utf8BOM = "\uFEFF"

// WriteCSV renders entries as CSV: one header line plus one line per
// entry, every field quoted so free-text memos with commas and newlines
// survive a round trip. Read-only; never mutates the set.
func WriteCSV(w io.Writer, entries []Entry) error {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, quoteRow(csvHeader))

	for _, e := range entries {
		water := "-"
		if e.WaterCount != nil {
			water = fmt.Sprintf("%d번", *e.WaterCount)
		}
		weather := "-"
		if e.WeatherType != nil {
			weather = e.WeatherType.Label()
		}
		lines = append(lines, quoteRow([]string{
			e.Date,
			water,
			weather,
			e.Memo,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		}))
	}

	_, err := io.WriteString(w, utf8BOM+strings.Join(lines, "\n"))
	return err
}

// ExportCSVFile writes the CSV to path.
func ExportCSVFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// quoteRow quotes every field unconditionally.
func quoteRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
