// Package report renders conversion reports for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-lunarcal/internal/config"
	"github.com/tartampluch/go-lunarcal/internal/engine"
	"github.com/tartampluch/go-lunarcal/internal/i18n"
	"gopkg.in/yaml.v3"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Width(20)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// Render writes rep to w in format (text, json or yaml).
func Render(w io.Writer, format string, rep engine.Report, tr *i18n.Translator) error {
	switch format {
	case config.FormatText:
		_, err := fmt.Fprintln(w, Text(rep, tr))
		return err
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
		}
		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%s: %q", config.ErrReportFormat, format)
	}
}

// Text is the styled panel of the text format.
func Text(rep engine.Report, tr *i18n.Translator) string {
	res := rep.Result
	leap := tr.Msg(config.TKeyNo, nil)
	if res.LeapYear {
		leap = tr.Msg(config.TKeyYes, nil)
	}

	rows := [][2]string{
		{config.TKeyLblInput, rep.Input.String()},
		{config.TKeyLblLunarYear, res.LunarYear.Name()},
		{config.TKeyLblLunarDate, res.LunarMonth + res.LunarDay},
		{config.TKeyLblLeapYear, leap},
		{config.TKeyLblYearGanZhi, res.YearGanZhi.Name()},
		{config.TKeyLblMonthGanZhi, res.MonthGanZhi.Name()},
		{config.TKeyLblDayGanZhi, res.DayGanZhi.Name()},
		{config.TKeyLblHourGanZhi, res.HourGanZhi.Name()},
		{config.TKeyLblSectional, res.SectionalTerm.String()},
		{config.TKeyLblMidTerm, res.MidTerm.String()},
	}

	lines := []string{titleStyle.Render(tr.Msg(config.TKeyTitle, nil))}
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(tr.Msg(row[0], nil)),
			valueStyle.Render(row[1]),
		))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
