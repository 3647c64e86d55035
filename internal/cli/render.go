package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zapponejosh/almanac-api/internal/labels"
)

// Theme holds the styles the CLI renders with.
type Theme struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	BigDay  lipgloss.Style
	Good    lipgloss.Style
	Bad     lipgloss.Style
	Card    lipgloss.Style
	Label   lipgloss.Style
	Holiday lipgloss.Style
}

// DefaultTheme is the almanac's red-and-black print look.
func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Bold:    lipgloss.NewStyle().Bold(true),
		BigDay:  lipgloss.NewStyle().Bold(true).Padding(0, 2),
		Good:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Label:   lipgloss.NewStyle().Bold(true).Width(8),
		Holiday: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")),
	}
}

// renderCard lays a day out like a tear-off almanac page.
func renderCard(t Theme, c labels.Card, observances []string) string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		t.Title.Render(fmt.Sprintf("%d年 %d月", c.Year, c.Month)),
		"  ",
		t.Muted.Render(c.MonthAbbr+" "+c.MonthSize),
	)

	dayStyle := t.BigDay
	if c.WeekdayEn == "Sunday" {
		dayStyle = dayStyle.Foreground(lipgloss.Color("1"))
	}
	day := lipgloss.JoinVertical(lipgloss.Center,
		dayStyle.Render(fmt.Sprintf("%d", c.Day)),
		c.Weekday+" "+t.Muted.Render(c.WeekdayEn),
	)

	lunar := lipgloss.JoinVertical(lipgloss.Center,
		t.Bold.Render(c.GanZhiYear+"年"),
		"("+c.Zodiac+")",
		c.LunarMonth,
		t.Bold.Render(c.LunarDay),
	)

	top := lipgloss.JoinHorizontal(lipgloss.Center, day, "   ", lunar)

	pillars := []string{"年 " + c.YearPillar, "月 " + c.MonthPillar, "日 " + c.DayPillar}
	if c.HourPillar != "" {
		pillars = append(pillars, "時 "+c.HourPillar)
	}

	term := c.SolarTerm
	if term == labels.NoSolarTerm {
		term += " " + t.Muted.Render("("+c.CurrentTerm+")")
	} else {
		term = t.Holiday.Render(term)
	}

	rows := []string{
		header,
		"",
		top,
		"",
		row(t, "四柱", strings.Join(pillars, "  ")),
		row(t, "納音", c.DayNaYin+" ("+c.DayElement+")"),
		row(t, "節氣", term),
		row(t, "建除", c.Officer),
		row(t, "宜", t.Good.Render(strings.Join(c.Auspicious, " "))),
		row(t, "忌", t.Bad.Render(strings.Join(c.Inauspicious, " "))),
		row(t, "吉神方位", strings.Join(c.Directions, "  ")),
		row(t, "貴人時", c.NobleHours),
		row(t, "吉時", c.LuckyHours),
		row(t, "沖煞", c.ClashSha),
		row(t, "六合", c.Harmony),
		row(t, "幸運數字", fmt.Sprintf("%d %d", c.LuckyNumbers[0], c.LuckyNumbers[1])),
	}
	if len(observances) > 0 {
		rows = append(rows, row(t, "紀念日", t.Holiday.Render(strings.Join(observances, "、"))))
	}

	return t.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(t Theme, label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, t.Label.Render(label), value)
}

// table renders rows under headers with columns sized to fit.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func (tb *table) add(cells ...string) {
	tb.rows = append(tb.rows, cells)
}

func (tb *table) render(t Theme) string {
	var sb strings.Builder

	if tb.title != "" {
		sb.WriteString(t.Title.Render(tb.title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(tb.headers))
	for i, h := range tb.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range tb.rows {
		for i, cell := range r {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	// Width includes the one-cell padding on either side.
	for i := range widths {
		widths[i] += 2
	}

	header := t.Bold.Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	total := len(widths) - 1
	for i, h := range tb.headers {
		sb.WriteString(header.Width(widths[i]).Render(h))
		if i < len(tb.headers)-1 {
			sb.WriteString(t.Muted.Render("|"))
		}
		total += widths[i]
	}
	sb.WriteString("\n")
	sb.WriteString(t.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, r := range tb.rows {
		for i, c := range r {
			if i >= len(widths) {
				break
			}
			sb.WriteString(cell.Width(widths[i]).Render(c))
			if i < len(r)-1 {
				sb.WriteString(t.Muted.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
