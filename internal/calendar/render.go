package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/habitgrid/internal/constants"
	"github.com/julianstephens/habitgrid/internal/models"
)

// severityColors colors unfiltered days
var severityColors = map[Severity]string{
	SeverityNone:          "#7f1d1d",
	SeverityPartial:       "#b45309",
	SeverityMandatoryOnly: "#15803d",
	SeverityAllComplete:   "#4ade80",
}

const filteredEmptyColor = "#3f3f46"

var (
	monthTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	weekdayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	emptyDayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	monthBoxStyle   = lipgloss.NewStyle().Padding(0, 1)
	legendStyle     = lipgloss.NewStyle().MarginTop(1)
)

// RenderOptions tweaks the year grid
type RenderOptions struct {
	// Today is underlined when it falls in the rendered year
	Today string
	// MonthsPerRow defaults to 3
	MonthsPerRow int
	// Legend appends the color key below the grid
	Legend bool
}

// CellColor returns the background color for a day, or "" when the day has
// no recorded activity. Filtered days take the blend of the colors of the
// habits completed that day; other days are colored by severity.
func CellColor(status models.DayStatus, ok bool) string {
	if !ok {
		return ""
	}
	if status.IsFiltered {
		if len(status.CompletedColors) == 0 {
			return filteredEmptyColor
		}
		return BlendColors(status.CompletedColors)
	}
	return severityColors[Classify(status)]
}

// BlendColors averages hex colors in Lab space. Unparseable colors are skipped.
func BlendColors(hexes []string) string {
	var blended colorful.Color
	n := 0
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			continue
		}
		n++
		if n == 1 {
			blended = c
			continue
		}
		blended = blended.BlendLab(c, 1/float64(n))
	}
	if n == 0 {
		return ""
	}
	return blended.Clamped().Hex()
}

// Render draws the year as a grid of month calendars.
func Render(year int, statuses map[string]models.DayStatus, opts RenderOptions) string {
	perRow := opts.MonthsPerRow
	if perRow <= 0 {
		perRow = 3
	}

	var rows []string
	var row []string
	for m := time.January; m <= time.December; m++ {
		row = append(row, monthBoxStyle.Render(renderMonth(year, m, statuses, opts.Today)))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if opts.Legend {
		out = lipgloss.JoinVertical(lipgloss.Left, out, legendStyle.Render(Legend()))
	}
	return out
}

func renderMonth(year int, month time.Month, statuses map[string]models.DayStatus, today string) string {
	var b strings.Builder
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	b.WriteString(monthTitleStyle.Render(fmt.Sprintf("%-20s", first.Format("January"))))
	b.WriteString("\n")
	b.WriteString(weekdayStyle.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	// Monday-first offset
	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))

	col := offset
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		date := d.Format(constants.DateFormat)
		b.WriteString(renderDay(d.Day(), date, statuses, today))

		col++
		if col == 7 {
			col = 0
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), "\n ")
}

func renderDay(day int, date string, statuses map[string]models.DayStatus, today string) string {
	label := fmt.Sprintf("%2d", day)
	status, ok := statuses[date]

	style := emptyDayStyle
	if color := CellColor(status, ok); color != "" {
		style = lipgloss.NewStyle().
			Background(lipgloss.Color(color)).
			Foreground(lipgloss.Color("#ffffff"))
	}
	if date == today {
		style = style.Underline(true).Bold(true)
	}
	return style.Render(label)
}

// Legend describes the severity colors.
func Legend() string {
	order := []Severity{SeverityNone, SeverityPartial, SeverityMandatoryOnly, SeverityAllComplete}
	parts := make([]string, 0, len(order))
	for _, s := range order {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(severityColors[s])).Render("  ")
		parts = append(parts, swatch+" "+s.String())
	}
	return strings.Join(parts, "   ")
}
