package calendar

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitgrid/internal/models"
)

func TestCellColor(t *testing.T) {
	if got := CellColor(models.DayStatus{}, false); got != "" {
		t.Errorf("absent day color = %q, want none", got)
	}

	done := models.DayStatus{MandatoryCompleted: 1, MandatoryTotal: 1}
	if got := CellColor(done, true); got != severityColors[SeverityAllComplete] {
		t.Errorf("all-complete color = %q", got)
	}

	filtered := models.DayStatus{OptionalTotal: 1, IsFiltered: true, CompletedColors: []string{}}
	if got := CellColor(filtered, true); got != filteredEmptyColor {
		t.Errorf("filtered day without completions = %q", got)
	}

	filtered.CompletedColors = []string{"#ff0000"}
	filtered.OptionalCompleted = 1
	if got := CellColor(filtered, true); got != "#ff0000" {
		t.Errorf("filtered single-habit color = %q, want the habit color", got)
	}
}

func TestBlendColors(t *testing.T) {
	if got := BlendColors(nil); got != "" {
		t.Errorf("BlendColors(nil) = %q", got)
	}
	if got := BlendColors([]string{"#f00"}); got != "#ff0000" {
		t.Errorf("short hex = %q, want #ff0000", got)
	}
	if got := BlendColors([]string{"bogus", "#00ff00"}); got != "#00ff00" {
		t.Errorf("invalid colors should be skipped, got %q", got)
	}

	mixed := BlendColors([]string{"#ff0000", "#0000ff"})
	if mixed == "#ff0000" || mixed == "#0000ff" || len(mixed) != 7 {
		t.Errorf("blend of red and blue = %q", mixed)
	}
	// Blending identical colors is stable
	if got := BlendColors([]string{"#336699", "#336699", "#336699"}); got != "#336699" {
		t.Errorf("blend of identical colors = %q", got)
	}
}

func TestRender(t *testing.T) {
	statuses := Aggregate(2024, exampleHabits(), exampleLogs(), nil)
	out := Render(2024, statuses, RenderOptions{Today: "2024-01-01", Legend: true})

	for _, month := range []string{"January", "June", "December"} {
		if !strings.Contains(out, month) {
			t.Errorf("output missing %s", month)
		}
	}
	if !strings.Contains(out, "Mo Tu We Th Fr Sa Su") {
		t.Error("output missing weekday header")
	}
	if !strings.Contains(out, "29") {
		t.Error("leap day missing from February 2024")
	}
	if !strings.Contains(out, "all-complete") {
		t.Error("legend missing")
	}
}

func TestRenderMonthLayout(t *testing.T) {
	// January 2024 starts on a Monday, so the first row begins with day 1
	out := renderMonth(2024, 1, nil, "")
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected month output:\n%s", out)
	}
	if !strings.HasPrefix(lines[2], " 1  2  3  4  5  6  7") {
		t.Errorf("first week = %q", lines[2])
	}
}
