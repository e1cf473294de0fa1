package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary actions
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings, root family
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands, direct line
	colorPink   = lipgloss.Color("211") // spouses
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// variantStyles colors person labels the way the renderers fill their boxes.
var variantStyles = map[layout.Variant]lipgloss.Style{
	layout.VariantRoot:        lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	layout.VariantDirectLine:  lipgloss.NewStyle().Foreground(colorBlue),
	layout.VariantSpouse:      lipgloss.NewStyle().Foreground(colorPink),
	layout.VariantDead:        lipgloss.NewStyle().Foreground(colorGray),
	layout.VariantPlaceholder: lipgloss.NewStyle().Foreground(colorDim).Italic(true),
}

func variantStyle(v layout.Variant) lipgloss.Style {
	if s, ok := variantStyles[v]; ok {
		return s
	}
	return StyleValue
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// =============================================================================
// Stats Display
// =============================================================================

// statsLine formats layout statistics on a single line.
func statsLine(persons, nodes, edges int, cached bool) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d people", persons))
	if nodes > persons {
		parts = append(parts, fmt.Sprintf("%d unions", nodes-persons))
	}
	parts = append(parts, fmt.Sprintf("%d edges", edges))

	status := styleComputed.Render(iconFresh)
	if cached {
		status = styleCached.Render(iconCached)
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + status
}

func printStats(persons, nodes, edges int, cached bool) {
	fmt.Println(statsLine(persons, nodes, edges, cached))
}

// statsTable renders per-stage timings and cache hits of a pipeline run.
func statsTable(res *pipeline.Result) string {
	hit := func(b bool) string {
		if b {
			return iconCached
		}
		return iconFresh
	}
	rows := [][]string{
		{"load", fmt.Sprintf("%d people, %d marriages", res.Stats.PersonCount, res.Stats.MarriageCount), res.Stats.LoadTime.String(), hit(res.CacheInfo.LoadHit)},
		{"layout", fmt.Sprintf("%d nodes, %d edges", res.Stats.NodeCount, res.Stats.EdgeCount), res.Stats.LayoutTime.String(), hit(res.CacheInfo.LayoutHit)},
		{"render", strings.Join(sortedKeys(res.Artifacts), ", "), res.Stats.RenderTime.String(), hit(res.CacheInfo.RenderHit)},
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Stage", "Size", "Time", "Cache").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 3 && rows[row][3] == iconCached:
				return styleCached
			case col == 0:
				return StyleHighlight
			}
			return StyleDim
		}).
		Render()
}
