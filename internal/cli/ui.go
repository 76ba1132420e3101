package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
)

// stdout receives all command output. Tests replace it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, exonerated
	colorYellow = lipgloss.Color("220") // Amber - warnings, available
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - approved
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text, blocked
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleBold for emphasized words inside explanations.
	StyleBold = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Subject Standing
// =============================================================================

// standing is how a subject looks to the student right now.
type standing int

const (
	standingBlocked standing = iota
	standingAvailable
	standingApproved
	standingExonerated
)

var standingLabels = map[standing]string{
	standingBlocked:    "blocked",
	standingAvailable:  "available",
	standingApproved:   "approved",
	standingExonerated: "exonerated",
}

var standingStyles = map[standing]lipgloss.Style{
	standingBlocked:    lipgloss.NewStyle().Foreground(colorDim),
	standingAvailable:  lipgloss.NewStyle().Foreground(colorYellow),
	standingApproved:   lipgloss.NewStyle().Foreground(colorBlue),
	standingExonerated: lipgloss.NewStyle().Foreground(colorGreen),
}

func (s standing) String() string { return standingLabels[s] }

func (s standing) render() string { return standingStyles[s].Render(s.String()) }

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, "  "+StyleDim.Render(msg))
}

// printTitle prints a section heading.
func printTitle(format string, args ...any) {
	fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Explanations
// =============================================================================

var boldRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// renderMarkup turns the **bold** markers of engine explanations into
// terminal styling.
func renderMarkup(s string) string {
	return boldRe.ReplaceAllStringFunc(s, func(m string) string {
		return StyleBold.Render(boldRe.FindStringSubmatch(m)[1])
	})
}

// =============================================================================
// Subject Tables
// =============================================================================

// subjectTable renders subjects with their standing as a bordered table.
func subjectTable(subjects []curriculum.Subject, standingOf func(code string) standing) string {
	rows := make([][]string, len(subjects))
	for i, s := range subjects {
		rows[i] = []string{
			s.Code,
			s.Name,
			strconv.Itoa(s.Credits),
			strconv.Itoa(s.Semester),
			string(s.EffectiveDictation()),
			standingOf(s.Code).String(),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Code", "Subject", "Credits", "Sem", "Dictation", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 5 && row >= 0 && row < len(subjects) {
				return base.Inherit(standingStyles[standingOf(subjects[row].Code)])
			}
			return base
		})
	return t.Render()
}
