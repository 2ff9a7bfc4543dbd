package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	teal  = lipgloss.Color("36")
	green = lipgloss.Color("35")
	blue  = lipgloss.Color("75")
	white = lipgloss.Color("255")
	gray  = lipgloss.Color("245")
	muted = lipgloss.Color("240")
)

var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(teal)
	StyleDim   = lipgloss.NewStyle().Foreground(muted)
	StyleValue = lipgloss.NewStyle().Foreground(white)

	styleOK          = lipgloss.NewStyle().Foreground(green)
	styleNote        = lipgloss.NewStyle().Foreground(gray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(teal)
	styleCmd         = lipgloss.NewStyle().Foreground(blue)
	styleLabel       = lipgloss.NewStyle().Foreground(gray).Width(14)
)

const (
	markOK     = "✓"
	markNote   = "›"
	markFile   = "→"
	iconCached = "cached"
	iconFresh  = "fresh"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleOK.Render(markOK), fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleNote.Render(markNote), fmt.Sprintf(format, args...))
}

// printDetail prints a muted line indented under the previous status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a written output file.
func printFile(path string) {
	fmt.Println("  "+StyleDim.Render(markFile), StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key), StyleValue.Render(value))
}

// statsLine is the one-line summary under a rendered diagram, e.g.
// "10 nodes · 13 edges · cached".
func statsLine(nodes, edges int, cached bool) string {
	status := styleNote.Render(iconFresh)
	if cached {
		status = styleOK.Render(iconCached)
	}
	sep := StyleDim.Render(" · ")
	return "  " + strings.Join([]string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodes)),
		StyleDim.Render(fmt.Sprintf("%d edges", edges)),
		status,
	}, sep)
}

func printStats(nodes, edges int, cached bool) {
	fmt.Println(statsLine(nodes, edges, cached))
}

// printNextStep suggests a follow-up command.
func printNextStep(what, cmd string) {
	fmt.Println(StyleDim.Render(what+":"), styleCmd.Render(cmd))
}
