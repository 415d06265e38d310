package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "hnterm"

// LogoLines is the canonical logo.
var LogoLines = []string{
	"██   ██ ███   ██ ▄▄▄▄▄▄▄",
	"██   ██ ████  ██   ██   ",
	"███████ ██ ██ ██   ██   ",
	"██   ██ ██  ████   ██   ",
	"██   ██ ██   ███   ██   ",
}

const CompactLogo = `hn ›`

var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6600"),
	lipgloss.Color("#FF8533"),
	lipgloss.Color("#FFA366"),
	lipgloss.Color("#FF8533"),
	lipgloss.Color("#FF6600"),
}

var (
	PrimaryColor   = lipgloss.Color("#FF6600") // HN orange
	SecondaryColor = lipgloss.Color("#F6F6EF")
	AccentColor    = lipgloss.Color("#FFA366")

	BackgroundColor = lipgloss.Color("#1A1A1A")
	SurfaceColor    = lipgloss.Color("#2B2B2B")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")

	WarnColor    = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#EF4444")
	SuccessColor = lipgloss.Color("#10B981")
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(BackgroundColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(BackgroundColor).
				Background(AccentColor).
				Bold(true)

	MetaStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Faint(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	FlashStyle = lipgloss.NewStyle().
			Foreground(BackgroundColor).
			Background(WarnColor).
			Bold(true).
			Padding(0, 1)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	EmptyStyle = lipgloss.NewStyle()
)

// panelStyle frames a component; the focused one gets the accent border.
func panelStyle(focused bool) lipgloss.Style {
	border := MutedColor
	if focused {
		border = PrimaryColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

func ShowBanner(version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("HackerNews in your terminal %s", versionTag))
	} else {
		lines = append(lines, "HackerNews in your terminal")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		coloredLines = append(coloredLines, style.Render(line))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	fmt.Println(lipgloss.NewStyle().
		Width(70).
		Align(lipgloss.Center).
		Render(borderStyle.Render(banner)))
}
