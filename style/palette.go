package style

import "github.com/charmbracelet/lipgloss"

// ANSI colors, rendered by the terminal's own theme.
var (
	Red    = lipgloss.Color("1")
	Green  = lipgloss.Color("2")
	Yellow = lipgloss.Color("3")
	Blue   = lipgloss.Color("4")
	Purple = lipgloss.Color("5")
	Cyan   = lipgloss.Color("6")
	White  = lipgloss.Color("7")
	Gray   = lipgloss.Color("8")

	HiRed    = lipgloss.Color("9")
	HiPurple = lipgloss.Color("13")
	HiCyan   = lipgloss.Color("14")
)

// Accent colors used by the TUI.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Text     = lipgloss.Color("#cdd6f4")
	Overlay  = lipgloss.Color("#6c7086")
	Mauve    = lipgloss.Color("#cba6f7")
	Peach    = lipgloss.Color("#fab387")
	Gold     = lipgloss.Color("#f9e2af")
	Mint     = lipgloss.Color("#a6e3a1")
	Rose     = lipgloss.Color("#f38ba8")
	Sapphire = lipgloss.Color("#74c7ec")

	AccentColor  = Mauve
	SuccessColor = Mint
	ErrorColor   = Rose
	FaintColor   = Overlay
)

// Glyphs shared by the CLI and the TUI.
const (
	GlyphSuccess = "✓"
	GlyphFail    = "✗"
	GlyphStar    = "★"
	GlyphEmpty   = "☆"
	GlyphInfo    = "•"
)
