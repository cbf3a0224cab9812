package styles

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects access to themeRegistry and currentTheme for thread safety
var themeMu sync.RWMutex

// ColorPalette holds all theme colors
type ColorPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`

	Success string `json:"success"`
	Warning string `json:"warning"`
	Error   string `json:"error"`

	TextPrimary string `json:"textPrimary"`
	TextMuted   string `json:"textMuted"`
	TextInverse string `json:"textInverse"`

	BgSecondary string `json:"bgSecondary"`
	BgTertiary  string `json:"bgTertiary"`

	BorderNormal string `json:"borderNormal"`
	BorderActive string `json:"borderActive"`

	// Glamour theme name for rendered pages
	MarkdownTheme string `json:"markdownTheme"`
}

// Theme represents a complete theme configuration
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes
var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary:   "#7C3AED", // Purple
			Secondary: "#3B82F6", // Blue
			Accent:    "#F59E0B", // Amber

			Success: "#10B981",
			Warning: "#F59E0B",
			Error:   "#EF4444",

			TextPrimary: "#F9FAFB",
			TextMuted:   "#6B7280",
			TextInverse: "#111827",

			BgSecondary: "#1F2937",
			BgTertiary:  "#374151",

			BorderNormal: "#374151",
			BorderActive: "#7C3AED",

			MarkdownTheme: "dark",
		},
	}

	LightTheme = Theme{
		Name:        "light",
		DisplayName: "Paper",
		Colors: ColorPalette{
			Primary:   "#6D28D9",
			Secondary: "#2563EB",
			Accent:    "#B45309",

			Success: "#047857",
			Warning: "#B45309",
			Error:   "#B91C1C",

			TextPrimary: "#111827",
			TextMuted:   "#6B7280",
			TextInverse: "#F9FAFB",

			BgSecondary: "#F3F4F6",
			BgTertiary:  "#E5E7EB",

			BorderNormal: "#D1D5DB",
			BorderActive: "#6D28D9",

			MarkdownTheme: "light",
		},
	}
)

var themeRegistry = map[string]Theme{
	DefaultTheme.Name: DefaultTheme,
	LightTheme.Name:   LightTheme,
}

var currentThemeValue = DefaultTheme

// Colors of the current theme.
var (
	Primary, Secondary, Accent          lipgloss.Color
	Success, Warning, Error             lipgloss.Color
	TextPrimary, TextMuted, TextInverse lipgloss.Color
	BgSecondary, BgTertiary             lipgloss.Color
	BorderNormal, BorderActive          lipgloss.Color
)

// Styles rebuilt whenever the theme changes.
var (
	PanelActive   lipgloss.Style
	PanelInactive lipgloss.Style
	Title         lipgloss.Style
	Body          lipgloss.Style
	Muted         lipgloss.Style
	Code          lipgloss.Style
	Link          lipgloss.Style
	KeyHint       lipgloss.Style
	Logo          lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style

	ListItemNormal   lipgloss.Style
	ListItemSelected lipgloss.Style
	ListCursor       lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonHover   lipgloss.Style

	SwitchOn  lipgloss.Style
	SwitchOff lipgloss.Style
	Source    lipgloss.Style

	Footer lipgloss.Style
)

func init() {
	ApplyTheme(DefaultTheme.Name)
}

// IsValidTheme reports whether name is a registered theme.
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// ListThemes returns the registered theme names in sorted order.
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentThemeValue
}

// GetMarkdownTheme returns the glamour style name for the active theme.
func GetMarkdownTheme() string {
	return GetCurrentTheme().Colors.MarkdownTheme
}

// ApplyTheme switches to the named theme, falling back to the default.
func ApplyTheme(name string) {
	themeMu.RLock()
	theme, ok := themeRegistry[name]
	themeMu.RUnlock()
	if !ok {
		theme = DefaultTheme
	}
	ApplyThemeColors(theme)
}

// ApplyThemeColors sets the color variables from theme and rebuilds styles.
func ApplyThemeColors(theme Theme) {
	c := theme.Colors
	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextInverse = lipgloss.Color(c.TextInverse)

	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	themeMu.Lock()
	currentThemeValue = theme
	themeMu.Unlock()

	rebuildStyles()
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	PanelActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(0, 1)

	PanelInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Code = lipgloss.NewStyle().
		Foreground(Accent)

	Link = lipgloss.NewStyle().
		Foreground(Secondary).
		Underline(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	Logo = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	ToastSuccess = lipgloss.NewStyle().
		Background(Success).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Background(Error).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	ListItemNormal = lipgloss.NewStyle().
		Foreground(TextPrimary)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary)

	ListCursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	TabActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Primary).
		Bold(true).
		Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary).
		Padding(0, 1)

	ButtonFocused = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Primary).
		Bold(true).
		Padding(0, 1)

	ButtonHover = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgSecondary).
		Padding(0, 1)

	SwitchOn = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	SwitchOff = lipgloss.NewStyle().
		Foreground(TextMuted)

	Source = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)
}
