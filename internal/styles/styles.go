package styles

import "github.com/charmbracelet/lipgloss"

// Color palette, set by ApplyTheme.
var (
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextSubtle    lipgloss.Color

	BgPrimary   lipgloss.Color
	BgSecondary lipgloss.Color
	BgTertiary  lipgloss.Color

	BorderNormal lipgloss.Color
	BorderActive lipgloss.Color

	ToastSuccessTextColor lipgloss.Color
	ToastErrorTextColor   lipgloss.Color
)

// Styles, rebuilt from the palette by ApplyTheme.
var (
	PanelActive   lipgloss.Style
	PanelInactive lipgloss.Style

	Title         lipgloss.Style
	Body          lipgloss.Style
	Muted         lipgloss.Style
	Subtle        lipgloss.Style
	KeyHint       lipgloss.Style
	Logo          lipgloss.Style
	StatusLoading lipgloss.Style
	StatusError   lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldError    lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style

	ListItemNormal   lipgloss.Style
	ListItemSelected lipgloss.Style
	ListCursor       lipgloss.Style
	ListExcerpt      lipgloss.Style

	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDanger   lipgloss.Style
	ButtonDisabled lipgloss.Style

	PageActive   lipgloss.Style
	PageNormal   lipgloss.Style
	PageDisabled lipgloss.Style

	ModalTitle lipgloss.Style
)

func init() {
	ApplyTheme(DefaultThemeName)
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	// Panels
	PanelActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(0, 1)

	PanelInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	// Text
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	Logo = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	StatusLoading = lipgloss.NewStyle().
		Foreground(Info)

	StatusError = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	FieldError = lipgloss.NewStyle().
		Foreground(Error)

	// Toasts
	ToastSuccess = lipgloss.NewStyle().
		Background(Success).
		Foreground(ToastSuccessTextColor).
		Bold(true).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Background(Error).
		Foreground(ToastErrorTextColor).
		Bold(true).
		Padding(0, 1)

	// List
	ListItemNormal = lipgloss.NewStyle().
		Foreground(TextPrimary)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary)

	ListCursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	ListExcerpt = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Buttons
	Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgTertiary).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Bold(true).
		Padding(0, 2)

	ButtonDanger = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Error).
		Bold(true).
		Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextSubtle).
		Background(BgSecondary).
		Padding(0, 2)

	// Pagination
	PageActive = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Bold(true).
		Padding(0, 1)

	PageNormal = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	PageDisabled = lipgloss.NewStyle().
		Foreground(TextSubtle).
		Padding(0, 1)

	// Modal
	ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		MarginBottom(1)
}

// TagStyle returns the badge style for a note tag.
func TagStyle(tag string) lipgloss.Style {
	color := TextSecondary
	switch tag {
	case "Todo":
		color = Accent
	case "Work":
		color = Secondary
	case "Personal":
		color = Success
	case "Meeting":
		color = Primary
	case "Shopping":
		color = Warning
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1)
}
