package app

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"keepnotes/internal/types"
)

var (
	headerStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	brandStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221"))
	helpStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	navStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	navCurrentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	navCountStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	sectionStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true)
	tagChipStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	tagChipActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("69")).Bold(true)
	selectedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	dividerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cardTitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	cardUntitledStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	cardBodyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	cardTagStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	cardMetaStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Faint(true)
	priorityHighStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	emptyStateStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	menuDropStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	menuHeaderStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	modalBorderStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	confirmBorderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	fieldLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	fieldLabelFocusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	toastInfoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)

func backgroundColor(bg types.Background) color.Color {
	switch bg {
	case types.BackgroundRed:
		return lipgloss.Color("203")
	case types.BackgroundBlue:
		return lipgloss.Color("75")
	case types.BackgroundYellow:
		return lipgloss.Color("221")
	default:
		return lipgloss.Color("240")
	}
}

func cardBorderStyle(bg types.Background, selected bool) lipgloss.Style {
	border := lipgloss.RoundedBorder()
	if selected {
		border = lipgloss.ThickBorder()
	}
	return lipgloss.NewStyle().Border(border).BorderForeground(backgroundColor(bg)).Padding(0, 1)
}
