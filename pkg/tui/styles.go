package tui

import "github.com/charmbracelet/lipgloss"

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	// 画布上每种格子的样式，背景统一为天蓝色
	cellStyles = map[cell]lipgloss.Style{
		cellSky:      lipgloss.NewStyle().Background(lipgloss.Color("117")),
		cellPlatform: lipgloss.NewStyle().Background(lipgloss.Color("94")).Foreground(lipgloss.Color("52")),
		cellGrass:    lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("22")),
		cellAvatar:   lipgloss.NewStyle().Background(lipgloss.Color("203")).Foreground(lipgloss.Color("160")),
		cellMark:     lipgloss.NewStyle().Background(lipgloss.Color("203")).Foreground(lipgloss.Color("231")).Bold(true),
		cellHitbox:   lipgloss.NewStyle().Background(lipgloss.Color("117")).Foreground(lipgloss.Color("226")),
	}
)
