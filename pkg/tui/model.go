// Package tui 是 World 的终端前端
//
// 与 Ebitengine 前端一样，它只写 KeyState、只读已发布的 Frame。
// 终端没有按键松开事件，所以每次按键被当作一个短暂的"脉冲"：
// 按下时置位，keyPulse 之后如果没有新的按键就自动松开。按住不放时终端的自动重复会不断续期。
package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/decker502/tumble/pkg/game"
	"github.com/decker502/tumble/pkg/utils"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

const (
	// keyPulse 一次按键保持按下的时长
	keyPulse = 150 * time.Millisecond

	// refreshInterval 画面刷新间隔
	refreshInterval = time.Second / 30

	// headerLines, footerLines 画布上下占用的行数
	headerLines = 1
	footerLines = 2

	minCols = 20
	minRows = 8
)

type refreshMsg time.Time

// releaseMsg 到期松开按键；seq 不是最新的说明期间又按过一次，忽略
type releaseMsg struct {
	key utils.Key
	seq int
}

type statusMsg struct {
	text string
	err  bool
}

// Model 终端前端的 bubbletea 模型
type Model struct {
	world *game.World
	keys  keyMap
	help  help.Model

	width, height int
	showHitbox    bool
	status        statusMsg

	pulses map[utils.Key]int

	// copyText 写剪贴板，测试中替换
	copyText func(string) error
}

// New 创建模型，world 的游戏循环由调用方启动和停止
func New(world *game.World) *Model {
	return &Model{
		world:    world,
		keys:     newKeyMap(),
		help:     help.New(),
		width:    80,
		height:   24,
		pulses:   make(map[utils.Key]int),
		copyText: clipboard.WriteAll,
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Init 开始定时刷新
func (m *Model) Init() tea.Cmd {
	return refresh()
}

// Update 处理按键、窗口尺寸和定时消息
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		return m, refresh()

	case releaseMsg:
		if m.pulses[msg.key] == msg.seq {
			m.world.Keys().Set(msg.key, false)
		}
		return m, nil

	case statusMsg:
		m.status = msg
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		log.Printf("[TUI] Quit requested")
		return tea.Quit
	case key.Matches(msg, m.keys.Left):
		return m.press(utils.KeyLeft)
	case key.Matches(msg, m.keys.Right):
		return m.press(utils.KeyRight)
	case key.Matches(msg, m.keys.Reset):
		return m.press(utils.KeyReset)
	case key.Matches(msg, m.keys.Hitbox):
		m.showHitbox = !m.showHitbox
		return nil
	case key.Matches(msg, m.keys.Yank):
		return m.yankFrame()
	}
	return nil
}

// press 按下按键并安排 keyPulse 之后松开
func (m *Model) press(k utils.Key) tea.Cmd {
	m.pulses[k]++
	seq := m.pulses[k]
	m.world.Keys().Set(k, true)
	return tea.Tick(keyPulse, func(time.Time) tea.Msg {
		return releaseMsg{key: k, seq: seq}
	})
}

// yankFrame 把当前帧以 YAML 格式复制到剪贴板
func (m *Model) yankFrame() tea.Cmd {
	frame := m.world.Frame()
	copyText := m.copyText
	return func() tea.Msg {
		data, err := yaml.Marshal(frame)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("failed to encode frame: %v", err), err: true}
		}
		if err := copyText(string(data)); err != nil {
			log.Printf("[TUI] Clipboard write failed: %v", err)
			return statusMsg{text: fmt.Sprintf("failed to copy to clipboard: %v", err), err: true}
		}
		return statusMsg{text: fmt.Sprintf("Copied frame %d to clipboard", frame.Tick)}
	}
}

// canvasSize 画布尺寸，终端太小时使用最小值
func (m *Model) canvasSize() (int, int) {
	cols := m.width
	rows := m.height - headerLines - footerLines
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	return cols, rows
}

// View 渲染标题、画布、状态行和帮助
func (m *Model) View() string {
	frame := m.world.Frame()
	cols, rows := m.canvasSize()
	fieldW, fieldH := fieldSize(m.world.Physics())

	var b strings.Builder
	b.WriteString(m.header(cols))
	b.WriteByte('\n')
	b.WriteString(rasterize(frame, cols, rows, fieldW, fieldH, m.showHitbox).Render())
	b.WriteByte('\n')

	status := ""
	if m.status.text != "" {
		style := statusStyle
		if m.status.err {
			style = errorStyle
		}
		status = style.Render(m.status.text)
	}
	b.WriteString(ansi.Truncate(status, cols, "…"))
	b.WriteByte('\n')
	b.WriteString(ansi.Truncate(m.help.View(m.keys), cols, "…"))
	return b.String()
}

func (m *Model) header(width int) string {
	frame := m.world.Frame()
	state := "airborne"
	switch {
	case frame == nil:
		state = "-"
	case frame.State.IsRotating:
		state = "rolling"
	case frame.State.Grounded:
		state = "grounded"
	}

	var tick uint64
	var resets int
	if frame != nil {
		tick = frame.Tick
		resets = frame.State.Resets
	}

	levelName := runewidth.Truncate(m.world.Level().Name, 16, "…")
	held := m.heldKeys()
	plain := fmt.Sprintf("Tumble  level: %s  tick: %d  state: %s  resets: %d  keys: %s", levelName, tick, state, resets, held)
	if runewidth.StringWidth(plain) > width {
		return ansi.Truncate(titleStyle.Render(plain), width, "…")
	}

	return titleStyle.Render("Tumble") + "  " +
		labelStyle.Render("level: ") + valueStyle.Render(levelName) + "  " +
		labelStyle.Render("tick: ") + valueStyle.Render(fmt.Sprint(tick)) + "  " +
		labelStyle.Render("state: ") + valueStyle.Render(state) + "  " +
		labelStyle.Render("resets: ") + valueStyle.Render(fmt.Sprint(resets)) + "  " +
		labelStyle.Render("keys: ") + valueStyle.Render(held)
}

// heldKeys 当前按住的按键，没有时为 "-"
func (m *Model) heldKeys() string {
	var held []string
	for _, k := range []utils.Key{utils.KeyLeft, utils.KeyRight, utils.KeyReset} {
		if m.world.Keys().Pressed(k) {
			held = append(held, k.String())
		}
	}
	if len(held) == 0 {
		return "-"
	}
	return strings.Join(held, "+")
}
