package tui

import (
	"math"
	"strings"

	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/systems"
	"github.com/decker502/tumble/pkg/utils"
)

// cell 画布上一个字符格的内容
type cell uint8

const (
	cellSky cell = iota
	cellPlatform
	cellGrass
	cellAvatar
	cellMark // 朝向指示线
	cellHitbox
)

var cellRunes = map[cell]rune{
	cellSky:      ' ',
	cellPlatform: '=',
	cellGrass:    '"',
	cellAvatar:   '#',
	cellMark:     '*',
	cellHitbox:   '+',
}

// canvas 把 800x600 的场地按格子中心采样到 cols x rows 的字符网格
type canvas struct {
	cols, rows   int
	cellW, cellH float64
	cells        [][]cell
}

func newCanvas(cols, rows int, fieldW, fieldH float64) *canvas {
	cells := make([][]cell, rows)
	for r := range cells {
		cells[r] = make([]cell, cols)
	}
	return &canvas{
		cols:  cols,
		rows:  rows,
		cellW: fieldW / float64(cols),
		cellH: fieldH / float64(rows),
		cells: cells,
	}
}

// sample 返回格子 (c, r) 中心对应的场地坐标
func (cv *canvas) sample(c, r int) (float64, float64) {
	return (float64(c) + 0.5) * cv.cellW, (float64(r) + 0.5) * cv.cellH
}

// rasterize 绘制一帧；绘制顺序与 Ebitengine 渲染一致：平台 → 角色 → 碰撞盒
func rasterize(frame *systems.Frame, cols, rows int, fieldW, fieldH float64, showHitbox bool) *canvas {
	cv := newCanvas(cols, rows, fieldW, fieldH)
	if frame == nil {
		return cv
	}

	for _, p := range frame.Platforms {
		cv.fill(p, func(px, py float64) cell {
			// 平台最上面一行画草皮
			if !contains(p, px, py-cv.cellH) {
				return cellGrass
			}
			return cellPlatform
		})
	}

	cv.drawAvatar(frame.Avatar)

	if showHitbox {
		cv.drawOutline(frame.Hitbox)
	}
	return cv
}

func contains(r utils.Rect, x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

func (cv *canvas) fill(r utils.Rect, pick func(px, py float64) cell) {
	for row := 0; row < cv.rows; row++ {
		for col := 0; col < cv.cols; col++ {
			px, py := cv.sample(col, row)
			if contains(r, px, py) {
				cv.cells[row][col] = pick(px, py)
			}
		}
	}
}

// drawAvatar 把格子中心反向旋转到角色局部坐标系后判断是否落在矩形内
func (cv *canvas) drawAvatar(vt systems.VisualTransform) {
	if vt.Width <= 0 || vt.Height <= 0 {
		return
	}
	sin, cos := math.Sincos(vt.Angle)
	halfW, halfH := vt.Width/2, vt.Height/2
	markHalf := math.Max(cv.cellW, cv.cellH) / 2

	for row := 0; row < cv.rows; row++ {
		for col := 0; col < cv.cols; col++ {
			px, py := cv.sample(col, row)
			dx, dy := px-vt.CenterX, py-vt.CenterY
			lx := dx*cos + dy*sin
			ly := -dx*sin + dy*cos
			if math.Abs(lx) > halfW || math.Abs(ly) > halfH {
				continue
			}
			if math.Abs(lx) <= markHalf && ly <= -halfH+vt.Height/3 {
				cv.cells[row][col] = cellMark
			} else {
				cv.cells[row][col] = cellAvatar
			}
		}
	}
}

// drawOutline 只画碰撞盒的边界格
func (cv *canvas) drawOutline(r utils.Rect) {
	for row := 0; row < cv.rows; row++ {
		for col := 0; col < cv.cols; col++ {
			px, py := cv.sample(col, row)
			if !contains(r, px, py) {
				continue
			}
			edge := !contains(r, px-cv.cellW, py) || !contains(r, px+cv.cellW, py) ||
				!contains(r, px, py-cv.cellH) || !contains(r, px, py+cv.cellH)
			if edge {
				cv.cells[row][col] = cellHitbox
			}
		}
	}
}

// String 返回不带样式的文本，用于测试和日志
func (cv *canvas) String() string {
	var b strings.Builder
	for r, line := range cv.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, c := range line {
			b.WriteRune(cellRunes[c])
		}
	}
	return b.String()
}

// Render 按格子类型分段上色
func (cv *canvas) Render() string {
	var b strings.Builder
	for r, line := range cv.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for i := 1; i <= len(line); i++ {
			if i < len(line) && line[i] == line[start] {
				continue
			}
			run := strings.Repeat(string(cellRunes[line[start]]), i-start)
			b.WriteString(cellStyles[line[start]].Render(run))
			start = i
		}
	}
	return b.String()
}

// fieldSize 场地尺寸，物理配置缺失时使用窗口尺寸
func fieldSize(physics *config.PhysicsConfig) (float64, float64) {
	if physics == nil || physics.FieldWidth <= 0 || physics.FieldHeight <= 0 {
		return config.GameWindowWidth, config.GameWindowHeight
	}
	return physics.FieldWidth, physics.FieldHeight
}
