package systems

import (
	"image/color"

	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	skyColor            = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	platformColor       = color.RGBA{R: 101, G: 67, B: 33, A: 255}
	platformBorderColor = color.RGBA{R: 80, G: 50, B: 20, A: 255}
	grassColor          = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	avatarColor         = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	avatarBorderColor   = color.RGBA{R: 200, G: 50, B: 50, A: 255}
	orientationColor    = color.White
	hitboxColor         = color.RGBA{R: 255, G: 255, B: 0, A: 200}
)

// RenderOptions 控制可选的绘制内容
type RenderOptions struct {
	ShowHitbox       bool
	ShowInstructions bool
	// TouchControls 为 true 时显示触摸操作说明
	TouchControls bool
}

// RenderSystem 把 Frame 绘制到屏幕
//
// 只读取已发布的快照，从不访问角色组件，可以在 Ebitengine 的 Draw 协程上运行。
// 绘制顺序：背景 → 平台 → 角色 → 碰撞盒 → 操作说明。
type RenderSystem struct {
	// avatarImage 未旋转的角色贴图，尺寸变化时重新生成
	avatarImage *ebiten.Image
	avatarW     float64
	avatarH     float64
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Draw 绘制一帧，frame 为 nil 时只绘制背景
func (s *RenderSystem) Draw(screen *ebiten.Image, frame *Frame, opts RenderOptions) {
	screen.Fill(skyColor)
	if frame == nil {
		return
	}

	for _, p := range frame.Platforms {
		drawPlatform(screen, p)
	}

	s.drawAvatar(screen, frame.Avatar)

	if opts.ShowHitbox {
		h := frame.Hitbox
		vector.StrokeRect(screen, float32(h.X), float32(h.Y), float32(h.W), float32(h.H), 1, hitboxColor, false)
	}

	if opts.ShowInstructions {
		lines := config.Instructions
		if opts.TouchControls {
			lines = config.TouchInstructions
		}
		for i, line := range lines {
			ebitenutil.DebugPrintAt(screen, line, config.InstructionsX, config.InstructionsY+i*config.InstructionsLineHeight)
		}
	}
}

// drawPlatform 平台主体、描边和顶部草皮
func drawPlatform(screen *ebiten.Image, p utils.Rect) {
	x, y, w, h := float32(p.X), float32(p.Y), float32(p.W), float32(p.H)
	vector.DrawFilledRect(screen, x, y, w, h, platformColor, false)
	vector.StrokeRect(screen, x, y, w, h, config.PlatformBorderWidth, platformBorderColor, false)

	grass := float32(config.GrassStripHeight)
	if grass > h {
		grass = h
	}
	vector.DrawFilledRect(screen, x, y, w, grass, grassColor, false)
}

func (s *RenderSystem) drawAvatar(screen *ebiten.Image, vt VisualTransform) {
	if vt.Width <= 0 || vt.Height <= 0 {
		return
	}
	img := s.avatarSprite(vt.Width, vt.Height)

	op := &ebiten.DrawImageOptions{}
	op.GeoM = AvatarGeoM(vt, avatarPadding)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// avatarPadding 贴图四周留出的空白，保证描边不会被裁掉
const avatarPadding = config.AvatarBorderWidth

// avatarSprite 返回缓存的角色贴图：填充、描边和从顶边中点向下 1/3 高度的朝向线
func (s *RenderSystem) avatarSprite(w, h float64) *ebiten.Image {
	if s.avatarImage != nil && s.avatarW == w && s.avatarH == h {
		return s.avatarImage
	}
	if s.avatarImage != nil {
		s.avatarImage.Deallocate()
	}

	pad := float32(avatarPadding)
	fw, fh := float32(w), float32(h)
	img := ebiten.NewImage(int(w+2*avatarPadding), int(h+2*avatarPadding))

	vector.DrawFilledRect(img, pad, pad, fw, fh, avatarColor, true)
	vector.StrokeRect(img, pad, pad, fw, fh, config.AvatarBorderWidth, avatarBorderColor, true)
	cx := pad + fw/2
	vector.StrokeLine(img, cx, pad, cx, pad+fh/3, config.OrientationLineWidth, orientationColor, true)

	s.avatarImage, s.avatarW, s.avatarH = img, w, h
	return img
}

// AvatarGeoM 计算把带 pad 的角色贴图绕中心旋转后放到 (CenterX, CenterY) 的变换
func AvatarGeoM(vt VisualTransform, pad float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-(vt.Width/2 + pad), -(vt.Height/2 + pad))
	g.Rotate(vt.Angle)
	g.Translate(vt.CenterX, vt.CenterY)
	return g
}
