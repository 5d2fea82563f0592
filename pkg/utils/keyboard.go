package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// TouchZone 根据触摸点的横坐标返回对应的按键
// 屏幕左三分之一为左、右三分之一为右、中间为重置
func TouchZone(x, screenWidth int) Key {
	third := screenWidth / 3
	switch {
	case x < third:
		return KeyLeft
	case x >= screenWidth-third:
		return KeyRight
	}
	return KeyReset
}

// SampleEbitenInput 读取 Ebitengine 的键盘和触摸状态并写入 ks
// 必须在 Ebitengine 的 Update 协程中调用
//
// 键盘：←/A 向左，→/D 向右，R 重置。
// 触摸：见 TouchZone，优先于键盘。
func SampleEbitenInput(ks *KeyState, screenWidth int) {
	if !ebiten.IsFocused() {
		ks.ReleaseAll()
		return
	}

	in := Intent{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Reset: ebiten.IsKeyPressed(ebiten.KeyR),
	}

	// 检查触摸输入（移动设备）
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, _ := ebiten.TouchPosition(id)
		switch TouchZone(x, screenWidth) {
		case KeyLeft:
			in.Left = true
		case KeyRight:
			in.Right = true
		case KeyReset:
			in.Reset = true
		}
	}

	ks.Apply(in)
}
