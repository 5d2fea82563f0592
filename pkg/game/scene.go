package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the game (currently only the play field).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update is called once per Ebitengine tick.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景被替换或程序退出时调用
//
// 持有后台协程（例如游戏循环）的场景通过它停止协程。
type Closer interface {
	Close()
}
