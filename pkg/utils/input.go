package utils

import "sync/atomic"

// Key 游戏使用的逻辑按键
type Key int

const (
	// KeyLeft 向左翻滚
	KeyLeft Key = iota
	// KeyRight 向右翻滚
	KeyRight
	// KeyReset 回到出生点
	KeyReset
)

// String 返回按键名称，用于日志
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyReset:
		return "reset"
	}
	return "unknown"
}

// Intent 存储一个 tick 的输入快照
// 模拟线程每个 tick 采样一次，之后只读
type Intent struct {
	Left  bool
	Right bool
	Reset bool
}

// KeyState 存储当前按下的按键
//
// 输入事件（Ebitengine 的 Update 协程或终端事件循环）与游戏循环运行在不同的协程上，
// 所以每个按键都是一个 atomic.Bool。模拟线程通过 Snapshot() 取得本 tick 的 Intent。
type KeyState struct {
	left  atomic.Bool
	right atomic.Bool
	reset atomic.Bool
}

// Set 记录按键按下或松开
func (ks *KeyState) Set(key Key, pressed bool) {
	switch key {
	case KeyLeft:
		ks.left.Store(pressed)
	case KeyRight:
		ks.right.Store(pressed)
	case KeyReset:
		ks.reset.Store(pressed)
	}
}

// Pressed 返回按键当前是否按下
func (ks *KeyState) Pressed(key Key) bool {
	switch key {
	case KeyLeft:
		return ks.left.Load()
	case KeyRight:
		return ks.right.Load()
	case KeyReset:
		return ks.reset.Load()
	}
	return false
}

// Apply 一次性写入所有按键
func (ks *KeyState) Apply(in Intent) {
	ks.left.Store(in.Left)
	ks.right.Store(in.Right)
	ks.reset.Store(in.Reset)
}

// ReleaseAll 松开所有按键（窗口失去焦点时使用）
func (ks *KeyState) ReleaseAll() {
	ks.Apply(Intent{})
}

// Snapshot 返回当前按键状态的快照
func (ks *KeyState) Snapshot() Intent {
	return Intent{
		Left:  ks.left.Load(),
		Right: ks.right.Load(),
		Reset: ks.reset.Load(),
	}
}
