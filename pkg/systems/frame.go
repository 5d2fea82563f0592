package systems

import "github.com/decker502/tumble/pkg/utils"

// VisualTransform 绘制角色用的旋转变换
// 只用于渲染，碰撞一律使用未旋转的 CollisionBounds
type VisualTransform struct {
	CenterX float64 `yaml:"centerX"`
	CenterY float64 `yaml:"centerY"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Angle   float64 `yaml:"angle"`
}

// Frame 一个 tick 结束后发布给渲染端的不可变快照
type Frame struct {
	Tick uint64 `yaml:"tick"`
	// ElapsedRatio 这个 tick 实际间隔与目标间隔之比，只用于观察卡顿
	ElapsedRatio float64         `yaml:"elapsedRatio"`
	Platforms    []utils.Rect    `yaml:"platforms"`
	Hitbox       utils.Rect      `yaml:"hitbox"`
	Avatar       VisualTransform `yaml:"avatar"`
	State        AvatarState     `yaml:"state"`
}
