package components

import "github.com/decker502/tumble/pkg/utils"

// CollisionComponent 定义实体的轴对齐碰撞盒尺寸
// 碰撞盒的左上角就是 PositionComponent 的坐标，且永远不随视觉旋转
type CollisionComponent struct {
	Width  float64 // 碰撞盒宽度（像素）
	Height float64 // 碰撞盒高度（像素）
}

// Bounds 返回位于 pos 处的碰撞盒
func (c *CollisionComponent) Bounds(pos *PositionComponent) utils.Rect {
	return utils.Rect{X: pos.X, Y: pos.Y, W: c.Width, H: c.Height}
}
