package components

// PositionComponent 实体左上角的世界坐标（像素）
type PositionComponent struct {
	X, Y float64
}
