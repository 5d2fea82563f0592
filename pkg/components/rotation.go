package components

// RotationDirection 翻滚方向
type RotationDirection int

const (
	// RotateNone 没有进行中的旋转
	RotateNone RotationDirection = 0
	// RotateLeft 逆时针翻滚，向左移动
	RotateLeft RotationDirection = -1
	// RotateRight 顺时针翻滚，向右移动
	RotateRight RotationDirection = 1
)

// RotationComponent 旋转动画状态
//
// 不变式：IsRotating 为 false 时 Direction 为 RotateNone 且 TargetRotation 等于 Angle。
// Angle 只影响绘制，碰撞盒始终是未旋转的矩形。
type RotationComponent struct {
	Angle          float64           // 当前角度（弧度），不做归一化
	IsRotating     bool              // 是否处于旋转动画中
	TargetRotation float64           // 动画目标角度（弧度）
	Direction      RotationDirection // 动画方向
}

// Clear 结束动画并丢弃待完成的目标角度
func (r *RotationComponent) Clear() {
	r.IsRotating = false
	r.Direction = RotateNone
	r.TargetRotation = r.Angle
}
