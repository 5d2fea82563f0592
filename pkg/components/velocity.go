package components

// VelocityComponent 实体速度（px/tick）
type VelocityComponent struct {
	VX, VY float64
}
