package components

// PlatformComponent 标记静态平台实体
// 平台创建后位置和尺寸都不再改变
type PlatformComponent struct {
	// Index 平台在关卡列表中的下标
	Index int
}
