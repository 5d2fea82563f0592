package components

// AvatarComponent 玩家角色特有的状态
type AvatarComponent struct {
	// Grounded 本 tick 是否从上方落在某个平台上，每次更新都会重新计算
	Grounded bool

	// StartX, StartY 出生点，重置时回到这里
	StartX, StartY float64

	// Resets 累计重置次数（按键重置、掉出屏幕、数值异常）
	Resets int
}
