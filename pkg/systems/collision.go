package systems

import "github.com/decker502/tumble/pkg/utils"

// edgeTolerance 判断"上一 tick 是否在边的外侧"时允许的浮点误差
const edgeTolerance = 1e-6

// resolvePlatformCollision 处理角色与单个平台的碰撞
//
// 同一个平台会同时检查竖直和水平两个轴：斜向撞到平台角上时，
// 一次碰撞既可以停止下落，也可以取消进行中的翻滚。
//
// 每个轴只在角色本 tick 越过了对应的边时才修正，这样站在平台上翻滚时，
// 脚下的平台不会被当成墙。如果重叠无法归因于任何一条边（角色嵌在平台里），
// 则按速度方向在两个轴上修正。
//
// 参数:
//   - prev: 积分前的角色碰撞盒
//   - a: 角色组件，会被原地修改
//   - platform: 平台碰撞盒
func resolvePlatformCollision(prev utils.Rect, a avatar, platform utils.Rect) {
	box := a.col.Bounds(a.pos)
	if !box.Intersects(platform) {
		return
	}

	fromAbove := prev.Bottom() <= platform.Y+edgeTolerance
	fromBelow := prev.Y >= platform.Bottom()-edgeTolerance
	fromLeft := prev.Right() <= platform.X+edgeTolerance
	fromRight := prev.X >= platform.Right()-edgeTolerance
	embedded := !fromAbove && !fromBelow && !fromLeft && !fromRight

	// 竖直方向
	if a.vel.VY > 0 && (fromAbove || embedded) {
		a.pos.Y = platform.Y - a.col.Height
		a.vel.VY = 0
		a.av.Grounded = true
	} else if a.vel.VY < 0 && (fromBelow || embedded) {
		a.pos.Y = platform.Bottom()
		a.vel.VY = 0
	}

	// 水平方向，撞墙会取消翻滚
	if a.vel.VX > 0 && (fromLeft || embedded) {
		a.pos.X = platform.X - a.col.Width
		a.vel.VX = 0
		a.rot.Clear()
	} else if a.vel.VX < 0 && (fromRight || embedded) {
		a.pos.X = platform.Right()
		a.vel.VX = 0
		a.rot.Clear()
	}
}
