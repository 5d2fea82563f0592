package systems

import (
	"log"
	"math"

	"github.com/decker502/tumble/pkg/components"
	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/ecs"
	"github.com/decker502/tumble/pkg/utils"
)

// ResetReason 记录角色被重置的原因
type ResetReason string

const (
	ResetRequested ResetReason = "requested"
	ResetFellOff   ResetReason = "fell_off"
	ResetNonFinite ResetReason = "non_finite"
)

// AvatarState 角色状态的只读快照
type AvatarState struct {
	X              float64                      `yaml:"x"`
	Y              float64                      `yaml:"y"`
	VX             float64                      `yaml:"vx"`
	VY             float64                      `yaml:"vy"`
	Angle          float64                      `yaml:"angle"`
	IsRotating     bool                         `yaml:"isRotating"`
	TargetRotation float64                      `yaml:"targetRotation"`
	Direction      components.RotationDirection `yaml:"direction"`
	Grounded       bool                         `yaml:"grounded"`
	Resets         int                          `yaml:"resets"`
}

// AvatarSystem 每个 tick 推进角色状态
//
// 顺序固定为：重置 → 开始翻滚 → 旋转动画 → 重力 → 积分 → 平台碰撞 → 摩擦 → 水平限位 → 掉落检测。
// 模拟是固定步长的，deltaTime 只被记录下来，不参与积分。
type AvatarSystem struct {
	em        *ecs.EntityManager
	physics   *config.PhysicsConfig
	avatarID  ecs.EntityID
	platforms []utils.Rect
	lastDelta float64
	onReset   func(ResetReason)
}

// NewAvatarSystem 创建角色系统
//
// 平台在关卡加载后不再变化，这里一次性按创建顺序读取它们的碰撞盒。
//
// 参数:
//   - em: 实体管理器
//   - physics: 物理配置
//   - avatarID: 由 entities.NewAvatarEntity 创建的角色实体
func NewAvatarSystem(em *ecs.EntityManager, physics *config.PhysicsConfig, avatarID ecs.EntityID) *AvatarSystem {
	return &AvatarSystem{
		em:        em,
		physics:   physics,
		avatarID:  avatarID,
		platforms: PlatformBounds(em),
	}
}

// PlatformBounds 按关卡顺序返回所有平台的碰撞盒
func PlatformBounds(em *ecs.EntityManager) []utils.Rect {
	ids := ecs.GetEntitiesWith3[*components.PlatformComponent, *components.PositionComponent, *components.CollisionComponent](em)
	rects := make([]utils.Rect, 0, len(ids))
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		rects = append(rects, col.Bounds(pos))
	}
	return rects
}

// SetResetHandler 设置重置回调（用于统计和日志）
func (s *AvatarSystem) SetResetHandler(fn func(ResetReason)) {
	s.onReset = fn
}

// Platforms 返回系统使用的平台列表（只读）
func (s *AvatarSystem) Platforms() []utils.Rect {
	return s.platforms
}

// LastDeltaTime 返回最近一次 Update 传入的 deltaTime
func (s *AvatarSystem) LastDeltaTime() float64 {
	return s.lastDelta
}

// Update 使用缓存的平台列表推进一个 tick
func (s *AvatarSystem) Update(deltaTime float64, in utils.Intent) {
	s.UpdateAvatar(deltaTime, s.platforms, in)
}

// avatar 聚合角色的全部组件
type avatar struct {
	pos *components.PositionComponent
	vel *components.VelocityComponent
	col *components.CollisionComponent
	rot *components.RotationComponent
	av  *components.AvatarComponent
}

func (s *AvatarSystem) avatarParts() (avatar, bool) {
	var a avatar
	var ok bool
	if a.pos, ok = ecs.GetComponent[*components.PositionComponent](s.em, s.avatarID); !ok {
		return a, false
	}
	if a.vel, ok = ecs.GetComponent[*components.VelocityComponent](s.em, s.avatarID); !ok {
		return a, false
	}
	if a.col, ok = ecs.GetComponent[*components.CollisionComponent](s.em, s.avatarID); !ok {
		return a, false
	}
	if a.rot, ok = ecs.GetComponent[*components.RotationComponent](s.em, s.avatarID); !ok {
		return a, false
	}
	if a.av, ok = ecs.GetComponent[*components.AvatarComponent](s.em, s.avatarID); !ok {
		return a, false
	}
	return a, true
}

// UpdateAvatar 对给定的平台列表推进角色一个 tick
//
// 参数:
//   - deltaTime: 距上一 tick 的时间比例，仅记录，不参与积分
//   - platforms: 有序的平台碰撞盒，按顺序逐个检测
//   - in: 本 tick 的输入快照
func (s *AvatarSystem) UpdateAvatar(deltaTime float64, platforms []utils.Rect, in utils.Intent) {
	a, ok := s.avatarParts()
	if !ok {
		return
	}
	s.lastDelta = deltaTime
	p := s.physics

	// 1. 重置
	if in.Reset {
		s.reset(a, ResetRequested)
	}

	// 2. 着地且不在旋转中时，方向键开始一次翻滚（左键优先）
	if a.av.Grounded && !a.rot.IsRotating {
		if in.Left {
			s.startRoll(a, components.RotateLeft)
		} else if in.Right {
			s.startRoll(a, components.RotateRight)
		}
	}

	// 3. 旋转动画
	if a.rot.IsRotating {
		s.advanceRotation(a)
	}

	// 4. 重力，没有终端速度
	a.vel.VY += p.Gravity

	// 5. 积分
	prev := a.col.Bounds(a.pos)
	a.pos.Y += a.vel.VY
	a.pos.X += a.vel.VX

	// 6. 平台碰撞
	a.av.Grounded = false
	for _, platform := range platforms {
		resolvePlatformCollision(prev, a, platform)
	}

	// 7. 摩擦
	if !a.rot.IsRotating && a.vel.VX != 0 {
		a.vel.VX *= p.Friction
		if math.Abs(a.vel.VX) < p.FrictionCutoff {
			a.vel.VX = 0
		}
	}

	// 8. 水平限位
	maxX := p.FieldWidth - a.col.Width
	if a.pos.X < 0 {
		a.pos.X = 0
	}
	if a.pos.X > maxX {
		a.pos.X = maxX
	}

	// 9. 掉出屏幕
	if a.pos.Y > p.FallOffY {
		s.reset(a, ResetFellOff)
	}

	if !utils.IsFinite(a.pos.X, a.pos.Y, a.vel.VX, a.vel.VY, a.rot.Angle, a.rot.TargetRotation) {
		log.Printf("[AvatarSystem] Non-finite avatar state pos=(%v,%v) vel=(%v,%v) angle=%v, resetting",
			a.pos.X, a.pos.Y, a.vel.VX, a.vel.VY, a.rot.Angle)
		s.reset(a, ResetNonFinite)
	}
}

// startRoll 开始一次 90° 翻滚
// 水平速度让角色在动画推进的 tick 内恰好移动 RollDistance
func (s *AvatarSystem) startRoll(a avatar, dir components.RotationDirection) {
	a.rot.IsRotating = true
	a.rot.Direction = dir
	a.rot.TargetRotation = a.rot.Angle + math.Pi/2*float64(dir)
	a.vel.VX = s.physics.RollVelocity() * float64(dir)
}

// advanceRotation 推进旋转动画，接近目标时吸附并停止水平移动
func (s *AvatarSystem) advanceRotation(a avatar) {
	diff := a.rot.TargetRotation - a.rot.Angle
	if math.Abs(diff) > s.physics.RotationEpsilon {
		a.rot.Angle += s.physics.RotationStepRad() * utils.Sign(diff)
		return
	}
	a.rot.Angle = a.rot.TargetRotation
	a.rot.Clear()
	a.vel.VX = 0
}

// reset 回到出生点，清空速度和旋转
func (s *AvatarSystem) reset(a avatar, reason ResetReason) {
	a.pos.X = a.av.StartX
	a.pos.Y = a.av.StartY
	a.vel.VX = 0
	a.vel.VY = 0
	a.rot.Angle = 0
	a.rot.Clear()
	a.av.Grounded = false
	a.av.Resets++

	if reason != ResetRequested {
		log.Printf("[AvatarSystem] Avatar reset (%s)", reason)
	}
	if s.onReset != nil {
		s.onReset(reason)
	}
}

// Reset 立即把角色放回出生点
func (s *AvatarSystem) Reset() {
	if a, ok := s.avatarParts(); ok {
		s.reset(a, ResetRequested)
	}
}

// CollisionBounds 返回角色的碰撞盒（永远不旋转）
func (s *AvatarSystem) CollisionBounds() utils.Rect {
	a, ok := s.avatarParts()
	if !ok {
		return utils.Rect{}
	}
	return a.col.Bounds(a.pos)
}

// VisualTransform 返回绘制角色所需的旋转变换，与碰撞无关
func (s *AvatarSystem) VisualTransform() VisualTransform {
	a, ok := s.avatarParts()
	if !ok {
		return VisualTransform{}
	}
	cx, cy := a.col.Bounds(a.pos).Center()
	return VisualTransform{
		CenterX: cx,
		CenterY: cy,
		Width:   a.col.Width,
		Height:  a.col.Height,
		Angle:   a.rot.Angle,
	}
}

// State 返回角色状态快照
func (s *AvatarSystem) State() AvatarState {
	a, ok := s.avatarParts()
	if !ok {
		return AvatarState{}
	}
	return AvatarState{
		X:              a.pos.X,
		Y:              a.pos.Y,
		VX:             a.vel.VX,
		VY:             a.vel.VY,
		Angle:          a.rot.Angle,
		IsRotating:     a.rot.IsRotating,
		TargetRotation: a.rot.TargetRotation,
		Direction:      a.rot.Direction,
		Grounded:       a.av.Grounded,
		Resets:         a.av.Resets,
	}
}
