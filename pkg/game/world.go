package game

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/ecs"
	"github.com/decker502/tumble/pkg/entities"
	"github.com/decker502/tumble/pkg/systems"
	"github.com/decker502/tumble/pkg/utils"
)

// World 持有一个关卡的全部模拟状态
//
// Step 和 PublishFrame 只能在游戏循环协程上调用；
// Keys 可以在任意协程写入，Frame 可以在任意协程读取。
type World struct {
	em           *ecs.EntityManager
	physics      *config.PhysicsConfig
	level        *config.LevelConfig
	keys         *utils.KeyState
	avatarID     ecs.EntityID
	platformIDs  []ecs.EntityID
	avatarSystem *systems.AvatarSystem

	tick   uint64
	closed bool
	frame  atomic.Pointer[systems.Frame]
}

// NewWorld 按关卡顺序创建平台和角色
//
// 参数:
//   - physics: 物理配置
//   - level: 关卡配置，平台顺序即碰撞检测顺序
//
// 返回:
//   - *World: 已发布初始帧的世界
//   - error: 配置无效时返回错误
func NewWorld(physics *config.PhysicsConfig, level *config.LevelConfig) (*World, error) {
	if physics == nil || level == nil {
		return nil, fmt.Errorf("physics and level configs are required")
	}
	if err := level.ValidateFor(physics); err != nil {
		return nil, fmt.Errorf("invalid level: %w", err)
	}

	em := ecs.NewEntityManager()

	platformIDs, err := entities.NewLevelPlatforms(em, level)
	if err != nil {
		return nil, err
	}

	avatarID, err := entities.NewAvatarEntity(em, physics, level.Start.X, level.Start.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to create avatar: %w", err)
	}

	w := &World{
		em:           em,
		physics:      physics,
		level:        level,
		keys:         &utils.KeyState{},
		avatarID:     avatarID,
		platformIDs:  platformIDs,
		avatarSystem: systems.NewAvatarSystem(em, physics, avatarID),
	}
	w.avatarSystem.SetResetHandler(func(reason systems.ResetReason) {
		log.Printf("[World] tick %d: avatar reset (%s)", w.tick, reason)
	})
	w.PublishFrame()

	log.Printf("[World] Level %q loaded: %d platforms, start (%.0f, %.0f)",
		level.Name, len(platformIDs), level.Start.X, level.Start.Y)
	return w, nil
}

// Keys 返回输入协程写入的按键状态
func (w *World) Keys() *utils.KeyState {
	return w.keys
}

// Avatar 返回角色系统（只应在游戏循环协程或测试中使用）
func (w *World) Avatar() *systems.AvatarSystem {
	return w.avatarSystem
}

// Physics 返回物理配置
func (w *World) Physics() *config.PhysicsConfig {
	return w.physics
}

// Level 返回关卡配置
func (w *World) Level() *config.LevelConfig {
	return w.level
}

// Tick 返回已经执行的 tick 数
func (w *World) Tick() uint64 {
	return w.tick
}

// Step 采样按键并推进一个 tick
func (w *World) Step(elapsedRatio float64) {
	w.StepWith(elapsedRatio, w.keys.Snapshot())
}

// StepWith 使用给定的输入推进一个 tick（测试和脚本模拟使用）
func (w *World) StepWith(elapsedRatio float64, in utils.Intent) {
	w.avatarSystem.Update(elapsedRatio, in)
	w.tick++
}

// PublishFrame 生成当前状态的快照供渲染端读取
func (w *World) PublishFrame() {
	platforms := w.avatarSystem.Platforms()
	frame := &systems.Frame{
		Tick:         w.tick,
		ElapsedRatio: w.avatarSystem.LastDeltaTime(),
		Platforms:    append([]utils.Rect(nil), platforms...),
		Hitbox:       w.avatarSystem.CollisionBounds(),
		Avatar:       w.avatarSystem.VisualTransform(),
		State:        w.avatarSystem.State(),
	}
	w.frame.Store(frame)
}

// Close 销毁关卡的全部实体，必须在游戏循环停止之后调用
//
// 最后发布的 Frame 仍然可以读取；之后的 Step 不会再移动角色。
func (w *World) Close() {
	if w.closed {
		return
	}
	w.closed = true

	for _, id := range w.platformIDs {
		w.em.DestroyEntity(id)
	}
	w.em.DestroyEntity(w.avatarID)
	w.em.RemoveMarkedEntities()

	log.Printf("[World] Level %q unloaded after %d ticks, %d entities left",
		w.level.Name, w.tick, w.em.EntityCount())
}

// Frame 返回最近发布的快照，可在任意协程调用
func (w *World) Frame() *systems.Frame {
	return w.frame.Load()
}
