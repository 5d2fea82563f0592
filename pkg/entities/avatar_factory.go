package entities

import (
	"fmt"

	"github.com/decker502/tumble/pkg/components"
	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/ecs"
)

// NewAvatarEntity 创建玩家角色实体
//
// 参数:
//   - em: 实体管理器
//   - physics: 物理配置（提供碰撞盒尺寸）
//   - startX, startY: 出生点（左上角），同时也是重置点
//
// 返回:
//   - ecs.EntityID: 创建的角色实体ID
//   - error: 参数无效时返回错误
func NewAvatarEntity(em *ecs.EntityManager, physics *config.PhysicsConfig, startX, startY float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if physics == nil {
		return 0, fmt.Errorf("physics config cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: startX, Y: startY})
	em.AddComponent(entityID, &components.VelocityComponent{})
	em.AddComponent(entityID, &components.CollisionComponent{
		Width:  physics.AvatarWidth,
		Height: physics.AvatarHeight,
	})
	em.AddComponent(entityID, &components.RotationComponent{})
	em.AddComponent(entityID, &components.AvatarComponent{
		StartX: startX,
		StartY: startY,
	})

	return entityID, nil
}
