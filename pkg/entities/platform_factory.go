package entities

import (
	"fmt"

	"github.com/decker502/tumble/pkg/components"
	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/ecs"
)

// NewPlatformEntity 创建一个静态平台实体
func NewPlatformEntity(em *ecs.EntityManager, index int, p config.PlatformConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return 0, fmt.Errorf("platform %d size must be positive, got %vx%v", index, p.Width, p.Height)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: p.X, Y: p.Y})
	em.AddComponent(entityID, &components.CollisionComponent{Width: p.Width, Height: p.Height})
	em.AddComponent(entityID, &components.PlatformComponent{Index: index})

	return entityID, nil
}

// NewLevelPlatforms 按关卡顺序创建全部平台
// 返回的 ID 顺序与 level.Platforms 一致
func NewLevelPlatforms(em *ecs.EntityManager, level *config.LevelConfig) ([]ecs.EntityID, error) {
	if level == nil {
		return nil, fmt.Errorf("level config cannot be nil")
	}

	ids := make([]ecs.EntityID, 0, len(level.Platforms))
	for i, p := range level.Platforms {
		id, err := NewPlatformEntity(em, i, p)
		if err != nil {
			return nil, fmt.Errorf("failed to create platform: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
