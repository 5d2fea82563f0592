package entities

import (
	"testing"

	"github.com/decker502/tumble/pkg/components"
	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/ecs"
)

func TestNewAvatarEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	physics := config.DefaultPhysicsConfig()

	id, err := NewAvatarEntity(em, physics, 100, 300)
	if err != nil {
		t.Fatalf("NewAvatarEntity failed: %v", err)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.X != 100 || pos.Y != 300 {
		t.Errorf("unexpected position %+v", pos)
	}

	col, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok || col.Width != 50 || col.Height != 80 {
		t.Errorf("unexpected collision box %+v", col)
	}

	avatar, ok := ecs.GetComponent[*components.AvatarComponent](em, id)
	if !ok || avatar.StartX != 100 || avatar.StartY != 300 || avatar.Grounded {
		t.Errorf("unexpected avatar component %+v", avatar)
	}

	if _, ok := ecs.GetComponent[*components.VelocityComponent](em, id); !ok {
		t.Error("avatar is missing a velocity component")
	}
	if _, ok := ecs.GetComponent[*components.RotationComponent](em, id); !ok {
		t.Error("avatar is missing a rotation component")
	}
}

func TestNewAvatarEntityNilArgs(t *testing.T) {
	if _, err := NewAvatarEntity(nil, config.DefaultPhysicsConfig(), 0, 0); err == nil {
		t.Error("expected error for nil entity manager")
	}
	if _, err := NewAvatarEntity(ecs.NewEntityManager(), nil, 0, 0); err == nil {
		t.Error("expected error for nil physics config")
	}
}

func TestNewLevelPlatformsKeepsOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	level := config.DefaultLevel()

	ids, err := NewLevelPlatforms(em, level)
	if err != nil {
		t.Fatalf("NewLevelPlatforms failed: %v", err)
	}
	if len(ids) != len(level.Platforms) {
		t.Fatalf("expected %d platforms, got %d", len(level.Platforms), len(ids))
	}

	queried := ecs.GetEntitiesWith3[*components.PlatformComponent, *components.PositionComponent, *components.CollisionComponent](em)
	if len(queried) != len(ids) {
		t.Fatalf("query returned %d platforms, want %d", len(queried), len(ids))
	}
	for i, id := range queried {
		if id != ids[i] {
			t.Fatalf("query order mismatch at %d", i)
		}
		pc, _ := ecs.GetComponent[*components.PlatformComponent](em, id)
		if pc.Index != i {
			t.Errorf("platform %d has index %d", i, pc.Index)
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pos.X != level.Platforms[i].X || pos.Y != level.Platforms[i].Y {
			t.Errorf("platform %d position mismatch: %+v", i, pos)
		}
	}
}

func TestNewPlatformEntityRejectsEmptySize(t *testing.T) {
	em := ecs.NewEntityManager()
	if _, err := NewPlatformEntity(em, 0, config.PlatformConfig{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
	if em.EntityCount() != 0 {
		t.Error("no entity should be created on error")
	}
}
