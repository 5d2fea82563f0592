package scenes

import (
	"testing"
	"time"

	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/game"
)

func newTestScene(t *testing.T, settings *game.SettingsManager) *PlayScene {
	t.Helper()
	s, err := NewPlayScene(config.DefaultPhysicsConfig(), config.DefaultLevel(), settings)
	if err != nil {
		t.Fatalf("NewPlayScene failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestPlaySceneRunsLoop(t *testing.T) {
	s := newTestScene(t, nil)

	deadline := time.Now().Add(2 * time.Second)
	for s.World().Frame().Tick < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if tick := s.World().Frame().Tick; tick < 3 {
		t.Fatalf("game loop did not publish frames, tick=%d", tick)
	}

	s.Close()
	tick := s.World().Frame().Tick
	time.Sleep(50 * time.Millisecond)
	if s.World().Frame().Tick != tick {
		t.Error("frames published after Close")
	}
}

func TestPlaySceneToggles(t *testing.T) {
	sm, _ := game.NewSettingsManager(nil)
	s := newTestScene(t, sm)

	opts := s.renderOptions()
	if opts.ShowHitbox || !opts.ShowInstructions {
		t.Fatalf("unexpected default options %+v", opts)
	}

	s.applyToggles(true, true)
	opts = s.renderOptions()
	if !opts.ShowHitbox || opts.ShowInstructions {
		t.Errorf("toggles not applied: %+v", opts)
	}

	s.applyToggles(false, false)
	if s.renderOptions() != opts {
		t.Error("no-op toggle changed options")
	}
}

func TestPlaySceneWithoutSettings(t *testing.T) {
	s := newTestScene(t, nil)
	s.applyToggles(true, true)

	opts := s.renderOptions()
	if opts.ShowHitbox || !opts.ShowInstructions {
		t.Errorf("scene without settings should use defaults, got %+v", opts)
	}
}

func TestNewPlaySceneInvalidLevel(t *testing.T) {
	if _, err := NewPlayScene(config.DefaultPhysicsConfig(), &config.LevelConfig{Name: "empty"}, nil); err == nil {
		t.Error("expected error for a level without platforms")
	}
}
