package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/game"
	"github.com/decker502/tumble/pkg/systems"
	"github.com/decker502/tumble/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PlayScene 游戏场景
//
// 模拟在独立的 GameLoop 协程上运行：Update 只采样输入写入 KeyState，
// Draw 只读取 World 发布的最新 Frame。
type PlayScene struct {
	world        *game.World
	loop         *game.GameLoop
	renderSystem *systems.RenderSystem
	settings     *game.SettingsManager // 可为 nil
}

// NewPlayScene 创建场景并启动游戏循环
//
// 参数:
//   - physics: 物理配置
//   - level: 关卡配置
//   - settings: 显示设置管理器，可为 nil（使用默认设置且不保存）
func NewPlayScene(physics *config.PhysicsConfig, level *config.LevelConfig, settings *game.SettingsManager) (*PlayScene, error) {
	world, err := game.NewWorld(physics, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}

	s := &PlayScene{
		world:        world,
		renderSystem: systems.NewRenderSystem(),
		settings:     settings,
	}
	s.loop = game.NewGameLoop(physics.TickRate, world.Step, world.PublishFrame)
	if err := s.loop.Start(); err != nil {
		world.Close()
		return nil, fmt.Errorf("failed to start game loop: %w", err)
	}

	log.Printf("[PlayScene] Level %q started", level.Name)
	return s, nil
}

// World 返回场景的世界
func (s *PlayScene) World() *game.World {
	return s.world
}

// Update 采样输入，处理显示开关
func (s *PlayScene) Update(deltaTime float64) {
	utils.SampleEbitenInput(s.world.Keys(), config.GameWindowWidth)

	toggleHitbox := inpututil.IsKeyJustPressed(ebiten.KeyH)
	toggleInstructions := inpututil.IsKeyJustPressed(ebiten.KeyI)
	s.applyToggles(toggleHitbox, toggleInstructions)
}

// applyToggles 切换显示设置并保存
func (s *PlayScene) applyToggles(hitbox, instructions bool) {
	if s.settings == nil || (!hitbox && !instructions) {
		return
	}
	if hitbox {
		log.Printf("[PlayScene] Hitbox overlay: %v", s.settings.ToggleHitbox())
	}
	if instructions {
		log.Printf("[PlayScene] Instructions: %v", s.settings.ToggleInstructions())
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[PlayScene] Warning: failed to save settings: %v", err)
	}
}

// renderOptions 根据显示设置生成绘制选项
func (s *PlayScene) renderOptions() systems.RenderOptions {
	settings := game.DefaultSettings()
	if s.settings != nil {
		settings = s.settings.GetSettings()
	}
	return systems.RenderOptions{
		ShowHitbox:       settings.ShowHitbox,
		ShowInstructions: settings.ShowInstructions,
		TouchControls:    utils.IsMobile(),
	}
}

// Draw 绘制最近发布的帧
func (s *PlayScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen, s.world.Frame(), s.renderOptions())
}

// Close 停止游戏循环并卸载关卡实体
func (s *PlayScene) Close() {
	s.loop.Stop()
	s.world.Close()
	log.Printf("[PlayScene] Closed after %d ticks", s.loop.Ticks())
}
