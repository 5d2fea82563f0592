package game

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoSceneFactory 在未设置工厂函数时调用 LoadLevel 返回
var ErrNoSceneFactory = errors.New("scene factory is not set")

// SceneFactory 场景工厂函数类型
// 按关卡名创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(levelName string) (Scene, error)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadLevel to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene. The previous scene is closed if it implements Closer.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if closer, ok := sm.currentScene.(Closer); ok {
		closer.Close()
	}
	sm.currentScene = scene
}

// LoadLevel 通过工厂函数创建关卡场景并切换过去
// 创建失败时保留当前场景
func (sm *SceneManager) LoadLevel(levelName string) error {
	log.Printf("[SceneManager] 加载关卡: %s", levelName)

	if sm.sceneFactory == nil {
		return ErrNoSceneFactory
	}

	newScene, err := sm.sceneFactory(levelName)
	if err != nil {
		return err
	}
	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] 成功切换到关卡: %s", levelName)
	return nil
}

// Close 关闭当前场景
func (sm *SceneManager) Close() {
	sm.SwitchTo(nil)
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
