package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdataManager 在临时 HOME 下创建 gdata manager
func newTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.ShowHitbox {
		t.Error("ShowHitbox: got true, want false")
	}
	if !settings.ShowInstructions {
		t.Error("ShowInstructions: got false, want true")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("Degraded mode should use defaults, got %+v", sm.GetSettings())
	}

	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := newTestGdataManager(t, "tumble_test_settings")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetFullscreen(true)
	if !sm1.ToggleHitbox() {
		t.Error("ToggleHitbox should return true on first toggle")
	}
	if sm1.ToggleInstructions() {
		t.Error("ToggleInstructions should return false on first toggle")
	}

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 创建新的设置管理器，验证加载
	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if !settings.ShowHitbox {
		t.Error("Loaded ShowHitbox: got false, want true")
	}
	if settings.ShowInstructions {
		t.Error("Loaded ShowInstructions: got true, want false")
	}
}

// TestSettingsLoadPartialDocument 旧存档缺失的字段保持默认值
func TestSettingsLoadPartialDocument(t *testing.T) {
	gdataManager := newTestGdataManager(t, "tumble_test_partial")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: true\n")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	settings := sm.GetSettings()
	if !settings.Fullscreen {
		t.Error("Fullscreen should be loaded")
	}
	if !settings.ShowInstructions {
		t.Error("ShowInstructions should keep its default")
	}
}

// TestSettingsLoadCorrupt 损坏的数据回退到默认设置
func TestSettingsLoadCorrupt(t *testing.T) {
	gdataManager := newTestGdataManager(t, "tumble_test_corrupt")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: [")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager should not fail on corrupt data: %v", err)
	}
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("expected defaults after corrupt data, got %+v", sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupt data")
	}
}
