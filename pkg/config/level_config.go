package config

import (
	"fmt"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/decker502/tumble/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// LevelsDir 是嵌入关卡文件所在目录
const LevelsDir = "data/levels"

// DefaultLevelName 默认关卡名称
const DefaultLevelName = "default"

// Point 二维坐标（像素）
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// PlatformConfig 单个静态平台的位置和尺寸
type PlatformConfig struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// LevelConfig 关卡配置
//
// Platforms 的顺序就是碰撞检测的顺序，加载后不会再改变。
//
// 配置文件位置: data/levels/<name>.yaml
type LevelConfig struct {
	// Name 关卡名称
	Name string `yaml:"name" json:"name,omitempty" jsonschema:"description=Level name used by the -level flag"`

	// Start 角色出生点（左上角），重置时回到这里
	Start Point `yaml:"start" json:"start" jsonschema:"description=Top-left corner of the avatar at spawn and after every reset"`

	// Platforms 有序的平台列表
	Platforms []PlatformConfig `yaml:"platforms" json:"platforms" jsonschema:"minItems=1,description=Static platforms in collision order"`
}

// DefaultLevel 返回内置的默认关卡：底部横跨全屏的地面和四个递升的台阶
func DefaultLevel() *LevelConfig {
	return &LevelConfig{
		Name:  DefaultLevelName,
		Start: Point{X: 100, Y: 300},
		Platforms: []PlatformConfig{
			{X: 0, Y: 500, Width: 800, Height: 100}, // 地面
			{X: 200, Y: 400, Width: 200, Height: 30},
			{X: 450, Y: 300, Width: 150, Height: 30},
			{X: 650, Y: 200, Width: 150, Height: 30},
			{X: 300, Y: 150, Width: 200, Height: 30},
		},
	}
}

// ParseLevelConfig 解析并校验 YAML 格式的关卡数据
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var level LevelConfig
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level config: %w", err)
	}

	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level config: %w", err)
	}

	return &level, nil
}

// LoadLevel 从嵌入资源加载指定名称的关卡
//
// 参数:
//   - name: 关卡名称（如 "default"），对应 data/levels/<name>.yaml
//
// 返回:
//   - *LevelConfig: 关卡配置
//   - error: 文件不存在或内容无效时返回错误
//
// 嵌入资源未初始化时，默认关卡退回到 DefaultLevel()。
func LoadLevel(name string) (*LevelConfig, error) {
	if name == "" {
		name = DefaultLevelName
	}

	if !embedded.IsInitialized() {
		if name == DefaultLevelName {
			log.Printf("[Config] Embedded data not initialized, using built-in level %q", name)
			return DefaultLevel(), nil
		}
		return nil, fmt.Errorf("failed to read level %q: %w", name, embedded.ErrNotInitialized)
	}

	levelPath := path.Join(LevelsDir, name+".yaml")
	if !embedded.Exists(levelPath) {
		names, _ := AvailableLevels()
		return nil, fmt.Errorf("level %q not found (available: %s)", name, strings.Join(names, ", "))
	}

	data, err := embedded.ReadFile(levelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %q: %w", name, err)
	}

	level, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}
	if level.Name == "" {
		level.Name = name
	}
	return level, nil
}

// AvailableLevels 返回嵌入资源中全部关卡的名称，按名称排序
func AvailableLevels() ([]string, error) {
	files, err := embedded.Glob(path.Join(LevelsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Validate 验证关卡有效性
//   - 至少一个平台
//   - 平台尺寸为正数
//   - 所有坐标都是有限值
func (l *LevelConfig) Validate() error {
	if len(l.Platforms) == 0 {
		return fmt.Errorf("level has no platforms")
	}
	if isBad(l.Start.X) || isBad(l.Start.Y) {
		return fmt.Errorf("start position must be finite, got (%v, %v)", l.Start.X, l.Start.Y)
	}
	for i, p := range l.Platforms {
		if isBad(p.X) || isBad(p.Y) || isBad(p.Width) || isBad(p.Height) {
			return fmt.Errorf("platform %d has non-finite geometry", i)
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("platform %d size must be positive, got %vx%v", i, p.Width, p.Height)
		}
	}
	return nil
}

// ValidateFor 检查关卡在给定物理参数下是否可玩
//   - 出生点横坐标在水平限位 [0, FieldWidth-AvatarWidth] 之内
//   - 出生点纵坐标不超过 FallOffY，否则每个 tick 都会触发重置
func (l *LevelConfig) ValidateFor(p *PhysicsConfig) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("physics config is required")
	}
	maxX := p.FieldWidth - p.AvatarWidth
	if l.Start.X < 0 || l.Start.X > maxX {
		return fmt.Errorf("start x %v outside the field range [0, %v]", l.Start.X, maxX)
	}
	if l.Start.Y > p.FallOffY {
		return fmt.Errorf("start y %v is below fallOffY %v", l.Start.Y, p.FallOffY)
	}
	return nil
}
