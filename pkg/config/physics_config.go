package config

import (
	"fmt"
	"math"
	"os"

	"github.com/decker502/tumble/pkg/embedded"
	"github.com/decker502/tumble/pkg/utils"
	"gopkg.in/yaml.v3"
)

// PhysicsConfigPath 是嵌入的默认物理配置路径
const PhysicsConfigPath = "data/physics.yaml"

// maxRollSteps 旋转动画允许的最大步数，超过即视为参数无法收敛
const maxRollSteps = 1000

// MaxTickRate 游戏循环允许的最高频率（Hz），间隔至少 1ms
const MaxTickRate = 1000

// PhysicsConfig 物理参数配置
//
// 所有速度和加速度都以"每 tick"为单位。模拟是固定步长的：
// 每个 tick 积分一次，deltaTime 只作为信息传入，不参与缩放。
//
// 配置文件位置: data/physics.yaml
// 覆盖文件只需写出要改的字段，所以 JSON 标签都带 omitempty，schema 中没有必填项。
type PhysicsConfig struct {
	// Gravity 每 tick 增加到竖直速度上的加速度（px/tick²）
	Gravity float64 `yaml:"gravity" json:"gravity,omitempty"`

	// Friction 非旋转状态下水平速度每 tick 的衰减系数
	Friction float64 `yaml:"friction" json:"friction,omitempty"`

	// FrictionCutoff 水平速度绝对值低于该值时直接归零
	FrictionCutoff float64 `yaml:"frictionCutoff" json:"frictionCutoff,omitempty"`

	// RotationSpeedDeg 旋转动画每 tick 前进的角度（度）
	RotationSpeedDeg float64 `yaml:"rotationSpeedDeg" json:"rotationSpeedDeg,omitempty"`

	// RotationEpsilon 距目标角度小于该值（弧度）时吸附到目标
	RotationEpsilon float64 `yaml:"rotationEpsilon" json:"rotationEpsilon,omitempty"`

	// AvatarWidth, AvatarHeight 角色碰撞盒尺寸（像素）
	AvatarWidth  float64 `yaml:"avatarWidth" json:"avatarWidth,omitempty"`
	AvatarHeight float64 `yaml:"avatarHeight" json:"avatarHeight,omitempty"`

	// FieldWidth, FieldHeight 可见区域尺寸，水平位置被限制在 [0, FieldWidth-AvatarWidth]
	FieldWidth  float64 `yaml:"fieldWidth" json:"fieldWidth,omitempty"`
	FieldHeight float64 `yaml:"fieldHeight" json:"fieldHeight,omitempty"`

	// FallOffY 角色 Y 坐标超过该值时触发重置
	FallOffY float64 `yaml:"fallOffY" json:"fallOffY,omitempty"`

	// TickRate 游戏循环目标频率（Hz）
	TickRate int `yaml:"tickRate" json:"tickRate,omitempty"`
}

// DefaultPhysicsConfig 返回默认物理参数，与 data/physics.yaml 保持一致
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		Gravity:          0.6,
		Friction:         0.85,
		FrictionCutoff:   0.1,
		RotationSpeedDeg: 8.0,
		RotationEpsilon:  0.05,
		AvatarWidth:      50,
		AvatarHeight:     80,
		FieldWidth:       GameWindowWidth,
		FieldHeight:      GameWindowHeight,
		FallOffY:         650,
		TickRate:         60,
	}
}

// ParsePhysicsConfig 在 base 的基础上解析 YAML 数据
//
// YAML 中没有出现的字段保留 base 的取值，因此用户配置文件只需要写出想覆盖的字段。
// base 为 nil 时使用 DefaultPhysicsConfig()。
//
// 参数:
//   - data: YAML 内容
//   - base: 基础配置（不会被修改）
//
// 返回:
//   - *PhysicsConfig: 合并并校验后的配置
//   - error: 解析或校验失败时返回错误
func ParsePhysicsConfig(data []byte, base *PhysicsConfig) (*PhysicsConfig, error) {
	if base == nil {
		base = DefaultPhysicsConfig()
	}
	cfg := *base

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid physics config: %w", err)
	}

	return &cfg, nil
}

// LoadEmbeddedPhysicsConfig 从嵌入资源加载默认物理配置
func LoadEmbeddedPhysicsConfig() (*PhysicsConfig, error) {
	data, err := embedded.ReadFile(PhysicsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read physics config: %w", err)
	}
	return ParsePhysicsConfig(data, nil)
}

// LoadPhysicsOverride 读取磁盘上的覆盖文件并合并到 base 上
func LoadPhysicsOverride(path string, base *PhysicsConfig) (*PhysicsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read physics override %s: %w", path, err)
	}
	return ParsePhysicsConfig(data, base)
}

// Validate 验证配置有效性
//
// 除了范围检查外，还会模拟一次旋转动画，确保给定的旋转速度和吸附阈值能在有限步数内收敛。
func (c *PhysicsConfig) Validate() error {
	if c.Gravity < 0 || isBad(c.Gravity) {
		return fmt.Errorf("gravity must be a finite value >= 0, got %v", c.Gravity)
	}
	if c.Friction < 0 || c.Friction > 1 || isBad(c.Friction) {
		return fmt.Errorf("friction must be in [0, 1], got %v", c.Friction)
	}
	if c.FrictionCutoff < 0 || isBad(c.FrictionCutoff) {
		return fmt.Errorf("frictionCutoff must be >= 0, got %v", c.FrictionCutoff)
	}
	if c.RotationSpeedDeg <= 0 || c.RotationSpeedDeg > 90 {
		return fmt.Errorf("rotationSpeedDeg must be in (0, 90], got %v", c.RotationSpeedDeg)
	}
	if c.RotationEpsilon <= 0 || isBad(c.RotationEpsilon) {
		return fmt.Errorf("rotationEpsilon must be > 0, got %v", c.RotationEpsilon)
	}
	if c.AvatarWidth <= 0 || c.AvatarHeight <= 0 || isBad(c.AvatarWidth) || isBad(c.AvatarHeight) {
		return fmt.Errorf("avatar size must be positive, got %vx%v", c.AvatarWidth, c.AvatarHeight)
	}
	if c.FieldWidth < c.AvatarWidth || c.FieldHeight <= 0 || isBad(c.FieldWidth) || isBad(c.FieldHeight) {
		return fmt.Errorf("field %vx%v cannot hold avatar of width %v", c.FieldWidth, c.FieldHeight, c.AvatarWidth)
	}
	if isBad(c.FallOffY) {
		return fmt.Errorf("fallOffY must be finite, got %v", c.FallOffY)
	}
	if c.TickRate <= 0 || c.TickRate > MaxTickRate {
		return fmt.Errorf("tickRate must be in [1, %d], got %d", MaxTickRate, c.TickRate)
	}
	if _, ok := c.rollSteps(); !ok {
		return fmt.Errorf("rotationSpeedDeg %v never settles within rotationEpsilon %v", c.RotationSpeedDeg, c.RotationEpsilon)
	}
	return nil
}

// RotationStepRad 返回每 tick 的旋转步长（弧度）
func (c *PhysicsConfig) RotationStepRad() float64 {
	return c.RotationSpeedDeg * math.Pi / 180
}

// RollDistance 一次翻滚的水平位移：(宽 + 高) / 2
func (c *PhysicsConfig) RollDistance() float64 {
	return (c.AvatarWidth + c.AvatarHeight) / 2
}

// RollTicks 返回旋转动画推进角度的 tick 数
//
// 动画在最后一个 tick 吸附到目标角度并清零水平速度，那个 tick 不产生位移，
// 所以角色实际移动的 tick 数就是推进步数。
func (c *PhysicsConfig) RollTicks() int {
	n, ok := c.rollSteps()
	if !ok || n == 0 {
		return 1
	}
	return n
}

// RollVelocity 返回翻滚时的水平速度大小（px/tick）
func (c *PhysicsConfig) RollVelocity() float64 {
	return c.RollDistance() / float64(c.RollTicks())
}

// rollSteps 按照与更新逻辑完全相同的规则模拟一次 90° 旋转
func (c *PhysicsConfig) rollSteps() (int, bool) {
	step := c.RotationStepRad()
	target := math.Pi / 2
	angle := 0.0
	for n := 0; n <= maxRollSteps; n++ {
		diff := target - angle
		if math.Abs(diff) <= c.RotationEpsilon {
			return n, true
		}
		angle += step * utils.Sign(diff)
	}
	return 0, false
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
