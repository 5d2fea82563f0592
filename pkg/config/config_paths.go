package config

import (
	"log"

	"github.com/adrg/xdg"
)

// UserPhysicsConfigName 是 XDG 配置目录下用户覆盖文件的相对路径
const UserPhysicsConfigName = "tumble/physics.yaml"

// ResolvePhysicsConfig 组合出最终的物理配置
//
// 查找顺序：
//  1. 嵌入的 data/physics.yaml（嵌入资源未初始化时退回 DefaultPhysicsConfig）
//  2. explicitPath 指定的覆盖文件；为空时在 XDG 配置目录中查找 tumble/physics.yaml
//
// 显式指定的文件读取失败会返回错误；XDG 目录里找不到文件不是错误。
func ResolvePhysicsConfig(explicitPath string) (*PhysicsConfig, error) {
	base, err := LoadEmbeddedPhysicsConfig()
	if err != nil {
		log.Printf("[Config] Embedded physics config unavailable: %v (using defaults)", err)
		base = DefaultPhysicsConfig()
	}

	if explicitPath != "" {
		log.Printf("[Config] Loading physics override: %s", explicitPath)
		return LoadPhysicsOverride(explicitPath, base)
	}

	userPath, err := xdg.SearchConfigFile(UserPhysicsConfigName)
	if err != nil {
		return base, nil
	}

	log.Printf("[Config] Found user physics override: %s", userPath)
	return LoadPhysicsOverride(userPath, base)
}
