// Package data 嵌入关卡和物理配置文件
//
// 桌面端、移动端和命令行工具都通过 embedded.Init(data.FS) 使用同一份数据。
package data

import "embed"

// FS 以本目录为根，例如 "physics.yaml"、"levels/default.yaml"
//
//go:embed physics.yaml levels
var FS embed.FS
