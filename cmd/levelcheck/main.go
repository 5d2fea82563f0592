// levelcheck 校验关卡和物理配置文件
//
// 不带参数时检查所有嵌入的关卡和 data/physics.yaml；
// 带参数时按文件名判断：physics*.yaml 作为物理覆盖，其余作为关卡。
//
// 用法:
//
//	go run ./cmd/levelcheck
//	go run ./cmd/levelcheck mylevel.yaml ~/.config/tumble/physics.yaml
package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/decker502/tumble/data"
	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/embedded"
)

func main() {
	embedded.Init(data.FS)

	failed := 0
	if len(os.Args) > 1 {
		for _, name := range os.Args[1:] {
			if err := checkFile(os.Stdout, name); err != nil {
				fmt.Printf("❌ %s: %v\n", name, err)
				failed++
			}
		}
	} else {
		failed = checkEmbedded(os.Stdout)
	}

	if failed > 0 {
		fmt.Printf("❌ 有 %d 个文件未通过校验\n", failed)
		os.Exit(1)
	}
	fmt.Printf("✅ 全部通过\n")
}

// checkEmbedded 检查嵌入的物理配置和全部关卡，返回失败数
func checkEmbedded(w io.Writer) int {
	failed := 0

	physics, err := config.LoadEmbeddedPhysicsConfig()
	if err != nil {
		fmt.Fprintf(w, "❌ %s: %v\n", config.PhysicsConfigPath, err)
		failed++
		physics = config.DefaultPhysicsConfig()
	} else {
		reportPhysics(w, config.PhysicsConfigPath, physics)
	}

	names, err := config.AvailableLevels()
	if err != nil {
		fmt.Fprintf(w, "❌ %v\n", err)
		return failed + 1
	}
	if len(names) == 0 {
		fmt.Fprintf(w, "❌ %s 下没有关卡\n", config.LevelsDir)
		return failed + 1
	}

	for _, name := range names {
		f := path.Join(config.LevelsDir, name+".yaml")
		level, err := config.LoadLevel(name)
		if err == nil {
			err = level.ValidateFor(physics)
		}
		if err != nil {
			fmt.Fprintf(w, "❌ %s: %v\n", f, err)
			failed++
			continue
		}
		reportLevel(w, f, level)
	}
	return failed
}

// checkFile 检查磁盘上的单个文件，关卡按默认物理参数检查出生点
func checkFile(w io.Writer, name string) error {
	if strings.HasPrefix(filepath.Base(name), "physics") {
		physics, err := config.LoadPhysicsOverride(name, config.DefaultPhysicsConfig())
		if err != nil {
			return err
		}
		reportPhysics(w, name, physics)
		return nil
	}

	raw, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	level, err := config.ParseLevelConfig(raw)
	if err != nil {
		return err
	}
	if err := level.ValidateFor(config.DefaultPhysicsConfig()); err != nil {
		return err
	}
	reportLevel(w, name, level)
	return nil
}

func reportPhysics(w io.Writer, name string, p *config.PhysicsConfig) {
	fmt.Fprintf(w, "✅ %s: gravity=%.2f rotation=%.1f°/tick roll=%.1fpx in %d ticks\n",
		name, p.Gravity, p.RotationSpeedDeg, p.RollDistance(), p.RollTicks())
}

func reportLevel(w io.Writer, name string, l *config.LevelConfig) {
	fmt.Fprintf(w, "✅ %s: %d 个平台, 起点 (%.0f, %.0f)\n", name, len(l.Platforms), l.Start.X, l.Start.Y)
}
