// tumble-sim 不打开窗口，按脚本输入运行固定数量的 tick 并以 YAML 输出帧
//
// 用法：
//
//	tumble-sim -ticks 120 -script "left@40,right@80+12" -every 20
//
// 模拟不经过 GameLoop 的休眠，结果与实时运行时逐 tick 一致。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/tumble/data"
	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/embedded"
	"github.com/decker502/tumble/pkg/game"
	"github.com/decker502/tumble/pkg/utils"
	"gopkg.in/yaml.v3"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息（输出到 stderr）")
	level       = flag.String("level", config.DefaultLevelName, "关卡名（data/levels/<name>.yaml）")
	physicsPath = flag.String("config", "", "物理参数覆盖文件（YAML）")
	ticks       = flag.Uint64("ticks", 300, "模拟的 tick 数")
	script      = flag.String("script", "", `输入脚本，例如 "left@30,right@60+12,reset@100"`)
	every       = flag.Uint64("every", 0, "每隔多少个 tick 输出一帧（0 表示只输出最后一帧）")
)

func run(out io.Writer) error {
	embedded.Init(data.FS)

	inputs, err := utils.ParseScript(*script)
	if err != nil {
		return err
	}

	physics, err := config.ResolvePhysicsConfig(*physicsPath)
	if err != nil {
		return fmt.Errorf("failed to load physics config: %w", err)
	}
	lvl, err := config.LoadLevel(*level)
	if err != nil {
		return err
	}

	world, err := game.NewWorld(physics, lvl)
	if err != nil {
		return err
	}
	defer world.Close()

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()

	for world.Tick() < *ticks {
		world.StepWith(1, inputs.IntentAt(world.Tick()))
		world.PublishFrame()

		if *every > 0 && world.Tick()%*every == 0 {
			if err := enc.Encode(world.Frame()); err != nil {
				return fmt.Errorf("failed to encode frame: %w", err)
			}
		}
	}

	if *every == 0 || world.Tick() == 0 || world.Tick()%*every != 0 {
		if err := enc.Encode(world.Frame()); err != nil {
			return fmt.Errorf("failed to encode frame: %w", err)
		}
	}
	return nil
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *verbose {
		log.SetOutput(os.Stderr)
	}

	if err := run(os.Stdout); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("模拟失败: %v", err)
	}
}
