// tumble-tui 在终端里运行游戏
//
// 模拟与桌面版完全相同（同一个 World 和 GameLoop），只是换成 bubbletea 绘制。
// 日志写入 XDG state 目录下的 tumble/tui.log，避免破坏终端画面。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/decker502/tumble/data"
	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/embedded"
	"github.com/decker502/tumble/pkg/game"
	"github.com/decker502/tumble/pkg/tui"
)

var (
	verbose     = flag.Bool("verbose", false, "写入详细日志")
	level       = flag.String("level", config.DefaultLevelName, "关卡名（data/levels/<name>.yaml）")
	physicsPath = flag.String("config", "", "物理参数覆盖文件（YAML）")
)

// setupLogging 把标准 log 输出重定向到 XDG state 目录
func setupLogging() (*os.File, error) {
	logPath, err := xdg.StateFile("tumble/tui.log")
	if err != nil {
		return nil, fmt.Errorf("could not get log path: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(f)
	log.Printf("[TUI] Logging to %s", logPath)
	return f, nil
}

func run() error {
	embedded.Init(data.FS)

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

	loop := game.NewGameLoop(physics.TickRate, world.Step, world.PublishFrame)
	if err := loop.Start(); err != nil {
		return err
	}
	defer loop.Stop()

	p := tea.NewProgram(tui.New(world), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *verbose {
		logFile, err := setupLogging()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not setup logging: %v\n", err)
		} else {
			defer logFile.Close()
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
