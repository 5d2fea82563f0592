package main

import (
	"flag"
	"log"

	"github.com/decker502/tumble/data"
	"github.com/decker502/tumble/pkg/app"
	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	level       = flag.String("level", config.DefaultLevelName, "关卡名（data/levels/<name>.yaml）")
	physicsPath = flag.String("config", "", "物理参数覆盖文件（YAML）")
)

func main() {
	flag.Parse()

	// 初始化嵌入数据
	embedded.Init(data.FS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Level:       *level,
		PhysicsPath: *physicsPath,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
