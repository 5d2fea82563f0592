package config

// 布局配置常量
// 本文件定义了窗口尺寸和绘制相关的固定参数

const (
	// GameWindowWidth 是游戏逻辑屏幕宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 是游戏逻辑屏幕高度（像素）
	GameWindowHeight = 600

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Rotating Rectangle Platformer"

	// InstructionsX, InstructionsY 操作说明文字的起始位置
	InstructionsX = 10
	InstructionsY = 20

	// InstructionsLineHeight 操作说明的行距
	InstructionsLineHeight = 20

	// GrassStripHeight 平台顶部草皮的高度
	GrassStripHeight = 8.0

	// PlatformBorderWidth 平台描边宽度
	PlatformBorderWidth = 2.0

	// AvatarBorderWidth 角色描边宽度
	AvatarBorderWidth = 3.0

	// OrientationLineWidth 朝向指示线宽度
	OrientationLineWidth = 2.0
)

// Instructions 是绘制在左上角的操作说明
var Instructions = []string{
	"Arrow Keys to Rotate and Move",
	"R to Reset",
}

// TouchInstructions 移动端的操作说明
var TouchInstructions = []string{
	"Tap Left / Right Third to Roll",
	"Tap Middle to Reset",
}
