package game

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopRunning 在循环已经运行时调用 Start 返回
var ErrLoopRunning = errors.New("game loop is already running")

// LoopState 游戏循环状态
type LoopState int

const (
	// LoopStopped 未运行
	LoopStopped LoopState = iota
	// LoopRunning 正在运行
	LoopRunning
)

// String 返回状态名称
func (s LoopState) String() string {
	if s == LoopRunning {
		return "running"
	}
	return "stopped"
}

// GameLoop 固定频率的游戏循环
//
// 每个 tick：计算距上一 tick 的时间比例 → 调用 step → 调用 redraw → 休眠 1/tickRate 秒。
// 不做追帧：机器跟不上时游戏只是变慢，不会跳过模拟步。
type GameLoop struct {
	tickRate int
	step     func(elapsedRatio float64)
	redraw   func()

	// 时间源，测试中可替换
	now   func() time.Time
	after func(time.Duration) <-chan time.Time

	mu    sync.Mutex
	state LoopState
	stop  chan struct{}
	done  chan struct{}
	ticks atomic.Uint64
}

// NewGameLoop 创建游戏循环
//
// 参数:
//   - tickRate: 目标频率（Hz），<= 0 时使用 60
//   - step: 每个 tick 调用一次，参数是实际间隔与目标间隔之比
//   - redraw: 每个 tick 在 step 之后调用，可为 nil
func NewGameLoop(tickRate int, step func(elapsedRatio float64), redraw func()) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &GameLoop{
		tickRate: tickRate,
		step:     step,
		redraw:   redraw,
		now:      time.Now,
		after:    time.After,
	}
}

// Interval 返回目标 tick 间隔
func (l *GameLoop) Interval() time.Duration {
	return time.Second / time.Duration(l.tickRate)
}

// State 返回当前状态
func (l *GameLoop) State() LoopState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Ticks 返回已完成的 tick 数
func (l *GameLoop) Ticks() uint64 {
	return l.ticks.Load()
}

// Start 从 Stopped 切换到 Running 并在新协程中开始 tick
//
// 如果上一次 Stop 还在等待旧协程退出，Start 会先等它退出，
// 保证任何时刻只有一个协程在调用 step。
func (l *GameLoop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == LoopRunning {
		return ErrLoopRunning
	}
	if l.done != nil {
		<-l.done
	}

	l.state = LoopRunning
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(l.stop, l.done)

	log.Printf("[GameLoop] Started at %d Hz", l.tickRate)
	return nil
}

// Stop 停止循环并等待 tick 协程退出
// 正在进行的 step 会执行完；休眠会被立即打断。已停止时只等待旧协程退出。
func (l *GameLoop) Stop() {
	l.mu.Lock()
	wasRunning := l.state == LoopRunning
	if wasRunning {
		l.state = LoopStopped
		close(l.stop)
	}
	done := l.done
	l.mu.Unlock()

	if done == nil {
		return
	}
	<-done
	if wasRunning {
		log.Printf("[GameLoop] Stopped after %d ticks", l.Ticks())
	}
}

func (l *GameLoop) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := l.Interval()
	last := l.now()

	for {
		select {
		case <-stop:
			return
		default:
		}

		current := l.now()
		elapsedRatio := float64(current.Sub(last)) / float64(interval)
		last = current

		if l.step != nil {
			l.step(elapsedRatio)
		}
		if l.redraw != nil {
			l.redraw()
		}
		l.ticks.Add(1)

		// 休眠被打断不是错误，直接退出
		select {
		case <-stop:
			return
		case <-l.after(interval):
		}
	}
}
