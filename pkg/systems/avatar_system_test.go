package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/tumble/pkg/components"
	"github.com/decker502/tumble/pkg/config"
	"github.com/decker502/tumble/pkg/ecs"
	"github.com/decker502/tumble/pkg/entities"
	"github.com/decker502/tumble/pkg/utils"
)

const floatTolerance = 1e-9

var (
	noInput    = utils.Intent{}
	leftInput  = utils.Intent{Left: true}
	rightInput = utils.Intent{Right: true}
	resetInput = utils.Intent{Reset: true}
)

// newTestAvatarSystem 在给定关卡上创建角色系统
func newTestAvatarSystem(t *testing.T, level *config.LevelConfig) (*AvatarSystem, *ecs.EntityManager, ecs.EntityID) {
	t.Helper()
	em := ecs.NewEntityManager()
	physics := config.DefaultPhysicsConfig()

	if _, err := entities.NewLevelPlatforms(em, level); err != nil {
		t.Fatalf("NewLevelPlatforms failed: %v", err)
	}
	id, err := entities.NewAvatarEntity(em, physics, level.Start.X, level.Start.Y)
	if err != nil {
		t.Fatalf("NewAvatarEntity failed: %v", err)
	}
	return NewAvatarSystem(em, physics, id), em, id
}

func levelWith(startX, startY float64, platforms ...config.PlatformConfig) *config.LevelConfig {
	return &config.LevelConfig{
		Name:      "test",
		Start:     config.Point{X: startX, Y: startY},
		Platforms: platforms,
	}
}

var floor = config.PlatformConfig{X: 0, Y: 500, Width: 800, Height: 100}

func step(s *AvatarSystem, n int, in utils.Intent) {
	for i := 0; i < n; i++ {
		s.Update(1, in)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// settle 让角色落到地面上
func settle(t *testing.T, s *AvatarSystem) {
	t.Helper()
	for i := 0; i < 600; i++ {
		s.Update(1, noInput)
		if st := s.State(); st.Grounded && st.VY == 0 {
			return
		}
	}
	t.Fatalf("avatar never landed: %+v", s.State())
}

func TestGravityAccumulatesInAir(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, levelWith(100, 100, floor))

	step(s, 1, noInput)
	st := s.State()
	if !almostEqual(st.VY, 0.6) || !almostEqual(st.Y, 100.6) {
		t.Errorf("after 1 tick: vy=%v y=%v, want 0.6 and 100.6", st.VY, st.Y)
	}

	step(s, 1, noInput)
	st = s.State()
	if !almostEqual(st.VY, 1.2) || !almostEqual(st.Y, 101.8) {
		t.Errorf("after 2 ticks: vy=%v y=%v, want 1.2 and 101.8", st.VY, st.Y)
	}
	if st.Grounded {
		t.Error("avatar should not be grounded in the air")
	}
}

func TestLandingOnPlatform(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, config.DefaultLevel())
	settle(t, s)

	st := s.State()
	if st.Y != 420 {
		t.Errorf("landed at y=%v, want 420", st.Y)
	}
	if st.X != 100 {
		t.Errorf("x changed while falling: %v", st.X)
	}

	// 静止在地面上时每个 tick 都被吸附回同一高度
	for i := 0; i < 30; i++ {
		s.Update(1, noInput)
		st = s.State()
		if st.Y != 420 || st.VY != 0 || !st.Grounded {
			t.Fatalf("tick %d: resting avatar drifted: %+v", i, st)
		}
	}
}

func TestRollNeedsGround(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, config.DefaultLevel())

	s.Update(1, leftInput)
	if st := s.State(); st.IsRotating || st.VX != 0 {
		t.Errorf("roll started in the air: %+v", st)
	}
}

func TestRollStartsWithExpectedVelocity(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, config.DefaultLevel())
	settle(t, s)
	physics := config.DefaultPhysicsConfig()

	s.Update(1, leftInput)
	st := s.State()
	if !st.IsRotating || st.Direction != components.RotateLeft {
		t.Fatalf("expected a left roll, got %+v", st)
	}
	if !almostEqual(st.VX, -65.0/11) {
		t.Errorf("vx=%v, want %v", st.VX, -65.0/11)
	}
	if !almostEqual(st.TargetRotation, -math.Pi/2) {
		t.Errorf("target=%v, want -π/2", st.TargetRotation)
	}
	if !almostEqual(st.Angle, -physics.RotationStepRad()) {
		t.Errorf("angle=%v, want one step", st.Angle)
	}
}

func TestLeftTakesPriorityOverRight(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, config.DefaultLevel())
	settle(t, s)

	s.Update(1, utils.Intent{Left: true, Right: true})
	if st := s.State(); st.Direction != components.RotateLeft {
		t.Errorf("direction=%v, want left", st.Direction)
	}
}

func TestRollCompletesAndMovesRollDistance(t *testing.T) {
	tests := []struct {
		name   string
		in     utils.Intent
		wantX  float64
		wantAn float64
	}{
		{"left", leftInput, 100 - 65, -math.Pi / 2},
		{"right", rightInput, 100 + 65, math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestAvatarSystem(t, levelWith(100, 300, floor))
			settle(t, s)

			// 第 1 个 tick 开始翻滚，之后松开按键
			s.Update(1, tt.in)
			for i := 2; i <= 11; i++ {
				s.Update(1, noInput)
				if !s.State().IsRotating {
					t.Fatalf("roll finished early at tick %d", i)
				}
			}
			s.Update(1, noInput)

			st := s.State()
			if st.IsRotating || st.Direction != components.RotateNone {
				t.Fatalf("roll should be finished after 12 ticks: %+v", st)
			}
			if st.Angle != st.TargetRotation || !almostEqual(st.Angle, tt.wantAn) {
				t.Errorf("angle=%v target=%v, want %v", st.Angle, st.TargetRotation, tt.wantAn)
			}
			if math.Abs(st.X-tt.wantX) > 1e-6 {
				t.Errorf("x=%v, want %v", st.X, tt.wantX)
			}
			if st.VX != 0 {
				t.Errorf("vx=%v after roll, want 0", st.VX)
			}
			if st.Y != 420 || !st.Grounded {
				t.Errorf("avatar left the floor during the roll: %+v", st)
			}
		})
	}
}

func TestHeldKeyChainsRolls(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, levelWith(300, 300, floor))
	settle(t, s)

	step(s, 12, rightInput)
	if s.State().IsRotating {
		t.Fatal("first roll should be finished")
	}
	step(s, 1, rightInput)
	st := s.State()
	if !st.IsRotating || !almostEqual(st.TargetRotation, math.Pi) {
		t.Errorf("second roll should target π, got %+v", st)
	}
}

func TestRollOnRaisedPlatform(t *testing.T) {
	// 默认关卡第二个平台 (200,400,200,30)，角色落在 y=320
	s, _, _ := newTestAvatarSystem(t, levelWith(300, 200,
		config.PlatformConfig{X: 0, Y: 500, Width: 800, Height: 100},
		config.PlatformConfig{X: 200, Y: 400, Width: 200, Height: 30},
	))
	settle(t, s)
	if y := s.State().Y; y != 320 {
		t.Fatalf("landed at y=%v, want 320", y)
	}

	s.Update(1, leftInput)
	step(s, 11, noInput)

	st := s.State()
	if math.Abs(st.X-235) > 1e-6 || st.Y != 320 {
		t.Errorf("after roll: x=%v y=%v, want 235 and 320", st.X, st.Y)
	}
}

func TestWallCancelsRoll(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, levelWith(120, 420,
		config.PlatformConfig{X: 0, Y: 500, Width: 800, Height: 100},
		config.PlatformConfig{X: 200, Y: 400, Width: 200, Height: 30},
	))
	settle(t, s)

	s.Update(1, rightInput)
	var st AvatarState
	for i := 0; i < 12; i++ {
		s.Update(1, noInput)
		st = s.State()
		if !st.IsRotating {
			break
		}
	}

	if st.IsRotating || st.Direction != components.RotateNone {
		t.Fatalf("wall should cancel the roll: %+v", st)
	}
	if st.X != 150 || st.VX != 0 {
		t.Errorf("x=%v vx=%v, want 150 and 0", st.X, st.VX)
	}
	if st.TargetRotation != st.Angle {
		t.Errorf("cancelled roll should leave target == angle, got %v / %v", st.TargetRotation, st.Angle)
	}
	if st.Angle <= 0 || st.Angle >= math.Pi/2 {
		t.Errorf("angle should stay part-way, got %v", st.Angle)
	}
	if !st.Grounded || st.Y != 420 {
		t.Errorf("avatar should stay on the floor: %+v", st)
	}
}

func TestHeadBumpStopsRise(t *testing.T) {
	s, em, id := newTestAvatarSystem(t, levelWith(100, 200,
		config.PlatformConfig{X: 0, Y: 100, Width: 800, Height: 30},
		config.PlatformConfig{X: 0, Y: 500, Width: 800, Height: 100},
	))

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	vel.VY = -100

	s.Update(1, noInput)
	st := s.State()
	if st.Y != 130 || st.VY != 0 {
		t.Errorf("head bump: y=%v vy=%v, want 130 and 0", st.Y, st.VY)
	}
	if st.Grounded {
		t.Error("hitting a ceiling must not ground the avatar")
	}
}

func TestResetViaInput(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, config.DefaultLevel())
	settle(t, s)
	s.Update(1, rightInput)
	step(s, 3, noInput)

	s.Update(1, resetInput)
	st := s.State()
	// 重置发生在重力和积分之前
	if st.X != 100 || !almostEqual(st.Y, 300.6) || !almostEqual(st.VY, 0.6) {
		t.Errorf("after reset tick: %+v", st)
	}
	if st.VX != 0 || st.Angle != 0 || st.IsRotating || st.Grounded {
		t.Errorf("reset should clear motion and rotation: %+v", st)
	}
	if st.Resets != 1 {
		t.Errorf("resets=%d, want 1", st.Resets)
	}
}

func TestResetImmediate(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, config.DefaultLevel())
	settle(t, s)
	s.Update(1, leftInput)

	var reasons []ResetReason
	s.SetResetHandler(func(r ResetReason) { reasons = append(reasons, r) })
	s.Reset()

	st := s.State()
	if st.X != 100 || st.Y != 300 || st.VX != 0 || st.VY != 0 || st.Angle != 0 || st.IsRotating {
		t.Errorf("Reset() should restore the spawn state exactly: %+v", st)
	}
	if len(reasons) != 1 || reasons[0] != ResetRequested {
		t.Errorf("reset handler got %v", reasons)
	}
}

func TestFallOffResets(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, levelWith(400, 100,
		config.PlatformConfig{X: 0, Y: 500, Width: 100, Height: 100},
	))

	var reasons []ResetReason
	s.SetResetHandler(func(r ResetReason) { reasons = append(reasons, r) })

	for i := 0; i < 200 && len(reasons) == 0; i++ {
		s.Update(1, noInput)
		if st := s.State(); st.Y > 650 {
			t.Fatalf("avatar passed the fall-off line without reset: %+v", st)
		}
	}

	if len(reasons) != 1 || reasons[0] != ResetFellOff {
		t.Fatalf("expected one fall-off reset, got %v", reasons)
	}
	st := s.State()
	if st.X != 400 || st.Y != 100 || st.VY != 0 {
		t.Errorf("fall-off reset should restore spawn exactly: %+v", st)
	}
}

func TestHorizontalClamp(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, config.DefaultLevel())
	rng := rand.New(rand.NewSource(42))
	inputs := []utils.Intent{noInput, leftInput, rightInput, leftInput, rightInput, {Left: true, Right: true}}

	for i := 0; i < 5000; i++ {
		in := inputs[rng.Intn(len(inputs))]
		if rng.Intn(500) == 0 {
			in = resetInput
		}
		s.Update(1, in)

		st := s.State()
		if st.X < 0 || st.X > 750 {
			t.Fatalf("tick %d: x=%v outside [0, 750]", i, st.X)
		}
		if !utils.IsFinite(st.X, st.Y, st.VX, st.VY, st.Angle) {
			t.Fatalf("tick %d: non-finite state %+v", i, st)
		}
	}
}

func TestClampAtLeftEdge(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, levelWith(20, 420, floor))
	settle(t, s)

	s.Update(1, leftInput)
	step(s, 11, noInput)
	if x := s.State().X; x != 0 {
		t.Errorf("x=%v, want clamped to 0", x)
	}
}

func TestNonFiniteStateResets(t *testing.T) {
	s, em, id := newTestAvatarSystem(t, config.DefaultLevel())
	settle(t, s)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	vel.VY = math.NaN()

	var reasons []ResetReason
	s.SetResetHandler(func(r ResetReason) { reasons = append(reasons, r) })
	s.Update(1, noInput)

	st := s.State()
	if !utils.IsFinite(st.X, st.Y, st.VX, st.VY) {
		t.Fatalf("state still non-finite: %+v", st)
	}
	if st.X != 100 || st.Y != 300 {
		t.Errorf("expected spawn position, got (%v, %v)", st.X, st.Y)
	}
	if len(reasons) != 1 || reasons[0] != ResetNonFinite {
		t.Errorf("reset reasons %v", reasons)
	}
}

func TestDeltaTimeDoesNotScaleSimulation(t *testing.T) {
	a, _, _ := newTestAvatarSystem(t, config.DefaultLevel())
	b, _, _ := newTestAvatarSystem(t, config.DefaultLevel())

	for i := 0; i < 40; i++ {
		a.Update(1, noInput)
		b.Update(3.5, noInput)
	}
	if a.State() != b.State() {
		t.Errorf("deltaTime changed the result: %+v vs %+v", a.State(), b.State())
	}
	if b.LastDeltaTime() != 3.5 {
		t.Errorf("LastDeltaTime=%v, want 3.5", b.LastDeltaTime())
	}
}

func TestVisualTransformFollowsCollisionBox(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, config.DefaultLevel())
	settle(t, s)
	s.Update(1, rightInput)

	box := s.CollisionBounds()
	vt := s.VisualTransform()
	cx, cy := box.Center()
	if vt.CenterX != cx || vt.CenterY != cy {
		t.Errorf("visual center (%v,%v) != box center (%v,%v)", vt.CenterX, vt.CenterY, cx, cy)
	}
	if box.W != 50 || box.H != 80 {
		t.Errorf("collision box must never rotate: %+v", box)
	}
	if vt.Angle == 0 {
		t.Error("visual angle should follow the roll")
	}
}

func TestPlatformBoundsOrder(t *testing.T) {
	s, _, _ := newTestAvatarSystem(t, config.DefaultLevel())
	level := config.DefaultLevel()

	got := s.Platforms()
	if len(got) != len(level.Platforms) {
		t.Fatalf("got %d platforms, want %d", len(got), len(level.Platforms))
	}
	for i, p := range level.Platforms {
		want := utils.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
		if got[i] != want {
			t.Errorf("platform %d: got %+v, want %+v", i, got[i], want)
		}
	}
}
