package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/render"
	"github.com/taigrr/lantern/pkg/scalar"
)

// slerpState animates the orientation from start to goal. A harmonica spring
// drives the interpolation parameter towards 1, so motion eases in and
// overshoots slightly before settling.
type slerpState struct {
	start, goal render.Rotation
	progress    float64
	velocity    float64
	spring      harmonica.Spring
}

// newSlerpState starts at rest on the identity.
func newSlerpState(fps int) *slerpState {
	id := math3d.IdentityRotation[scalar.Real]()
	return &slerpState{
		start:    id,
		goal:     id,
		progress: 1,
		// Frequency 5, damping 0.6: under-damped, a small overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 5.0, 0.6),
	}
}

// current returns the orientation at the present progress.
func (s *slerpState) current() render.Rotation {
	return math3d.Slerp(s.start, s.goal, scalar.FromFloat[scalar.Real](s.progress))
}

// retarget heads for goal from wherever the animation is now.
func (s *slerpState) retarget(goal render.Rotation) {
	s.start = s.current()
	s.goal = goal
	s.progress, s.velocity = 0, 0
}

// update advances the spring by one frame.
func (s *slerpState) update() {
	s.progress, s.velocity = s.spring.Update(s.progress, s.velocity, 1)
}

// settled reports whether the animation has come to rest.
func (s *slerpState) settled() bool {
	return math.Abs(1-s.progress) < 1e-3 && math.Abs(s.velocity) < 1e-3
}

// randomRotation returns a rotation about a random axis by at least a
// quarter turn.
func randomRotation(rng *rand.Rand) render.Rotation {
	axis := math3d.V3f[scalar.Real](rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64())
	if axis.IsZero() {
		axis = math3d.UnitY[scalar.Real]()
	}
	angle := math.Pi/2 + rng.Float64()*math.Pi
	return math3d.RotationFromAxisAngle(axis, scalar.FromFloat[scalar.Real](angle))
}

// screenControl is the part of *uv.Terminal that takes over and restores
// the screen.
type screenControl interface {
	Start() error
	EnterAltScreen()
	ExitAltScreen()
	HideCursor()
	ShowCursor()
	Resize(width, height int) error
	Shutdown(ctx context.Context) error
}

// enterScreen starts term in the alternate screen at width x height and
// returns the function that restores it. A failed setup is undone before
// returning.
func enterScreen(term screenControl, width, height int) (func() error, error) {
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}
	cleanup := func() error {
		term.ExitAltScreen()
		term.ShowCursor()
		return term.Shutdown(context.Background())
	}
	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("resize terminal: %w", err)
	}
	return cleanup, nil
}

func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	targetFPS := fs.Int("fps", 30, "Target FPS")
	bgColor := fs.String("bg", "16,18,32", "Background color (R,G,B)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lantern view [options] [model.gltf|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a unit cube is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Space  - Slerp to a random orientation\n")
		fmt.Fprintf(os.Stderr, "  R      - Slerp back to the identity\n")
		fmt.Fprintf(os.Stderr, "  X      - Swap model and cube\n")
		fmt.Fprintf(os.Stderr, "  +/-    - Zoom\n")
		fmt.Fprintf(os.Stderr, "  Esc    - Quit\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 || *targetFPS <= 0 {
		fs.Usage()
		return errUsage
	}
	bg, err := parseColor(*bgColor)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Load before taking over the screen so errors print normally.
	st, err := newStage(fs.Arg(0), width, height*2, bg)
	if err != nil {
		return err
	}

	cleanup, err := enterScreen(term, width, height)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slerp := newSlerpState(*targetFPS)
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	events := term.Events()
	ticker := time.NewTicker(time.Second / time.Duration(*targetFPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return cleanup()

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				if err := term.Resize(width, height); err != nil {
					_ = cleanup()
					return fmt.Errorf("resize terminal: %w", err)
				}
				st.resize(width, height*2)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c", "q"):
					return cleanup()
				case ev.MatchString("space"):
					slerp.retarget(randomRotation(rng))
				case ev.MatchString("r"):
					slerp.retarget(math3d.IdentityRotation[scalar.Real]())
				case ev.MatchString("x"):
					st.toggle()
				case ev.MatchString("+", "="):
					st.zoom(-0.5)
				case ev.MatchString("-", "_"):
					st.zoom(0.5)
				}
			}

		case <-ticker.C:
			if !slerp.settled() {
				slerp.update()
			}
			rot := slerp.current()
			drawn := st.draw(rot)

			st.fb.Draw(term, term.Bounds())
			render.DrawText(term, 1, 0, fmt.Sprintf("%s  %d drawn  [%s]", st.label(), drawn, scalar.Backend), render.ColorWhite)
			euler := formatVec(rot.Transform().Euler())
			status := fmt.Sprintf("%s  euler %s  t=%.2f", rot, euler, slerp.progress)
			render.DrawText(term, 1, height-1, status, render.ColorYellow)

			if err := term.Display(); err != nil {
				_ = cleanup()
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
