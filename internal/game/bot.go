package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/interaction"
)

// ErrUnreachable is returned when the bot cannot get an artifact in range.
var ErrUnreachable = errors.New("game: artifact unreachable")

// steerDeadzone is how close on an axis counts as aligned.
const steerDeadzone = 0.25

// Bot drives a World with scripted input: walk to each artifact, open it,
// close it, move on. It exercises the same input path as a human player.
type Bot struct {
	world     *World
	clock     *FrameClock
	dt        float64
	maxFrames int
	logger    *log.Logger
	frames    int
}

// NewBot creates a bot stepping world at tickRate frames per second. clock,
// if not nil, is advanced one frame per step. logger may be nil.
func NewBot(world *World, clock *FrameClock, tickRate int, logger *log.Logger) *Bot {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Bot{
		world:     world,
		clock:     clock,
		dt:        1.0 / float64(tickRate),
		maxFrames: 120 * tickRate,
		logger:    logger,
	}
}

// Visit is the outcome of one artifact visit.
type Visit struct {
	Artifact catalog.ArtifactID
	Title    string
	Frames   int
	Notice   string
	XP       int
	Level    int
	Found    int // artifacts discovered so far
}

func (v Visit) String() string {
	return fmt.Sprintf("%-4s %-20s frames=%-4d xp=%-5d level=%d found=%d  %s",
		v.Artifact, v.Title, v.Frames, v.XP, v.Level, v.Found, v.Notice)
}

// Report summarizes a bot run.
type Report struct {
	Visits []Visit
	Frames int
	Final  State
}

// Run visits every target in order. Nil targets visits the whole catalog.
func (b *Bot) Run(ctx context.Context, targets []catalog.ArtifactID) (Report, error) {
	if targets == nil {
		targets = b.world.Catalog().IDs()
	}

	var report Report
	for _, id := range targets {
		v, err := b.Visit(ctx, id)
		if err != nil {
			report.Frames = b.frames
			report.Final = b.world.State()
			return report, err
		}
		report.Visits = append(report.Visits, v)
		if err := b.Close(ctx); err != nil {
			report.Frames = b.frames
			report.Final = b.world.State()
			return report, err
		}
	}
	report.Frames = b.frames
	report.Final = b.world.State()
	return report, nil
}

// Visit walks to artifact id and interacts with it, leaving it open.
func (b *Bot) Visit(ctx context.Context, id catalog.ArtifactID) (Visit, error) {
	a, err := b.world.Catalog().Lookup(id)
	if err != nil {
		return Visit{}, err
	}

	start := b.frames
	for !b.targets(id) {
		if b.frames-start >= b.maxFrames {
			return Visit{}, fmt.Errorf("%w: %s after %d frames", ErrUnreachable, id, b.frames-start)
		}
		in := steer(b.world.State().Position, a.Position)
		if in.Direction().LenXZ() == 0 {
			// Standing on it and another artifact still wins the press.
			break
		}
		if err := b.step(ctx, in); err != nil {
			return Visit{}, err
		}
	}

	if s := b.world.State(); s.HasActive && s.Active.ID != id {
		if err := b.press(ctx, core.ActionInteract); err != nil {
			return Visit{}, err
		}
	}
	if b.world.ArtifactState(id) != interaction.Open {
		if err := b.press(ctx, core.ActionInteract); err != nil {
			return Visit{}, err
		}
	}
	if b.world.ArtifactState(id) != interaction.Open {
		return Visit{}, fmt.Errorf("%w: %s is %s", ErrUnreachable, id, b.world.ArtifactState(id))
	}

	s := b.world.State()
	v := Visit{
		Artifact: id,
		Title:    a.Title,
		Frames:   b.frames - start,
		XP:       s.Progress.XP,
		Level:    s.Progress.Level,
		Found:    len(s.Progress.Discovered),
	}
	if s.HasNotice {
		v.Notice = s.Notice.Title
	}

	if b.logger != nil {
		b.logger.Info("artifact visited",
			"artifact", id,
			"frames", v.Frames,
			"xp", v.XP,
			"level", v.Level,
			"open", b.world.ArtifactState(id) == interaction.Open,
		)
	}
	return v, nil
}

// targets reports whether an interact press would act on id.
func (b *Bot) targets(id catalog.ArtifactID) bool {
	switch b.world.ArtifactState(id) {
	case interaction.Open:
		return true
	case interaction.InRange:
		s := b.world.State()
		return s.HasNearby && s.Nearby == id
	default:
		return false
	}
}

// Close closes the open artifact with a second interact press.
func (b *Bot) Close(ctx context.Context) error {
	if !b.world.State().HasActive {
		return nil
	}
	return b.press(ctx, core.ActionInteract)
}

// Frames returns the number of frames stepped so far.
func (b *Bot) Frames() int { return b.frames }

// press holds a for one frame and releases it on the next.
func (b *Bot) press(ctx context.Context, a core.Action) error {
	if err := b.step(ctx, core.NewInputFrame(a)); err != nil {
		return err
	}
	return b.step(ctx, core.NewInputFrame())
}

func (b *Bot) step(ctx context.Context, in core.InputFrame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.world.Step(in, b.dt)
	if b.clock != nil {
		b.clock.Advance(time.Duration(b.dt * float64(time.Second)))
	}
	b.frames++
	return nil
}

// steer returns the movement keys that bring from toward to.
func steer(from, to core.Vec3) core.InputFrame {
	d := to.Sub(from)
	in := core.NewInputFrame()
	switch {
	case d.X < -steerDeadzone:
		in.Set(core.ActionLeft)
	case d.X > steerDeadzone:
		in.Set(core.ActionRight)
	}
	switch {
	case d.Z < -steerDeadzone:
		in.Set(core.ActionForward)
	case d.Z > steerDeadzone:
		in.Set(core.ActionBackward)
	}
	return in
}
