package sim

import (
	"context"
	"errors"

	"vr-grab/internal/logger"
	"vr-grab/internal/physics"

	"go.uber.org/zap"
)

// ErrBadStep is returned by SetStep for a non-positive step.
var ErrBadStep = errors.New("fixed step must be positive")

// Ticker is advanced once per fixed step, before the world integrates.
// interaction.Item is the main implementation.
type Ticker interface {
	OnTick(dt float32)
}

// TickerFunc adapts a function to Ticker (e.g. a scripted hand path).
type TickerFunc func(dt float32)

// OnTick calls f(dt).
func (f TickerFunc) OnTick(dt float32) { f(dt) }

// Runner is the host scheduler: each Tick it calls every registered Ticker in registration
// order with the fixed step, then steps the physics world once. Everything runs on the caller's
// goroutine, so tickers never overlap with each other or with the world step.
type Runner struct {
	World *physics.World

	step    float32
	tickers []Ticker
	ticks   uint64
	log     *logger.Logger
}

// New returns a runner stepping world by step seconds per tick. log may be nil.
func New(world *physics.World, step float32, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{World: world, step: step, log: log}
}

// Register appends t to the tick order.
func (r *Runner) Register(t Ticker) {
	r.tickers = append(r.tickers, t)
}

// Step returns the fixed step in seconds.
func (r *Runner) Step() float32 { return r.step }

// SetStep changes the fixed step, e.g. after a config reload.
func (r *Runner) SetStep(step float32) error {
	if step <= 0 {
		return ErrBadStep
	}
	if step != r.step {
		r.log.Info("fixed step changed", zap.Float32("from", r.step), zap.Float32("to", step))
	}
	r.step = step
	return nil
}

// Ticks returns how many ticks have run.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Tick runs one fixed step.
func (r *Runner) Tick() {
	for _, t := range r.tickers {
		t.OnTick(r.step)
	}
	r.World.Step(r.step)
	r.ticks++
}

// Run performs n ticks, or until ctx is done, in which case it returns ctx.Err().
// The simulation runs as fast as possible; pacing to wall-clock time is the caller's concern.
func (r *Runner) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			r.log.Warn("run interrupted", zap.Uint64("tick", r.ticks), zap.Error(ctx.Err()))
			return ctx.Err()
		default:
		}
		r.Tick()
	}
	return nil
}
