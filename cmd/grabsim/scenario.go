package main

import (
	"vr-grab/internal/config"
	"vr-grab/internal/interaction"
	"vr-grab/internal/logger"
	"vr-grab/internal/physics"
	"vr-grab/internal/scene"
	"vr-grab/internal/sim"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Hand path: the hand starts on the box, then circles at sweepRadius around sweepCenter
// once every sweepPeriod seconds while turning about Y at half that rate.
var (
	boxStart    = rl.NewVector3(0, 0.6, 0)
	sweepCenter = rl.NewVector3(0, 1.2, 0)
)

const (
	sweepRadius = 0.3
	sweepPeriod = 4
)

type scenario struct {
	graph  *scene.Graph
	world  *physics.World
	runner *sim.Runner
	item   *interaction.Item
	hand   *interaction.Hand
}

// newScenario builds a floor, a 20 cm box sitting above it and a right hand with a
// two-part controller model. withGrip authors an interaction point on top of the box.
func newScenario(p config.Prefs, log *logger.Logger, withGrip bool) (*scenario, error) {
	g := scene.New()
	w := physics.NewWorld()
	floor := physics.NewBody("floor", rl.NewVector3(0, -0.05, 0), rl.NewVector3(5, 0.05, 5), 1, true)
	box := physics.NewBody("box", boxStart, rl.NewVector3(0.1, 0.1, 0.1), 0.5, false)
	w.AddBody(floor)
	w.AddBody(box)

	item, err := interaction.NewItem(g, box, log)
	if err != nil {
		return nil, err
	}
	item.ApplyPrefs(p)
	if withGrip {
		grip := g.NewNode("grip", item.Node)
		grip.LocalPosition = rl.NewVector3(0, 0.1, 0)
		item.InteractionPoint = grip
	}

	hand := interaction.NewHand(g, "right")
	model := g.NewNode("controller", hand.Node)
	model.AddRenderer("body")
	model.AddRenderer("trigger")
	hand.SetPose(boxStart, rl.QuaternionIdentity())

	r := sim.New(w, p.FixedDeltaTime, log)
	s := &scenario{graph: g, world: w, runner: r, item: item, hand: hand}
	r.Register(sim.TickerFunc(s.moveHand))
	r.Register(item)
	return s, nil
}

// moveHand advances the scripted hand pose to the time of the coming tick.
func (s *scenario) moveHand(dt float32) {
	t := float32(s.runner.Ticks()+1) * dt
	phase := 2 * rl.Pi * t / sweepPeriod
	// Rise from the box to the circle during the first quarter turn.
	lift := rl.Clamp(t/(sweepPeriod/4), 0, 1)
	ring := rl.NewVector3(sweepRadius*math32.Cos(phase), 0, sweepRadius*math32.Sin(phase))
	onCircle := rl.Vector3Add(sweepCenter, ring)
	pos := rl.Vector3Lerp(boxStart, onCircle, lift)
	rot := rl.QuaternionFromAxisAngle(rl.NewVector3(0, 1, 0), phase/2)
	s.hand.SetPose(pos, rot)
}
