package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"vr-grab/internal/commands"
	"vr-grab/internal/config"
	"vr-grab/internal/interaction"
	"vr-grab/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

func registerRun(reg *commands.Registry) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	ticks := fs.Int("ticks", 500, "number of fixed steps to simulate")
	every := fs.Int("every", 10, "log the box pose every N ticks")
	cfgPath := fs.String("config", config.DefaultPath, "grab prefs file (YAML)")
	logPath := fs.String("log", logger.LogFilePath, "log file")
	grip := fs.Bool("interaction-point", false, "hold the box by a grip point on its top face")
	hide := fs.Bool("hide", false, "hide the controller model while holding (overrides prefs)")
	watch := fs.Bool("watch", false, "reload the prefs file when it changes")

	reg.Register("run", "grab a box and sweep it around a circle", fs, func(ctx context.Context) (err error) {
		prefs, err := config.Resolve(*cfgPath)
		if err != nil {
			return err
		}
		prefs = withFlags(prefs, *hide)
		if *every <= 0 {
			*every = 1
		}
		log, err := logger.New(*logPath, prefs.LogLevel)
		if err != nil {
			return err
		}
		defer log.Close()
		defer func() {
			if err != nil {
				printTail(os.Stderr, log.Lines(), failureTail)
			}
		}()

		s, err := newScenario(prefs, log, *grip)
		if err != nil {
			return err
		}

		var updates <-chan config.Prefs
		var watchErrs <-chan error
		if *watch {
			w, err := config.Watch(*cfgPath)
			if err != nil {
				return fmt.Errorf("watch %s: %w", *cfgPath, err)
			}
			defer w.Close()
			updates, watchErrs = w.Updates, w.Errors
		}

		if err := s.item.BeginInteraction(s.hand); err != nil {
			return err
		}
		for done := 0; done < *ticks; {
			select {
			case p := <-updates:
				s.applyPrefs(withFlags(p, *hide), log)
			case err := <-watchErrs:
				log.Warn("prefs reload failed", zap.Error(err))
			default:
			}
			n := min(*every, *ticks-done)
			if err := s.runner.Run(ctx, n); err != nil {
				s.item.EndInteraction()
				return err
			}
			done += n
			s.logPose(log)
		}
		s.item.EndInteraction()

		pos, rot := s.item.Body.Pose()
		angle, axis := interaction.AngleAxis(rot)
		fmt.Fprintf(os.Stdout, "box after %d ticks: pos=(%.3f, %.3f, %.3f) rot=%.1f° about (%.2f, %.2f, %.2f)\n",
			s.runner.Ticks(), pos.X, pos.Y, pos.Z, angle, axis.X, axis.Y, axis.Z)
		return nil
	})
}

// withFlags layers command line overrides on top of file and env prefs. It runs on every
// reload too, so a flag is never undone by editing the file.
func withFlags(p config.Prefs, hide bool) config.Prefs {
	if hide {
		p.HidesController = true
	}
	return p
}

// failureTail is how many recent log lines a failed run prints.
const failureTail = 20

// printTail writes the last n lines to w.
func printTail(w io.Writer, lines []string, n int) {
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func (s *scenario) applyPrefs(p config.Prefs, log *logger.Logger) {
	if err := s.runner.SetStep(p.FixedDeltaTime); err != nil {
		log.Warn("ignoring fixed step", zap.Error(err))
	}
	s.item.ApplyPrefs(p)
	log.Info("prefs reloaded",
		zap.Float32("restitution_strength", p.RestitutionStrength),
		zap.Bool("hides_controller", p.HidesController))
}

func (s *scenario) logPose(log *logger.Logger) {
	b := s.item.Body
	fields := []zap.Field{
		zap.Uint64("tick", s.runner.Ticks()),
		zap.Float32("x", b.Position.X), zap.Float32("y", b.Position.Y), zap.Float32("z", b.Position.Z),
		zap.Float32("speed", rl.Vector3Length(b.Velocity)),
		zap.Bool("held", s.item.IsAttached()),
	}
	if h := s.item.AttachedHand(); h != nil {
		fields = append(fields, zap.String("hand", h.Name))
	}
	if pickup := s.item.PickupNode(); pickup != nil {
		fields = append(fields, zap.Float32("pickup_error", rl.Vector3Distance(pickup.Position(), b.Position)))
	}
	log.Debug("tick", fields...)
}
