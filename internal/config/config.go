package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vr-grab/internal/env"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the grab tuning file, relative to the process working directory.
const DefaultPath = "config/grab.yaml"

// ErrInvalid is returned (wrapped) when prefs fail validation.
var ErrInvalid = errors.New("invalid grab prefs")

// Environment variables that override the file.
const (
	EnvRestitutionStrength = "GRAB_RESTITUTION_STRENGTH"
	EnvHidesController     = "GRAB_HIDES_CONTROLLER"
	EnvFixedDeltaTime      = "GRAB_FIXED_DELTA_TIME"
	EnvLogLevel            = "GRAB_LOG_LEVEL"
)

// Prefs holds the tuning for held items and the simulation step. Persisted across runs.
// RestitutionStrength is the largest velocity change (m/s, and rad/s for spin) a held item may
// take per tick; higher follows the hand more tightly at some cost to smoothness.
type Prefs struct {
	RestitutionStrength   float32 `yaml:"restitution_strength"`
	HidesController       bool    `yaml:"hides_controller"`
	AttachedPositionMagic float32 `yaml:"attached_position_magic"`
	AttachedRotationMagic float32 `yaml:"attached_rotation_magic"`
	MaxAngularVelocity    float32 `yaml:"max_angular_velocity"`
	FixedDeltaTime        float32 `yaml:"fixed_delta_time"`
	LogLevel              string  `yaml:"log_level,omitempty"`
}

// Default returns the stock tuning: restitution 10, position gain 3000, rotation gain 20,
// 100 rad/s spin cap, 50 Hz physics, controller stays visible.
func Default() Prefs {
	return Prefs{
		RestitutionStrength:   10,
		HidesController:       false,
		AttachedPositionMagic: 3000,
		AttachedRotationMagic: 20,
		MaxAngularVelocity:    100,
		FixedDeltaTime:        0.02,
		LogLevel:              "info",
	}
}

// Validate reports the first out-of-range field.
func (p Prefs) Validate() error {
	switch {
	case p.RestitutionStrength < 0:
		return fmt.Errorf("%w: restitution_strength %v < 0", ErrInvalid, p.RestitutionStrength)
	case p.AttachedPositionMagic < 0:
		return fmt.Errorf("%w: attached_position_magic %v < 0", ErrInvalid, p.AttachedPositionMagic)
	case p.AttachedRotationMagic < 0:
		return fmt.Errorf("%w: attached_rotation_magic %v < 0", ErrInvalid, p.AttachedRotationMagic)
	case p.MaxAngularVelocity <= 0:
		return fmt.Errorf("%w: max_angular_velocity %v <= 0", ErrInvalid, p.MaxAngularVelocity)
	case p.FixedDeltaTime <= 0:
		return fmt.Errorf("%w: fixed_delta_time %v <= 0", ErrInvalid, p.FixedDeltaTime)
	}
	return nil
}

// Load reads prefs from path. Fields absent from the file keep their Default() value.
// A missing file returns Default() and no error and does not create a file.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), err
	}
	return p, nil
}

// Save writes prefs to path as YAML, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve returns the effective prefs for path: the file (or defaults) with GRAB_* overrides applied.
func Resolve(path string) (Prefs, error) {
	p, err := Load(path)
	if err != nil {
		return p, err
	}
	return ApplyEnv(p)
}

// ApplyEnv overrides fields from GRAB_* environment variables and validates the result.
func ApplyEnv(p Prefs) (Prefs, error) {
	if v, ok, err := env.Float(EnvRestitutionStrength); err != nil {
		return p, err
	} else if ok {
		p.RestitutionStrength = v
	}
	if v, ok, err := env.Bool(EnvHidesController); err != nil {
		return p, err
	} else if ok {
		p.HidesController = v
	}
	if v, ok, err := env.Float(EnvFixedDeltaTime); err != nil {
		return p, err
	} else if ok {
		p.FixedDeltaTime = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		p.LogLevel = v
	}
	return p, p.Validate()
}
