package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, float32(10), p.RestitutionStrength)
	assert.Equal(t, float32(3000), p.AttachedPositionMagic)
	assert.Equal(t, float32(20), p.AttachedRotationMagic)
	assert.Equal(t, float32(100), p.MaxAngularVelocity)
	assert.False(t, p.HidesController)
	assert.NoError(t, p.Validate())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "grab.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("restitution_strength: 25\nhides_controller: true\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(25), p.RestitutionStrength)
	assert.True(t, p.HidesController)
	assert.Equal(t, float32(3000), p.AttachedPositionMagic)
	assert.Equal(t, float32(0.02), p.FixedDeltaTime)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("restitution_strength: [oops\n"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("fixed_delta_time: 0\n"), 0644))
	p, err := Load(invalid)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Equal(t, Default(), p)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "grab.yaml")
	want := Default()
	want.RestitutionStrength = 4
	want.HidesController = true

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Prefs)
	}{
		{name: "negative restitution", modify: func(p *Prefs) { p.RestitutionStrength = -1 }},
		{name: "negative position gain", modify: func(p *Prefs) { p.AttachedPositionMagic = -1 }},
		{name: "negative rotation gain", modify: func(p *Prefs) { p.AttachedRotationMagic = -1 }},
		{name: "zero spin cap", modify: func(p *Prefs) { p.MaxAngularVelocity = 0 }},
		{name: "zero step", modify: func(p *Prefs) { p.FixedDeltaTime = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.modify(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalid)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvRestitutionStrength, "30")
	t.Setenv(EnvHidesController, "1")
	t.Setenv(EnvFixedDeltaTime, "0.01")
	t.Setenv(EnvLogLevel, "debug")

	p, err := ApplyEnv(Default())
	require.NoError(t, err)
	assert.Equal(t, float32(30), p.RestitutionStrength)
	assert.True(t, p.HidesController)
	assert.Equal(t, float32(0.01), p.FixedDeltaTime)
	assert.Equal(t, "debug", p.LogLevel)

	t.Setenv(EnvFixedDeltaTime, "-1")
	_, err = ApplyEnv(Default())
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grab.yaml")
	require.NoError(t, Save(path, Default()))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	want := Default()
	want.RestitutionStrength = 42
	require.NoError(t, Save(path, want))

	select {
	case got := <-w.Updates:
		assert.Equal(t, want, got)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatch_CloseIsIdempotent(t *testing.T) {
	w, err := Watch(filepath.Join(t.TempDir(), "grab.yaml"))
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatch_ReloadKeepsEnvOverrides(t *testing.T) {
	t.Setenv(EnvRestitutionStrength, "30")
	path := filepath.Join(t.TempDir(), "grab.yaml")
	require.NoError(t, Save(path, Default()))

	start, err := Resolve(path)
	require.NoError(t, err)
	require.Equal(t, float32(30), start.RestitutionStrength)

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	edited := Default()
	edited.AttachedRotationMagic = 12
	require.NoError(t, Save(path, edited))

	select {
	case got := <-w.Updates:
		assert.Equal(t, float32(30), got.RestitutionStrength)
		assert.Equal(t, float32(12), got.AttachedRotationMagic)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatch_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "grab.yaml")

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	want := Default()
	want.RestitutionStrength = 7
	require.NoError(t, Save(path, want))

	select {
	case got := <-w.Updates:
		assert.Equal(t, want, got)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after the file was created")
	}
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvHidesController, "true")
	path := filepath.Join(t.TempDir(), "grab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("restitution_strength: 5\n"), 0644))

	p, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, float32(5), p.RestitutionStrength)
	assert.True(t, p.HidesController)
}
