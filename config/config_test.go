package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.NoError(t, Slicer().Validate())
}

func TestSlicerDefaults(t *testing.T) {
	c := Slicer()
	assert := assert.New(t)
	assert.Equal(480, c.PPQN)
	assert.Equal(100, c.Velocity)
	assert.True(c.HoldLast)
	assert.Equal("slices.mid", c.Output)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"row ticks zero":      func(c *Config) { c.RowTicks = 0 },
		"row not dividing":    func(c *Config) { c.RowTicks = 5 },
		"velocity zero":       func(c *Config) { c.Velocity = 0 },
		"channel 16":          func(c *Config) { c.Channel = 16 },
		"inverted register":   func(c *Config) { c.MinPitch, c.MaxPitch = 80, 60 },
		"narrow register":     func(c *Config) { c.MinPitch, c.MaxPitch = 60, 65 },
		"threshold above one": func(c *Config) { c.ConfidenceThreshold = 1.5 },
		"unknown strategy":    func(c *Config) { c.Strategy = "mean" },
		"unknown mode":        func(c *Config) { c.Mode = "drums" },
		"ppqn too big":        func(c *Config) { c.PPQN = 0x8000 },
		"base note above 127": func(c *Config) { c.BaseNote = 200 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			err := c.Validate()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoadMissingFileKeepsBase(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.json"), Default())
	require.NoError(t, err)
	assert.Equal(t, 24, c.PPQN)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"velocity": 100, "holdLast": true, "strategy": "single"}`), 0o644))

	c, err := Load(path, Default())
	require.NoError(t, err)
	assert := assert.New(t)
	assert.Equal(100, c.Velocity)
	assert.True(c.HoldLast)
	assert.Equal("single", c.Strategy)
	assert.Equal(6, c.RowTicks)
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"velocity":`), 0o644))
	_, err := Load(path, Default())
	assert.Error(t, err)
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv("RESLICE_OUT_DIR", "/tmp/renders")
	t.Setenv("RESLICE_PYTHON", "/opt/py/bin/python")

	c, err := Load("", Default())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/renders", c.OutDir)
	assert.Equal(t, "/opt/py/bin/python", c.PythonPath)
	assert.Equal(t, "/tmp/renders/output.mid", c.OutputPath())
}

func TestLoadDoesNotMutateBase(t *testing.T) {
	base := Default()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ppqn": 96}`), 0o644))
	_, err := Load(path, base)
	require.NoError(t, err)
	assert.Equal(t, 24, base.PPQN)
}

func TestOptionsMapping(t *testing.T) {
	c := Default()
	c.Channel = 9
	assert.Equal(t, uint8(9), c.TrackOptions().Channel)
	assert.Equal(t, uint8(80), c.TrackOptions().Velocity)
	assert.Equal(t, 6, c.QuantizeOptions().RowTicks)
}
