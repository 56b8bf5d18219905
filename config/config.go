package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jsphweid/reslice/constants"
	"github.com/jsphweid/reslice/quantize"
	"github.com/jsphweid/reslice/track"
	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid config")

type Mode string

const (
	ModeTracker Mode = "tracker"
	ModeSlicer  Mode = "slicer"
)

// Config holds every tunable of a conversion run.
type Config struct {
	Mode                Mode    `json:"mode"`
	PPQN                int     `json:"ppqn"`
	RowTicks            int     `json:"rowTicks"`
	Velocity            int     `json:"velocity"`
	Channel             int     `json:"channel"`
	MinPitch            int     `json:"minPitch"`
	MaxPitch            int     `json:"maxPitch"`
	ClampRegister       bool    `json:"clampRegister"`
	OctaveCorrection    bool    `json:"octaveCorrection"`
	ConfidenceThreshold float64 `json:"confidenceThreshold"`
	Strategy            string  `json:"strategy"`
	HoldLast            bool    `json:"holdLast"`
	BaseNote            int     `json:"baseNote"`
	FallbackBPM         float64 `json:"fallbackBpm"`
	OutDir              string  `json:"outDir,omitempty"`
	Output              string  `json:"output,omitempty"`
	ScriptsDir          string  `json:"scriptsDir,omitempty"`
	PythonPath          string  `json:"pythonPath,omitempty"`
}

// Default returns the tracker grid setup: 24 ticks per beat, 4 rows per beat.
func Default() *Config {
	return &Config{
		Mode:                ModeTracker,
		PPQN:                constants.TrackerPPQN,
		RowTicks:            constants.TrackerPPQN / 4,
		Velocity:            constants.TrackerVelocity,
		MinPitch:            constants.DefaultMinPitch,
		MaxPitch:            constants.DefaultMaxPitch,
		ClampRegister:       true,
		OctaveCorrection:    true,
		ConfidenceThreshold: quantize.DefaultConfidenceThreshold,
		Strategy:            quantize.StrategyMedian,
		BaseNote:            constants.SlicerBaseNote,
		FallbackBPM:         constants.FallbackBPM,
		Output:              constants.TrackerOutput,
	}
}

// Slicer returns the sample slicer setup. The last slice rings out.
func Slicer() *Config {
	c := Default()
	c.Mode = ModeSlicer
	c.PPQN = constants.SlicerPPQN
	c.RowTicks = 1
	c.Velocity = constants.SlicerVelocity
	c.HoldLast = true
	c.Output = constants.SlicerOutput
	return c
}

// ConfigPath returns ~/.config/reslice/config.json.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "reslice", "config.json"), nil
}

// Load overlays the JSON file at path onto base. A missing file leaves base
// unchanged. Environment overrides are applied last.
func Load(path string, base *Config) (*Config, error) {
	cfg := *base
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", path)
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if _, ok := os.LookupEnv("RESLICE_OUT_DIR"); ok || c.OutDir == "" {
		c.OutDir = constants.GetOutDir()
	}
	if _, ok := os.LookupEnv("RESLICE_SCRIPTS_DIR"); ok || c.ScriptsDir == "" {
		c.ScriptsDir = constants.GetScriptsDir()
	}
	if p := constants.GetPythonPath(); p != "" {
		c.PythonPath = p
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Mode != ModeTracker && c.Mode != ModeSlicer:
		return errors.Wrapf(ErrInvalidConfig, "unknown mode %q", c.Mode)
	case c.PPQN <= 0 || c.PPQN > 0x7FFF:
		return errors.Wrapf(ErrInvalidConfig, "ppqn %d out of range", c.PPQN)
	case c.RowTicks <= 0:
		return errors.Wrapf(ErrInvalidConfig, "row ticks must be positive, got %d", c.RowTicks)
	case c.PPQN%c.RowTicks != 0:
		return errors.Wrapf(ErrInvalidConfig, "ppqn %d is not a multiple of row ticks %d", c.PPQN, c.RowTicks)
	case c.Velocity < 1 || c.Velocity > 127:
		return errors.Wrapf(ErrInvalidConfig, "velocity %d out of range", c.Velocity)
	case c.Channel < 0 || c.Channel > 15:
		return errors.Wrapf(ErrInvalidConfig, "channel %d out of range", c.Channel)
	case c.MinPitch < 0 || c.MaxPitch > 127 || c.MinPitch > c.MaxPitch:
		return errors.Wrapf(ErrInvalidConfig, "register [%d, %d] is not a valid MIDI range", c.MinPitch, c.MaxPitch)
	case c.MaxPitch-c.MinPitch < 11:
		return errors.Wrapf(ErrInvalidConfig, "register [%d, %d] is narrower than an octave", c.MinPitch, c.MaxPitch)
	case c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1:
		return errors.Wrapf(ErrInvalidConfig, "confidence threshold %v outside [0, 1]", c.ConfidenceThreshold)
	case c.BaseNote < 0 || c.BaseNote > 127:
		return errors.Wrapf(ErrInvalidConfig, "base note %d out of range", c.BaseNote)
	}
	switch c.Strategy {
	case quantize.StrategySingle, quantize.StrategyMedian, quantize.StrategyFrame:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown pitch strategy %q", c.Strategy)
	}
	return nil
}

func (c *Config) QuantizeOptions() quantize.Options {
	return quantize.Options{
		PPQN:             c.PPQN,
		RowTicks:         c.RowTicks,
		MinPitch:         c.MinPitch,
		MaxPitch:         c.MaxPitch,
		ClampRegister:    c.ClampRegister,
		OctaveCorrection: c.OctaveCorrection,
		FallbackBPM:      c.FallbackBPM,
	}
}

func (c *Config) TrackOptions() track.Options {
	return track.Options{PPQN: c.PPQN, Velocity: uint8(c.Velocity), Channel: uint8(c.Channel)}
}

// OutputPath joins OutDir and Output unless Output is already absolute.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Output) || c.OutDir == "" {
		return c.Output
	}
	return filepath.Join(c.OutDir, c.Output)
}
