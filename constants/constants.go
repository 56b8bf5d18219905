package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("RESLICE_OUT_DIR")
	if path != "" {
		return path
	}
	return "."
}

func GetScriptsDir() string {
	path := os.Getenv("RESLICE_SCRIPTS_DIR")
	if path != "" {
		return path
	}
	return "./scripts"
}

// GetPythonPath returns an empty string when unset; the analysis runner
// then looks for a virtualenv next to the scripts.
func GetPythonPath() string {
	return os.Getenv("RESLICE_PYTHON")
}

// Used when tempo detection comes back empty.
const FallbackBPM = 120.0

const MicrosPerMinute = 60_000_000

// SMF limits: a delta is a 4 byte variable length quantity and set_tempo
// carries 3 bytes.
const (
	MaxTick        = 0x0FFFFFFF
	MaxTempoMicros = 0xFFFFFF
)

// tracker grid: 4 rows per beat, 6 ticks per row
const (
	TrackerPPQN     = 24
	TrackerVelocity = 80
	TrackerOutput   = "output.mid"
)

const (
	SlicerPPQN     = 480
	SlicerVelocity = 100
	SlicerBaseNote = 36
	SlicerOutput   = "slices.mid"
)

const (
	DefaultMinPitch = 55 // G3
	DefaultMaxPitch = 88 // E6
)
