package quantize

import (
	"github.com/jsphweid/reslice/model"
	"github.com/jsphweid/reslice/util"
)

const (
	OctaveJumpSemitones = 8
	StableConfidence    = 0.85
)

// ApplyOctaveCorrection treats a large, poorly supported jump from the
// previous note as an octave error and moves candidate by an octave toward
// previous.
func ApplyOctaveCorrection(candidate, previous int, hasPrevious bool, stability float64) int {
	if !hasPrevious {
		return candidate
	}
	if util.Abs(candidate-previous) < OctaveJumpSemitones || stability >= StableConfidence {
		return candidate
	}
	best := candidate - 12
	for _, option := range []int{candidate, candidate + 12} {
		if util.Abs(option-previous) < util.Abs(best-previous) {
			best = option
		}
	}
	return best
}

// ClampToRegister transposes candidate by whole octaves into [minPitch, maxPitch].
// The range must span at least 11 semitones for the result to land inside it.
func ClampToRegister(candidate, minPitch, maxPitch int) int {
	if candidate < minPitch {
		candidate += 12 * util.CeilDiv(minPitch-candidate, 12)
	}
	if candidate > maxPitch {
		candidate -= 12 * util.CeilDiv(candidate-maxPitch, 12)
	}
	return candidate
}

// Emit builds a note; a non-positive duration becomes one tick.
func Emit(onTick, pitch, duration int) model.QuantizedNote {
	offTick := onTick + duration
	if duration <= 0 {
		offTick = onTick + 1
	}
	return model.QuantizedNote{OnTick: onTick, OffTick: offTick, Pitch: pitch}
}
