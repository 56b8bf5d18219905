package quantize

import (
	"math"

	"github.com/jsphweid/reslice/constants"
)

// EffectiveBPM substitutes fallback for a tempo that was not detected.
// A non-positive fallback means constants.FallbackBPM.
func EffectiveBPM(bpm, fallback float64) float64 {
	if bpm > 0 && !math.IsInf(bpm, 0) && !math.IsNaN(bpm) {
		return bpm
	}
	if fallback > 0 {
		return fallback
	}
	return constants.FallbackBPM
}

// SecondsToTicks converts a time to absolute ticks, flooring and clamping to
// [0, constants.MaxTick].
func SecondsToTicks(seconds, bpm float64, ppqn int) int {
	ticks := math.Floor(seconds * (bpm / 60.0) * float64(ppqn))
	switch {
	case math.IsNaN(ticks) || ticks < 0:
		return 0
	case ticks > constants.MaxTick:
		return constants.MaxTick
	}
	return int(ticks)
}

// QuantizeToRow snaps tick to the nearest multiple of rowTicks. Halfway
// ticks round to the even row.
func QuantizeToRow(tick, rowTicks int) int {
	if rowTicks <= 1 {
		return tick
	}
	q, r := tick/rowTicks, tick%rowTicks
	if r < 0 {
		q, r = q-1, r+rowTicks
	}
	switch {
	case 2*r > rowTicks:
		q++
	case 2*r == rowTicks && q%2 != 0:
		q++
	}
	return q * rowTicks
}
