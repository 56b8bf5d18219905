package quantize

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/reslice/constants"
	"github.com/jsphweid/reslice/model"
)

type Options struct {
	PPQN             int
	RowTicks         int
	MinPitch         int
	MaxPitch         int
	ClampRegister    bool
	OctaveCorrection bool
	FallbackBPM      float64
}

func DefaultOptions() Options {
	return Options{
		PPQN:             constants.TrackerPPQN,
		RowTicks:         constants.TrackerPPQN / 4,
		MinPitch:         constants.DefaultMinPitch,
		MaxPitch:         constants.DefaultMaxPitch,
		ClampRegister:    true,
		OctaveCorrection: true,
		FallbackBPM:      constants.FallbackBPM,
	}
}

// Quantizer maps raw analysis events onto the tracker grid.
type Quantizer struct {
	Options
	Resolver PitchResolver
	Logger   *log.Logger
}

func New(opts Options, resolver PitchResolver) *Quantizer {
	if resolver == nil {
		resolver = MedianOfWindow{Threshold: DefaultConfidenceThreshold}
	}
	return &Quantizer{Options: opts, Resolver: resolver, Logger: log.Default()}
}

// Quantize returns one note per event with a usable pitch, ordered by
// OnTick. Notes landing on an already used (tick, pitch) are skipped.
func (q *Quantizer) Quantize(events []model.RawEvent, bpm float64) []model.QuantizedNote {
	bpm = EffectiveBPM(bpm, q.FallbackBPM)
	notes := []model.QuantizedNote{}
	seen := make(map[[2]int]bool)

	var previous int
	var hasPrevious bool
	for _, ev := range byTime(events) {
		raw, stability, ok := q.Resolver.Resolve(ev)
		if !ok {
			q.logger().Debug("dropping event without a usable pitch", "time", ev.TimeSeconds)
			continue
		}

		candidate := int(math.RoundToEven(raw))
		if q.OctaveCorrection {
			corrected := ApplyOctaveCorrection(candidate, previous, hasPrevious, stability)
			if corrected != candidate {
				q.logger().Debug("octave corrected", "time", ev.TimeSeconds, "from", candidate, "to", corrected)
			}
			candidate = corrected
		}
		if q.ClampRegister {
			candidate = ClampToRegister(candidate, q.MinPitch, q.MaxPitch)
		}
		if candidate < 0 || candidate > 127 {
			q.logger().Warn("dropping note outside the MIDI range", "time", ev.TimeSeconds, "pitch", candidate)
			continue
		}
		previous, hasPrevious = candidate, true

		onTick := QuantizeToRow(SecondsToTicks(ev.TimeSeconds, bpm, q.PPQN), q.RowTicks)
		key := [2]int{onTick, candidate}
		if seen[key] {
			continue
		}
		seen[key] = true
		notes = append(notes, Emit(onTick, candidate, q.RowTicks))
	}
	return notes
}

func (q *Quantizer) logger() *log.Logger {
	if q.Logger == nil {
		return log.Default()
	}
	return q.Logger
}

func byTime(events []model.RawEvent) []model.RawEvent {
	sorted := make([]model.RawEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimeSeconds < sorted[j].TimeSeconds
	})
	return sorted
}
