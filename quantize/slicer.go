package quantize

import (
	"github.com/charmbracelet/log"
	"github.com/jsphweid/reslice/constants"
	"github.com/jsphweid/reslice/model"
)

// Slicer maps each onset to its own key so a sampler can trigger the slice
// between that onset and the next one.
type Slicer struct {
	PPQN        int
	BaseNote    int
	FallbackBPM float64
	Logger      *log.Logger
}

func NewSlicer() *Slicer {
	return &Slicer{
		PPQN:        constants.SlicerPPQN,
		BaseNote:    constants.SlicerBaseNote,
		FallbackBPM: constants.FallbackBPM,
		Logger:      log.Default(),
	}
}

// Slice ends each slice at the next onset. The last slice ends at
// durationSeconds when it is known, otherwise one beat after its onset.
func (s *Slicer) Slice(events []model.RawEvent, bpm, durationSeconds float64) []model.QuantizedNote {
	bpm = EffectiveBPM(bpm, s.FallbackBPM)
	onsets := byTime(events)
	notes := []model.QuantizedNote{}

	for i, ev := range onsets {
		key := s.BaseNote + i
		if key > 127 {
			s.logger().Warn("too many slices for the key range, dropping the rest", "kept", i, "total", len(onsets))
			break
		}
		onTick := SecondsToTicks(ev.TimeSeconds, bpm, s.PPQN)
		var offTick int
		switch {
		case i < len(onsets)-1:
			offTick = SecondsToTicks(onsets[i+1].TimeSeconds, bpm, s.PPQN)
		case durationSeconds > ev.TimeSeconds:
			offTick = SecondsToTicks(durationSeconds, bpm, s.PPQN)
		default:
			offTick = onTick + s.PPQN
		}
		notes = append(notes, Emit(onTick, key, offTick-onTick))
	}
	return notes
}

func (s *Slicer) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
