package track

import (
	"math"
	"sort"

	"github.com/jsphweid/reslice/constants"
	"github.com/jsphweid/reslice/model"
	"github.com/jsphweid/reslice/quantize"
	"github.com/jsphweid/reslice/util"
)

// ToMidiEvents expands notes into note on/off pairs. With holdLast the note
// with the latest OnTick gets no NoteOff and rings to the end of the track.
func ToMidiEvents(notes []model.QuantizedNote, holdLast bool) []model.MidiEvent {
	held := -1
	if holdLast {
		for i, n := range notes {
			if held == -1 || n.OnTick >= notes[held].OnTick {
				held = i
			}
		}
	}

	events := make([]model.MidiEvent, 0, 2*len(notes))
	for i, n := range notes {
		events = append(events, model.MidiEvent{AbsTick: n.OnTick, Kind: model.NoteOn, Pitch: n.Pitch})
		if i == held {
			continue
		}
		off := util.Max(n.OffTick, n.OnTick+1)
		events = append(events, model.MidiEvent{AbsTick: off, Kind: model.NoteOff, Pitch: n.Pitch})
	}
	return events
}

// SortEvents orders by tick, note offs first at equal ticks.
func SortEvents(events []model.MidiEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].AbsTick != events[j].AbsTick {
			return events[i].AbsTick < events[j].AbsTick
		}
		return events[i].Kind < events[j].Kind
	})
}

// ToDeltaEncoding converts absolute ticks to deltas. Ticks that go backwards
// produce a zero delta.
func ToDeltaEncoding(sorted []model.MidiEvent) []model.DeltaEvent {
	res := make([]model.DeltaEvent, 0, len(sorted))
	var last int
	for _, evt := range sorted {
		res = append(res, model.DeltaEvent{Delta: util.Max(evt.AbsTick-last, 0), MidiEvent: evt})
		last = evt.AbsTick
	}
	return res
}

// TempoMicros is round(60e6 / bpm), capped at the largest value a set_tempo
// event can hold (about 3.58 BPM).
func TempoMicros(bpm float64) uint32 {
	bpm = quantize.EffectiveBPM(bpm, constants.FallbackBPM)
	return uint32(math.Min(math.Round(constants.MicrosPerMinute/bpm), constants.MaxTempoMicros))
}

func BuildTrack(deltaEvents []model.DeltaEvent, bpm float64) model.Track {
	if deltaEvents == nil {
		deltaEvents = []model.DeltaEvent{}
	}
	return model.Track{TempoMicros: TempoMicros(bpm), Events: deltaEvents}
}

// Build runs the whole serialization pipeline on quantized notes.
func Build(notes []model.QuantizedNote, bpm float64, holdLast bool) model.Track {
	events := ToMidiEvents(notes, holdLast)
	SortEvents(events)
	return BuildTrack(ToDeltaEncoding(events), bpm)
}

// AbsoluteTicks sums deltas back into absolute ticks.
func AbsoluteTicks(deltaEvents []model.DeltaEvent) []int {
	res := make([]int, len(deltaEvents))
	var abs int
	for i, evt := range deltaEvents {
		abs += evt.Delta
		res[i] = abs
	}
	return res
}
