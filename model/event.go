package model

import "math"

type EventKind uint8

const (
	Onset EventKind = iota
	NoteCandidate
)

func (k EventKind) String() string {
	if k == NoteCandidate {
		return "note"
	}
	return "onset"
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "note", "note_candidate":
		*k = NoteCandidate
	default:
		*k = Onset
	}
	return nil
}

// PitchEstimate is one reading from a pitch tracker. Pitch is a MIDI note
// number and may be fractional. A nil Confidence means the tracker did not
// report one.
type PitchEstimate struct {
	Pitch      float64  `json:"pitch"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Conf returns the confidence, treating a missing value as certain.
func (e PitchEstimate) Conf() float64 {
	if e.Confidence == nil {
		return 1
	}
	return *e.Confidence
}

func Estimate(pitch, confidence float64) PitchEstimate {
	return PitchEstimate{Pitch: pitch, Confidence: &confidence}
}

// RawEvent is one detection from the analysis collaborator. Kind only records
// which detector reported it; quantization treats both kinds alike and reads
// nothing but the time and the pitch evidence.
type RawEvent struct {
	TimeSeconds float64         `json:"time"`
	Kind        EventKind       `json:"kind"`
	Estimates   []PitchEstimate `json:"estimates,omitempty"`
}

// FrameTrack is a pitch track sampled once per analysis hop.
// Unvoiced frames hold NaN or a value <= 0.
type FrameTrack struct {
	SampleRate int       `json:"sample_rate"`
	HopSize    int       `json:"hop_size"`
	Pitches    []float64 `json:"pitches"`
}

// At returns the pitch of the frame containing the given time.
func (f *FrameTrack) At(seconds float64) (float64, bool) {
	if f == nil || f.SampleRate <= 0 || f.HopSize <= 0 || seconds < 0 {
		return 0, false
	}
	frame := int(seconds * float64(f.SampleRate) / float64(f.HopSize))
	if frame >= len(f.Pitches) {
		return 0, false
	}
	p := f.Pitches[frame]
	if math.IsNaN(p) || p <= 0 {
		return 0, false
	}
	return p, true
}
