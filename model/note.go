package model

import "fmt"

type QuantizedNote struct {
	OnTick  int `json:"on_tick"`
	OffTick int `json:"off_tick"`
	Pitch   int `json:"pitch"`
}

func (n QuantizedNote) Duration() int {
	return n.OffTick - n.OnTick
}

type MidiEventKind uint8

// NoteOff is declared first so that kind order matches the tie-break order
// at equal ticks.
const (
	NoteOff MidiEventKind = iota
	NoteOn
)

func (k MidiEventKind) String() string {
	if k == NoteOn {
		return "on"
	}
	return "off"
}

func (k MidiEventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MidiEventKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "on":
		*k = NoteOn
	case "off":
		*k = NoteOff
	default:
		return fmt.Errorf("unknown midi event kind %q", b)
	}
	return nil
}

type MidiEvent struct {
	AbsTick int           `json:"abs_tick"`
	Kind    MidiEventKind `json:"kind"`
	Pitch   int           `json:"pitch"`
}

type DeltaEvent struct {
	Delta int `json:"delta"`
	MidiEvent
}

// Track is a single MIDI track before encoding. The end-of-track marker is
// implicit and always written at delta 0 after Events.
type Track struct {
	TempoMicros uint32       `json:"tempo_micros"`
	Events      []DeltaEvent `json:"events"`
}
