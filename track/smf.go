package track

import (
	"fmt"
	"io"

	"github.com/jsphweid/reslice/constants"
	"github.com/jsphweid/reslice/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	PPQN     int
	Velocity uint8
	Channel  uint8
}

func DefaultOptions() Options {
	return Options{PPQN: constants.TrackerPPQN, Velocity: constants.TrackerVelocity}
}

// tempoMessage builds a set_tempo meta event from microseconds per quarter.
func tempoMessage(micros uint32) smf.Message {
	return smf.Message([]byte{0xFF, 0x51, 0x03, byte(micros >> 16), byte(micros >> 8), byte(micros)})
}

// Encode turns t into a single track format 0 SMF. Pitches must already be
// within 0-127; anything else is a bug upstream and panics. A delta that does
// not fit a variable length quantity is an error.
func Encode(t model.Track, opts Options) (*smf.SMF, error) {
	if opts.PPQN <= 0 || opts.PPQN > 0x7FFF {
		return nil, errors.Errorf("ppqn %d out of range", opts.PPQN)
	}

	var res smf.SMF
	res.TimeFormat = smf.MetricTicks(opts.PPQN)

	var tr smf.Track
	tr = append(tr, smf.Event{Delta: 0, Message: tempoMessage(t.TempoMicros)})
	for _, evt := range t.Events {
		if evt.Pitch < 0 || evt.Pitch > 127 {
			panic(fmt.Sprintf("pitch %d at tick %d is outside the MIDI range", evt.Pitch, evt.AbsTick))
		}
		if evt.Delta > constants.MaxTick {
			return nil, errors.Errorf("delta %d at tick %d exceeds the SMF limit of %d ticks", evt.Delta, evt.AbsTick, constants.MaxTick)
		}
		key := uint8(evt.Pitch)
		var msg midi.Message
		if evt.Kind == model.NoteOn {
			msg = midi.NoteOn(opts.Channel, key, opts.Velocity)
		} else {
			msg = midi.NoteOffVelocity(opts.Channel, key, opts.Velocity)
		}
		tr = append(tr, smf.Event{Delta: uint32(evt.Delta), Message: smf.Message(msg)})
	}
	tr.Close(0)

	res.Tracks = append(res.Tracks, tr)
	return &res, nil
}

func Write(w io.Writer, t model.Track, opts Options) error {
	s, err := Encode(t, opts)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "write smf")
	}
	return nil
}
