package midi

import (
	"bytes"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var endOfTrack = []byte{0xFF, 0x2F, 0x00}

// Excerpt copies every track of s starting at tick from. Note events before
// from are dropped, other events before from are moved to tick 0. A track
// stops after limit note on/off events, or runs to its end when limit is 0.
func Excerpt(s *smf.SMF, from uint64, limit int) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = s.TimeFormat

	for _, tr := range s.Tracks {
		var out smf.Track
		var absTicks, last uint64
		var numNotes int
		for _, evt := range tr {
			absTicks += uint64(evt.Delta)
			if bytes.Equal(evt.Message, endOfTrack) {
				break
			}
			isNote := evt.Message.Is(midi.NoteOnMsg) || evt.Message.Is(midi.NoteOffMsg)
			if absTicks < from {
				if !isNote {
					out = append(out, smf.Event{Delta: 0, Message: evt.Message})
				}
				continue
			}

			rel := absTicks - from
			out = append(out, smf.Event{Delta: uint32(rel - last), Message: evt.Message})
			last = rel
			if isNote {
				numNotes++
				if limit > 0 && numNotes >= limit {
					break
				}
			}
		}
		out.Close(0)
		res.Tracks = append(res.Tracks, out)
	}
	return &res
}
