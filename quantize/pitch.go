package quantize

import (
	"fmt"

	"github.com/jsphweid/reslice/model"
	"github.com/jsphweid/reslice/util"
)

const DefaultConfidenceThreshold = 0.4

const (
	StrategySingle = "single"
	StrategyMedian = "median"
	StrategyFrame  = "frame"
)

// PitchResolver turns the pitch evidence for one event into a single
// candidate. stability is the confidence used by octave correction.
type PitchResolver interface {
	Resolve(ev model.RawEvent) (pitch float64, stability float64, ok bool)
}

// ResolvePitch takes the median pitch of the estimates whose confidence is at
// least threshold. stability is the median confidence of those estimates.
func ResolvePitch(estimates []model.PitchEstimate, threshold float64) (pitch float64, stability float64, ok bool) {
	var pitches, confs []float64
	for _, e := range estimates {
		if e.Pitch <= 0 || e.Conf() < threshold {
			continue
		}
		pitches = append(pitches, e.Pitch)
		confs = append(confs, e.Conf())
	}
	pitch, ok = util.Median(pitches)
	if !ok {
		return 0, 0, false
	}
	stability, _ = util.Median(confs)
	return pitch, stability, true
}

// SingleEstimate trusts the first estimate, as a note tracker reports one
// pitch per onset.
type SingleEstimate struct {
	Threshold float64
}

func (s SingleEstimate) Resolve(ev model.RawEvent) (float64, float64, bool) {
	if len(ev.Estimates) == 0 {
		return 0, 0, false
	}
	e := ev.Estimates[0]
	if e.Pitch <= 0 || e.Conf() < s.Threshold {
		return 0, 0, false
	}
	return e.Pitch, e.Conf(), true
}

// MedianOfWindow resolves the estimates collected over the hops following an
// onset.
type MedianOfWindow struct {
	Threshold float64
}

func (m MedianOfWindow) Resolve(ev model.RawEvent) (float64, float64, bool) {
	return ResolvePitch(ev.Estimates, m.Threshold)
}

// FrameIndexLookup ignores per-event estimates and reads the frame of a
// continuous pitch track that contains the onset. The track carries no
// confidence, so lookups report full stability.
type FrameIndexLookup struct {
	Frames *model.FrameTrack
}

func (f FrameIndexLookup) Resolve(ev model.RawEvent) (float64, float64, bool) {
	p, ok := f.Frames.At(ev.TimeSeconds)
	if !ok {
		return 0, 0, false
	}
	return p, 1, true
}

// NewResolver builds the resolver named by strategy.
func NewResolver(strategy string, threshold float64, frames *model.FrameTrack) (PitchResolver, error) {
	switch strategy {
	case StrategySingle:
		return SingleEstimate{Threshold: threshold}, nil
	case StrategyMedian, "":
		return MedianOfWindow{Threshold: threshold}, nil
	case StrategyFrame:
		if frames == nil {
			return nil, fmt.Errorf("strategy %q needs a frame pitch track", strategy)
		}
		return FrameIndexLookup{Frames: frames}, nil
	}
	return nil, fmt.Errorf("unknown pitch strategy %q", strategy)
}
