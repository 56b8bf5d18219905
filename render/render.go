package render

import (
	"github.com/charmbracelet/log"
	"github.com/jsphweid/reslice/analysis"
	"github.com/jsphweid/reslice/config"
	"github.com/jsphweid/reslice/model"
	"github.com/jsphweid/reslice/quantize"
	"github.com/jsphweid/reslice/track"
	"github.com/pkg/errors"
)

type Output struct {
	BPM         float64
	BPMDetected bool
	Notes       []model.QuantizedNote
	Track       model.Track
}

// Render quantizes an analysis result and builds its track.
func Render(cfg *config.Config, res *analysis.Result, logger *log.Logger) (*Output, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if res == nil {
		res = analysis.DefaultResult()
	}

	bpm := quantize.EffectiveBPM(res.BPM, cfg.FallbackBPM)
	detected := bpm == res.BPM
	if !detected {
		logger.Warn("tempo not detected, using fallback", "bpm", bpm)
	}

	var notes []model.QuantizedNote
	switch cfg.Mode {
	case config.ModeSlicer:
		s := quantize.NewSlicer()
		s.PPQN = cfg.PPQN
		s.BaseNote = cfg.BaseNote
		s.FallbackBPM = cfg.FallbackBPM
		s.Logger = logger
		notes = s.Slice(res.Events, bpm, res.DurationSeconds)
	default:
		resolver, err := quantize.NewResolver(cfg.Strategy, cfg.ConfidenceThreshold, res.Frames)
		if err != nil {
			return nil, errors.Wrap(err, "pick pitch strategy")
		}
		q := quantize.New(cfg.QuantizeOptions(), resolver)
		q.Logger = logger
		notes = q.Quantize(res.Events, bpm)
	}
	logger.Debug("quantized", "events", len(res.Events), "notes", len(notes), "mode", cfg.Mode)

	return &Output{
		BPM:         bpm,
		BPMDetected: detected,
		Notes:       notes,
		Track:       track.Build(notes, bpm, cfg.HoldLast),
	}, nil
}
