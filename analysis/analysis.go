package analysis

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jsphweid/reslice/constants"
	"github.com/jsphweid/reslice/model"
	"github.com/pkg/errors"
)

var (
	ErrUnreadableAudio = errors.New("audio file unreadable or corrupt")
	ErrNoAnalysis      = errors.New("analysis produced no result")
)

// Result is what the analysis collaborator reports for one recording.
// A BPM <= 0 means the tempo was not detected.
type Result struct {
	BPM             float64           `json:"bpm"`
	Events          []model.RawEvent  `json:"events"`
	Frames          *model.FrameTrack `json:"frames,omitempty"`
	DurationSeconds float64           `json:"duration,omitempty"`
	SampleRate      int               `json:"sample_rate,omitempty"`
}

type Analyzer interface {
	Analyze(ctx context.Context, audioPath string) (*Result, error)
}

// DefaultResult is an empty analysis at the fallback tempo.
func DefaultResult() *Result {
	return &Result{BPM: constants.FallbackBPM, Events: []model.RawEvent{}}
}

// FileAnalyzer reads a result that was produced earlier and saved as JSON.
type FileAnalyzer struct {
	Path string
}

func (f FileAnalyzer) Analyze(ctx context.Context, _ string) (*Result, error) {
	return ReadResult(f.Path)
}

func ReadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read analysis results")
	}
	return ParseResult(data)
}

func ParseResult(data []byte) (*Result, error) {
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrap(err, "parse analysis results")
	}
	if res.Events == nil {
		res.Events = []model.RawEvent{}
	}
	return &res, nil
}
