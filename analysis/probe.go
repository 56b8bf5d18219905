package analysis

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

type AudioInfo struct {
	SampleRate      int
	Channels        int
	DurationSeconds float64
}

// Probe checks that path is readable audio before handing it to the
// analyzer. Only WAV headers are inspected; other formats are left to the
// analysis script and come back with zero info.
func Probe(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableAudio, "%s: %v", path, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" && ext != ".wave" {
		return &AudioInfo{}, nil
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errors.Wrapf(ErrUnreadableAudio, "invalid wav file: %s", path)
	}
	d, err := dec.Duration()
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableAudio, "%s: %v", path, err)
	}
	return &AudioInfo{
		SampleRate:      int(dec.SampleRate),
		Channels:        int(dec.NumChans),
		DurationSeconds: d.Seconds(),
	}, nil
}
