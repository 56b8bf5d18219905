package midi

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadMidiFile reads and parses the SMF at path. A parse that panics inside
// gomidi is turned into an error (https://github.com/gomidi/midi/issues/20).
func ReadMidiFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return &smf.SMF{}, errors.Wrap(err, "could not read midi file")
	}
	return ReadMidi(dat)
}

func ReadMidi(dat []byte) (s *smf.SMF, e error) {
	defer func() {
		if r := recover(); r != nil {
			s, e = &smf.SMF{}, errors.Errorf("midi parser panicked: %v", r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &smf.SMF{}, errors.Wrap(err, "could not parse midi file")
	}
	return res, nil
}

// WriteMidiFile writes s to path, creating the parent directory.
func WriteMidiFile(path string, s *smf.SMF) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "could not create output dir")
		}
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "could not encode midi file")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write failed for midi file %s", path)
	}
	return nil
}
