package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/chordsmith/chord"
	"github.com/jsphweid/chordsmith/constants"
	"github.com/jsphweid/chordsmith/model"
)

const (
	ticksPerQuarter = 960
	tempoBPM        = 120
	pianoProgram    = 0 // Acoustic Grand Piano
)

// Synthesize lays the chord timeline on a time axis, one fixed-duration
// slot per chord. Labels that map to no notes still occupy their slot,
// so silence keeps its place in time. Within a slot, pitches ascend.
func Synthesize(timeline []string, chordDuration float64) []model.NoteEvent {
	var events []model.NoteEvent
	clock := 0.0
	for _, label := range timeline {
		for _, note := range chord.Notes(label) {
			events = append(events, model.NoteEvent{
				Pitch:    note,
				Velocity: constants.Velocity,
				Start:    clock,
				End:      clock + chordDuration,
			})
		}
		clock += chordDuration
	}
	return events
}

// quarter note = 0.5s at 120 BPM, so one second is 1920 ticks
func secondsToTicks(s float64) int64 {
	return int64(s*tempoBPM/60.0*ticksPerQuarter + 0.5)
}

type rawEvent struct {
	tick int64
	off  bool
	key  uint8
	vel  uint8
}

// WriteFile serializes note events as a single-track SMF with one piano
// instrument at 120 BPM. The write goes through a temp file and rename,
// so a failed write never leaves a truncated file at path. An empty
// event list produces a valid zero-note track.
func WriteFile(events []model.NoteEvent, path string) error {
	var raw []rawEvent
	for _, e := range events {
		raw = append(raw, rawEvent{tick: secondsToTicks(e.Start), key: e.Pitch, vel: e.Velocity})
		raw = append(raw, rawEvent{tick: secondsToTicks(e.End), off: true, key: e.Pitch})
	}
	// note offs before note ons at equal ticks, so back-to-back chords
	// never accumulate held notes
	sort.Slice(raw, func(i, j int) bool {
		if raw[i].tick != raw[j].tick {
			return raw[i].tick < raw[j].tick
		}
		return raw[i].off && !raw[j].off
	})

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(tempoBPM))
	tr.Add(0, midi.ProgramChange(0, pianoProgram))
	var last int64
	for _, ev := range raw {
		delta := uint32(ev.tick - last)
		last = ev.tick
		if ev.off {
			tr.Add(delta, midi.NoteOff(0, ev.key))
		} else {
			tr.Add(delta, midi.NoteOn(0, ev.key, ev.vel))
		}
	}
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		return errors.Wrap(err, "adding track")
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".midi-*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return errors.Wrap(err, "writing smf")
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(f.Name(), path); err != nil {
		os.Remove(f.Name())
		return errors.Wrap(err, "moving file into place")
	}
	return nil
}

// ReadFile parses an SMF from disk. gomidi can panic on malformed
// input (https://github.com/gomidi/midi/issues/20), so the guard stays.
func ReadFile(path string) (s *smf.SMF, e error) {
	var blank smf.SMF

	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return &blank, errors.Wrap(err, "reading midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

// Notes walks every track and reconstructs note events with absolute
// times in seconds, ordered by start time then pitch.
func Notes(s *smf.SMF) []model.NoteEvent {
	type onInfo struct {
		time float64
		vel  uint8
	}
	pending := make(map[uint8]onInfo)

	var out []model.NoteEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks) // microseconds
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				pending[key] = onInfo{time: float64(absTime) / 1e6, vel: velocity}
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				if on, ok := pending[key]; ok {
					out = append(out, model.NoteEvent{
						Pitch:    key,
						Velocity: on.vel,
						Start:    on.time,
						End:      float64(absTime) / 1e6,
					})
					delete(pending, key)
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Pitch < out[j].Pitch
	})
	return out
}
