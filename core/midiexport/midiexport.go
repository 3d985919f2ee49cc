// Package midiexport renders keyboard parts as Standard MIDI Files.
package midiexport

import (
	"fmt"
	"io"
	"math"
	"sort"

	"SongFormat/model"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// TicksPerQuarter is the file resolution.
	TicksPerQuarter = 960
	// DefaultVelocity is used for notes without a velocity.
	DefaultVelocity = 100
	DefaultBPM      = 120.0
)

type event struct {
	tick uint32
	off  bool
	key  uint8
	vel  uint8
}

func velocity(v int) uint8 {
	switch {
	case v == model.Unset:
		return DefaultVelocity
	case v < 1:
		return 1
	case v > 127:
		return 127
	}
	return uint8(v)
}

// secondsToTicks converts at a constant tempo. Times past the range of a
// 32-bit tick count are an error.
func secondsToTicks(sec float32, bpm float64) (uint32, error) {
	if sec <= 0 {
		return 0, nil
	}
	ticks := math.Round(float64(sec) * bpm / 60 * TicksPerQuarter)
	if ticks >= math.MaxUint32 || math.IsInf(ticks, 0) || math.IsNaN(ticks) {
		return 0, fmt.Errorf("%vs at %v bpm exceeds the MIDI tick range", sec, bpm)
	}
	return uint32(ticks), nil
}

// KeyboardToSMF builds a single-track file with a tempo event followed by the
// notes on channel 0. Notes shorter than a tick last one tick.
func KeyboardToSMF(notes *model.SongKeyboardNotes, bpm float64) (*smf.SMF, error) {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return nil, fmt.Errorf("invalid tempo %v", bpm)
	}

	var events []event
	if notes != nil {
		for i, n := range notes.Notes {
			if n.Note < 0 || n.Note > 127 {
				return nil, fmt.Errorf("note %d at %.3fs: key %d out of MIDI range", i, n.TimeOffset, n.Note)
			}
			if n.TimeOffset < 0 {
				return nil, fmt.Errorf("note %d: negative time offset", i)
			}
			start, err := secondsToTicks(n.TimeOffset, bpm)
			if err != nil {
				return nil, fmt.Errorf("note %d: %w", i, err)
			}
			end, err := secondsToTicks(n.TimeOffset+n.TimeLength, bpm)
			if err != nil {
				return nil, fmt.Errorf("note %d: %w", i, err)
			}
			if end <= start {
				end = start + 1
			}
			key := uint8(n.Note)
			events = append(events,
				event{tick: start, key: key, vel: velocity(n.Velocity)},
				event{tick: end, off: true, key: key},
			)
		}
	}
	// note-offs first so repeated keys retrigger
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(bpm))
	var last uint32
	for _, e := range events {
		delta := e.tick - last
		last = e.tick
		if e.off {
			tr.Add(delta, midi.NoteOff(0, e.key))
		} else {
			tr.Add(delta, midi.NoteOn(0, e.key, e.vel))
		}
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("add track: %w", err)
	}
	return s, nil
}

// WriteKeyboardSMF writes notes as a Standard MIDI File to w.
func WriteKeyboardSMF(w io.Writer, notes *model.SongKeyboardNotes, bpm float64) error {
	s, err := KeyboardToSMF(notes, bpm)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write midi: %w", err)
	}
	return nil
}
