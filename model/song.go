package model

import (
	"strconv"

	"github.com/goccy/go-json"
)

// SongData is the top-level metadata document of a song.
type SongData struct {
	SongName   string
	ArtistName string
	AlbumName  string
	// A440CentsOffset is the deviation of the reference pitch from A440, in cents.
	A440CentsOffset float32
	// InstrumentParts is unique by InstrumentName. Decoding a document that
	// repeats a name keeps the last such part, moved to the end as
	// AddOrReplacePart would.
	InstrumentParts []SongInstrumentPart
}

// GetPart returns the part named instrumentName, or nil.
// The pointer refers into InstrumentParts and is invalidated by AddOrReplacePart.
func (s *SongData) GetPart(instrumentName string) *SongInstrumentPart {
	for i := range s.InstrumentParts {
		if s.InstrumentParts[i].InstrumentName == instrumentName {
			return &s.InstrumentParts[i]
		}
	}
	return nil
}

// AddOrReplacePart removes every part sharing part's InstrumentName and
// appends part at the end.
func (s *SongData) AddOrReplacePart(part SongInstrumentPart) {
	kept := s.InstrumentParts[:0]
	for _, p := range s.InstrumentParts {
		if p.InstrumentName != part.InstrumentName {
			kept = append(kept, p)
		}
	}
	s.InstrumentParts = append(kept, part)
}

func (s SongData) String() string {
	return s.ArtistName + " - " + s.SongName
}

func (s SongData) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.stringField("SongName", s.SongName)
	w.stringField("ArtistName", s.ArtistName)
	w.stringField("AlbumName", s.AlbumName)
	w.floatField("A440CentsOffset", s.A440CentsOffset, OmitIfZero)
	if s.InstrumentParts != nil {
		w.valueField("InstrumentParts", s.InstrumentParts)
	}
	return w.bytes()
}

func (s *SongData) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		SongName        string
		ArtistName      string
		AlbumName       string
		A440CentsOffset float32
		InstrumentParts []SongInstrumentPart
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	song := SongData{
		SongName:        doc.SongName,
		ArtistName:      doc.ArtistName,
		AlbumName:       doc.AlbumName,
		A440CentsOffset: doc.A440CentsOffset,
	}
	if doc.InstrumentParts != nil {
		song.InstrumentParts = make([]SongInstrumentPart, 0, len(doc.InstrumentParts))
		for _, part := range doc.InstrumentParts {
			song.AddOrReplacePart(part)
		}
	}
	*s = song
	return nil
}

// SongInstrumentPart describes one playable part of a song. Its notes live in
// a separate document joined on InstrumentName.
type SongInstrumentPart struct {
	InstrumentName string
	InstrumentType InstrumentType
	// Tuning is nil for parts without strings.
	Tuning *StringTuning
	// CapoFret is 0 when no capo is used.
	CapoFret int
}

func (p SongInstrumentPart) String() string {
	if p.Tuning == nil {
		return p.InstrumentName
	}
	label := p.Tuning.Name()
	if p.CapoFret > 0 {
		label += " C" + strconv.Itoa(p.CapoFret)
	}
	return p.InstrumentName + " (" + label + ")"
}

func (p SongInstrumentPart) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.stringField("InstrumentName", p.InstrumentName)
	w.valueField("InstrumentType", p.InstrumentType)
	if p.Tuning != nil {
		w.valueField("Tuning", p.Tuning)
	}
	w.intField("CapoFret", p.CapoFret, OmitIfZero)
	return w.bytes()
}

func (p *SongInstrumentPart) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		InstrumentName string
		InstrumentType InstrumentType
		Tuning         *StringTuning
		CapoFret       int
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*p = SongInstrumentPart(doc)
	return nil
}
