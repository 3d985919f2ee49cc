package model

import (
	"github.com/goccy/go-json"
)

// DrumKitPieceType is the coarse category of a kit piece.
type DrumKitPieceType int

const (
	KitPieceTypeNone DrumKitPieceType = iota
	KitPieceTypeKick
	KitPieceTypeSnare
	KitPieceTypeHiHat
	KitPieceTypeCrash
	KitPieceTypeRide
	KitPieceTypeTom
	KitPieceTypeFlexi
)

var kitPieceTypeNames = []string{"None", "Kick", "Snare", "HiHat", "Crash", "Ride", "Tom", "Flexi"}

func (t DrumKitPieceType) String() string {
	return enumString("DrumKitPieceType", kitPieceTypeNames, int(t))
}

func (t DrumKitPieceType) MarshalText() ([]byte, error) {
	return enumText("DrumKitPieceType", kitPieceTypeNames, int(t))
}

func (t *DrumKitPieceType) UnmarshalText(text []byte) error {
	v, err := parseEnum("DrumKitPieceType", kitPieceTypeNames, text)
	if err != nil {
		return err
	}
	*t = DrumKitPieceType(v)
	return nil
}

// DrumKitPiece is a specific drum or cymbal of the kit.
type DrumKitPiece int

const (
	KitPieceNone DrumKitPiece = iota
	KitPieceKick
	KitPieceSnare
	KitPieceHiHat
	KitPieceCrash
	KitPieceCrash2
	KitPieceCrash3
	KitPieceRide
	KitPieceRide2
	KitPieceTom1
	KitPieceTom2
	KitPieceTom3
	KitPieceTom4
	KitPieceTom5
	KitPieceFlexi1
	KitPieceFlexi2
	KitPieceFlexi3
	KitPieceFlexi4
)

var kitPieceNames = []string{
	"None", "Kick", "Snare", "HiHat",
	"Crash", "Crash2", "Crash3",
	"Ride", "Ride2",
	"Tom1", "Tom2", "Tom3", "Tom4", "Tom5",
	"Flexi1", "Flexi2", "Flexi3", "Flexi4",
}

var kitPieceTypes = [...]DrumKitPieceType{
	KitPieceNone:   KitPieceTypeNone,
	KitPieceKick:   KitPieceTypeKick,
	KitPieceSnare:  KitPieceTypeSnare,
	KitPieceHiHat:  KitPieceTypeHiHat,
	KitPieceCrash:  KitPieceTypeCrash,
	KitPieceCrash2: KitPieceTypeCrash,
	KitPieceCrash3: KitPieceTypeCrash,
	KitPieceRide:   KitPieceTypeRide,
	KitPieceRide2:  KitPieceTypeRide,
	KitPieceTom1:   KitPieceTypeTom,
	KitPieceTom2:   KitPieceTypeTom,
	KitPieceTom3:   KitPieceTypeTom,
	KitPieceTom4:   KitPieceTypeTom,
	KitPieceTom5:   KitPieceTypeTom,
	KitPieceFlexi1: KitPieceTypeFlexi,
	KitPieceFlexi2: KitPieceTypeFlexi,
	KitPieceFlexi3: KitPieceTypeFlexi,
	KitPieceFlexi4: KitPieceTypeFlexi,
}

// DrumKitPieces lists every kit piece in declaration order.
func DrumKitPieces() []DrumKitPiece {
	out := make([]DrumKitPiece, len(kitPieceNames))
	for i := range out {
		out[i] = DrumKitPiece(i)
	}
	return out
}

// Type maps the piece to its category. Unknown pieces map to KitPieceTypeNone.
func (p DrumKitPiece) Type() DrumKitPieceType {
	if p < 0 || int(p) >= len(kitPieceTypes) {
		return KitPieceTypeNone
	}
	return kitPieceTypes[p]
}

func (p DrumKitPiece) String() string {
	return enumString("DrumKitPiece", kitPieceNames, int(p))
}

func (p DrumKitPiece) MarshalText() ([]byte, error) {
	return enumText("DrumKitPiece", kitPieceNames, int(p))
}

func (p *DrumKitPiece) UnmarshalText(text []byte) error {
	v, err := parseEnum("DrumKitPiece", kitPieceNames, text)
	if err != nil {
		return err
	}
	*p = DrumKitPiece(v)
	return nil
}

// DrumArticulation is how a kit piece is struck.
type DrumArticulation int

const (
	ArticulationNone DrumArticulation = iota
	ArticulationDrumHead
	ArticulationDrumHeadEdge
	ArticulationDrumRim
	ArticulationSideStick
	ArticulationHiHatClosed
	ArticulationHiHatOpen
	ArticulationHiHatChick
	ArticulationHiHatSplash
	ArticulationCymbalEdge
	ArticulationCymbalBow
	ArticulationCymbalBell
	ArticulationCymbalChoke
	ArticulationFlexiA
	ArticulationFlexiB
	ArticulationFlexiC
)

var articulationNames = []string{
	"None", "DrumHead", "DrumHeadEdge", "DrumRim", "SideStick",
	"HiHatClosed", "HiHatOpen", "HiHatChick", "HiHatSplash",
	"CymbalEdge", "CymbalBow", "CymbalBell", "CymbalChoke",
	"FlexiA", "FlexiB", "FlexiC",
}

var defaultArticulations = [...]DrumArticulation{
	KitPieceTypeNone:  ArticulationNone,
	KitPieceTypeKick:  ArticulationDrumHead,
	KitPieceTypeSnare: ArticulationDrumHead,
	KitPieceTypeHiHat: ArticulationHiHatClosed,
	KitPieceTypeCrash: ArticulationCymbalEdge,
	KitPieceTypeRide:  ArticulationCymbalBow,
	KitPieceTypeTom:   ArticulationDrumHead,
	KitPieceTypeFlexi: ArticulationFlexiA,
}

// DefaultArticulation is the articulation used when a note leaves it unset.
func (t DrumKitPieceType) DefaultArticulation() DrumArticulation {
	if t < 0 || int(t) >= len(defaultArticulations) {
		return ArticulationNone
	}
	return defaultArticulations[t]
}

// DefaultArticulation is the default of the piece's type.
func (p DrumKitPiece) DefaultArticulation() DrumArticulation {
	return p.Type().DefaultArticulation()
}

func (a DrumArticulation) String() string {
	return enumString("DrumArticulation", articulationNames, int(a))
}

func (a DrumArticulation) MarshalText() ([]byte, error) {
	return enumText("DrumArticulation", articulationNames, int(a))
}

func (a *DrumArticulation) UnmarshalText(text []byte) error {
	v, err := parseEnum("DrumArticulation", articulationNames, text)
	if err != nil {
		return err
	}
	*a = DrumArticulation(v)
	return nil
}

// SongDrumNotes is the timeline document of a drum part.
type SongDrumNotes struct {
	Sections []SongSection
	Notes    []SongDrumNote
}

func (d SongDrumNotes) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if d.Sections != nil {
		w.valueField("Sections", d.Sections)
	}
	if d.Notes != nil {
		w.valueField("Notes", d.Notes)
	}
	return w.bytes()
}

func (d *SongDrumNotes) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		Sections []SongSection
		Notes    []SongDrumNote
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*d = SongDrumNotes(doc)
	return nil
}

// SongDrumNote is a single hit.
type SongDrumNote struct {
	TimeOffset   float32
	KitPiece     DrumKitPiece
	Articulation DrumArticulation
}

// EffectiveArticulation resolves ArticulationNone to the kit piece default.
func (n SongDrumNote) EffectiveArticulation() DrumArticulation {
	if n.Articulation != ArticulationNone {
		return n.Articulation
	}
	return n.KitPiece.DefaultArticulation()
}

func (n SongDrumNote) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.floatField("TimeOffset", n.TimeOffset, AlwaysEmit)
	if n.KitPiece != KitPieceNone {
		w.valueField("KitPiece", n.KitPiece)
	}
	if n.Articulation != ArticulationNone {
		w.valueField("Articulation", n.Articulation)
	}
	return w.bytes()
}

func (n *SongDrumNote) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		TimeOffset   float32
		KitPiece     DrumKitPiece
		Articulation DrumArticulation
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*n = SongDrumNote(doc)
	return nil
}
