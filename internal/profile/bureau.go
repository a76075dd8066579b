package profile

import (
	"fmt"

	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
)

// Element is one of the five phases.
type Element string

const (
	Water Element = "water"
	Wood  Element = "wood"
	Metal Element = "metal"
	Earth Element = "earth"
	Fire  Element = "fire"
)

// Bureau is the Five-Elements Bureau; its value is the bureau number.
type Bureau int

const (
	Water2 Bureau = 2
	Wood3  Bureau = 3
	Metal4 Bureau = 4
	Earth5 Bureau = 5
	Fire6  Bureau = 6
)

// Valid reports whether b is one of the five bureaus.
func (b Bureau) Valid() bool { return b >= Water2 && b <= Fire6 }

// Element returns the bureau's phase.
func (b Bureau) Element() Element {
	switch b {
	case Water2:
		return Water
	case Wood3:
		return Wood
	case Metal4:
		return Metal
	case Earth5:
		return Earth
	case Fire6:
		return Fire
	}
	errors.Invariant("unknown bureau %d", int(b))
	return ""
}

func (b Bureau) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Bureau(%d)", int(b))
	}
	return fmt.Sprintf("%s-%d", b.Element(), int(b))
}

// MarshalText encodes the bureau as e.g. "wood-3".
func (b Bureau) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid bureau %d", int(b))
	}
	return []byte(b.String()), nil
}

// bureauTable is keyed by year stem (mod 5) and life-branch pair
// (Zi-Chou, Yin-Mao, Chen-Si, Wu-Wei, Shen-You, Xu-Hai).
var bureauTable = [5][6]Bureau{
	{Water2, Fire6, Wood3, Earth5, Metal4, Fire6},  // Jia, Ji
	{Fire6, Earth5, Metal4, Wood3, Water2, Earth5}, // Yi, Geng
	{Earth5, Wood3, Water2, Metal4, Fire6, Wood3},  // Bing, Xin
	{Wood3, Metal4, Fire6, Water2, Earth5, Metal4}, // Ding, Ren
	{Metal4, Water2, Earth5, Fire6, Wood3, Water2}, // Wu, Gui
}

// BureauOf looks up the bureau for a year stem and life branch.
func BureauOf(year gz.Stem, life gz.Branch) Bureau {
	if !year.Valid() || !life.Valid() {
		errors.Invariant("bureau lookup missed: year stem %d, life branch %d", int(year), int(life))
	}
	return bureauTable[int(year)%5][int(life)/2]
}

// nayinTable gives the sound element of each consecutive pair of the
// sixty-term cycle, starting with Jia-Zi/Yi-Chou.
var nayinTable = [30]Element{
	Metal, Fire, Wood, Earth, Metal, Fire, Water, Earth, Metal, Wood,
	Water, Earth, Fire, Wood, Water, Metal, Fire, Wood, Earth, Metal,
	Fire, Water, Earth, Metal, Wood, Water, Earth, Fire, Wood, Water,
}

// NayinOf returns the sound element of a stem-branch pair.
func NayinOf(p gz.Pair) Element {
	if !p.Valid() {
		errors.Invariant("nayin lookup missed: %s", p)
	}
	return nayinTable[p.Index()/2]
}
