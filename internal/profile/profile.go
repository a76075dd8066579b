// Package profile derives the chart-wide classification values that later
// stages anchor on: Five-Elements Bureau, Yin/Yang polarity, limit direction
// and the life/body branches.
package profile

import (
	"fmt"

	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/pillar"
)

// Gender of the chart subject.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender validates a gender string.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case Male, Female:
		return Gender(s), nil
	case "m", "M":
		return Male, nil
	case "f", "F":
		return Female, nil
	}
	return "", errors.NewInvalidInput("gender", fmt.Sprintf("must be male or female (got %q)", s))
}

// Polarity is the Yin/Yang classification of the birth year stem.
type Polarity string

const (
	Yang Polarity = "yang"
	Yin  Polarity = "yin"
)

// PolarityOf returns the polarity of a year stem.
func PolarityOf(s gz.Stem) Polarity {
	if s.IsYang() {
		return Yang
	}
	return Yin
}

// Direction is the way limits and direction-dependent overlays walk the ring.
type Direction int

const (
	Forward  Direction = 1  // increasing branch
	Backward Direction = -1 // decreasing branch
)

// MarshalText encodes the direction as "forward" or "backward".
func (d Direction) MarshalText() ([]byte, error) {
	if d == Backward {
		return []byte("backward"), nil
	}
	return []byte("forward"), nil
}

// DirectionOf returns Forward for a yang male or yin female, Backward otherwise.
func DirectionOf(g Gender, p Polarity) Direction {
	if (g == Male) == (p == Yang) {
		return Forward
	}
	return Backward
}

// Profile holds the derived classification values of one chart.
type Profile struct {
	Bureau     Bureau    `json:"bureau"`
	Polarity   Polarity  `json:"polarity"`
	Direction  Direction `json:"direction"`
	LifeStem   gz.Stem   `json:"life_stem"`
	LifeBranch gz.Branch `json:"life_branch"`
	BodyBranch gz.Branch `json:"body_branch"`
	YearNayin  Element   `json:"year_nayin"`
}

// LifeBranch counts from Yin forward one step per month, then back one step
// per double hour.
func LifeBranch(month int, hour gz.Branch) gz.Branch {
	return pillar.MonthBranch(month).Add(-int(hour))
}

// BodyBranch counts from Yin forward one step per month, then forward one
// step per double hour.
func BodyBranch(month int, hour gz.Branch) gz.Branch {
	return pillar.MonthBranch(month).Add(int(hour))
}

// Derive computes the profile from the pillars and gender.
func Derive(p pillar.Pillars, g Gender) Profile {
	life := LifeBranch(p.MonthNumber, p.Hour.Branch)
	polarity := PolarityOf(p.Year.Stem)
	return Profile{
		Bureau:     BureauOf(p.Year.Stem, life),
		Polarity:   polarity,
		Direction:  DirectionOf(g, polarity),
		LifeStem:   pillar.MonthStem(p.Year.Stem, life),
		LifeBranch: life,
		BodyBranch: BodyBranch(p.MonthNumber, p.Hour.Branch),
		YearNayin:  NayinOf(p.Year),
	}
}
