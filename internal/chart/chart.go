// Package chart assembles a complete Zi Wei Dou Shu chart from a birth
// moment: calendar conversion, pillars, profile, palace ring, star
// placement, transformations and life-cycle timing.
package chart

import (
	"fmt"

	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/lunar"
	"github.com/topasiaedu/nm-zwds-sub004/internal/palace"
	"github.com/topasiaedu/nm-zwds-sub004/internal/pillar"
	"github.com/topasiaedu/nm-zwds-sub004/internal/profile"
	"github.com/topasiaedu/nm-zwds-sub004/internal/star"
	"github.com/topasiaedu/nm-zwds-sub004/internal/timing"
	"github.com/topasiaedu/nm-zwds-sub004/internal/transform"
)

// BirthInput is the birth moment a chart is cast for. Name is echoed
// untouched. Minute is accepted but does not move the double hour.
type BirthInput struct {
	Year   int            `json:"year"`
	Month  int            `json:"month"`
	Day    int            `json:"day"`
	Hour   int            `json:"hour"`
	Minute int            `json:"minute,omitempty"`
	Gender profile.Gender `json:"gender"`
	Name   string         `json:"name,omitempty"`
}

// Validate checks the fields that do not need the lunar table.
func (in BirthInput) Validate() error {
	if _, err := profile.ParseGender(string(in.Gender)); err != nil {
		return err
	}
	if in.Hour < 0 || in.Hour > 23 {
		return errors.NewInvalidInput("hour", "must be between 0 and 23")
	}
	if in.Minute < 0 || in.Minute > 59 {
		return errors.NewInvalidInput("minute", "must be between 0 and 59")
	}
	return nil
}

// Options tune chart computation. The zero value uses the defaults.
type Options struct {
	LeapPolicy   pillar.LeapPolicy
	LimitHorizon int
}

// Star is one star as it appears in a palace.
type Star struct {
	ID         star.ID          `json:"id"`
	Name       string           `json:"name"`
	Category   star.Category    `json:"category"`
	Brightness star.Brightness  `json:"brightness,omitempty"`
	Transforms []transform.Type `json:"transformations,omitempty"`

	// SelfTransforms are the transformations the star receives from the
	// stem of the palace it sits in.
	SelfTransforms  []transform.Type `json:"self_transformations,omitempty"`
	SelfTransformed bool             `json:"self_transformed"`
}

// Palace is one of the twelve chart palaces.
type Palace struct {
	Index        int            `json:"index"`
	Name         palace.Name    `json:"name"`
	Branch       gz.Branch      `json:"branch"`
	Stem         gz.Stem        `json:"stem"`
	IsLife       bool           `json:"is_life"`
	IsBody       bool           `json:"is_body"`
	IsAnnualFlow bool           `json:"is_annual_flow,omitempty"`
	Opposite     int            `json:"opposite"`
	Main         []Star         `json:"main_stars"`
	Auxiliary    []Star         `json:"auxiliary_stars"`
	Minor        []Star         `json:"minor_stars"`
	Overlays     star.Names     `json:"overlays"`
	MajorLimits  []timing.Limit `json:"major_limits"`
}

// Chart is a computed chart. It is never modified after Compute returns.
type Chart struct {
	Input           BirthInput           `json:"input"`
	Lunar           lunar.Date           `json:"lunar"`
	Pillars         pillar.Pillars       `json:"pillars"`
	Profile         profile.Profile      `json:"profile"`
	Palaces         [palace.Count]Palace `json:"palaces"`
	Transformations transform.Set        `json:"transformations"`
	Limits          timing.Limits        `json:"limits"`
	AnnualFlow      *timing.Flow         `json:"annual_flow,omitempty"`

	ring      palace.Ring
	placement *star.Placement
}

// Compute casts the chart for in. Invariant violations inside the engine
// surface as INVARIANT_VIOLATION errors.
func Compute(in BirthInput, opts Options) (c *Chart, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, errors.FromPanic(r)
		}
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	gender, _ := profile.ParseGender(string(in.Gender))
	in.Gender = gender
	policy, err := pillar.ParseLeapPolicy(string(opts.LeapPolicy))
	if err != nil {
		return nil, err
	}

	n, err := lunar.DayNumber(in.Year, in.Month, in.Day)
	if err != nil {
		return nil, err
	}
	date := lunar.FromDayNumber(n)

	pillars, err := pillar.Compute(date, n, in.Hour, policy)
	if err != nil {
		return nil, err
	}
	prof := profile.Derive(pillars, gender)
	ring := palace.Build(pillars.Year.Stem, prof.LifeBranch)
	placement := star.Place(star.Input{
		Pillars:  pillars,
		Profile:  prof,
		Ring:     ring,
		LunarDay: date.Day,
	})

	birth, err := transform.Resolve(pillars.Year.Stem, transform.NoHost, placement, ring)
	if err != nil {
		return nil, err
	}
	self, err := transform.SelfTransformations(placement, ring)
	if err != nil {
		return nil, err
	}
	limits, err := timing.MajorLimits(ring, prof.Bureau, prof.Direction, opts.LimitHorizon)
	if err != nil {
		return nil, err
	}

	c = &Chart{
		Input:           in,
		Lunar:           date,
		Pillars:         pillars,
		Profile:         prof,
		Transformations: birth,
		Limits:          limits,
		ring:            ring,
		placement:       placement,
	}
	for i, slot := range ring {
		c.Palaces[i] = buildPalace(slot, prof, placement, birth, self[i], limits)
	}
	return c, nil
}

func buildPalace(slot palace.Slot, prof profile.Profile, p *star.Placement, birth, self transform.Set, limits timing.Limits) Palace {
	out := Palace{
		Index:       slot.Index,
		Name:        slot.Name,
		Branch:      slot.Branch,
		Stem:        slot.Stem,
		IsLife:      slot.Name == palace.Life,
		IsBody:      slot.Branch == prof.BodyBranch,
		Opposite:    palace.Opposite(slot.Index),
		Main:        []Star{},
		Auxiliary:   []Star{},
		Minor:       []Star{},
		Overlays:    p.Overlay(slot.Branch),
		MajorLimits: []timing.Limit{},
	}
	for _, id := range p.In(slot.Branch) {
		s := Star{ID: id, Name: id.Glyph(), Category: id.Category()}
		if b, ok := star.BrightnessOf(id, slot.Branch); ok {
			s.Brightness = b
		}
		for _, r := range birth {
			if r.Star == id {
				s.Transforms = append(s.Transforms, r.Type)
			}
		}
		for _, r := range self {
			if r.Star == id && r.Self {
				s.SelfTransforms = append(s.SelfTransforms, r.Type)
			}
		}
		s.SelfTransformed = len(s.SelfTransforms) > 0

		switch s.Category {
		case star.Main:
			out.Main = append(out.Main, s)
		case star.Auxiliary:
			out.Auxiliary = append(out.Auxiliary, s)
		default:
			out.Minor = append(out.Minor, s)
		}
	}
	for _, l := range limits.Major {
		if l.Palace == slot.Index {
			out.MajorLimits = append(out.MajorLimits, l)
		}
	}
	if len(out.Main) > 2 {
		errors.Invariant("palace %s holds %d main stars", slot.Name, len(out.Main))
	}
	return out
}

// Palace returns the palace with index i (1-12).
func (c *Chart) Palace(i int) Palace {
	if i < 1 || i > palace.Count {
		errors.Invariant("palace index %d out of range", i)
	}
	return c.Palaces[i-1]
}

// AnnualFlow returns the index of the palace ruling year.
func AnnualFlow(c *Chart, year int) (int, error) {
	f, err := flow(c, year)
	if err != nil {
		return 0, err
	}
	return f.Palace, nil
}

// WithAnnualFlow returns a copy of c carrying the overlay for year.
func WithAnnualFlow(c *Chart, year int) (*Chart, error) {
	f, err := flow(c, year)
	if err != nil {
		return nil, err
	}
	out := *c
	out.AnnualFlow = &f
	for i := range out.Palaces {
		out.Palaces[i].IsAnnualFlow = out.Palaces[i].Index == f.Palace
	}
	return &out, nil
}

func flow(c *Chart, year int) (f timing.Flow, err error) {
	if c == nil || c.placement == nil {
		return timing.Flow{}, errors.NewInvalidInput("chart", "not computed")
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
	}()
	f, err = timing.AnnualFlow(c.ring, c.placement, c.Limits, c.Lunar.Year, year)
	if err != nil {
		return timing.Flow{}, err
	}
	if f.Palace < 1 || f.Palace > palace.Count {
		return timing.Flow{}, errors.NewInvariantViolation(fmt.Sprintf("annual flow palace %d out of range", f.Palace))
	}
	return f, nil
}
