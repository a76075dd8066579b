// Package timing computes the life-cycle periods of a chart: the ten-year
// Major Limits, the childhood limit that precedes them, and the Annual Flow
// of a target year.
package timing

import (
	"fmt"

	"github.com/topasiaedu/nm-zwds-sub004/internal/cyclic"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/palace"
	"github.com/topasiaedu/nm-zwds-sub004/internal/profile"
	"github.com/topasiaedu/nm-zwds-sub004/internal/star"
	"github.com/topasiaedu/nm-zwds-sub004/internal/transform"
)

const (
	// DefaultHorizon is the age the Major Limits must reach.
	DefaultHorizon = 120
	// MaxHorizon bounds configurable horizons.
	MaxHorizon = 200
	// Decade is the span of one Major Limit.
	Decade = 10
)

// Limit is an inclusive age range ruled by one palace. Ages are nominal:
// the birth year counts as age 1.
type Limit struct {
	Palace   int       `json:"palace"`
	Branch   gz.Branch `json:"branch"`
	StartAge int       `json:"start_age"`
	EndAge   int       `json:"end_age"`
}

// Contains reports whether age falls inside the limit.
func (l Limit) Contains(age int) bool {
	return age >= l.StartAge && age <= l.EndAge
}

// Limits are the childhood limit followed by the Major Limits.
type Limits struct {
	Childhood Limit   `json:"childhood"`
	Major     []Limit `json:"major"`
}

// Covering returns the limit containing age.
func (l Limits) Covering(age int) (Limit, bool) {
	if l.Childhood.Contains(age) {
		return l.Childhood, true
	}
	for _, m := range l.Major {
		if m.Contains(age) {
			return m, true
		}
	}
	return Limit{}, false
}

// MajorLimits lays decades out from the Life palace in direction dir,
// starting at the bureau number, until a decade reaches horizon. Ages before
// the first decade form the childhood limit, read on the Life palace.
func MajorLimits(ring palace.Ring, bureau profile.Bureau, dir profile.Direction, horizon int) (Limits, error) {
	if !bureau.Valid() {
		errors.Invariant("major limits: unknown bureau %d", int(bureau))
	}
	if horizon == 0 {
		horizon = DefaultHorizon
	}
	start := int(bureau)
	if horizon < start || horizon > MaxHorizon {
		return Limits{}, errors.NewInvalidInput("limit_horizon",
			fmt.Sprintf("must be between %d and %d (got %d)", start, MaxHorizon, horizon))
	}

	life := ring.Life()
	out := Limits{
		Childhood: Limit{Palace: 1, Branch: life, StartAge: 1, EndAge: start - 1},
	}
	for k := 0; ; k++ {
		b := gz.Branch(cyclic.Step(int(life), int(dir), k, cyclic.Branches))
		l := Limit{
			Palace:   ring.IndexOf(b),
			Branch:   b,
			StartAge: start + k*Decade,
			EndAge:   start + k*Decade + Decade - 1,
		}
		out.Major = append(out.Major, l)
		if l.EndAge >= horizon {
			break
		}
	}
	return out, nil
}

// FlowPalace returns the index of the palace holding the target year's
// branch.
func FlowPalace(ring palace.Ring, year int) int {
	return ring.IndexOf(gz.YearPair(year).Branch)
}

// Flow is the Annual Flow overlay of one target year.
type Flow struct {
	Year   int       `json:"year"`
	Pillar gz.Pair   `json:"pillar"`
	Palace int       `json:"palace"`
	Branch gz.Branch `json:"branch"`

	// Age is the nominal age reached in Year, 0 for years before the birth
	// year.
	Age int `json:"age"`

	// MajorLimit is the palace of the limit covering Age, 0 if none does.
	MajorLimit      int           `json:"major_limit"`
	Transformations transform.Set `json:"transformations"`
}

// Year bounds accepted for Annual Flow.
const (
	MinFlowYear = 1
	MaxFlowYear = 9999
)

// AnnualFlow builds the overlay for year. The year's transformations are
// hosted by the flow palace. Any year in range has a flow palace; only the
// age and its limit depend on the birth year.
func AnnualFlow(ring palace.Ring, p *star.Placement, limits Limits, birthYear, year int) (Flow, error) {
	if year < MinFlowYear || year > MaxFlowYear {
		return Flow{}, errors.NewInvalidInput("year",
			fmt.Sprintf("must be between %d and %d", MinFlowYear, MaxFlowYear))
	}

	pair := gz.YearPair(year)
	idx := FlowPalace(ring, year)
	set, err := transform.Resolve(pair.Stem, idx, p, ring)
	if err != nil {
		return Flow{}, err
	}

	f := Flow{
		Year:            year,
		Pillar:          pair,
		Palace:          idx,
		Branch:          pair.Branch,
		Transformations: set,
	}
	if year >= birthYear {
		f.Age = year - birthYear + 1
	}
	if l, ok := limits.Covering(f.Age); f.Age > 0 && ok {
		f.MajorLimit = l.Palace
	}
	return f, nil
}
