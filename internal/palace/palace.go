// Package palace builds the ring of twelve life palaces.
package palace

import (
	"github.com/topasiaedu/nm-zwds-sub004/internal/cyclic"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/pillar"
)

// Name is the semantic life area of a palace.
type Name string

const (
	Life     Name = "life"
	Siblings Name = "siblings"
	Spouse   Name = "spouse"
	Children Name = "children"
	Wealth   Name = "wealth"
	Health   Name = "health"
	Travel   Name = "travel"
	Friends  Name = "friends"
	Career   Name = "career"
	Property Name = "property"
	Fortune  Name = "fortune"
	Parents  Name = "parents"
)

// Count is the number of palaces in the ring.
const Count = cyclic.Branches

// Names lists the palace names in ring order starting at Life. Each step
// moves one branch backwards from the previous palace.
var Names = [Count]Name{
	Life, Siblings, Spouse, Children, Wealth, Health,
	Travel, Friends, Career, Property, Fortune, Parents,
}

// Opposite returns the index (1-12) of the palace facing index i.
func Opposite(i int) int {
	return cyclic.Mod(i+6-1, Count) + 1
}

// Slot is one ring position: its index, name, branch and stem.
type Slot struct {
	Index  int       `json:"index"`
	Name   Name      `json:"name"`
	Branch gz.Branch `json:"branch"`
	Stem   gz.Stem   `json:"stem"`
}

// Ring is the twelve palace slots; Ring[0] is palace index 1 (Life).
type Ring [Count]Slot

// Build places Life on the life branch and lays the remaining names out
// backwards around the ring. Stems follow the five-tigers table of the year
// stem.
func Build(yearStem gz.Stem, life gz.Branch) Ring {
	if !life.Valid() {
		errors.Invariant("life branch %d out of range", int(life))
	}
	var r Ring
	for k, name := range Names {
		b := life.Add(-k)
		r[k] = Slot{
			Index:  k + 1,
			Name:   name,
			Branch: b,
			Stem:   pillar.MonthStem(yearStem, b),
		}
	}
	return r
}

// At returns the slot with index i (1-12).
func (r Ring) At(i int) Slot {
	if i < 1 || i > Count {
		errors.Invariant("palace index %d out of range", i)
	}
	return r[i-1]
}

// IndexOf returns the index (1-12) of the palace holding branch b.
func (r Ring) IndexOf(b gz.Branch) int {
	for _, s := range r {
		if s.Branch == b {
			return s.Index
		}
	}
	errors.Invariant("no palace holds branch %s", b)
	return 0
}

// IndexOfName returns the index (1-12) of the palace named n.
func (r Ring) IndexOfName(n Name) int {
	for _, s := range r {
		if s.Name == n {
			return s.Index
		}
	}
	errors.Invariant("no palace named %q", n)
	return 0
}

// Life returns the Life palace's branch.
func (r Ring) Life() gz.Branch {
	return r[0].Branch
}
