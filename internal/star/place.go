package star

import (
	"github.com/topasiaedu/nm-zwds-sub004/internal/cyclic"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/palace"
	"github.com/topasiaedu/nm-zwds-sub004/internal/pillar"
	"github.com/topasiaedu/nm-zwds-sub004/internal/profile"
)

// Input is everything star placement reads from the earlier stages.
type Input struct {
	Pillars  pillar.Pillars
	Profile  profile.Profile
	Ring     palace.Ring
	LunarDay int
}

// Placement records the branch every star occupies, plus the four 12-step
// timing overlays.
type Placement struct {
	pos      [numStars]gz.Branch
	overlays [numCycles][gz.Hai + 1]string
}

// Where returns the branch holding star id.
func (p *Placement) Where(id ID) gz.Branch {
	if !id.Valid() {
		errors.Invariant("star %d is not placed", int(id))
	}
	return p.pos[id]
}

// In returns the stars sitting in branch b, in enumeration order.
func (p *Placement) In(b gz.Branch) []ID {
	var ids []ID
	for id, at := range p.pos {
		if at == b {
			ids = append(ids, ID(id))
		}
	}
	return ids
}

// ZiWeiBranch looks up the anchor star's branch for a bureau and lunar day.
func ZiWeiBranch(bureau profile.Bureau, day int) gz.Branch {
	if !bureau.Valid() {
		errors.Invariant("zi wei lookup missed: bureau %d", int(bureau))
	}
	if day < 1 || day > 30 {
		errors.Invariant("zi wei lookup missed: lunar day %d", day)
	}
	return ziWeiTable[bureau-profile.Water2][day-1]
}

// TianFuBranch mirrors Zi Wei across the Yin-Shen axis.
func TianFuBranch(ziWei gz.Branch) gz.Branch {
	return gz.Branch(cyclic.Sub(4, int(ziWei), cyclic.Branches))
}

// Place puts every star on the ring.
func Place(in Input) *Placement {
	p := &Placement{}
	for i := range p.pos {
		p.pos[i] = -1
	}

	yearStem, yearBranch := in.Pillars.Year.Stem, in.Pillars.Year.Branch
	hour := in.Pillars.Hour.Branch
	month := in.Pillars.MonthNumber
	group := yearBranch.Group()

	p.pos[ZiWei] = ZiWeiBranch(in.Profile.Bureau, in.LunarDay)
	p.pos[TianFu] = TianFuBranch(p.pos[ZiWei])
	for _, d := range mainDeltas {
		p.pos[d.star] = p.pos[d.anchor].Add(d.delta)
	}

	for _, r := range linearRules {
		var v int
		switch r.key {
		case keyHour:
			v = int(hour)
		case keyMonth:
			v = month - 1
		case keyYearBranch:
			v = int(yearBranch)
		}
		p.pos[r.star] = r.base.Add(r.step * v)
	}

	for id, row := range stemTables {
		p.pos[id] = row[yearStem]
	}
	for id, row := range branchTables {
		p.pos[id] = row[yearBranch]
	}
	for id, row := range groupTables {
		p.pos[id] = row[group]
	}
	if month < 1 || month > 12 {
		errors.Invariant("month table lookup missed: month %d", month)
	}
	for id, row := range monthTables {
		p.pos[id] = row[month-1]
	}

	p.pos[HuoXing] = huoStart[group].Add(int(hour))
	p.pos[LingXing] = lingStart[group].Add(int(hour))

	day := in.LunarDay - 1
	p.pos[QingYang] = p.pos[LuCun].Add(1)
	p.pos[TuoLuo] = p.pos[LuCun].Add(-1)
	p.pos[SanTai] = p.pos[ZuoFu].Add(day)
	p.pos[BaZuo] = p.pos[YouBi].Add(-day)
	p.pos[EnGuang] = p.pos[WenChang].Add(day - 1)
	p.pos[TianGui] = p.pos[WenQu].Add(day - 1)
	p.pos[TianCai] = in.Ring.Life().Add(int(yearBranch))
	p.pos[TianShou] = in.Profile.BodyBranch.Add(int(yearBranch))
	p.pos[TianShang] = in.Ring.At(in.Ring.IndexOfName(palace.Friends)).Branch
	p.pos[TianShi] = in.Ring.At(in.Ring.IndexOfName(palace.Health)).Branch

	for id, at := range p.pos {
		if !at.Valid() {
			errors.Invariant("star %s has no placement rule", ID(id))
		}
	}

	p.overlays = overlays(in, p.pos[LuCun])
	return p
}
