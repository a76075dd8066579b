// Package transform resolves the four stem transformations (Hua Lu, Hua
// Quan, Hua Ke, Hua Ji) to the stars and palaces they land on.
package transform

import (
	"fmt"

	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/palace"
	"github.com/topasiaedu/nm-zwds-sub004/internal/star"
)

// Type is one of the four transformations.
type Type string

const (
	Lu   Type = "lu"   // 化禄
	Quan Type = "quan" // 化权
	Ke   Type = "ke"   // 化科
	Ji   Type = "ji"   // 化忌
)

// Types lists the transformations in table order.
var Types = [4]Type{Lu, Quan, Ke, Ji}

// table maps each stem to its Lu, Quan, Ke and Ji stars.
var table = [10][4]star.ID{
	gz.Jia:  {star.LianZhen, star.PoJun, star.WuQu, star.TaiYang},
	gz.Yi:   {star.TianJi, star.TianLiang, star.ZiWei, star.TaiYin},
	gz.Bing: {star.TianTong, star.TianJi, star.WenChang, star.LianZhen},
	gz.Ding: {star.TaiYin, star.TianTong, star.TianJi, star.JuMen},
	gz.Wu:   {star.TanLang, star.TaiYin, star.YouBi, star.TianJi},
	gz.Ji:   {star.WuQu, star.TanLang, star.TianLiang, star.WenQu},
	gz.Geng: {star.TaiYang, star.WuQu, star.TaiYin, star.TianTong},
	gz.Xin:  {star.JuMen, star.TaiYang, star.WenQu, star.WenChang},
	gz.Ren:  {star.TianLiang, star.ZiWei, star.ZuoFu, star.WuQu},
	gz.Gui:  {star.PoJun, star.JuMen, star.TaiYin, star.TanLang},
}

// Targets returns the four stars a stem transforms, in Lu, Quan, Ke, Ji
// order.
func Targets(s gz.Stem) [4]star.ID {
	if !s.Valid() {
		errors.Invariant("transformation lookup missed: stem %d", int(s))
	}
	return table[s]
}

// Resolution is one transformation landed on a star and its palace.
type Resolution struct {
	Type   Type      `json:"type"`
	Star   star.ID   `json:"star"`
	Branch gz.Branch `json:"branch"`
	Palace int       `json:"palace"`
	Self   bool      `json:"self"`
}

// Set is the four resolutions of one stem.
type Set [4]Resolution

// NoHost resolves a stem without a hosting palace, as for the birth year.
const NoHost = 0

// Resolve lands each transformation of stem on the palace holding its star.
// A resolution is Self when that palace is host.
func Resolve(stem gz.Stem, host int, p *star.Placement, ring palace.Ring) (Set, error) {
	if !stem.Valid() {
		return Set{}, errors.NewInvalidInput("stem", fmt.Sprintf("unknown stem %d", int(stem)))
	}
	if host < NoHost || host > palace.Count {
		return Set{}, errors.NewInvalidInput("host", fmt.Sprintf("palace index %d out of range", host))
	}

	var set Set
	for i, id := range Targets(stem) {
		b := p.Where(id)
		idx := ring.IndexOf(b)
		set[i] = Resolution{
			Type:   Types[i],
			Star:   id,
			Branch: b,
			Palace: idx,
			Self:   host != NoHost && idx == host,
		}
	}
	return set, nil
}

// SelfTransformations resolves every palace's own stem with that palace as
// host. Entry i belongs to palace index i+1.
func SelfTransformations(p *star.Placement, ring palace.Ring) ([palace.Count]Set, error) {
	var out [palace.Count]Set
	for i, slot := range ring {
		set, err := Resolve(slot.Stem, slot.Index, p, ring)
		if err != nil {
			return out, err
		}
		out[i] = set
	}
	return out, nil
}
