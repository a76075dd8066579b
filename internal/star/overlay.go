package star

import (
	"github.com/topasiaedu/nm-zwds-sub004/internal/cyclic"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/profile"
)

// Cycle names one of the four twelve-step timing overlays.
type Cycle int

const (
	Changsheng Cycle = iota
	Boshi
	Suiqian
	Jiangqian
	numCycles
)

var cycleNames = [numCycles][12]string{
	Changsheng: {"长生", "沐浴", "冠带", "临官", "帝旺", "衰", "病", "死", "墓", "绝", "胎", "养"},
	Boshi:      {"博士", "力士", "青龙", "小耗", "将军", "奏书", "飞廉", "喜神", "病符", "大耗", "伏兵", "官府"},
	Suiqian:    {"岁建", "晦气", "丧门", "贯索", "官符", "小耗", "大耗", "龙德", "白虎", "天德", "吊客", "病符"},
	Jiangqian:  {"将星", "攀鞍", "岁驿", "息神", "华盖", "劫煞", "灾煞", "天煞", "指背", "咸池", "月煞", "亡神"},
}

// Names holds one overlay name per cycle for a single branch.
type Names struct {
	Changsheng string `json:"changsheng"`
	Boshi      string `json:"boshi"`
	Suiqian    string `json:"suiqian"`
	Jiangqian  string `json:"jiangqian"`
}

// Overlay returns the overlay names landing on branch b.
func (p *Placement) Overlay(b gz.Branch) Names {
	if !b.Valid() {
		errors.Invariant("overlay lookup missed: branch %d", int(b))
	}
	return Names{
		Changsheng: p.overlays[Changsheng][b],
		Boshi:      p.overlays[Boshi][b],
		Suiqian:    p.overlays[Suiqian][b],
		Jiangqian:  p.overlays[Jiangqian][b],
	}
}

// lay walks a cycle's twelve names around the ring from start.
func lay(dst *[gz.Hai + 1]string, c Cycle, start gz.Branch, dir profile.Direction) {
	for k, name := range cycleNames[c] {
		dst[cyclic.Step(int(start), int(dir), k, cyclic.Branches)] = name
	}
}

func overlays(in Input, luCun gz.Branch) [numCycles][gz.Hai + 1]string {
	start, ok := changshengStart[in.Profile.Bureau]
	if !ok {
		errors.Invariant("changsheng lookup missed: bureau %d", int(in.Profile.Bureau))
	}
	dir := in.Profile.Direction
	yearBranch := in.Pillars.Year.Branch

	var o [numCycles][gz.Hai + 1]string
	lay(&o[Changsheng], Changsheng, start, dir)
	lay(&o[Boshi], Boshi, luCun, dir)
	lay(&o[Suiqian], Suiqian, yearBranch, profile.Forward)
	lay(&o[Jiangqian], Jiangqian, jiangqianStart[yearBranch.Group()], profile.Forward)
	return o
}
