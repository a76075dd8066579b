package star

import (
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/profile"
)

// ziWeiTable places the anchor star by bureau (row 0 = Water-2) and lunar
// day (column 0 = day 1).
var ziWeiTable = [5][30]gz.Branch{
	{1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 0, 0, 1, 1, 2, 2, 3, 3, 4},   // water-2
	{4, 1, 2, 5, 2, 3, 6, 3, 4, 7, 4, 5, 8, 5, 6, 9, 6, 7, 10, 7, 8, 11, 8, 9, 0, 9, 10, 1, 10, 11},  // wood-3
	{11, 4, 1, 2, 0, 5, 2, 3, 1, 6, 3, 4, 2, 7, 4, 5, 3, 8, 5, 6, 4, 9, 6, 7, 5, 10, 7, 8, 6, 11},    // metal-4
	{6, 11, 4, 1, 2, 7, 0, 5, 2, 3, 8, 1, 6, 3, 4, 9, 2, 7, 4, 5, 10, 3, 8, 5, 6, 11, 4, 9, 6, 7},    // earth-5
	{9, 6, 11, 4, 1, 2, 10, 7, 0, 5, 2, 3, 11, 8, 1, 6, 3, 4, 0, 9, 2, 7, 4, 5, 1, 10, 3, 8, 5, 6},   // fire-6
}

// anchorDelta places a main star at a fixed offset from its anchor.
type anchorDelta struct {
	star   ID
	anchor ID
	delta  int
}

// mainDeltas: the Zi Wei group walks backwards from Zi Wei, the Tian Fu
// group forwards from Tian Fu.
var mainDeltas = []anchorDelta{
	{TianJi, ZiWei, -1},
	{TaiYang, ZiWei, -3},
	{WuQu, ZiWei, -4},
	{TianTong, ZiWei, -5},
	{LianZhen, ZiWei, -8},
	{TaiYin, TianFu, 1},
	{TanLang, TianFu, 2},
	{JuMen, TianFu, 3},
	{TianXiang, TianFu, 4},
	{TianLiang, TianFu, 5},
	{QiSha, TianFu, 6},
	{PoJun, TianFu, 10},
}

// key selects the pillar-derived value a rule steps by.
type key int

const (
	keyHour       key = iota // hour branch index
	keyMonth                 // effective lunar month - 1
	keyYearBranch            // year branch index
)

// linearRule places a star at base + step*value.
type linearRule struct {
	star ID
	key  key
	base gz.Branch
	step int
}

var linearRules = []linearRule{
	{WenChang, keyHour, gz.Xu, -1},
	{WenQu, keyHour, gz.Chen, 1},
	{DiJie, keyHour, gz.Hai, 1},
	{DiKong, keyHour, gz.Hai, -1},
	{TaiFu, keyHour, gz.WuBranch, 1},
	{FengGao, keyHour, gz.Yin, 1},

	{ZuoFu, keyMonth, gz.Chen, 1},
	{YouBi, keyMonth, gz.Xu, -1},
	{TianXing, keyMonth, gz.You, 1},
	{TianYao, keyMonth, gz.Chou, 1},

	{HongLuan, keyYearBranch, gz.Mao, -1},
	{TianXi, keyYearBranch, gz.You, -1},
	{TianKu, keyYearBranch, gz.WuBranch, -1},
	{TianXu, keyYearBranch, gz.WuBranch, 1},
	{LongChi, keyYearBranch, gz.Chen, 1},
	{FengGe, keyYearBranch, gz.Xu, -1},
	{JieShen, keyYearBranch, gz.Xu, -1},
	{TianDe, keyYearBranch, gz.You, 1},
	{YueDe, keyYearBranch, gz.Si, 1},
	{TianKong, keyYearBranch, gz.Chou, 1},
}

// Year-stem tables, Jia through Gui.
var stemTables = map[ID][10]gz.Branch{
	TianKui:       {gz.Chou, gz.Zi, gz.Hai, gz.Hai, gz.Chou, gz.Zi, gz.Chou, gz.WuBranch, gz.Mao, gz.Mao},
	TianYue:       {gz.Wei, gz.Shen, gz.You, gz.You, gz.Wei, gz.Shen, gz.Wei, gz.Yin, gz.Si, gz.Si},
	LuCun:         {gz.Yin, gz.Mao, gz.Si, gz.WuBranch, gz.Si, gz.WuBranch, gz.Shen, gz.You, gz.Hai, gz.Zi},
	TianGuan:      {gz.Wei, gz.Chen, gz.Si, gz.Yin, gz.Mao, gz.You, gz.Hai, gz.You, gz.Xu, gz.WuBranch},
	TianFuFortune: {gz.You, gz.Shen, gz.Zi, gz.Hai, gz.Mao, gz.Yin, gz.WuBranch, gz.Si, gz.WuBranch, gz.Si},
	TianChu:       {gz.Si, gz.WuBranch, gz.Zi, gz.Si, gz.WuBranch, gz.Shen, gz.Yin, gz.WuBranch, gz.You, gz.Hai},
}

// Year-branch tables, Zi through Hai.
var branchTables = map[ID][12]gz.Branch{
	GuChen:  {gz.Yin, gz.Yin, gz.Si, gz.Si, gz.Si, gz.Shen, gz.Shen, gz.Shen, gz.Hai, gz.Hai, gz.Hai, gz.Yin},
	GuaSu:   {gz.Xu, gz.Xu, gz.Chou, gz.Chou, gz.Chou, gz.Chen, gz.Chen, gz.Chen, gz.Wei, gz.Wei, gz.Wei, gz.Xu},
	PoSui:   {gz.Si, gz.Chou, gz.You, gz.Si, gz.Chou, gz.You, gz.Si, gz.Chou, gz.You, gz.Si, gz.Chou, gz.You},
	FeiLian: {gz.Shen, gz.You, gz.Xu, gz.Si, gz.WuBranch, gz.Wei, gz.Yin, gz.Mao, gz.Chen, gz.Hai, gz.Zi, gz.Chou},
}

// Year-branch trine tables, indexed by gz.Branch.Group.
var groupTables = map[ID][4]gz.Branch{
	TianMa:  {gz.Yin, gz.Shen, gz.Hai, gz.Si},
	HuaGai:  {gz.Chen, gz.Xu, gz.Chou, gz.Wei},
	XianChi: {gz.You, gz.Mao, gz.WuBranch, gz.Zi},
}

// Starting branches of Huo Xing and Ling Xing by trine; both then step
// forward by the hour.
var (
	huoStart  = [4]gz.Branch{gz.Yin, gz.Chou, gz.Mao, gz.You}
	lingStart = [4]gz.Branch{gz.Xu, gz.Mao, gz.Xu, gz.Xu}
)

// Month tables, first through twelfth month.
var monthTables = map[ID][12]gz.Branch{
	TianYueMonth: {gz.Xu, gz.Si, gz.Chen, gz.Yin, gz.Wei, gz.Mao, gz.Hai, gz.Wei, gz.Yin, gz.WuBranch, gz.Xu, gz.Yin},
	YinSha:       {gz.Yin, gz.Zi, gz.Xu, gz.Shen, gz.WuBranch, gz.Chen, gz.Yin, gz.Zi, gz.Xu, gz.Shen, gz.WuBranch, gz.Chen},
	TianWu:       {gz.Si, gz.Shen, gz.Yin, gz.Hai, gz.Si, gz.Shen, gz.Yin, gz.Hai, gz.Si, gz.Shen, gz.Yin, gz.Hai},
}

// changshengStart is where the Changsheng cycle opens for each bureau.
var changshengStart = map[profile.Bureau]gz.Branch{
	profile.Water2: gz.Shen,
	profile.Wood3:  gz.Hai,
	profile.Metal4: gz.Si,
	profile.Earth5: gz.Shen,
	profile.Fire6:  gz.Yin,
}

// jiangqianStart is where the Jiangqian cycle opens, by year-branch trine.
var jiangqianStart = [4]gz.Branch{gz.Zi, gz.WuBranch, gz.You, gz.Mao}
