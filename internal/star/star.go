// Package star places the chart's stars onto the palace ring.
//
// Stars form a closed enumeration. The main stars hang off two anchors (Zi
// Wei and its mirror Tian Fu) through fixed deltas; auxiliary and minor stars
// derive from the pillars through linear rules or per-value tables.
package star

import "fmt"

// ID identifies a star.
type ID int

// Main stars.
const (
	ZiWei ID = iota
	TianJi
	TaiYang
	WuQu
	TianTong
	LianZhen
	TianFu
	TaiYin
	TanLang
	JuMen
	TianXiang
	TianLiang
	QiSha
	PoJun

	// Auxiliary stars.
	ZuoFu
	YouBi
	WenChang
	WenQu
	TianKui
	TianYue
	LuCun
	TianMa
	QingYang
	TuoLuo
	HuoXing
	LingXing
	DiKong
	DiJie

	// Minor stars.
	HongLuan
	TianXi
	TianXing
	TianYao
	TianKu
	TianXu
	LongChi
	FengGe
	GuChen
	GuaSu
	SanTai
	BaZuo
	EnGuang
	TianGui
	TaiFu
	FengGao
	TianCai
	TianShou
	JieShen
	TianWu
	TianYueMonth
	YinSha
	TianGuan
	TianFuFortune
	TianChu
	HuaGai
	XianChi
	PoSui
	FeiLian
	TianDe
	YueDe
	TianKong
	TianShang
	TianShi

	numStars
)

// Category groups stars by weight.
type Category string

const (
	Main      Category = "main"
	Auxiliary Category = "auxiliary"
	Minor     Category = "minor"
)

type info struct {
	key   string
	glyph string
}

var catalog = [numStars]info{
	ZiWei:     {"zi_wei", "紫微"},
	TianJi:    {"tian_ji", "天机"},
	TaiYang:   {"tai_yang", "太阳"},
	WuQu:      {"wu_qu", "武曲"},
	TianTong:  {"tian_tong", "天同"},
	LianZhen:  {"lian_zhen", "廉贞"},
	TianFu:    {"tian_fu", "天府"},
	TaiYin:    {"tai_yin", "太阴"},
	TanLang:   {"tan_lang", "贪狼"},
	JuMen:     {"ju_men", "巨门"},
	TianXiang: {"tian_xiang", "天相"},
	TianLiang: {"tian_liang", "天梁"},
	QiSha:     {"qi_sha", "七杀"},
	PoJun:     {"po_jun", "破军"},

	ZuoFu:    {"zuo_fu", "左辅"},
	YouBi:    {"you_bi", "右弼"},
	WenChang: {"wen_chang", "文昌"},
	WenQu:    {"wen_qu", "文曲"},
	TianKui:  {"tian_kui", "天魁"},
	TianYue:  {"tian_yue", "天钺"},
	LuCun:    {"lu_cun", "禄存"},
	TianMa:   {"tian_ma", "天马"},
	QingYang: {"qing_yang", "擎羊"},
	TuoLuo:   {"tuo_luo", "陀罗"},
	HuoXing:  {"huo_xing", "火星"},
	LingXing: {"ling_xing", "铃星"},
	DiKong:   {"di_kong", "地空"},
	DiJie:    {"di_jie", "地劫"},

	HongLuan:      {"hong_luan", "红鸾"},
	TianXi:        {"tian_xi", "天喜"},
	TianXing:      {"tian_xing", "天刑"},
	TianYao:       {"tian_yao", "天姚"},
	TianKu:        {"tian_ku", "天哭"},
	TianXu:        {"tian_xu", "天虚"},
	LongChi:       {"long_chi", "龙池"},
	FengGe:        {"feng_ge", "凤阁"},
	GuChen:        {"gu_chen", "孤辰"},
	GuaSu:         {"gua_su", "寡宿"},
	SanTai:        {"san_tai", "三台"},
	BaZuo:         {"ba_zuo", "八座"},
	EnGuang:       {"en_guang", "恩光"},
	TianGui:       {"tian_gui", "天贵"},
	TaiFu:         {"tai_fu", "台辅"},
	FengGao:       {"feng_gao", "封诰"},
	TianCai:       {"tian_cai", "天才"},
	TianShou:      {"tian_shou", "天寿"},
	JieShen:       {"jie_shen", "解神"},
	TianWu:        {"tian_wu", "天巫"},
	TianYueMonth:  {"tian_yue_month", "天月"},
	YinSha:        {"yin_sha", "阴煞"},
	TianGuan:      {"tian_guan", "天官"},
	TianFuFortune: {"tian_fu_fortune", "天福"},
	TianChu:       {"tian_chu", "天厨"},
	HuaGai:        {"hua_gai", "华盖"},
	XianChi:       {"xian_chi", "咸池"},
	PoSui:         {"po_sui", "破碎"},
	FeiLian:       {"fei_lian", "蜚廉"},
	TianDe:        {"tian_de", "天德"},
	YueDe:         {"yue_de", "月德"},
	TianKong:      {"tian_kong", "天空"},
	TianShang:     {"tian_shang", "天伤"},
	TianShi:       {"tian_shi", "天使"},
}

// All returns every star in enumeration order.
func All() []ID {
	ids := make([]ID, numStars)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Valid reports whether id names a star.
func (id ID) Valid() bool { return id >= 0 && id < numStars }

// Category returns the star's weight class.
func (id ID) Category() Category {
	switch {
	case id >= ZiWei && id <= PoJun:
		return Main
	case id >= ZuoFu && id <= DiJie:
		return Auxiliary
	default:
		return Minor
	}
}

func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("Star(%d)", int(id))
	}
	return catalog[id].key
}

// Glyph returns the star's traditional name.
func (id ID) Glyph() string {
	if !id.Valid() {
		return "?"
	}
	return catalog[id].glyph
}

// MarshalText encodes the star by key.
func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("invalid star %d", int(id))
	}
	return []byte(catalog[id].key), nil
}

// UnmarshalText decodes a star key.
func (id *ID) UnmarshalText(b []byte) error {
	for i, c := range catalog {
		if c.key == string(b) {
			*id = ID(i)
			return nil
		}
	}
	return fmt.Errorf("unknown star %q", string(b))
}
