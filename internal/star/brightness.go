package star

import gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"

// Brightness is a main star's strength in a given branch.
type Brightness string

const (
	Temple      Brightness = "temple"      // 庙
	Prosperous  Brightness = "prosperous"  // 旺
	Gain        Brightness = "gain"        // 得
	Benefit     Brightness = "benefit"     // 利
	Neutral     Brightness = "neutral"     // 平
	Unfavorable Brightness = "unfavorable" // 不
	Trapped     Brightness = "trapped"     // 陷
)

const (
	bT = Temple
	bP = Prosperous
	bG = Gain
	bB = Benefit
	bN = Neutral
	bU = Unfavorable
	bX = Trapped
)

// brightness rows run Zi through Hai.
var brightness = map[ID][12]Brightness{
	ZiWei:     {bN, bT, bP, bP, bG, bP, bT, bT, bP, bP, bG, bP},
	TianJi:    {bT, bX, bG, bP, bB, bN, bT, bX, bG, bP, bB, bN},
	TaiYang:   {bX, bU, bP, bT, bP, bP, bP, bG, bG, bX, bU, bX},
	WuQu:      {bP, bT, bG, bB, bT, bN, bP, bT, bG, bB, bT, bN},
	TianTong:  {bP, bU, bB, bN, bN, bT, bX, bU, bP, bN, bN, bT},
	LianZhen:  {bN, bB, bT, bN, bB, bX, bN, bB, bT, bN, bB, bX},
	TianFu:    {bT, bT, bT, bG, bT, bG, bP, bT, bG, bP, bT, bG},
	TaiYin:    {bT, bT, bP, bX, bX, bX, bU, bU, bB, bU, bP, bT},
	TanLang:   {bP, bT, bN, bB, bT, bX, bP, bT, bN, bB, bT, bX},
	JuMen:     {bP, bU, bT, bT, bX, bP, bP, bU, bT, bT, bX, bP},
	TianXiang: {bT, bT, bT, bX, bG, bG, bT, bG, bT, bX, bG, bG},
	TianLiang: {bT, bP, bT, bT, bT, bX, bT, bP, bX, bG, bT, bX},
	QiSha:     {bT, bP, bT, bX, bP, bN, bP, bT, bT, bT, bP, bN},
	PoJun:     {bT, bP, bG, bX, bP, bN, bT, bP, bG, bX, bP, bN},
}

// BrightnessOf returns the star's brightness in branch b. Stars without a
// brightness row report ok=false.
func BrightnessOf(id ID, b gz.Branch) (Brightness, bool) {
	row, ok := brightness[id]
	if !ok || !b.Valid() {
		return "", false
	}
	return row[b], true
}
